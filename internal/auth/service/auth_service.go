package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Bnslarry/fullstack-training/internal/auth/domain"
	"github.com/Bnslarry/fullstack-training/internal/auth/dto"
	autherror "github.com/Bnslarry/fullstack-training/internal/errors"
	"github.com/google/uuid"
)

// dummyPasswordHash is compared against when a login hits an unknown email,
// so that unknown-email and wrong-password cost the same bcrypt work.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthService struct {
	users  domain.UserRepository
	tokens domain.RefreshTokenRepository
	signer TokenGenerator
	hasher *PasswordHasher
}

func NewAuthService(users domain.UserRepository, tokens domain.RefreshTokenRepository,
	signer TokenGenerator, hasher *PasswordHasher) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		signer: signer,
		hasher: hasher,
	}
}

func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthOutput, error) {
	existing, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Nickname:     input.Nickname,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthOutput, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		s.hasher.Verify(input.Password, dummyPasswordHash)
		return nil, autherror.ErrInvalidCredentials
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, autherror.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// Refresh redeems a raw refresh token for a new token pair. Every
// store-level failure collapses to ErrInvalidRefreshToken at this boundary;
// the specific reason is only logged.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*dto.TokenResponse, error) {
	newRaw, err := s.signer.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	oldHash := s.signer.HashRefreshToken(rawToken)
	newHash := s.signer.HashRefreshToken(newRaw)
	expiresAt := time.Now().Add(s.signer.GetRefreshTokenExpiry())

	redeemed, err := s.tokens.Rotate(ctx, oldHash, newHash, expiresAt)
	if err != nil {
		switch {
		case errors.Is(err, autherror.ErrRefreshTokenNotFound):
			log.Printf("refresh rejected: token not found")
		case errors.Is(err, autherror.ErrRefreshTokenRevoked):
			// Reuse of a rotated token is a signal the chain may be stolen.
			log.Printf("refresh rejected: revoked token presented, possible token reuse")
		case errors.Is(err, autherror.ErrRefreshTokenExpired):
			log.Printf("refresh rejected: expired token")
		default:
			return nil, err
		}

		return nil, autherror.ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, redeemed.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Data corruption, not a normal failure path.
		return nil, fmt.Errorf("refresh token %s references missing user %s", redeemed.ID, redeemed.UserID)
	}

	accessToken, _, err := s.signer.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRaw,
	}, nil
}

// Logout succeeds whether or not the token exists, so callers cannot probe
// which tokens are live.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	return s.tokens.Revoke(ctx, s.signer.HashRefreshToken(rawToken))
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*dto.AuthOutput, error) {
	accessToken, _, err := s.signer.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	rawRefresh, err := s.signer.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: s.signer.HashRefreshToken(rawRefresh),
		ExpiresAt: now.Add(s.signer.GetRefreshTokenExpiry()),
		CreatedAt: now,
	}

	if err := s.tokens.Store(ctx, record); err != nil {
		return nil, err
	}

	return &dto.AuthOutput{
		User: dto.NewUserOutput(user),
		TokenResponse: dto.TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: rawRefresh,
		},
	}, nil
}
