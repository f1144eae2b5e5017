package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/Bnslarry/fullstack-training/internal/auth/service TokenGenerator

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	autherror "github.com/Bnslarry/fullstack-training/internal/errors"
	"github.com/Bnslarry/fullstack-training/pkg/constant"
	"github.com/golang-jwt/jwt/v5"
)

type TokenGenerator interface {
	GenerateAccessToken(userID, email string) (string, time.Time, error)
	VerifyAccessToken(tokenString string) (*JWTCustomClaims, error)
	GenerateRefreshToken() (string, error)
	HashRefreshToken(raw string) string
	GetRefreshTokenExpiry() time.Duration
}

type TokenService struct {
	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func NewTokenService(accessSecret string, accessTokenTTL time.Duration, refreshTTLDays int) *TokenService {
	return &TokenService{
		AccessTokenSecret:  accessSecret,
		AccessTokenExpiry:  accessTokenTTL,
		RefreshTokenExpiry: time.Duration(refreshTTLDays) * 24 * time.Hour,
	}
}

func (ts *TokenService) GenerateAccessToken(userID, email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.AccessTokenExpiry)

	claims := JWTCustomClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.AccessTokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// VerifyAccessToken parses and validates the given access token string.
// Expiry of an otherwise valid token is reported as ErrAccessTokenExpired,
// never as a signature failure.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.AccessTokenSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherror.ErrAccessTokenExpired
		}
		return nil, autherror.ErrInvalidAccessToken
	}

	if !token.Valid {
		return nil, autherror.ErrInvalidAccessToken
	}

	return claims, nil
}

// GenerateRefreshToken returns an opaque random token. Refresh tokens carry
// full entropy, so unlike passwords they are stored under a fast hash.
func (ts *TokenService) GenerateRefreshToken() (string, error) {
	buf := make([]byte, constant.RefreshTokenByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func (ts *TokenService) HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (ts *TokenService) GetRefreshTokenExpiry() time.Duration {
	return ts.RefreshTokenExpiry
}
