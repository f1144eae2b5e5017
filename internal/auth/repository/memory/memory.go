// Package memory provides mutex-guarded in-memory implementations of the
// repository interfaces. They back the server when no DB_URL is configured
// and double as fixtures for service-level tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Bnslarry/fullstack-training/internal/auth/domain"
	autherror "github.com/Bnslarry/fullstack-training/internal/errors"
	"github.com/google/uuid"
)

type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}

	user := s.byID[id]
	return &user, nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, nil
	}

	return &user, nil
}

func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return autherror.ErrEmailAlreadyInUse
	}

	s.byID[user.ID] = *user
	s.byEmail[user.Email] = user.ID

	return nil
}

type RefreshTokenStore struct {
	mu     sync.Mutex
	byHash map[string]*domain.RefreshToken
}

func NewRefreshTokenStore() *RefreshTokenStore {
	return &RefreshTokenStore{byHash: make(map[string]*domain.RefreshToken)}
}

func (s *RefreshTokenStore) Store(_ context.Context, token *domain.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *token
	s.byHash[token.TokenHash] = &cp

	return nil
}

// Rotate performs the redeem-and-replace under one lock, so concurrent
// redemptions of the same hash serialize and exactly one wins.
func (s *RefreshTokenStore) Rotate(_ context.Context, oldHash, newHash string, expiresAt time.Time) (*domain.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.byHash[oldHash]
	if !ok {
		return nil, autherror.ErrRefreshTokenNotFound
	}
	if record.Revoked() {
		return nil, autherror.ErrRefreshTokenRevoked
	}
	if record.Expired(time.Now()) {
		return nil, autherror.ErrRefreshTokenExpired
	}

	now := time.Now()
	record.RevokedAt = &now

	s.byHash[newHash] = &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    record.UserID,
		TokenHash: newHash,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}

	redeemed := *record
	return &redeemed, nil
}

func (s *RefreshTokenStore) Revoke(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.byHash[tokenHash]
	if !ok || record.Revoked() {
		return nil
	}

	now := time.Now()
	record.RevokedAt = &now

	return nil
}

type ArticleStore struct {
	mu     sync.RWMutex
	bySlug map[string]domain.Article
}

func NewArticleStore() *ArticleStore {
	return &ArticleStore{bySlug: make(map[string]domain.Article)}
}

func (s *ArticleStore) GetBySlug(_ context.Context, slug string) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	article, ok := s.bySlug[slug]
	if !ok {
		return nil, nil
	}

	return &article, nil
}

func (s *ArticleStore) Create(_ context.Context, article *domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bySlug[article.Slug] = *article

	return nil
}

func (s *ArticleStore) UpdateBySlug(_ context.Context, slug string, patch domain.ArticlePatch) (*domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	article, ok := s.bySlug[slug]
	if !ok {
		return nil, nil
	}

	if patch.Title != nil {
		article.Title = *patch.Title
	}
	if patch.Description != nil {
		article.Description = *patch.Description
	}
	if patch.Body != nil {
		article.Body = *patch.Body
	}
	article.UpdatedAt = time.Now()

	s.bySlug[slug] = article

	return &article, nil
}

func (s *ArticleStore) DeleteBySlug(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bySlug[slug]; !ok {
		return autherror.ErrArticleNotFound
	}

	delete(s.bySlug, slug)

	return nil
}
