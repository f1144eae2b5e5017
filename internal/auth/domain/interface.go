package domain

//go:generate mockgen -destination=../../mocks/mock_repositories.go -package=mocks github.com/Bnslarry/fullstack-training/internal/auth/domain UserRepository,RefreshTokenRepository,ArticleRepository

import (
	"context"
	"time"
)

// UserRepository lookups return (nil, nil) when no user matches.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
}

type RefreshTokenRepository interface {
	Store(ctx context.Context, token *RefreshToken) error

	// Rotate atomically revokes the record matching oldHash and stores a
	// replacement for the same user under newHash. It returns the redeemed
	// record. Of two concurrent rotations of the same hash exactly one
	// succeeds; the loser gets ErrRefreshTokenRevoked or
	// ErrRefreshTokenNotFound. An expired record is left untouched and
	// reported with ErrRefreshTokenExpired.
	Rotate(ctx context.Context, oldHash, newHash string, expiresAt time.Time) (*RefreshToken, error)

	// Revoke marks the matching record revoked. Unknown hashes are not an
	// error, so callers cannot probe which tokens exist.
	Revoke(ctx context.Context, tokenHash string) error
}

// ArticleRepository lookups return (nil, nil) when no article matches;
// UpdateBySlug returns (nil, nil) when the row vanished before the update.
type ArticleRepository interface {
	GetBySlug(ctx context.Context, slug string) (*Article, error)
	Create(ctx context.Context, article *Article) error
	UpdateBySlug(ctx context.Context, slug string, patch ArticlePatch) (*Article, error)
	DeleteBySlug(ctx context.Context, slug string) error
}
