package domain

import "time"

type User struct {
	ID           string
	Email        string
	Nickname     string
	PasswordHash string
	CreatedAt    time.Time
}

// RefreshToken is the persisted half of an opaque refresh credential. Only
// the SHA-256 hash of the raw token is ever stored; the raw value is handed
// to the client exactly once at issuance.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

func (rt *RefreshToken) Revoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) Expired(now time.Time) bool {
	return now.After(rt.ExpiresAt)
}

type Article struct {
	Slug        string
	Title       string
	Description string
	Body        string
	AuthorID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ArticlePatch carries the mutable article fields; nil means "leave as is".
type ArticlePatch struct {
	Title       *string
	Description *string
	Body        *string
}
