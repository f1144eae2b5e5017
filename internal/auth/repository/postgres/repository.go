package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Bnslarry/fullstack-training/internal/auth/domain"
	autherror "github.com/Bnslarry/fullstack-training/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the slice of pgxpool.Pool the repositories need; pgxmock satisfies
// it too, which is how the tests run without a database.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository implements domain.UserRepository and
// domain.RefreshTokenRepository on PostgreSQL.
type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, nickname, password_hash, created_at
		FROM users
		WHERE email = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, email)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.Nickname, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, nickname, password_hash, created_at
		FROM users
		WHERE id = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, id)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.Nickname, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

func (r *Repository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, email, nickname, password_hash, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `, user.ID, user.Email, user.Nickname, user.PasswordHash, user.CreatedAt)

	return err
}

func (r *Repository) Store(ctx context.Context, rt *domain.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, revoked_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		rt.ID, rt.UserID, rt.TokenHash, rt.ExpiresAt, rt.RevokedAt, rt.CreatedAt)

	return err
}

// Rotate redeems oldHash and stores the replacement inside one transaction.
// The conditional UPDATE takes the row lock, so of two concurrent calls for
// the same hash exactly one revokes the row; the other matches nothing and
// is told the token was already revoked.
func (r *Repository) Rotate(ctx context.Context, oldHash, newHash string, expiresAt time.Time) (*domain.RefreshToken, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin rotation: %w", err)
	}
	defer tx.Rollback(ctx)

	redeemed := domain.RefreshToken{TokenHash: oldHash}
	err = tx.QueryRow(ctx, `
		UPDATE refresh_tokens
		SET revoked_at = now()
		WHERE token_hash = $1 AND revoked_at IS NULL
		RETURNING id, user_id, expires_at, created_at, revoked_at
	`, oldHash).Scan(&redeemed.ID, &redeemed.UserID, &redeemed.ExpiresAt, &redeemed.CreatedAt, &redeemed.RevokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var revokedAt *time.Time
			lookupErr := tx.QueryRow(ctx,
				`SELECT revoked_at FROM refresh_tokens WHERE token_hash = $1`, oldHash).Scan(&revokedAt)
			if errors.Is(lookupErr, pgx.ErrNoRows) {
				return nil, autherror.ErrRefreshTokenNotFound
			}
			if lookupErr != nil {
				return nil, fmt.Errorf("failed to inspect refresh token: %w", lookupErr)
			}

			return nil, autherror.ErrRefreshTokenRevoked
		}

		return nil, fmt.Errorf("failed to redeem refresh token: %w", err)
	}

	if redeemed.Expired(time.Now()) {
		// Roll back so the record stays expired instead of revoked; replay
		// of an expired token must keep reading as expired.
		return nil, autherror.ErrRefreshTokenExpired
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, now())
	`, redeemed.UserID, newHash, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to store rotated refresh token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit rotation: %w", err)
	}

	return &redeemed, nil
}

func (r *Repository) Revoke(ctx context.Context, tokenHash string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked_at = now()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`, tokenHash)

	return err
}
