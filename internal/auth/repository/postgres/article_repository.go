package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Bnslarry/fullstack-training/internal/auth/domain"
	autherror "github.com/Bnslarry/fullstack-training/internal/errors"
	"github.com/jackc/pgx/v5"
)

type ArticleRepository struct {
	db DB
}

func NewArticleRepository(db DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	query := `
		SELECT slug, title, description, body, author_id, created_at, updated_at
		FROM articles
		WHERE slug = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, slug)

	var article domain.Article
	err := row.Scan(&article.Slug, &article.Title, &article.Description, &article.Body,
		&article.AuthorID, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get article by slug: %w", err)
	}

	return &article, nil
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO articles (slug, title, description, body, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, article.Slug, article.Title, article.Description, article.Body,
		article.AuthorID, article.CreatedAt, article.UpdatedAt)

	return err
}

func (r *ArticleRepository) UpdateBySlug(ctx context.Context, slug string, patch domain.ArticlePatch) (*domain.Article, error) {
	query := `
		UPDATE articles
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    body = COALESCE($4, body),
		    updated_at = now()
		WHERE slug = $1
		RETURNING slug, title, description, body, author_id, created_at, updated_at
	`
	row := r.db.QueryRow(ctx, query, slug, patch.Title, patch.Description, patch.Body)

	var article domain.Article
	err := row.Scan(&article.Slug, &article.Title, &article.Description, &article.Body,
		&article.AuthorID, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to update article: %w", err)
	}

	return &article, nil
}

func (r *ArticleRepository) DeleteBySlug(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM articles WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrArticleNotFound
	}

	return nil
}
