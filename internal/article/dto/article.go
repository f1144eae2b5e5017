package dto

import (
	"time"

	"github.com/Bnslarry/fullstack-training/internal/auth/domain"
)

type UpdateArticleInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Body        *string `json:"body"`
}

func (in UpdateArticleInput) Patch() domain.ArticlePatch {
	return domain.ArticlePatch{
		Title:       in.Title,
		Description: in.Description,
		Body:        in.Body,
	}
}

type ArticleOutput struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Body        string    `json:"body"`
	AuthorID    string    `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewArticleOutput(a *domain.Article) ArticleOutput {
	return ArticleOutput{
		Slug:        a.Slug,
		Title:       a.Title,
		Description: a.Description,
		Body:        a.Body,
		AuthorID:    a.AuthorID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
