package service

import (
	"context"

	"github.com/Bnslarry/fullstack-training/internal/auth/domain"
	autherror "github.com/Bnslarry/fullstack-training/internal/errors"
)

// CanMutate reports whether the authenticated subject may change a resource
// owned by ownerID.
func CanMutate(ownerID, subjectID string) bool {
	return ownerID == subjectID
}

type ArticleService struct {
	repo domain.ArticleRepository
}

func NewArticleService(repo domain.ArticleRepository) *ArticleService {
	return &ArticleService{repo: repo}
}

func (s *ArticleService) Get(ctx context.Context, slug string) (*domain.Article, error) {
	article, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, autherror.ErrArticleNotFound
	}

	return article, nil
}

// Update resolves the article first so an absent slug reads as not-found;
// only an existing article owned by someone else is forbidden.
func (s *ArticleService) Update(ctx context.Context, slug, subjectID string, patch domain.ArticlePatch) (*domain.Article, error) {
	article, err := s.Get(ctx, slug)
	if err != nil {
		return nil, err
	}

	if !CanMutate(article.AuthorID, subjectID) {
		return nil, autherror.ErrForbidden
	}

	updated, err := s.repo.UpdateBySlug(ctx, slug, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, autherror.ErrArticleNotFound
	}

	return updated, nil
}

func (s *ArticleService) Delete(ctx context.Context, slug, subjectID string) error {
	article, err := s.Get(ctx, slug)
	if err != nil {
		return err
	}

	if !CanMutate(article.AuthorID, subjectID) {
		return autherror.ErrForbidden
	}

	return s.repo.DeleteBySlug(ctx, slug)
}
