package handler

import (
	"errors"

	"github.com/Bnslarry/fullstack-training/internal/article/dto"
	"github.com/Bnslarry/fullstack-training/internal/article/service"
	authhandler "github.com/Bnslarry/fullstack-training/internal/auth/handler"
	autherror "github.com/Bnslarry/fullstack-training/internal/errors"
	"github.com/gofiber/fiber/v2"
)

type ArticleHandler struct {
	articleService *service.ArticleService
}

func NewArticleHandler(articleService *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

func (h *ArticleHandler) Get(c *fiber.Ctx) error {
	article, err := h.articleService.Get(c.Context(), c.Params("slug"))
	if err != nil {
		return mutationError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewArticleOutput(article))
}

func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	var input dto.UpdateArticleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	article, err := h.articleService.Update(c.Context(), c.Params("slug"), authhandler.SubjectID(c), input.Patch())
	if err != nil {
		return mutationError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewArticleOutput(article))
}

func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	if err := h.articleService.Delete(c.Context(), c.Params("slug"), authhandler.SubjectID(c)); err != nil {
		return mutationError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

// mutationError keeps the not-found/forbidden distinction: the slug is
// resolved before ownership, so 403 always means the article exists.
func mutationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, autherror.ErrArticleNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, autherror.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
