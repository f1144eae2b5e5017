package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *ArticleHandler, requireAuth fiber.Handler) {
	articles := app.Group("/api/v1/articles")

	articles.Get("/:slug", h.Get)
	articles.Put("/:slug", requireAuth, h.Update)
	articles.Delete("/:slug", requireAuth, h.Delete)
}
