package handler

import (
	"errors"
	"time"

	"github.com/Bnslarry/fullstack-training/internal/auth/dto"
	"github.com/Bnslarry/fullstack-training/internal/auth/service"
	autherror "github.com/Bnslarry/fullstack-training/internal/errors"
	"github.com/Bnslarry/fullstack-training/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *service.AuthService
	refreshTTL  time.Duration
}

func NewAuthHandler(authService *service.AuthService, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		refreshTTL:  refreshTTL,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	out, err := h.authService.Register(c.Context(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrEmailAlreadyInUse) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	h.setRefreshCookie(c, out.RefreshToken)

	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	out, err := h.authService.Login(c.Context(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	h.setRefreshCookie(c, out.RefreshToken)

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	raw := refreshTokenFromRequest(c)
	if raw == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": autherror.ErrInvalidRefreshToken.Error()})
	}

	tokens, err := h.authService.Refresh(c.Context(), raw)
	if err != nil {
		if errors.Is(err, autherror.ErrInvalidRefreshToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	h.setRefreshCookie(c, tokens.RefreshToken)

	return c.Status(fiber.StatusOK).JSON(tokens)
}

// Logout clears the cookie and reports success regardless of whether the
// presented token was known.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	raw := refreshTokenFromRequest(c)

	h.clearRefreshCookie(c)

	if raw != "" {
		if err := h.authService.Logout(c.Context(), raw); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, raw string) {
	c.Cookie(&fiber.Cookie{
		Name:     constant.RefreshTokenCookieName,
		Value:    raw,
		Path:     constant.RefreshTokenCookiePath,
		Expires:  time.Now().Add(h.refreshTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     constant.RefreshTokenCookieName,
		Value:    "",
		Path:     constant.RefreshTokenCookiePath,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// refreshTokenFromRequest prefers the cookie and falls back to the JSON
// body for non-browser clients.
func refreshTokenFromRequest(c *fiber.Ctx) string {
	if raw := c.Cookies(constant.RefreshTokenCookieName); raw != "" {
		return raw
	}

	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return ""
	}

	return input.RefreshToken
}
