package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Bnslarry/fullstack-training/internal/auth/dto"
	"github.com/Bnslarry/fullstack-training/internal/auth/handler"
	"github.com/Bnslarry/fullstack-training/internal/auth/repository/memory"
	"github.com/Bnslarry/fullstack-training/internal/auth/service"
	"github.com/Bnslarry/fullstack-training/pkg/constant"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	tokenService := service.NewTokenService("test-secret", 15*time.Minute, 7)
	hasher := service.NewPasswordHasher(bcrypt.MinCost)
	authService := service.NewAuthService(memory.NewUserStore(), memory.NewRefreshTokenStore(), tokenService, hasher)
	authHandler := handler.NewAuthHandler(authService, tokenService.GetRefreshTokenExpiry())

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, cookie string) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(http.MethodPost, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: constant.RefreshTokenCookieName, Value: cookie})
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func refreshCookie(t *testing.T, resp *http.Response) string {
	t.Helper()

	for _, c := range resp.Cookies() {
		if c.Name == constant.RefreshTokenCookieName {
			return c.Value
		}
	}

	return ""
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestRegister(t *testing.T) {
	app := newTestApp(t)

	input := dto.RegisterInput{Email: "a@b.com", Nickname: "neo", Password: "password123"}

	t.Run("success", func(t *testing.T) {
		resp := postJSON(t, app, "/api/v1/register", input, "")
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var out dto.AuthOutput
		decodeBody(t, resp, &out)
		assert.Equal(t, "a@b.com", out.User.Email)
		assert.Equal(t, "neo", out.User.Nickname)
		assert.NotEmpty(t, out.User.ID)
		assert.NotEmpty(t, out.AccessToken)
		assert.NotEmpty(t, out.RefreshToken)
		assert.Equal(t, out.RefreshToken, refreshCookie(t, resp))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		resp := postJSON(t, app, "/api/v1/register", input, "")
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewReader([]byte("{broken")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)

	register := dto.RegisterInput{Email: "a@b.com", Nickname: "neo", Password: "password123"}
	resp := postJSON(t, app, "/api/v1/register", register, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var registered dto.AuthOutput
	decodeBody(t, resp, &registered)

	t.Run("success returns the registered user", func(t *testing.T) {
		resp := postJSON(t, app, "/api/v1/login", dto.LoginInput{Email: "a@b.com", Password: "password123"}, "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out dto.AuthOutput
		decodeBody(t, resp, &out)
		assert.Equal(t, registered.User.ID, out.User.ID)
		assert.NotEmpty(t, refreshCookie(t, resp))
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		wrongPassword := postJSON(t, app, "/api/v1/login", dto.LoginInput{Email: "a@b.com", Password: "nope"}, "")
		unknownEmail := postJSON(t, app, "/api/v1/login", dto.LoginInput{Email: "ghost@b.com", Password: "password123"}, "")

		assert.Equal(t, fiber.StatusUnauthorized, wrongPassword.StatusCode)
		assert.Equal(t, fiber.StatusUnauthorized, unknownEmail.StatusCode)

		var first, second map[string]string
		decodeBody(t, wrongPassword, &first)
		decodeBody(t, unknownEmail, &second)
		assert.Equal(t, first["error"], second["error"])
	})
}

func TestRefresh_RotationChain(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/register", dto.RegisterInput{Email: "a@b.com", Nickname: "neo", Password: "password123"}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	r0 := refreshCookie(t, resp)
	require.NotEmpty(t, r0)

	// refresh(R0) -> R1
	resp = postJSON(t, app, "/api/v1/refresh", nil, r0)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	r1 := refreshCookie(t, resp)
	require.NotEmpty(t, r1)
	assert.NotEqual(t, r0, r1)

	var tokens dto.TokenResponse
	decodeBody(t, resp, &tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, r1, tokens.RefreshToken)

	// replaying R0 fails
	resp = postJSON(t, app, "/api/v1/refresh", nil, r0)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// R1 is still valid and yields R2
	resp = postJSON(t, app, "/api/v1/refresh", nil, r1)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	r2 := refreshCookie(t, resp)
	assert.NotEmpty(t, r2)
	assert.NotEqual(t, r1, r2)
}

func TestRefresh_BodyFallback(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/register", dto.RegisterInput{Email: "a@b.com", Nickname: "neo", Password: "password123"}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var registered dto.AuthOutput
	decodeBody(t, resp, &registered)

	resp = postJSON(t, app, "/api/v1/refresh", dto.RefreshInput{RefreshToken: registered.RefreshToken}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRefresh_InvalidToken(t *testing.T) {
	app := newTestApp(t)

	t.Run("missing token", func(t *testing.T) {
		resp := postJSON(t, app, "/api/v1/refresh", nil, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("forged token", func(t *testing.T) {
		resp := postJSON(t, app, "/api/v1/refresh", nil, "definitely-not-issued")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var out map[string]string
		decodeBody(t, resp, &out)
		// One undifferentiated error for not-found, revoked and expired.
		assert.Equal(t, "invalid refresh token", out["error"])
	})
}

func TestLogout(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/register", dto.RegisterInput{Email: "a@b.com", Nickname: "neo", Password: "password123"}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	r0 := refreshCookie(t, resp)

	t.Run("revokes the presented token", func(t *testing.T) {
		resp := postJSON(t, app, "/api/v1/logout", nil, r0)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp = postJSON(t, app, "/api/v1/refresh", nil, r0)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown token still reports success", func(t *testing.T) {
		resp := postJSON(t, app, "/api/v1/logout", nil, "never-issued")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("no token at all still reports success", func(t *testing.T) {
		resp := postJSON(t, app, "/api/v1/logout", nil, "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
