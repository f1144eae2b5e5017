package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	articlehandler "github.com/Bnslarry/fullstack-training/internal/article/handler"
	articleservice "github.com/Bnslarry/fullstack-training/internal/article/service"
	"github.com/Bnslarry/fullstack-training/internal/auth/domain"
	authhandler "github.com/Bnslarry/fullstack-training/internal/auth/handler"
	"github.com/Bnslarry/fullstack-training/internal/auth/repository/memory"
	"github.com/Bnslarry/fullstack-training/internal/auth/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app    *fiber.App
	tokens *service.TokenService
	store  *memory.ArticleStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokenService := service.NewTokenService("test-secret", 15*time.Minute, 7)
	store := memory.NewArticleStore()
	articleHandler := articlehandler.NewArticleHandler(articleservice.NewArticleService(store))

	app := fiber.New()
	articlehandler.RegisterRoutes(app, articleHandler, authhandler.RequireAuth(tokenService))

	return &testEnv{app: app, tokens: tokenService, store: store}
}

func (e *testEnv) seedArticle(t *testing.T, slug, authorID string) {
	t.Helper()

	err := e.store.Create(context.Background(), &domain.Article{
		Slug:      slug,
		Title:     "Original title",
		Body:      "body",
		AuthorID:  authorID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
}

func (e *testEnv) bearerFor(t *testing.T, userID string) string {
	t.Helper()

	token, _, err := e.tokens.GenerateAccessToken(userID, userID+"@example.com")
	require.NoError(t, err)

	return "Bearer " + token
}

func (e *testEnv) do(t *testing.T, method, path, auth string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestArticleGet(t *testing.T) {
	env := newTestEnv(t)
	env.seedArticle(t, "how-to-test", "user-a")

	t.Run("found", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/v1/articles/how-to-test", "", nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("missing", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/v1/articles/missing", "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestArticleUpdate(t *testing.T) {
	patch := map[string]string{"title": "New title"}

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedArticle(t, "how-to-test", "user-a")

		resp := env.do(t, http.MethodPut, "/api/v1/articles/how-to-test", "", patch)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("non-owner gets forbidden, not not-found", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedArticle(t, "how-to-test", "user-a")

		resp := env.do(t, http.MethodPut, "/api/v1/articles/how-to-test", env.bearerFor(t, "user-b"), patch)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("missing article is not found even for strangers", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, http.MethodPut, "/api/v1/articles/missing", env.bearerFor(t, "user-b"), patch)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("owner can update", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedArticle(t, "how-to-test", "user-a")

		resp := env.do(t, http.MethodPut, "/api/v1/articles/how-to-test", env.bearerFor(t, "user-a"), patch)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "New title", out["title"])
		assert.Equal(t, "body", out["body"])
	})
}

func TestArticleDelete(t *testing.T) {
	t.Run("non-owner gets forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedArticle(t, "how-to-test", "user-a")

		resp := env.do(t, http.MethodDelete, "/api/v1/articles/how-to-test", env.bearerFor(t, "user-b"), nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("owner can delete", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedArticle(t, "how-to-test", "user-a")

		resp := env.do(t, http.MethodDelete, "/api/v1/articles/how-to-test", env.bearerFor(t, "user-a"), nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp = env.do(t, http.MethodGet, "/api/v1/articles/how-to-test", "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
