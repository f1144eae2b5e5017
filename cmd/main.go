package main

import (
	"context"
	"log"

	"github.com/Bnslarry/fullstack-training/config"
	"github.com/Bnslarry/fullstack-training/db"
	articlehandler "github.com/Bnslarry/fullstack-training/internal/article/handler"
	articleservice "github.com/Bnslarry/fullstack-training/internal/article/service"
	"github.com/Bnslarry/fullstack-training/internal/auth/domain"
	"github.com/Bnslarry/fullstack-training/internal/auth/handler"
	"github.com/Bnslarry/fullstack-training/internal/auth/repository/memory"
	repo "github.com/Bnslarry/fullstack-training/internal/auth/repository/postgres"
	"github.com/Bnslarry/fullstack-training/internal/auth/service"
	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.Load()

	var (
		userRepo    domain.UserRepository
		tokenRepo   domain.RefreshTokenRepository
		articleRepo domain.ArticleRepository
	)

	if cfg.DBURL != "" {
		pool, err := db.NewPostgresPool(context.Background(), cfg.DBURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer pool.Close()

		pgRepo := repo.NewRepository(pool)
		userRepo = pgRepo
		tokenRepo = pgRepo
		articleRepo = repo.NewArticleRepository(pool)
	} else {
		log.Printf("DB_URL not set, using in-memory stores")
		userRepo = memory.NewUserStore()
		tokenRepo = memory.NewRefreshTokenStore()
		articleRepo = memory.NewArticleStore()
	}

	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTLDays)
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	authService := service.NewAuthService(userRepo, tokenRepo, tokenService, hasher)
	articleService := articleservice.NewArticleService(articleRepo)

	authHandler := handler.NewAuthHandler(authService, tokenService.GetRefreshTokenExpiry())
	articleHandler := articlehandler.NewArticleHandler(articleService)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)
	articlehandler.RegisterRoutes(app, articleHandler, handler.RequireAuth(tokenService))

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
