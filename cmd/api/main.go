package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"blogapi/internal/alerts"
	"blogapi/internal/apperr"
	"blogapi/internal/auth"
	"blogapi/internal/cache"
	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/logging"
	appmw "blogapi/internal/middleware"
	"blogapi/internal/posts"
	"blogapi/internal/users"
	"blogapi/internal/validate"
)

func main() {
	cfg := config.Load()
	log := logging.NewJSONLogger()
	ctx := context.Background()

	if cfg.JWTSecret == "" {
		log.Error(ctx, "JWT_SECRET is required")
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "database init failed", "error", err.Error())
		os.Exit(1)
	}
	defer pool.Close()

	store := cache.New(cfg.RedisAddr, cfg.RedisPassword, log)
	defer store.Close()

	notifier := alerts.NewClient(cfg.RedisAddr, cfg.RedisPassword)
	defer notifier.Close()

	processor := alerts.NewProcessor(cfg.RedisAddr, cfg.RedisPassword, alerts.NewMailerFromEnv(log), log)
	processor.Start()
	defer processor.Shutdown()

	usersRepo := users.NewPostgresRepository(pool)
	postsRepo := posts.NewPostgresRepository(pool)

	authSvc := auth.NewService(usersRepo, cfg.JWTSecret, cfg.BcryptCost, notifier, log)
	postSvc := posts.NewService(postsRepo, store, cfg.CacheTTL, notifier, log)

	authHandler := auth.NewHandler(authSvc)
	postHandler := posts.NewHandler(postSvc)
	userHandler := users.NewHandler(usersRepo)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORS())
	e.Validator = validate.New()
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(cfg.Env == config.DevEnv, log)

	secret := []byte(cfg.JWTSecret)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		if err := pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	// Auth routes with per-IP rate limiting to protect signup/login from abuse
	authGroup := e.Group("/api/auth")
	authGroup.Use(echomw.RateLimiter(echomw.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)

	e.GET("/api/users/:userId", userHandler.GetByID)

	postGroup := e.Group("/api/posts")
	postGroup.GET("/all", postHandler.ListPublished)
	postGroup.GET("/user", postHandler.ListMine, appmw.RequireAuth(secret))
	postGroup.POST("/create", postHandler.Create, appmw.RequireAuth(secret))
	postGroup.GET("/:postId", postHandler.GetByID, appmw.OptionalAuth(secret))
	postGroup.PATCH("/:postId", postHandler.Update, appmw.RequireAuth(secret))
	postGroup.DELETE("/:postId", postHandler.Delete, appmw.RequireAuth(secret))

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "server stopped", "error", err.Error())
		}
	}()
	log.Info(ctx, "server listening", "port", cfg.Port, "env", cfg.Env)

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "shutdown failed", "error", err.Error())
	}
}
