package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/enrollhub/enrollment-api/internal/api/handler"
	"github.com/enrollhub/enrollment-api/internal/api/middleware"
	"github.com/enrollhub/enrollment-api/internal/core/domain"
	"github.com/enrollhub/enrollment-api/internal/core/service"
	"github.com/enrollhub/enrollment-api/internal/infrastructure/db/mongodb"
	"github.com/enrollhub/enrollment-api/internal/infrastructure/db/postgres"
	rediscache "github.com/enrollhub/enrollment-api/internal/infrastructure/db/redis"
	"github.com/enrollhub/enrollment-api/internal/pkg/config"
	"github.com/enrollhub/enrollment-api/internal/pkg/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// All collaborators are constructed here and passed down explicitly; nothing
// holds process-wide singleton state.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, db *mongo.Database, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("enrollment"))

	// --- Dependencies ---
	codec, err := token.NewCodec(cfg.Auth.SecretKey, cfg.Auth.Algorithm)
	if err != nil {
		return nil, err
	}

	userRepo := postgres.NewUserRepository(pool)
	masterRepo := postgres.NewMasterRepository(pool)
	masterCache := rediscache.NewMasterCache(rdb)
	newsRepo := mongodb.NewNewsRepository(db)

	authService, err := service.NewAuthService(userRepo, codec, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL())
	if err != nil {
		return nil, err
	}
	masterService := service.NewMasterService(masterRepo, masterCache, log)
	newsService := service.NewNewsService(newsRepo)

	authHandler := handler.NewAuthHandler(authService)
	masterHandler := handler.NewMasterHandler(masterService)
	newsHandler := handler.NewNewsHandler(newsService)

	authn := middleware.Auth(codec, userRepo, log)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/me", authHandler.Me, authn)

	// --- Master data (public reads) ---
	master := e.Group("/master")
	master.GET("/states", masterHandler.States)
	master.GET("/districts", masterHandler.Districts)
	master.GET("/colleges", masterHandler.Colleges)
	master.GET("/castes", masterHandler.Castes)

	// --- News ---
	e.GET("/news", newsHandler.List)
	e.GET("/news/:id", newsHandler.Get)
	e.POST("/news", newsHandler.Create, authn, middleware.RequireRole(domain.RoleAdmin))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(pool, rdb, db)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
