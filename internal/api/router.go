package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/90sidort/skillshare-api/internal/api/handler"
	"github.com/90sidort/skillshare-api/internal/api/middleware"
	"github.com/90sidort/skillshare-api/internal/core/service"
	mongodb "github.com/90sidort/skillshare-api/internal/infrastructure/db/mongo"
	redisdb "github.com/90sidort/skillshare-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("skillshare"))

	// --- Dependencies ---
	seq := mongodb.NewSequences(db)
	userRepo := mongodb.NewUserRepository(db, seq)
	offerRepo := mongodb.NewOfferRepository(db, seq)
	offerLock := redisdb.NewOfferLock(rdb)

	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)
	offerService := service.NewOfferService(offerRepo, userRepo, log)
	matchingService := service.NewMatchingService(offerRepo, offerLock, log)

	authHandler := handler.NewAuthHandler(authService)
	offerHandler := handler.NewOfferHandler(offerService)
	actionHandler := handler.NewActionHandler(matchingService)

	authMiddleware := middleware.Auth(jwtSecret)

	// --- Auth routes ---
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)

	// --- Offer CRUD ---
	offers := e.Group("/v1/offers", authMiddleware)
	offers.POST("", offerHandler.Create)
	offers.GET("", offerHandler.List)
	offers.GET("/:id", offerHandler.Get)
	offers.PATCH("/:id", offerHandler.Update)
	offers.DELETE("/:id", offerHandler.Delete)

	// --- Matching actions ---
	actions := e.Group("/v1/actions", authMiddleware)
	actions.PATCH("/apply", actionHandler.Apply)
	actions.PATCH("/withdraw", actionHandler.Withdraw)
	actions.PATCH("/answer", actionHandler.Answer)
	actions.PATCH("/remove", actionHandler.Remove)
	actions.GET("/applicants/:id", actionHandler.Applicants)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
