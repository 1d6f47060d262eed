package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	redisclient "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/laundryhub/laundry-marketplace/internal/api/handler"
	"github.com/laundryhub/laundry-marketplace/internal/api/middleware"
	"github.com/laundryhub/laundry-marketplace/internal/api/view"
	"github.com/laundryhub/laundry-marketplace/internal/core/service"
	"github.com/laundryhub/laundry-marketplace/internal/infrastructure/config"
	"github.com/laundryhub/laundry-marketplace/internal/infrastructure/db/mongo"
	"github.com/laundryhub/laundry-marketplace/internal/infrastructure/db/redis"
	"github.com/laundryhub/laundry-marketplace/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongodriver.Database, rdb *redisclient.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("laundry"))

	// --- Dependencies ---
	userRepo := mongo.NewUserRepository(db)
	pickupRepo := mongo.NewPickupRepository(db)
	sessionStore := redis.NewSessionStore(rdb)
	sessionCookie := middleware.NewSessionCookie(cfg.SessionSecret, cfg.CookieMaxAge)

	authService := service.NewAuthService(userRepo, sessionStore, cfg.SessionTTL, log)
	laundryService := service.NewLaundryService(userRepo, pickupRepo, sessionStore, cfg.SessionTTL, log)

	authHandler := handler.NewAuthHandler(authService, sessionCookie)
	laundryHandler := handler.NewLaundryHandler(laundryService)

	// --- Public routes ---
	e.GET("/", authHandler.Home, middleware.LoadSession(sessionCookie, sessionStore))
	e.GET("/signup", authHandler.SignUpForm)
	e.POST("/signup", authHandler.SignUp)
	e.GET("/login", authHandler.LogInForm)
	e.POST("/login", authHandler.LogIn)
	e.GET("/logout", authHandler.LogOut)

	// --- Authenticated routes ---
	gated := e.Group("", middleware.RequireSession(sessionCookie, sessionStore))
	gated.GET("/dashboard", laundryHandler.Dashboard)
	gated.POST("/launderers", laundryHandler.Promote)
	gated.GET("/launderers", laundryHandler.Launderers)
	gated.GET("/launderers/:id", laundryHandler.Profile)
	gated.POST("/laundry-pickups", laundryHandler.CreatePickup)

	// --- Operations endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e, nil
}
