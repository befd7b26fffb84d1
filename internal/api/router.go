package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/roamly/tour-booking-api/internal/api/handler"
	"github.com/roamly/tour-booking-api/internal/api/middleware"
	"github.com/roamly/tour-booking-api/internal/core/domain"
	"github.com/roamly/tour-booking-api/internal/core/service"
	"github.com/roamly/tour-booking-api/internal/infrastructure/bus"
	mongodb "github.com/roamly/tour-booking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/roamly/tour-booking-api/internal/infrastructure/db/redis"
	"github.com/roamly/tour-booking-api/internal/notification"
)

// RouterConfig carries the process-wide collaborators the router composes.
type RouterConfig struct {
	DB           *mongo.Database
	Redis        *redis.Client
	JWTSecret    string
	CacheEnabled bool
	Log          zerolog.Logger
}

// NewRouter is the composition root for the request pipeline: it builds the
// collection accessors (optionally behind caching proxies), the repositories,
// the event bus with its notifier subscriber, the services, and the route
// table with its auth chains. Everything here is constructed once and shared
// by all requests.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.Trail(cfg.Log))
	e.Use(echoprometheus.NewMiddleware("tourbook"))

	// --- Collection accessors ---
	// Each repository owns its proxy; writes through one proxy are invisible
	// to every other.
	collection := func(name string) mongodb.Collection {
		coll := mongodb.NewCollection(cfg.DB.Collection(name))
		if cfg.CacheEnabled {
			return mongodb.NewCachedCollection(name, coll)
		}
		return coll
	}

	userRepo := mongodb.NewUserRepository(collection("users"))
	bookingRepo := mongodb.NewBookingRepository(collection("bookings"))
	packageRepo := mongodb.NewRepository(collection("packages"))
	guideRepo := mongodb.NewRepository(collection("guides"))
	reviewRepo := mongodb.NewRepository(collection("reviews"))
	storyRepo := mongodb.NewRepository(collection("stories"))
	wishlistRepo := mongodb.NewWishlistRepository(collection("wishlists"))

	// --- Event bus + notifier ---
	eventBus := bus.New(cfg.Log)
	notifier := notification.NewNotifier(redisdb.NewDedupGuard(cfg.Redis), cfg.Log)
	notifier.SubscribeAll(eventBus)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, time.Hour, cfg.Log)
	bookingService := service.NewBookingService(bookingRepo, eventBus, cfg.Log)
	packageService := service.NewPackageService(packageRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	packageHandler := handler.NewPackageHandler(packageService)
	packageAdmin := handler.NewResourceHandler(packageRepo)
	guideHandler := handler.NewResourceHandler(guideRepo)
	reviewHandler := handler.NewResourceHandler(reviewRepo)
	storyHandler := handler.NewResourceHandler(storyRepo)
	wishlistHandler := handler.NewWishlistHandler(wishlistRepo)
	userHandler := handler.NewUserHandler(userRepo, authService)

	// --- Auth chain gates ---
	authn := middleware.Auth(cfg.JWTSecret)
	admin := middleware.RequireRole(userRepo, domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Packages ---
	e.GET("/packages", packageHandler.List)
	e.GET("/packages/:id", packageHandler.Get)
	e.POST("/packages", packageHandler.Create, authn, admin)
	e.PUT("/packages/:id", packageAdmin.Update, authn, admin)
	e.DELETE("/packages/:id", packageAdmin.Delete, authn, admin)

	// --- Bookings ---
	e.POST("/bookings", bookingHandler.Create, authn)
	e.GET("/bookings/email/:email", bookingHandler.ByEmail, authn)
	e.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus, authn, admin)
	e.DELETE("/bookings/:id", bookingHandler.Delete, authn)

	// --- Guides ---
	e.GET("/guides", guideHandler.List)
	e.GET("/guides/:id", guideHandler.Get)
	e.POST("/guides", guideHandler.Create, authn, admin)
	e.PUT("/guides/:id", guideHandler.Update, authn, admin)
	e.DELETE("/guides/:id", guideHandler.Delete, authn, admin)

	// --- Reviews ---
	e.GET("/reviews", reviewHandler.List)
	e.GET("/reviews/:id", reviewHandler.Get)
	e.POST("/reviews", reviewHandler.Create, authn)
	e.DELETE("/reviews/:id", reviewHandler.Delete, authn)

	// --- Stories ---
	e.GET("/stories", storyHandler.List)
	e.GET("/stories/:id", storyHandler.Get)
	e.POST("/stories", storyHandler.Create, authn)
	e.DELETE("/stories/:id", storyHandler.Delete, authn)

	// --- Wish-lists ---
	e.GET("/wishlists/user/:email", wishlistHandler.ByUserEmail, authn)
	e.POST("/wishlists", wishlistHandler.Create, authn)
	e.DELETE("/wishlists/:id", wishlistHandler.Delete, authn)

	// --- Users (admin only) ---
	e.GET("/users", userHandler.List, authn, admin)
	e.PATCH("/users/:id/role", userHandler.UpdateRole, authn, admin)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.DB, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
