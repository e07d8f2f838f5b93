package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	_ "github.com/roomly/rental-system/docs"
	"github.com/roomly/rental-system/internal/api/handler"
	"github.com/roomly/rental-system/internal/api/middleware"
	"github.com/roomly/rental-system/internal/core/domain"
	"github.com/roomly/rental-system/internal/core/service"
	"github.com/roomly/rental-system/internal/infrastructure/config"
	mongorepo "github.com/roomly/rental-system/internal/infrastructure/db/mongo"
	redisinfra "github.com/roomly/rental-system/internal/infrastructure/db/redis"
	"github.com/roomly/rental-system/internal/infrastructure/geo"
	"github.com/roomly/rental-system/internal/infrastructure/queue"
	"github.com/roomly/rental-system/pkg/logger"
)

// NewRouter builds the Echo instance with every route registered and
// returns it together with the geocode dispatcher, which the caller is
// responsible for starting.
func NewRouter(cfg config.Config, db *mongo.Database, rdb *redis.Client) (*echo.Echo, *queue.Dispatcher) {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.RateLimiter(
		echomiddleware.NewRateLimiterMemoryStore(rate.Limit(20)),
	))
	e.Use(echoprometheus.NewMiddleware("roomrental"))

	// --- Repositories ---
	users := mongorepo.NewUserRepository(db)
	rooms := mongorepo.NewRoomRepository(db)
	requests := mongorepo.NewRequestRepository(db)
	rentals := mongorepo.NewRentalRepository(db)
	sessions := redisinfra.NewSessionStore(rdb, cfg.Session.TTL)

	// --- Background workers ---
	geocoder := geo.NewClient(cfg.Geocoder.BaseURL, log)
	dispatcher := queue.NewDispatcher(cfg.Geocoder.Workers, geocoder, rooms, log)

	// --- Services ---
	locks := service.NewRoomLocks()
	authService := service.NewAuthService(users, sessions, cfg.JWTSecret, cfg.TokenTTL, log)
	roomService := service.NewRoomService(rooms, users, requests, rentals, locks, dispatcher, log)
	requestService := service.NewRequestService(requests, rooms, rentals, locks, log)
	rentalService := service.NewRentalService(rentals, rooms, log)
	searchService := service.NewSearchService(rooms, rentals, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	roomHandler := handler.NewRoomHandler(roomService)
	requestHandler := handler.NewRequestHandler(requestService)
	rentalHandler := handler.NewRentalHandler(rentalService)
	searchHandler := handler.NewSearchHandler(searchService)
	healthHandler := handler.NewHealthHandler(db.Client(), rdb)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	e.GET("/healthz", healthHandler.Live)
	e.GET("/readyz", healthHandler.Ready)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Browsing and searching rooms needs no login. Search still reads the
	// identity when offered so a logged-in owner never sees their own
	// listings in the results.
	optional := middleware.OptionalAuth(cfg.JWTSecret)
	e.GET("/v1/search", searchHandler.Search, optional)
	e.GET("/v1/rooms", roomHandler.List, optional)
	e.GET("/v1/rooms/:id", roomHandler.Get, optional)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))

	v1.GET("/session", authHandler.Session)
	v1.PUT("/users/photo", authHandler.UpdatePhoto)

	v1.POST("/rooms", roomHandler.Create)
	v1.GET("/rooms/mine", roomHandler.Mine)
	v1.DELETE("/rooms/:id", roomHandler.Delete)
	v1.GET("/rooms/:id/requests", requestHandler.ByRoom)
	v1.GET("/rooms/:id/rental", rentalHandler.ActiveByRoom)

	v1.POST("/requests", requestHandler.Create)
	v1.GET("/requests/mine", requestHandler.Mine)
	v1.POST("/requests/:id/accept", requestHandler.Accept)
	v1.POST("/requests/:id/reject", requestHandler.Reject)
	v1.POST("/requests/:id/cancel", requestHandler.Cancel)
	v1.DELETE("/requests/:id", requestHandler.Delete)

	v1.GET("/rentals/mine", rentalHandler.Mine)
	v1.POST("/rentals/:id/finish", rentalHandler.Finish)

	// --- Admin routes ---
	admin := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.PUT("/rooms/image", roomHandler.BulkSetImage)

	return e, dispatcher
}
