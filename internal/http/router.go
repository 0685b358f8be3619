// Package httpapi wires the HTTP transport (Gin) to the carpool services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, identity, logging with redaction, panic
// recovery, metrics, compression, CORS, security headers, idempotency, and
// rate limiting.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-carpool-bot/docs"
	"github.com/tbourn/go-carpool-bot/internal/config"
	"github.com/tbourn/go-carpool-bot/internal/http/handlers"
	"github.com/tbourn/go-carpool-bot/internal/http/middleware"
	"github.com/tbourn/go-carpool-bot/internal/repo"
	"github.com/tbourn/go-carpool-bot/internal/services"
	"github.com/tbourn/go-carpool-bot/internal/summary"
)

// corsHeaders are the request headers browser clients may send.
var corsHeaders = []string{
	"Origin", "Content-Type", "Accept", "If-None-Match",
	middleware.HeaderUserID, middleware.HeaderIdempotencyKey,
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the carpool API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Identity: X-User-ID into the context
//  4. Logger: structured logs with PII scrubbing
//  5. Recovery: capture panics after logger
//  6. Body size limiter
//  7. Metrics
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per chat and user, bypass on replay)
//  10. Compression, CORS, and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Identity())
	r.Use(middleware.Logger(middleware.LogOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Recovery())

	// Button callbacks and trip names are tiny; 64 KiB is generous.
	r.Use(limitBody(64 << 10))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Dependency injection: services ← repo/db
	store := repo.Carpool{}
	tripSvc := services.NewTripService(db, store)
	tripSvc.IdempotencyTTL = cfg.IdempotencyTTL
	carSvc := services.NewCarService(db, store)
	passengerSvc := services.NewPassengerService(db, store)
	summarySvc := services.NewSummaryService(db, store)

	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, tripSvc.Exists))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByChatUserOrIP())
	r.Use(rl.Handler())

	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     corsHeaders,
			ExposeHeaders:    []string{"X-Request-ID", "ETag", "Idempotency-Replayed"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     corsHeaders,
			ExposeHeaders:    []string{"X-Request-ID", "ETag", "Idempotency-Replayed"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Trip views carry ETags; no-cache keeps conditional GETs working.
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		CacheControl: "no-cache",
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(tripSvc, carSvc, passengerSvc, summarySvc, summary.StyleByName(cfg.SummaryStyle))

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Trips
		api.POST("/chats/:chat_id/trips", h.CreateTrip)
		api.GET("/chats/:chat_id/trips", h.ListTrips)
		api.GET("/trips/:trip_id", h.GetTrip)
		api.PUT("/trips/:trip_id/message-ref", h.RecordMessageRef)

		// Cars
		api.POST("/chats/:chat_id/trips/:trip_id/cars", h.AddCar)
		api.PUT("/chats/:chat_id/seats", h.UpdateSeats)

		// Passengers
		api.POST("/cars/:car_id/passengers", h.JoinCar)

		// Button callbacks
		api.POST("/chats/:chat_id/actions", h.HandleAction)
	}
}

// limitBody caps the request body size for all endpoints to maxBytes using
// http.MaxBytesReader. Requests exceeding the cap fail JSON binding.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
