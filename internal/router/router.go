package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rentaltrack/rental-api/config"
	"github.com/rentaltrack/rental-api/internal/handler"
	authhandler "github.com/rentaltrack/rental-api/internal/handler/auth"
	contacthandler "github.com/rentaltrack/rental-api/internal/handler/contact"
	leasehandler "github.com/rentaltrack/rental-api/internal/handler/lease"
	propertyhandler "github.com/rentaltrack/rental-api/internal/handler/property"
	reminderhandler "github.com/rentaltrack/rental-api/internal/handler/reminder"
	"github.com/rentaltrack/rental-api/internal/middleware"
	"github.com/rentaltrack/rental-api/pkg/auth"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health   *handler.HealthHandler
	Auth     *authhandler.Handler
	Contact  *contacthandler.Handler
	Property *propertyhandler.Handler
	Lease    *leasehandler.Handler
	Reminder *reminderhandler.Handler
}

func New(cfg *config.Config, tokens *auth.JWTManager, h Handlers) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	r.Use(middleware.Timeout(cfg.Server.WriteTimeout))
	r.Use(metrics())

	h.Health.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	h.Auth.RegisterRoutes(api.Group("/auth"))

	protected := api.Group("")
	protected.Use(middleware.Auth(tokens))

	h.Auth.RegisterProtectedRoutes(protected.Group("/auth"))
	h.Contact.RegisterRoutes(protected)
	h.Property.RegisterRoutes(protected)
	h.Lease.RegisterRoutes(protected)

	// reminder reads are cheap to cache briefly client-side; the method
	// check inside CacheControl leaves the POST endpoints untouched
	reminders := protected.Group("")
	reminders.Use(middleware.CacheControl(30 * time.Second))
	h.Reminder.RegisterRoutes(reminders)

	return r
}
