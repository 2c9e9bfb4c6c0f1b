package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/leasekit/leasekit/internal/dbpool"
	"github.com/leasekit/leasekit/internal/middleware"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Pool        *dbpool.Pool
	Requests    RequestService
	Leases      LeaseService
	History     HistoryService
	Cleanup     CleanupService
	CORSOrigins []string
	APIKey      string
	Version     string
}

// maxBodySize caps request bodies; rental payloads are small JSON documents.
const maxBodySize = 1 << 20 // 1 MB

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.Prometheus())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, log, deps.Version)
	requests := NewRequestHandler(deps.Requests, deps.History, log)
	leases := NewLeaseHandler(deps.Leases, log)
	products := NewProductHandler(deps.Cleanup, log)

	// Health and readiness are unauthenticated.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// All other API routes require authentication.
	api.Use(middleware.Auth(deps.APIKey, log))

	// Lease requests.
	api.GET("/requests", requests.List)
	api.POST("/requests", requests.Create)
	api.GET("/requests/:id", requests.Get)
	api.PATCH("/requests/:id", requests.Update)
	api.DELETE("/requests/:id", requests.Delete)
	api.GET("/requests/:id/history", requests.History)

	// Leases.
	api.GET("/leases", leases.List)
	api.POST("/leases", leases.Create)
	api.GET("/leases/:id", leases.Get)
	api.PATCH("/leases/:id", leases.Update)
	api.PUT("/leases/:id/status", leases.UpdateStatus)
	api.DELETE("/leases/:id", leases.Delete)

	// Product cleanup.
	api.DELETE("/products/:id/rental-data", products.PurgeRentalData)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(r, deps)
	registerRoutes(r.Group("/api"), deps)

	return r
}
