package api

import (
	"github.com/Conceptual-Machines/magda-charts/internal/api/handlers"
	"github.com/Conceptual-Machines/magda-charts/internal/api/middleware"
	"github.com/Conceptual-Machines/magda-charts/internal/config"
	"github.com/Conceptual-Machines/magda-charts/internal/metrics"
	"github.com/Conceptual-Machines/magda-charts/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the components the router wires into handlers. DB and
// CloudWatch may be nil.
type Dependencies struct {
	Config     *config.Config
	DB         *gorm.DB
	Charts     *services.ChartService
	CloudWatch *metrics.Client
	Version    string
}

func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(middleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(middleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(middleware.RequestTracking(deps.CloudWatch))

	// CORS middleware
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Health check
	healthHandler := handlers.NewHealthHandler(deps.DB)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(deps.Version, deps.Charts.Schemes().Names(), deps.Charts.StoreEnabled())
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	v1 := router.Group("/api/v1")
	{
		schemeHandler := handlers.NewColorSchemeHandler(deps.Charts)
		v1.GET("/color-schemes", schemeHandler.ListColorSchemes)
		v1.GET("/color-schemes/:name", schemeHandler.GetColorScheme)

		chartHandler := handlers.NewChartHandler(deps.Charts)
		v1.POST("/scales", chartHandler.GenerateScale)
		v1.POST("/chords/render", chartHandler.RenderChord)
		v1.POST("/progressions/render", chartHandler.RenderProgression)

		// Stored progressions; writes go through the configured auth mode
		progressionHandler := handlers.NewProgressionHandler(deps.Charts)
		v1.POST("/progressions", middleware.Auth(cfg), progressionHandler.CreateProgression)
		v1.GET("/progressions", progressionHandler.ListProgressions)
		v1.GET("/progressions/:id", progressionHandler.GetProgression)
		v1.GET("/progressions/:id/render", progressionHandler.RenderProgression)
	}

	return router
}
