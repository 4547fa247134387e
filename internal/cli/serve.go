package cli

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/magda-charts/internal/api"
	"github.com/Conceptual-Machines/magda-charts/internal/config"
	"github.com/Conceptual-Machines/magda-charts/internal/database"
	"github.com/Conceptual-Machines/magda-charts/internal/metrics"
	"github.com/Conceptual-Machines/magda-charts/internal/repository"
	"github.com/Conceptual-Machines/magda-charts/internal/services"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the HTTP API",
		Long:  `Starts the HTTP API. Configuration is read from the environment (and .env).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}
			return serve(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides PORT)")
	return cmd
}

func serve(cmd *cobra.Command, cfg *config.Config) error {
	if flush := initSentry(cfg); flush != nil {
		defer flush()
	}

	registry, err := loadRegistry(cfg)
	if err != nil {
		sentry.CaptureException(err)
		return err
	}

	var db *gorm.DB
	var repo repository.ProgressionRepository
	if cfg.StoreEnabled() {
		if db, err = database.Connect(cfg.DatabaseURL); err != nil {
			sentry.CaptureException(err)
			return err
		}
		if err := database.Migrate(db); err != nil {
			sentry.CaptureException(err)
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		repo = repository.NewProgressionRepository(db)
	} else {
		log.Println("⚠️  Progression store disabled (DATABASE_URL not set)")
	}

	cloudwatch, err := metrics.NewClient(cmd.Context(), cfg.Environment)
	if err != nil {
		// Metrics are optional; keep serving without them
		log.Printf("Failed to initialize CloudWatch metrics: %v", err)
	}

	if cfg.Environment == environmentProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(api.Dependencies{
		Config:     cfg,
		DB:         db,
		Charts:     services.NewChartService(registry, repo, cloudwatch),
		CloudWatch: cloudwatch,
		Version:    releaseVersion,
	})

	log.Printf("🚀 Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// initSentry initializes Sentry when a DSN is configured and returns the
// flush function to defer
func initSentry(cfg *config.Config) func() {
	if cfg.SentryDSN == "" {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          "magda-charts@" + releaseVersion,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
		EnableLogs:       true,
		Debug:            cfg.Environment != environmentProduction,
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			// Filter out sensitive data
			if event.Request != nil {
				event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
			}
			return event
		},
	})
	if err != nil {
		log.Printf("Failed to initialize Sentry: %v", err)
		return nil
	}

	log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
	return func() { sentry.Flush(sentryFlushTimeout) }
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
