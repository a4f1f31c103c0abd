package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wolfman30/prospecting-manager/internal/analytics"
	"github.com/wolfman30/prospecting-manager/internal/api/router"
	appconfig "github.com/wolfman30/prospecting-manager/internal/config"
	"github.com/wolfman30/prospecting-manager/internal/invite"
	"github.com/wolfman30/prospecting-manager/internal/mailmerge"
	"github.com/wolfman30/prospecting-manager/internal/observability/metrics"
	"github.com/wolfman30/prospecting-manager/internal/prospects"
	"github.com/wolfman30/prospecting-manager/pkg/logging"
)

func main() {
	// Load configuration (.env is optional)
	_ = godotenv.Load()
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting prospecting-manager API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// The session's record collection and pipeline metrics
	store := prospects.NewStore()
	m := metrics.NewOutreachMetrics(nil)

	// Invite encoding fails fast on an unresolvable timezone: every
	// generated timestamp would be wrong otherwise.
	encoder, err := invite.NewEncoder(invite.Options{
		Timezone:            cfg.Timezone,
		DurationMinutes:     cfg.MeetingDurationMinutes,
		OrganizerName:       cfg.OrganizerName,
		OrganizerEmail:      cfg.OrganizerEmail,
		Location:            cfg.DefaultLocation,
		DescriptionTemplate: cfg.InviteDescription,
	})
	if err != nil {
		logger.Error("failed to configure invite encoder", "error", err)
		os.Exit(1)
	}

	// Initialize handlers
	prospectsHandler := prospects.NewHandler(store, logger, m)
	inviteHandler := invite.NewHandler(encoder, store, logger, m)
	mailmergeHandler := mailmerge.NewHandler(store, logger, m, cfg.EmailSubjectTemplate, cfg.EmailBodyTemplate)
	analyticsHandler := analytics.NewHandler(store, logger)

	// Setup router
	r := router.New(&router.Config{
		Logger:           logger,
		ProspectsHandler: prospectsHandler,
		InviteHandler:    inviteHandler,
		MailmergeHandler: mailmergeHandler,
		AnalyticsHandler: analyticsHandler,
		MetricsHandler:   promhttp.Handler(),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
