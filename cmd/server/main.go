package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loglumen/loglumen-server/internal/aggregate"
	"github.com/loglumen/loglumen-server/internal/api"
	"github.com/loglumen/loglumen-server/internal/config"
	"github.com/loglumen/loglumen-server/internal/ingest"
	"github.com/loglumen/loglumen-server/internal/storage"
	"github.com/loglumen/loglumen-server/pkg/logger"

	_ "github.com/loglumen/loglumen-server/docs/swagger" // Import generated docs
	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	// Parse command-line flags
	var (
		addrFlag = flag.String("addr", "", "HTTP server address (overrides configuration)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load configuration: %v", err)
	}
	if *addrFlag != "" {
		cfg.BindAddress = *addrFlag
	}

	// Build the ingestion and query components around explicit shared state
	store := storage.NewMemoryStore(cfg.Retention.PerHostEvents)
	engine := aggregate.NewEngine(cfg.Retention.RecentWindow)
	pipeline := ingest.NewPipeline(store, engine)
	apiServer := api.NewServer(pipeline, store, engine)

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Shutting down...")
		cancel()
	}()

	// Setup HTTP routes
	mux := http.NewServeMux()
	apiServer.RegisterRoutes(mux)

	// Swagger documentation
	mux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	// Root endpoint with service information
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{
			"service": "Loglumen Collection Server",
			"version": "v1.0.0",
			"description": "HTTP API for ingesting and aggregating security events from Loglumen agents",
			"endpoints": {
				"POST /api/events": "Ingest a batch of events",
				"GET /api/events": "List all retained events",
				"GET /api/events/{host}": "List retained events for a host",
				"GET /api/stats": "Aggregate statistics snapshot",
				"GET /health": "Service health check"
			},
			"documentation": {
				"api": "/docs/",
				"swagger_json": "/docs/swagger.json"
			}
		}`)); err != nil {
			logger.Errorf("Failed to write service info response: %v", err)
		}
	})

	logger.Infof("Starting Loglumen Collection Server on %s...", cfg.BindAddress)
	logger.Infof("Per-host retention cap: %d events, recent window: %d events",
		cfg.Retention.PerHostEvents, cfg.Retention.RecentWindow)

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         cfg.BindAddress,
		Handler:      mux,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for context cancellation (shutdown signal)
	<-ctx.Done()

	// Graceful shutdown of HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server shutdown error: %v", err)
	}

	logger.Info("Server shutdown complete")
}
