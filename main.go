package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mergington-api/internal/config"
	"mergington-api/internal/container"
	"mergington-api/internal/handler"
	"mergington-api/internal/middleware"
	"mergington-api/pkg/logger"
	"mergington-api/pkg/redis"
)

// Resources holds all resources that need cleanup
type Resources struct {
	redisClient *redis.Client
	server      *http.Server
	log         *logger.Logger
	mu          sync.Mutex
	closed      bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error

	r.log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first to stop accepting new requests
	if r.server != nil {
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			r.log.WithError(err).Error("Failed to close Redis connection")
			errs = append(errs, fmt.Errorf("Redis close: %w", err))
		} else {
			r.log.Info("Redis connection closed successfully")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errs), errs)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting mergington-api server")

	// Create dependency injection container (seeds the activity registry)
	c, err := container.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	// Setup router
	router := setupRouter(c)

	// Create HTTP server
	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Create resources manager for cleanup
	resources := &Resources{
		redisClient: c.GetRedisClient(),
		server:      server,
		log:         log,
	}

	// Setup graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	// Wait for interrupt signal or server error
	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(c *container.Container) *chi.Mux {
	cfg := c.GetConfig()
	log := c.GetLogger()

	r := chi.NewRouter()

	// Setup CORS middleware
	corsConfig := &middleware.CORSConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "X-Requested-With"},
		AllowCredentials: false,
		MaxAge:           86400,
	}

	// Setup middlewares
	r.Use(middleware.CORS(corsConfig, log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(30 * time.Second))
	r.Use(middleware.Metrics)

	// Create handlers
	healthHandler := handler.NewHealthHandler(c)
	activityHandler := handler.NewActivityHandler(c.GetActivityService(), log)

	// Health check and metrics
	r.Get("/health", healthHandler.Check)
	r.Handle("/metrics", promhttp.Handler())

	// Root redirects to the static entry document
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
	})

	// Static frontend
	fileServer := http.FileServer(http.Dir(cfg.StaticDir))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Activity roster routes
	activityHandler.RegisterRoutes(r)

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Endpoint not found"}`))
	})

	log.Info("Router configured successfully")
	return r
}
