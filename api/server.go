package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/devfolio-backend/config"
	"github.com/rpupo63/devfolio-backend/database"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(c map[string]string, db database.Database) (Server, error) {
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := NewRouter(db, c)

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 30)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 30)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

// NewRouter builds the full handler tree: middleware, REST routes and /metrics.
func NewRouter(db database.Database, c map[string]string) *chi.Mux {
	m := newMetrics()
	handlers := initializeHandlers(db, c, m)

	chiRouter := chi.NewRouter()
	chiRouter.Use(RequestID)
	chiRouter.Use(ColoredHTTPLoggingMiddleware(config.GetString(c, "LOG_FORMAT", "console") == "console"))
	chiRouter.Use(RecoverPanics)
	chiRouter.Use(m.middleware)

	acceptedOrigins := config.GetStrings(c, "ACCEPTED_ORIGINS")
	if len(acceptedOrigins) == 0 {
		acceptedOrigins = []string{"*"}
	}
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	chiRouter.Method(http.MethodGet, "/metrics", m.handler())
	setupRoutes(chiRouter, handlers)

	return chiRouter
}

// Start blocks serving requests. It returns nil after a graceful shutdown.
func (s Server) Start() error {
	log.Info().Msgf("Server started on: %s", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s Server) Uptime() time.Duration {
	return time.Since(s.startupTime)
}

func (s Server) ShutdownGracefully(timeout time.Duration) error {
	log.Info().Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
		return err
	}
	log.Info().Dur("uptime", s.Uptime()).Msg("HttpServer gracefully shut down")
	return nil
}
