// Path: internal/delivery/rest/server.go
package rest

import (
	"context"
	"log/slog"
	"net/http"

	"music-server/internal/config"

	"golang.org/x/time/rate"
)

// Server is one HTTP listener.
type Server struct {
	httpServer *http.Server
}

// NewFrontDoor creates the combined listener: the song API under /api and
// static files for every other path.
func NewFrontDoor(cfg config.ServerConfig, songs *SongHandlers, files http.Handler, limiter *rate.Limiter, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	songs.RegisterRoutes(mux, rateLimit(limiter))
	mux.Handle("/", files) // Catch-all: the static dispatcher answers 405 for non-GET itself

	return newServer(cfg, cfg.Port, mux, logger)
}

// NewAPIServer creates a listener that serves only the song API.
func NewAPIServer(cfg config.ServerConfig, songs *SongHandlers, limiter *rate.Limiter, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	songs.RegisterRoutes(mux, rateLimit(limiter))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusOK, "Welcome to the Multipurpose Web Server!")
	})
	mux.HandleFunc("/", RouteNotFound)

	return newServer(cfg, cfg.APIPort, mux, logger)
}

func newServer(cfg config.ServerConfig, port string, mux *http.ServeMux, logger *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         config.Addr(port),
			Handler:      requestID(logRequest(logger)(mux)),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
			ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
	}
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the server's root handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
