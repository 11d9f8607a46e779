package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"wifi-monitor/internal/logger"
	"wifi-monitor/internal/models"
)

// Server serves the dashboard, its JSON API and the live snapshot feed.
type Server struct {
	store       models.Store
	port        int
	staticFiles fs.FS
	hub         *Hub
	router      *mux.Router
	httpServer  *http.Server
	log         zerolog.Logger
}

// New creates a new web server. staticFS must contain a static/ directory.
func New(store models.Store, port int, staticFS fs.FS) *Server {
	s := &Server{
		store:       store,
		port:        port,
		staticFiles: staticFS,
		hub:         NewHub(),
		router:      mux.NewRouter(),
		log:         logger.WithComponent("web"),
	}
	s.registerRoutes()
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/current", s.handleCurrent).Methods(http.MethodGet)
	api.HandleFunc("/snapshots", s.handleSnapshots).Methods(http.MethodGet)
	api.HandleFunc("/timeseries", s.handleTimeseries).Methods(http.MethodGet)
	api.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	api.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)
	api.HandleFunc("/statistics", s.handleStatistics).Methods(http.MethodGet)
	api.HandleFunc("/event-counts", s.handleEventCounts).Methods(http.MethodGet)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/export", s.handleExport).Methods(http.MethodGet)
	api.Handle("/live", s.hub)

	// Static files - serve embedded static/ directory as webroot
	if s.staticFiles != nil {
		staticFS, err := fs.Sub(s.staticFiles, "static")
		if err != nil {
			s.log.Warn().Err(err).Msg("No static directory; dashboard UI disabled")
			return
		}
		s.router.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Publish pushes a freshly stored snapshot to every live client.
func (s *Server) Publish(snapshot models.Snapshot) {
	s.hub.Broadcast(snapshot)
}

// Start starts the web server and blocks until it stops.
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Web server starting")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown closes live connections and stops accepting requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.httpServer.Shutdown(ctx)
}
