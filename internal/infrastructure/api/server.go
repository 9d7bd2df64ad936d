// Package api exposes the browser stores over HTTP: JSON endpoints under
// /api, a change-event websocket and Prometheus metrics.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/application/usecase"
)

// Deps are the collaborators the handlers dispatch to. Metrics is optional.
type Deps struct {
	Browser     *store.BrowserStore
	Themes      *store.ThemeStore
	Extensions  *store.ExtensionStore
	Permissions *store.PermissionGate
	Palette     *usecase.SearchCommandsUseCase
	Analytics   *usecase.HistoryAnalyticsUseCase
	Transfers   *usecase.RunTransferUseCase
	Metrics     *Metrics
	Logger      zerolog.Logger
	StartTime   time.Time
}

// eventSources lists the configured stores that publish change events.
func (d Deps) eventSources() []EventSource {
	var sources []EventSource
	if d.Browser != nil {
		sources = append(sources, d.Browser)
	}
	if d.Themes != nil {
		sources = append(sources, d.Themes)
	}
	if d.Extensions != nil {
		sources = append(sources, d.Extensions)
	}
	if d.Permissions != nil {
		sources = append(sources, d.Permissions)
	}
	return sources
}

// NewRouter builds the chi router with every route registered.
func NewRouter(d Deps, hub *Hub) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(d.Logger, d.Metrics))

	r.Get("/healthz", healthz(d))
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", getState(d))
		r.Post("/sidebar/toggle", toggleSidebar(d))
		registerTabs(r, d)
		registerGroups(r, d)
		registerHistory(r, d)
		registerBookmarks(r, d)
		registerDownloads(r, d)
		registerPalette(r, d)
		registerTheme(r, d)
		registerExtensions(r, d)
		registerPermissions(r, d)
		registerPassword(r)
		if hub != nil {
			r.Get("/events", hub.ServeHTTP)
		}
	})

	return r
}

// Server wraps the HTTP server and its event hub.
type Server struct {
	http *http.Server
	hub  *Hub
	log  zerolog.Logger
}

// New builds the server listening on addr. The hub is subscribed to the
// stores in d until Stop.
func New(addr string, d Deps) *Server {
	sources := d.eventSources()
	hub := NewHub(d.Logger, d.Metrics)
	hub.Attach(sources...)
	if d.Metrics != nil {
		d.Metrics.Attach(sources...)
	}

	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(d, hub),
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
		hub: hub,
		log: d.Logger,
	}
}

// Start runs the HTTP server on ln, or on the configured address when ln
// is nil. It blocks until error or shutdown.
func (s *Server) Start(ln net.Listener) error {
	var err error
	if ln == nil {
		ln, err = net.Listen("tcp", s.http.Addr)
		if err != nil {
			return err
		}
	}
	s.log.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")
	err = s.http.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop closes event streams and gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info().Msg("HTTP server shutting down")
	s.hub.Close()
	return s.http.Shutdown(ctx)
}

// Handler returns the router, for mounting under a test server.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}
