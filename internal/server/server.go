package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/yanxingzhi/event-form-multi/internal/config"
	"github.com/yanxingzhi/event-form-multi/internal/gauth"
	"github.com/yanxingzhi/event-form-multi/internal/metrics"
	"github.com/yanxingzhi/event-form-multi/internal/notify"
	"github.com/yanxingzhi/event-form-multi/internal/sheets"
)

// Confirmer sends the post-registration confirmation.
type Confirmer interface {
	Confirm(ctx context.Context, userID, activityID string) error
}

type Server struct {
	cfg       config.Config
	logger    zerolog.Logger
	http      *http.Client
	confirmer Confirmer
	dispatch  *notify.Dispatcher
}

// New wires the handlers. confirmer may be nil, in which case registrations
// are written without a confirmation message.
func New(cfg config.Config, logger zerolog.Logger, confirmer Confirmer, dispatch *notify.Dispatcher) *Server {
	if dispatch == nil {
		dispatch = notify.NewDispatcher(logger, cfg.NotifyTimeout)
	}
	return &Server{
		cfg:       cfg,
		logger:    logger,
		http:      &http.Client{Timeout: cfg.UpstreamTimeout},
		confirmer: confirmer,
		dispatch:  dispatch,
	}
}

func (s *Server) Handler() http.Handler {
	mux := chi.NewRouter()

	mux.Use(RequestID(s.logger))
	mux.Use(Logging)
	mux.Use(Recovery)
	mux.Use(metrics.Metrics)

	mux.Route("/api", func(r chi.Router) {
		r.Get("/query", s.handleLookup)
		r.Post("/submit", s.handleSubmit)
		r.Post("/register", s.handleRegister)
	})

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// HTTPServer returns a server listening on cfg.HTTPAddr.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.Handler(),
	}
}

// Dispatcher exposes the background job runner for shutdown.
func (s *Server) Dispatcher() *notify.Dispatcher { return s.dispatch }

// openSheet signs a new assertion for scope, exchanges it and returns a
// Sheets client bound to the resulting token. Nothing is cached.
func (s *Server) openSheet(ctx context.Context, scope string) (*sheets.Client, error) {
	cred, err := gauth.NewCredential(s.cfg.GoogleClientEmail, s.cfg.GooglePrivateKey)
	if err != nil {
		return nil, &gauth.SigningError{Err: err}
	}

	tokens := gauth.NewClient(cred,
		gauth.WithHTTPClient(s.http),
		gauth.WithTokenURL(s.cfg.GoogleTokenURL),
	)
	token, err := tokens.AccessToken(ctx, scope)
	var signErr *gauth.SigningError
	if !errors.As(err, &signErr) {
		metrics.ObserveCall(metrics.CallTokenExchange, err)
	}
	if err != nil {
		return nil, err
	}

	return sheets.New(ctx, token, s.cfg.SpreadsheetID, sheets.Options{
		HTTPClient: s.http,
		Endpoint:   s.cfg.SheetsEndpoint,
	})
}
