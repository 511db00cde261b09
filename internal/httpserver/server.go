// internal/httpserver/server.go
//
// HTTP wiring for the Watchword dictionary.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Command endpoints: GET /check, GET /info/coverage, GET /info/status, GET /versions.
//   - Check history: every /check is recorded in the history store; GET /history lists it.
//
// Notes:
//   - Responses are command Panels rendered as JSON; the HTTP layer never
//     formats dictionary output itself.
//   - The caller is identified by the X-User header, falling back to the
//     client address. It is used for logging and history only.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/silvncr/watchword-bot/internal/commands"
	"github.com/silvncr/watchword-bot/internal/errs"
	"github.com/silvncr/watchword-bot/internal/lookup"
	"github.com/silvncr/watchword-bot/internal/store"
)

// Options tune the HTTP layer.
type Options struct {
	ClientOrigin string        // CORS origin; empty means http://localhost:5173
	Timeout      time.Duration // per-request budget; zero means 10s
}

// Server bundles the router, command set, and history store.
type Server struct {
	r       *chi.Mux
	core    commands.Checker
	cmds    *commands.Commands
	history store.Store
}

// New constructs a Server, installs middleware, and registers routes.
func New(core commands.Checker, history store.Store, opts Options) *Server {
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	s := &Server{
		r:       chi.NewRouter(),
		core:    core,
		cmds:    commands.New(core),
		history: history,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(chimw.Timeout(opts.Timeout)) // bound handler time
	s.r.Use(jsonContentType)             // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))     // single-origin CORS
	s.r.Use(withCaller)                  // caller identity for logs/history

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"watchword-dictionary","endpoints":["/health","/check","/info/coverage","/info/status","/versions","/history"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// --- commands ---
	s.r.Get("/check", s.handleCheck)
	s.r.Route("/info", func(r chi.Router) {
		r.Get("/coverage", s.handleCoverage)
		r.Get("/status", s.handleStatus)
	})
	s.r.Get("/versions", s.handleVersions)
	s.r.Get("/history", s.handleHistory)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router (used by http.Server and tests).
func (s *Server) Handler() http.Handler { return s.r }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows GET requests from a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-User")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ctxCallerKey is the context key type for the caller identity.
type ctxCallerKey struct{}

// withCaller stores the caller identity in the request context.
func withCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := r.Header.Get("X-User")
		if caller == "" {
			caller = r.RemoteAddr
		}
		ctx := context.WithValue(r.Context(), ctxCallerKey{}, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// callerFrom returns the identity set by withCaller.
func callerFrom(ctx context.Context) string {
	c, _ := ctx.Value(ctxCallerKey{}).(string)
	return c
}

// ------------------------------ commands -----------------------------------

// checkRes is returned by GET /check.
type checkRes struct {
	Panel  commands.Panel `json:"panel"`
	Result lookup.Result  `json:"result"`
}

// handleCheck checks ?word= against ?version= (default version when omitted).
// Valid and not-valid words answer 200; a rejected word answers 422.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("word")
	version := r.URL.Query().Get("version")
	caller := callerFrom(r.Context())
	log.Info().Str("user", caller).Str("word", raw).Str("version", version).Msg("word check")

	if raw == "" {
		http.Error(w, `{"error":"missing_word"}`, http.StatusBadRequest)
		return
	}

	panel, res, err := s.cmds.Check(raw, version)
	if err != nil {
		writeError(w, err)
		return
	}

	outcome := string(res.Outcome)
	if res.Version != "" {
		version = res.Version
	}
	if panel.Kind == commands.KindRejected {
		outcome = store.OutcomeRejected
		log.Info().Str("processed", res.Word).Str("reason", panel.Description).Msg("invalid input")
	} else {
		log.Info().
			Str("processed", res.Word).
			Str("outcome", outcome).
			Strs("flags", res.Flags).
			Bool("definition", res.HasDefinition).
			Msg("checked")
	}

	// Best effort; a history failure never fails the check.
	if err := s.history.Record(r.Context(), store.Check{
		User:    caller,
		Raw:     raw,
		Word:    res.Word,
		Version: version,
		Outcome: outcome,
	}); err != nil {
		log.Warn().Err(err).Msg("record check")
	}

	status := http.StatusOK
	if panel.Kind == commands.KindRejected {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, checkRes{Panel: panel, Result: res})
}

// handleCoverage reports definition coverage for ?version=.
func (s *Server) handleCoverage(w http.ResponseWriter, r *http.Request) {
	panel, err := s.cmds.Coverage(r.URL.Query().Get("version"))
	if err != nil {
		writeError(w, err)
		return
	}
	log.Info().Str("user", callerFrom(r.Context())).Msg("coverage requested")
	writeJSON(w, http.StatusOK, panel)
}

// statusRes is returned by GET /info/status.
type statusRes struct {
	Presence string         `json:"presence"`
	Stats    lookup.Stats   `json:"stats"`
	Panel    commands.Panel `json:"panel"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.core.Stats()
	writeJSON(w, http.StatusOK, statusRes{
		Presence: commands.Presence(st),
		Stats:    st,
		Panel:    s.cmds.Status(),
	})
}

// versionsRes is returned by GET /versions.
type versionsRes struct {
	Versions []lookup.VersionInfo `json:"versions"`
	Panel    commands.Panel       `json:"panel"`
}

func (s *Server) handleVersions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, versionsRes{
		Versions: s.core.Versions(),
		Panel:    s.cmds.Versions(),
	})
}

// historyRes is returned by GET /history.
type historyRes struct {
	Checks []store.Check `json:"checks"`
}

// handleHistory lists the most recent checks (?limit=, default 20, max 100).
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, `{"error":"invalid_limit"}`, http.StatusBadRequest)
			return
		}
		limit = min(n, 100)
	}
	checks, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list history")
		http.Error(w, `{"error":"history_failed"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, historyRes{Checks: checks})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps core errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var empty *errs.EmptyWordlistError
	switch {
	case errors.Is(err, errs.ErrUnknownVersion):
		http.Error(w, `{"error":"unknown_version"}`, http.StatusBadRequest)
	case errors.As(err, &empty):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "empty_wordlist", "version": empty.Version})
	default:
		log.Error().Err(err).Msg("command failed")
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
	}
}
