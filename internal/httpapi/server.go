// Package httpapi exposes the configurator over HTTP: default state,
// patch-and-derive, strict validation and read access to saved quotes.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/piwi3910/DoorCraft/internal/archive"
	"github.com/piwi3910/DoorCraft/internal/model"
)

// QuoteReader is the part of the quote archive the API reads from.
type QuoteReader interface {
	Get(ctx context.Context, idOrRef string) (archive.Quote, error)
	List(ctx context.Context, limit int) ([]archive.Quote, error)
}

// Env holds the dependencies shared by the handlers.
type Env struct {
	Log      *slog.Logger
	Prices   model.PriceList
	Defaults model.Configuration
	Company  string
	Quotes   QuoteReader // nil when no archive is configured
}

// Handler returns the API mux wrapped in CORS and request logging.
func (e *Env) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", e.HandleHealth)
	mux.HandleFunc("GET /api/options", e.HandleOptions)
	mux.HandleFunc("GET /api/configuration", e.HandleDefaultConfiguration)
	mux.HandleFunc("POST /api/configuration", e.HandleConfigure)
	mux.HandleFunc("POST /api/validate", e.HandleValidate)
	mux.HandleFunc("GET /api/quotes", e.HandleQuotes)
	mux.HandleFunc("GET /api/quotes/{id}", e.HandleQuote)
	mux.HandleFunc("GET /api/quotes/{id}/pdf", e.HandleQuotePDF)
	return WithCORS(e.withLogging(mux))
}

// ListenAndServe serves the API on addr until ctx is cancelled, then shuts
// down gracefully.
func (e *Env) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           e.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		e.logger().Info("http api listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		e.logger().Info("http api shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (e *Env) logger() *slog.Logger {
	if e.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Log
}

// writeJSON encodes v with the given status.
func (e *Env) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		e.logger().Error("encoding response", "error", err)
	}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

func (e *Env) writeError(w http.ResponseWriter, status int, msg string) {
	e.writeJSON(w, status, errorBody{Error: msg})
}

// WithCORS allows any origin and answers preflight requests.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (e *Env) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		if rec.status >= 500 {
			level = slog.LevelError
		}
		e.logger().Log(r.Context(), level, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
