// Package previewserver implements a small local HTTP server for manually
// exercising a built index: a Config-built *http.Server with a
// context-driven graceful shutdown, serving the raw index bytes and
// answering search queries against it.
package previewserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stork-search/stork/pkg/core"
	"github.com/stork-search/stork/pkg/search"
)

const (
	defaultTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Config holds the preview server's listen address and the path to serve
// the built index bytes from under /index.
type Config struct {
	Listen    string
	IndexPath string
}

// Server serves a built index for manual smoke-testing: the raw index bytes
// at /index, and a JSON query endpoint at /query that decodes the index
// once at startup and runs pkg/search against it per request.
type Server struct {
	config    Config
	index     *core.Index
	indexData []byte
	sanitizer *bluemonday.Policy
}

// New loads and parses indexData once so every /query request reuses the
// same in-memory Index, matching the core's read-only, concurrency-safe
// search contract.
func New(cfg Config, indexData []byte) (*Server, error) {
	idx, err := search.ParseIndex(indexData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index for preview server: %w", err)
	}

	return &Server{
		config:    cfg,
		index:     idx,
		indexData: indexData,
		sanitizer: bluemonday.StrictPolicy(),
	}, nil
}

// Run starts the preview server and blocks until ctx is cancelled, then
// attempts a graceful shutdown before forcing a close.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Listen,
		ReadHeaderTimeout: defaultTimeout,
		Handler:           s.newMux(),
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		slog.WarnContext(ctx, "shutting down preview server")

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(ctx, "graceful shutdown failed, forcing close", "error", err)

			if closeErr := httpServer.Close(); closeErr != nil {
				slog.ErrorContext(ctx, "forced close failed", "error", closeErr)
			}
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) newMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /livez", s.healthCheck)
	mux.HandleFunc("GET /index", s.serveIndex)
	mux.HandleFunc("GET /query", s.serveQuery)

	return mux
}

func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) serveIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(s.indexData); err != nil {
		slog.Error("failed to write index response", "error", err)
	}
}

// serveQuery runs a search against the in-memory index and writes the
// SearchOutput JSON schema. The query string is sanitized through the
// strict bluemonday policy before it is searched; the response itself does
// not include the query.
func (s *Server) serveQuery(w http.ResponseWriter, r *http.Request) {
	query := s.sanitizer.Sanitize(r.URL.Query().Get("q"))

	output := search.Search(s.index, query)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(output); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode query response", "error", err)
	}
}
