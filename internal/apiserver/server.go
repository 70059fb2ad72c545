// Package apiserver is the REST surface of the service: thin JSON handlers
// over the analyzer and the provider, plus per-client rate limiting.
package apiserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/derekcheungsa/YouTubeDataFetcher/internal/engine"
)

// Server routes REST requests into the shared data-access layer.
type Server struct {
	analyzer *engine.Analyzer
	provider engine.Provider
	cache    *engine.Cache
	limiter  *ipLimiter
	mux      *http.ServeMux
}

// New builds the REST server over the given collaborators.
func New(analyzer *engine.Analyzer, provider engine.Provider, cache *engine.Cache, cfg engine.Config) *Server {
	perMinute := cfg.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = 10
	}
	s := &Server{
		analyzer: analyzer,
		provider: provider,
		cache:    cache,
		limiter:  newIPLimiter(perMinute),
		mux:      http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /metrics", s.handleMetrics)

	s.mux.HandleFunc("GET /api/video/{id}", s.handleVideo)
	s.mux.HandleFunc("GET /api/transcript/{id}", s.handleTranscript)
	s.mux.HandleFunc("GET /api/metadata/{id}", s.handleMetadata)
	s.mux.HandleFunc("GET /api/statistics/{id}", s.handleStatistics)
	s.mux.HandleFunc("GET /api/comments/{id}", s.handleComments)
	s.mux.HandleFunc("GET /api/channel/{id}", s.handleChannel)
	s.mux.HandleFunc("GET /api/channel/{id}/uploads", s.handleChannelUploads)
	s.mux.HandleFunc("GET /api/search", s.handleSearch)

	return s
}

// ServeHTTP rate-limits the /api routes, then dispatches.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") && !s.limiter.allow(r.RemoteAddr) {
		slog.Warn("rate limit exceeded", slog.String("remote", r.RemoteAddr), slog.String("path", r.URL.Path))
		writeError(w, http.StatusTooManyRequests, "Rate limit exceeded", fmt.Sprintf("%d per minute per client", s.limiter.burst))
		return
	}
	s.mux.ServeHTTP(w, r)
}
