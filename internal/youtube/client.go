// Package youtube implements engine.Provider against the YouTube Data API v3
// (metadata, statistics, comments, search, channels) and the public
// Innertube/watch-page endpoints (transcripts, which cost no API quota).
//
// All upstream faults are classified here, once, into the engine error
// taxonomy; nothing above this package sees raw upstream error text.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/derekcheungsa/YouTubeDataFetcher/internal/engine"
)

// Client talks to YouTube. Constructed once in main and injected into the
// analyzer (behind the memoizing cache); it holds no mutable state.
type Client struct {
	svc      *ytapi.Service
	fallback *ytapi.Service // secondary API key for quota failover; may be nil
	http     *http.Client
	langs    []string
}

// New builds a provider from the given configuration.
func New(ctx context.Context, cfg engine.Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("youtube: API key is required")
	}
	svc, err := ytapi.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}

	c := &Client{
		svc:   svc,
		http:  cfg.HTTPClient,
		langs: cfg.TranscriptLangs,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 15 * time.Second}
	}
	if len(c.langs) == 0 {
		c.langs = []string{"en"}
	}

	if cfg.APIKeyFallback != "" {
		fb, err := ytapi.NewService(ctx, option.WithAPIKey(cfg.APIKeyFallback))
		if err != nil {
			slog.Warn("youtube: fallback key init failed", slog.Any("error", err))
		} else {
			c.fallback = fb
		}
	}
	return c, nil
}
