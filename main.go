// YouTubeDataFetcher — YouTube data MCP server and REST API.
//
// Exposes four MCP tools (analyze_video, get_video_transcript,
// get_channel_overview, search_youtube_content) and a REST API with the same
// data behind both: one provider, one cache, one quota ledger.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/derekcheungsa/YouTubeDataFetcher/internal/apiserver"
	"github.com/derekcheungsa/YouTubeDataFetcher/internal/engine"
	"github.com/derekcheungsa/YouTubeDataFetcher/internal/youtube"
	"github.com/derekcheungsa/YouTubeDataFetcher/internal/ytserver"
)

var (
	version  = "dev"
	restPort = env.Str("PORT", "5000")
	mcpPort  = env.Str("MCP_PORT", "8000")
)

func main() {
	cfg := engine.Config{
		APIKey:              env.Str("YOUTUBE_API_KEY", ""),
		APIKeyFallback:      env.Str("YOUTUBE_SEARCH_API_KEY", ""),
		TranscriptLangs:     env.List("TRANSCRIPT_LANGUAGES", "en"),
		CommentMaxResults:   env.Int("COMMENT_MAX_RESULTS", 100),
		UploadMaxResults:    env.Int("UPLOAD_MAX_RESULTS", 10),
		FetchTimeout:        env.Duration("FETCH_TIMEOUT", 30*time.Second),
		CacheCapacity:       env.Int("CACHE_MAX_ENTRIES", 100),
		SearchCacheCapacity: env.Int("SEARCH_CACHE_MAX_ENTRIES", 50),
		RateLimitPerMinute:  env.Int("RATE_LIMIT_PER_MINUTE", 10),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	client, err := youtube.New(context.Background(), cfg)
	if err != nil {
		slog.Error("youtube client init failed", slog.Any("error", err))
		os.Exit(1)
	}

	cache := engine.NewCache(cfg.CacheCapacity)
	cache.SetCapacity(engine.CategorySearch, cfg.SearchCacheCapacity)
	cache.SetCapacity(engine.FieldChannelUploads, cfg.SearchCacheCapacity)

	provider := engine.NewCachedProvider(client, cache)
	analyzer := engine.NewAnalyzer(provider, cfg)

	slog.Info("starting YouTubeDataFetcher",
		slog.String("rest_port", restPort),
		slog.String("mcp_port", mcpPort),
		slog.Duration("fetch_timeout", cfg.FetchTimeout),
	)

	api := apiserver.New(analyzer, provider, cache, cfg)
	go func() {
		if err := http.ListenAndServe(":"+restPort, api); err != nil {
			slog.Error("rest server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "youtube-data-fetcher",
		Version: version,
	}, nil)
	ytserver.RegisterTools(server, ytserver.Deps{Analyzer: analyzer, Provider: provider})
	slog.Info("tools registered", slog.Int("count", 4))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "youtube-data-fetcher",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      func() string { return engine.FormatMetrics(cache) },
	}); err != nil {
		slog.Error("mcp server failed", slog.Any("error", err))
		os.Exit(1)
	}
}
