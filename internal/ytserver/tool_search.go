package ytserver

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/derekcheungsa/YouTubeDataFetcher/internal/engine"
)

type SearchInput struct {
	Query      string `json:"query" jsonschema:"Search keywords"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Number of results, 1-50 (default 10)"`
}

func registerSearch(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_youtube_content",
		Description: "Search YouTube for videos by keyword. Expensive: 100 quota units per request, so reuse results and prefer analyze_video once a video_id is known. Returns video ids, titles, channels, and publish dates.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, engine.SearchToolResult, error) {
		query := strings.TrimSpace(input.Query)
		if query == "" {
			return nil, engine.SearchToolResult{}, errors.New("query is required")
		}

		maxResults := input.MaxResults
		if maxResults == 0 {
			maxResults = 10
		}

		items, err := deps.Provider.SearchVideos(ctx, query, engine.ClampResults(maxResults))
		if err != nil {
			return nil, engine.SearchToolResult{}, err
		}
		return nil, engine.ComposeSearchToolResult(query, items), nil
	})
}
