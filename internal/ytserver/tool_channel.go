package ytserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/derekcheungsa/YouTubeDataFetcher/internal/engine"
)

type ChannelOverviewInput struct {
	ChannelID string `json:"channel_id" jsonschema:"YouTube channel ID (UC followed by 22 characters) or a youtube.com/channel/UC... URL. Vanity handles (@name, /c/, /user/) are not resolvable; find the UC id via search_youtube_content first"`
}

func registerChannelOverview(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_channel_overview",
		Description: "Fetch channel profile (title, description, subscriber and video counts) plus recent uploads in one call (quota cost 2). Returns partial results when one side fails.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ChannelOverviewInput) (*mcp.CallToolResult, engine.ChannelToolResult, error) {
		channelID, err := engine.ExtractChannelID(input.ChannelID)
		if err != nil {
			return nil, engine.ChannelToolResult{}, err
		}

		out := engine.ComposeChannelToolResult(deps.Analyzer.Overview(ctx, channelID))
		if !out.Success {
			slog.Warn("get_channel_overview: all fields failed", slog.String("channel_id", channelID))
		}
		return nil, out, nil
	})
}
