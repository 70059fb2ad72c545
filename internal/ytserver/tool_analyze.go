package ytserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/derekcheungsa/YouTubeDataFetcher/internal/engine"
)

type AnalyzeVideoInput struct {
	VideoID string `json:"video_id" jsonschema:"YouTube video ID or URL (watch, youtu.be, or embed form)"`
}

func registerAnalyzeVideo(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_video",
		Description: "Fetch transcript, metadata, statistics, and top comments for a YouTube video in one call (quota cost 3). Returns partial results when some fields fail; check partial_success and the errors array. Preferred over calling the per-field tools one by one.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeVideoInput) (*mcp.CallToolResult, engine.VideoToolResult, error) {
		videoID, err := engine.ExtractVideoID(input.VideoID)
		if err != nil {
			return nil, engine.VideoToolResult{}, err
		}

		out := engine.ComposeVideoToolResult(deps.Analyzer.Analyze(ctx, videoID))
		if !out.Success {
			slog.Warn("analyze_video: all fields failed", slog.String("video_id", videoID))
		}
		return nil, out, nil
	})
}
