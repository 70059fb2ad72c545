package ytserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/derekcheungsa/YouTubeDataFetcher/internal/engine"
)

type VideoTranscriptInput struct {
	VideoID   string `json:"video_id" jsonschema:"YouTube video ID or URL (watch, youtu.be, or embed form)"`
	PlainText bool   `json:"plain_text,omitempty" jsonschema:"Return one concatenated text block instead of timed segments"`
}

type VideoTranscriptOutput struct {
	Success            bool                       `json:"success"`
	VideoID            string                     `json:"video_id"`
	TimestampsIncluded bool                       `json:"timestamps_included"`
	Transcript         []engine.TranscriptSegment `json:"transcript,omitempty"`
	Text               string                     `json:"text,omitempty"`
}

func registerVideoTranscript(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_video_transcript",
		Description: "Fetch only the transcript of a YouTube video (quota cost 0, no API key spend). Timed segments by default; set plain_text for one text block. Use analyze_video when metadata, statistics, or comments are also needed.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input VideoTranscriptInput) (*mcp.CallToolResult, VideoTranscriptOutput, error) {
		videoID, err := engine.ExtractVideoID(input.VideoID)
		if err != nil {
			return nil, VideoTranscriptOutput{}, err
		}

		segments, err := deps.Provider.GetTranscript(ctx, videoID)
		if err != nil {
			return nil, VideoTranscriptOutput{}, err
		}

		out := VideoTranscriptOutput{
			Success:            true,
			VideoID:            videoID,
			TimestampsIncluded: !input.PlainText,
		}
		if input.PlainText {
			texts := make([]string, len(segments))
			for i, seg := range segments {
				texts[i] = seg.Text
			}
			out.Text = strings.Join(texts, " ")
		} else {
			out.Transcript = segments
		}
		return nil, out, nil
	})
}
