// Package ytserver exposes the fetch engine as MCP tools.
package ytserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/derekcheungsa/YouTubeDataFetcher/internal/engine"
)

// Deps carries the collaborators the tools share. The provider is expected to
// be the cached one so MCP and REST callers hit the same entries.
type Deps struct {
	Analyzer *engine.Analyzer
	Provider engine.Provider
}

// RegisterTools registers all YouTube tools on the given MCP server:
// analyze_video, get_video_transcript, get_channel_overview,
// search_youtube_content.
func RegisterTools(server *mcp.Server, deps Deps) {
	registerAnalyzeVideo(server, deps)
	registerVideoTranscript(server, deps)
	registerChannelOverview(server, deps)
	registerSearch(server, deps)
}
