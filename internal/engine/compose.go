package engine

import "net/http"

// Response composition: pure mappings from resolved aggregations onto the two
// outward-facing shapes. Nothing here re-fetches. Failed fields marshal as
// null; the errors array is always present, never null.

// VideoReport is the REST shape of a unified video aggregation.
type VideoReport struct {
	Success        bool                `json:"success"`
	PartialSuccess bool                `json:"partial_success"`
	VideoID        string              `json:"video_id"`
	QuotaCost      int                 `json:"quota_cost"`
	Transcript     []TranscriptSegment `json:"transcript"`
	Metadata       *VideoMetadata      `json:"metadata"`
	Statistics     *VideoStatistics    `json:"statistics"`
	Comments       []Comment           `json:"comments"`
	Errors         []FieldError        `json:"errors"`
}

// VideoToolResult is the MCP shape: the same content plus a workflow hint.
type VideoToolResult struct {
	VideoReport
	WorkflowHint string `json:"workflow_hint,omitempty"`
}

// ComposeVideoReport maps a resolved analysis onto the REST shape.
func ComposeVideoReport(a *VideoAnalysis) VideoReport {
	r := VideoReport{
		Success:        a.Success(),
		PartialSuccess: a.PartialSuccess(),
		VideoID:        a.VideoID,
		QuotaCost:      a.QuotaCost(),
		Errors:         a.Errors,
	}
	if r.Errors == nil {
		r.Errors = []FieldError{}
	}
	if a.Transcript.OK() {
		r.Transcript = a.Transcript.Value
	}
	if a.Metadata.OK() {
		r.Metadata = a.Metadata.Value
	}
	if a.Statistics.OK() {
		r.Statistics = a.Statistics.Value
	}
	if a.Comments.OK() {
		r.Comments = a.Comments.Value
	}
	return r
}

// ComposeVideoToolResult maps an analysis onto the MCP shape.
func ComposeVideoToolResult(a *VideoAnalysis) VideoToolResult {
	out := VideoToolResult{VideoReport: ComposeVideoReport(a)}
	switch {
	case !out.Success:
		out.WorkflowHint = "All fields failed for this video. Verify the id with search_youtube_content before retrying."
	case out.Metadata != nil && out.Metadata.ChannelID != "":
		out.WorkflowHint = "Pass metadata.channel_id to get_channel_overview for channel context, or search_youtube_content for related videos."
	default:
		out.WorkflowHint = "Use search_youtube_content to find related videos, then analyze_video on any result's video_id."
	}
	return out
}

// ChannelReport is the REST shape of a channel overview.
type ChannelReport struct {
	Success        bool         `json:"success"`
	PartialSuccess bool         `json:"partial_success"`
	ChannelID      string       `json:"channel_id"`
	QuotaCost      int          `json:"quota_cost"`
	ChannelInfo    *ChannelInfo `json:"channel_info"`
	Uploads        []UploadItem `json:"uploads"`
	Errors         []FieldError `json:"errors"`
}

// ChannelToolResult is the MCP shape of a channel overview.
type ChannelToolResult struct {
	ChannelReport
	WorkflowHint string `json:"workflow_hint,omitempty"`
}

// ComposeChannelReport maps a resolved overview onto the REST shape.
func ComposeChannelReport(o *ChannelOverview) ChannelReport {
	r := ChannelReport{
		Success:        o.Success(),
		PartialSuccess: o.PartialSuccess(),
		ChannelID:      o.ChannelID,
		QuotaCost:      o.QuotaCost(),
		Errors:         o.Errors,
	}
	if r.Errors == nil {
		r.Errors = []FieldError{}
	}
	if o.Info.OK() {
		r.ChannelInfo = o.Info.Value
	}
	if o.Uploads.OK() {
		r.Uploads = o.Uploads.Value
	}
	return r
}

// ComposeChannelToolResult maps an overview onto the MCP shape.
func ComposeChannelToolResult(o *ChannelOverview) ChannelToolResult {
	out := ChannelToolResult{ChannelReport: ComposeChannelReport(o)}
	if len(out.Uploads) > 0 {
		out.WorkflowHint = "Pass any upload's video_id to analyze_video for its transcript, metadata, statistics and comments."
	} else {
		out.WorkflowHint = "No uploads resolved. Use search_youtube_content to locate this channel's videos instead."
	}
	return out
}

// SearchReport is the shape of a search call. quota_note flags the cost in
// every payload: the Search API is two orders of magnitude more expensive
// than the per-video endpoints.
type SearchReport struct {
	Success     bool         `json:"success"`
	Query       string       `json:"query"`
	ResultCount int          `json:"result_count"`
	Results     []SearchItem `json:"results"`
	QuotaCost   int          `json:"quota_cost"`
	QuotaNote   string       `json:"quota_note"`
}

// SearchToolResult is the MCP shape of a search call.
type SearchToolResult struct {
	SearchReport
	WorkflowHint string `json:"workflow_hint,omitempty"`
}

// ComposeSearchReport maps search results onto the wire shape.
func ComposeSearchReport(query string, items []SearchItem) SearchReport {
	if items == nil {
		items = []SearchItem{}
	}
	return SearchReport{
		Success:     true,
		Query:       query,
		ResultCount: len(items),
		Results:     items,
		QuotaCost:   QuotaSearch,
		QuotaNote:   "search costs 100 quota units per request; prefer per-video endpoints when the id is known",
	}
}

// ComposeSearchToolResult maps search results onto the MCP shape.
func ComposeSearchToolResult(query string, items []SearchItem) SearchToolResult {
	return SearchToolResult{
		SearchReport: ComposeSearchReport(query, items),
		WorkflowHint: "Pass any result's video_id to analyze_video, or its channel id to get_channel_overview.",
	}
}

// VideoReportStatus maps an aggregation outcome to its HTTP status: full
// success 200, partial success 207, total failure 500.
func VideoReportStatus(r VideoReport) int {
	switch {
	case !r.Success:
		return http.StatusInternalServerError
	case r.PartialSuccess:
		return http.StatusMultiStatus
	default:
		return http.StatusOK
	}
}

// ChannelReportStatus mirrors VideoReportStatus for channel overviews.
func ChannelReportStatus(r ChannelReport) int {
	switch {
	case !r.Success:
		return http.StatusInternalServerError
	case r.PartialSuccess:
		return http.StatusMultiStatus
	default:
		return http.StatusOK
	}
}

// ErrorStatus maps a single-field failure to its HTTP status.
func ErrorStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidFormat, KindUnsupportedIdentifier:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden, KindCommentsDisabled, KindAgeRestricted, KindUnplayable:
		return http.StatusForbidden
	case KindQuotaExceeded:
		return http.StatusTooManyRequests
	case KindBlocked, KindMalformedResponse:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
