package apiserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/derekcheungsa/YouTubeDataFetcher/internal/engine"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("response encode failed", slog.Any("error", err))
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string, details any) {
	writeJSON(w, status, errorBody{Error: message, Details: details})
}

// writeFieldError maps a typed single-field failure onto its status code and
// wire message.
func writeFieldError(w http.ResponseWriter, err error) {
	var details any
	if d := engine.Detail(err); d != "" {
		details = d
	}
	writeError(w, engine.ErrorStatus(err), errorMessage(err), details)
}

func errorMessage(err error) string {
	switch engine.KindOf(err) {
	case engine.KindInvalidFormat:
		return "Invalid request"
	case engine.KindUnsupportedIdentifier:
		return "Unsupported identifier form"
	case engine.KindNotFound:
		return "Not found"
	case engine.KindForbidden:
		return "Access forbidden"
	case engine.KindCommentsDisabled:
		return "Comments are disabled for this video"
	case engine.KindBlocked:
		return "Request blocked by YouTube"
	case engine.KindAgeRestricted:
		return "Video is age-restricted"
	case engine.KindUnplayable:
		return "Video is unplayable"
	case engine.KindQuotaExceeded:
		return "YouTube API quota exceeded"
	case engine.KindMalformedResponse, engine.KindMalformedDuration:
		return "Upstream returned an invalid response"
	default:
		return "An unexpected error occurred"
	}
}

// maxResultsParam parses an optional max_results query parameter.
func maxResultsParam(r *http.Request, def int) (int, bool) {
	raw := r.URL.Query().Get("max_results")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (s *Server) handleVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := engine.ExtractVideoID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid video ID format", nil)
		return
	}

	report := engine.ComposeVideoReport(s.analyzer.Analyze(r.Context(), videoID))
	if !report.Success {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve video data", report.Errors)
		return
	}
	writeJSON(w, engine.VideoReportStatus(report), report)
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	videoID, err := engine.ExtractVideoID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid video ID format", nil)
		return
	}

	segments, err := s.provider.GetTranscript(r.Context(), videoID)
	if err != nil {
		writeFieldError(w, err)
		return
	}

	includeTimestamps := !strings.EqualFold(r.URL.Query().Get("timestamps"), "false")
	var transcript any = segments
	if !includeTimestamps {
		texts := make([]string, len(segments))
		for i, seg := range segments {
			texts[i] = seg.Text
		}
		transcript = map[string]string{"text": strings.Join(texts, " ")}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":             true,
		"video_id":            videoID,
		"timestamps_included": includeTimestamps,
		"transcript":          transcript,
	})
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	videoID, err := engine.ExtractVideoID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid video ID format", nil)
		return
	}

	metadata, err := s.provider.GetMetadata(r.Context(), videoID)
	if err != nil {
		writeFieldError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"video_id":   videoID,
		"quota_cost": engine.QuotaMetadata,
		"metadata":   metadata,
	})
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	videoID, err := engine.ExtractVideoID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid video ID format", nil)
		return
	}

	statistics, err := s.provider.GetStatistics(r.Context(), videoID)
	if err != nil {
		writeFieldError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"video_id":   videoID,
		"quota_cost": engine.QuotaStatistics,
		"statistics": statistics,
	})
}

func (s *Server) handleComments(w http.ResponseWriter, r *http.Request) {
	videoID, err := engine.ExtractVideoID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid video ID format", nil)
		return
	}

	maxResults, ok := maxResultsParam(r, 100)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid max_results parameter", nil)
		return
	}
	if maxResults > 100 {
		maxResults = 100
	}
	if maxResults < 1 {
		maxResults = 1
	}

	comments, err := s.provider.GetComments(r.Context(), videoID, maxResults)
	if err != nil {
		writeFieldError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"video_id":      videoID,
		"quota_cost":    engine.QuotaComments,
		"comment_count": len(comments),
		"comments":      comments,
	})
}

func (s *Server) handleChannel(w http.ResponseWriter, r *http.Request) {
	channelID, err := engine.ExtractChannelID(r.PathValue("id"))
	if err != nil {
		writeFieldError(w, err)
		return
	}

	report := engine.ComposeChannelReport(s.analyzer.Overview(r.Context(), channelID))
	if !report.Success {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve channel data", report.Errors)
		return
	}
	writeJSON(w, engine.ChannelReportStatus(report), report)
}

func (s *Server) handleChannelUploads(w http.ResponseWriter, r *http.Request) {
	channelID, err := engine.ExtractChannelID(r.PathValue("id"))
	if err != nil {
		writeFieldError(w, err)
		return
	}

	maxResults, ok := maxResultsParam(r, 10)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid max_results parameter", nil)
		return
	}

	uploads, err := s.provider.GetChannelUploads(r.Context(), channelID, engine.ClampResults(maxResults))
	if err != nil {
		writeFieldError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"channel_id":   channelID,
		"quota_cost":   engine.QuotaChannelUploads,
		"upload_count": len(uploads),
		"uploads":      uploads,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "Search query cannot be empty", nil)
		return
	}

	maxResults, ok := maxResultsParam(r, 10)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid max_results parameter", nil)
		return
	}

	items, err := s.provider.SearchVideos(r.Context(), query, engine.ClampResults(maxResults))
	if err != nil {
		writeFieldError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, engine.ComposeSearchReport(query, items))
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "YouTube Data Fetcher API",
		"endpoints": []string{
			"/api/video/{id}",
			"/api/transcript/{id}?timestamps=true|false",
			"/api/metadata/{id}",
			"/api/statistics/{id}",
			"/api/comments/{id}?max_results=N",
			"/api/channel/{id}",
			"/api/channel/{id}/uploads?max_results=N",
			"/api/search?q=...&max_results=N",
			"/health",
			"/metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "YouTube Data Fetcher API",
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(engine.FormatMetrics(s.cache))) //nolint:errcheck
}
