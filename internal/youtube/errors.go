package youtube

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"

	"github.com/derekcheungsa/YouTubeDataFetcher/internal/engine"
)

// classifyAPIError converts a Data API fault into the typed taxonomy.
// resource names what was looked up ("video", "channel") for the detail text.
func classifyAPIError(err error, resource string) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("youtube api: %w", err)
	}

	// The API reports the precise cause as a reason token; prefer it over
	// the status code.
	for _, item := range gerr.Errors {
		switch item.Reason {
		case "commentsDisabled":
			return engine.Errf(engine.KindCommentsDisabled, "comments are disabled for this video")
		case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded", "userRateLimitExceeded":
			return engine.Errf(engine.KindQuotaExceeded, "YouTube API quota exceeded")
		case "videoNotFound", "channelNotFound":
			return engine.Errf(engine.KindNotFound, "%s not found", resource)
		}
	}

	switch gerr.Code {
	case http.StatusNotFound:
		return engine.Errf(engine.KindNotFound, "%s not found", resource)
	case http.StatusForbidden:
		if strings.Contains(strings.ToLower(gerr.Message), "quota") {
			return engine.Errf(engine.KindQuotaExceeded, "YouTube API quota exceeded")
		}
		return engine.Errf(engine.KindForbidden, "access forbidden; quota may be exceeded or the %s is private", resource)
	case http.StatusTooManyRequests:
		return engine.Errf(engine.KindQuotaExceeded, "YouTube API quota exceeded")
	case http.StatusBadRequest:
		return engine.Errf(engine.KindMalformedResponse, "upstream rejected the request: %s", gerr.Message)
	}
	return fmt.Errorf("youtube api: %w", err)
}

// quotaLike reports whether a failover to the secondary API key is worth a
// try.
func quotaLike(err error) bool {
	switch engine.KindOf(err) {
	case engine.KindQuotaExceeded, engine.KindForbidden:
		return true
	}
	return false
}
