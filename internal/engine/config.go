package engine

import (
	"net/http"
	"time"
)

// Config holds all service configuration, injected from main. Collaborators
// (provider, cache, analyzer) are constructed from it explicitly; nothing in
// the core reads ambient process state.
type Config struct {
	APIKey              string
	APIKeyFallback      string // optional secondary key tried on quota errors
	TranscriptLangs     []string
	CommentMaxResults   int           // comments fetched per unified analysis
	UploadMaxResults    int           // uploads fetched per channel overview
	FetchTimeout        time.Duration // per-field deadline; 0 waits indefinitely
	CacheCapacity       int           // LRU entries per adapter category
	SearchCacheCapacity int           // smaller cap for the expensive search categories
	RateLimitPerMinute  int           // REST requests per minute per remote address
	HTTPClient          *http.Client
}
