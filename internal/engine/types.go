package engine

import "context"

// Fixed quota weight per provider capability, in YouTube Data API units.
// Charged per attempt whether or not the call succeeds. The transcript path
// scrapes instead of calling the Data API, so its weight is zero.
const (
	QuotaTranscript     = 0
	QuotaMetadata       = 1
	QuotaStatistics     = 1
	QuotaComments       = 1
	QuotaSearch         = 100
	QuotaChannelInfo    = 1
	QuotaChannelUploads = 1
)

// TranscriptSegment is one caption line with its timing offsets in seconds.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Thumbnail is a single thumbnail rendition.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int64  `json:"width,omitempty"`
	Height int64  `json:"height,omitempty"`
}

// VideoMetadata is the snippet-level description of a video.
type VideoMetadata struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Tags         []string             `json:"tags"`
	CategoryID   string               `json:"category_id"`
	Thumbnails   map[string]Thumbnail `json:"thumbnails"`
	ChannelID    string               `json:"channel_id"`
	ChannelTitle string               `json:"channel_title"`
	PublishedAt  string               `json:"published_at"`
}

// Duration is an ISO-8601 video duration broken into components.
type Duration struct {
	Raw          string `json:"raw"`
	TotalSeconds int64  `json:"total_seconds"`
	Hours        int64  `json:"hours"`
	Minutes      int64  `json:"minutes"`
	Seconds      int64  `json:"seconds"`
}

// VideoStatistics holds view/engagement counters and content details.
type VideoStatistics struct {
	ViewCount    uint64   `json:"view_count"`
	LikeCount    uint64   `json:"like_count"`
	CommentCount uint64   `json:"comment_count"`
	Duration     Duration `json:"duration"`
	Definition   string   `json:"definition"`
	Caption      bool     `json:"caption"`
}

// Comment is one top-level comment in plain text.
type Comment struct {
	Author      string `json:"author"`
	Text        string `json:"text"`
	Likes       int64  `json:"likes"`
	PublishedAt string `json:"published_at"`
}

// SearchItem is one video search result, relevance-ordered.
type SearchItem struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channel_title"`
	PublishedAt  string `json:"published_at"`
}

// ChannelInfo is the snippet + statistics view of a channel.
type ChannelInfo struct {
	ChannelID       string `json:"channel_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	SubscriberCount uint64 `json:"subscriber_count"`
	VideoCount      uint64 `json:"video_count"`
	ViewCount       uint64 `json:"view_count"`
	CreatedAt       string `json:"created_at"`
	Thumbnail       string `json:"thumbnail"`
}

// UploadItem is one recent upload of a channel, recency-ordered.
type UploadItem struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	PublishedAt string `json:"published_at"`
}

// Provider is the upstream data boundary. Every method returns either a
// record or a typed failure; implementations never panic across this
// boundary and never leak raw upstream error text.
type Provider interface {
	GetTranscript(ctx context.Context, videoID string) ([]TranscriptSegment, error)
	GetMetadata(ctx context.Context, videoID string) (*VideoMetadata, error)
	GetStatistics(ctx context.Context, videoID string) (*VideoStatistics, error)
	GetComments(ctx context.Context, videoID string, maxResults int) ([]Comment, error)
	SearchVideos(ctx context.Context, query string, maxResults int) ([]SearchItem, error)
	GetChannelInfo(ctx context.Context, channelID string) (*ChannelInfo, error)
	GetChannelUploads(ctx context.Context, channelID string, maxResults int) ([]UploadItem, error)
}

// ClampResults constrains a caller-supplied result count to the API's [1,50]
// window.
func ClampResults(n int) int {
	if n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	}
	return n
}
