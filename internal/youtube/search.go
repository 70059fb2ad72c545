package youtube

import (
	"context"
	"log/slog"
	"strings"

	ytapi "google.golang.org/api/youtube/v3"

	"github.com/derekcheungsa/YouTubeDataFetcher/internal/engine"
)

// Search and channel adapters. Search costs 100 quota units per request —
// two orders of magnitude more than the per-video endpoints — so the result
// limit is clamped to the API window before dispatch and the cost is flagged
// in every composed payload.

// SearchVideos searches videos by keyword, relevance-ordered. When a
// secondary API key is configured it is tried once after a quota-class
// failure of the primary.
func (c *Client) SearchVideos(ctx context.Context, query string, maxResults int) ([]engine.SearchItem, error) {
	engine.IncrSearch()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, engine.Errf(engine.KindInvalidFormat, "search query cannot be empty")
	}
	n := int64(engine.ClampResults(maxResults))

	items, err := doSearch(ctx, c.svc, query, n)
	if err != nil && c.fallback != nil && quotaLike(err) {
		slog.Debug("youtube: primary key failed, trying fallback", slog.Any("error", err))
		items, err = doSearch(ctx, c.fallback, query, n)
	}
	return items, err
}

func doSearch(ctx context.Context, svc *ytapi.Service, query string, maxResults int64) ([]engine.SearchItem, error) {
	resp, err := svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(maxResults).
		Order("relevance").
		Context(ctx).Do()
	if err != nil {
		return nil, classifyAPIError(err, "search")
	}

	items := make([]engine.SearchItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		items = append(items, engine.SearchItem{
			VideoID:      item.Id.VideoId,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			Thumbnail:    pickThumbnail(item.Snippet.Thumbnails),
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
		})
	}
	return items, nil
}

// GetChannelInfo fetches the snippet + statistics view of a channel.
func (c *Client) GetChannelInfo(ctx context.Context, channelID string) (*engine.ChannelInfo, error) {
	engine.IncrChannelInfo()

	resp, err := c.svc.Channels.List([]string{"snippet", "statistics"}).Id(channelID).Context(ctx).Do()
	if err != nil {
		return nil, classifyAPIError(err, "channel")
	}
	if len(resp.Items) == 0 {
		return nil, engine.Errf(engine.KindNotFound, "channel not found: %s", channelID)
	}

	item := resp.Items[0]
	out := &engine.ChannelInfo{ChannelID: item.Id}
	if out.ChannelID == "" {
		out.ChannelID = channelID
	}
	if item.Snippet != nil {
		out.Title = item.Snippet.Title
		out.Description = item.Snippet.Description
		out.CreatedAt = item.Snippet.PublishedAt
		out.Thumbnail = pickThumbnail(item.Snippet.Thumbnails)
	}
	if item.Statistics != nil {
		out.SubscriberCount = item.Statistics.SubscriberCount
		out.VideoCount = item.Statistics.VideoCount
		out.ViewCount = item.Statistics.ViewCount
	}
	return out, nil
}

// GetChannelUploads fetches a channel's most recent uploads, newest first.
func (c *Client) GetChannelUploads(ctx context.Context, channelID string, maxResults int) ([]engine.UploadItem, error) {
	engine.IncrChannelUploads()

	resp, err := c.svc.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		Type("video").
		Order("date").
		MaxResults(int64(engine.ClampResults(maxResults))).
		Context(ctx).Do()
	if err != nil {
		return nil, classifyAPIError(err, "channel")
	}

	uploads := make([]engine.UploadItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		uploads = append(uploads, engine.UploadItem{
			VideoID:     item.Id.VideoId,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			Thumbnail:   pickThumbnail(item.Snippet.Thumbnails),
			PublishedAt: item.Snippet.PublishedAt,
		})
	}
	return uploads, nil
}
