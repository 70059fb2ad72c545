package youtube

import (
	"context"

	ytapi "google.golang.org/api/youtube/v3"

	"github.com/derekcheungsa/YouTubeDataFetcher/internal/engine"
)

// Per-video Data API adapters: metadata, statistics, comments.
// Quota weight 1 each.

// GetMetadata fetches the snippet-level description of a video.
func (c *Client) GetMetadata(ctx context.Context, videoID string) (*engine.VideoMetadata, error) {
	engine.IncrMetadata()

	resp, err := c.svc.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, classifyAPIError(err, "video")
	}
	if len(resp.Items) == 0 {
		return nil, engine.Errf(engine.KindNotFound, "video not found")
	}

	item := resp.Items[0]
	if item.Snippet == nil {
		return nil, engine.Errf(engine.KindMalformedResponse, "video item has no snippet")
	}
	sn := item.Snippet
	return &engine.VideoMetadata{
		Title:        sn.Title,
		Description:  sn.Description,
		Tags:         sn.Tags,
		CategoryID:   sn.CategoryId,
		Thumbnails:   thumbnailMap(sn.Thumbnails),
		ChannelID:    sn.ChannelId,
		ChannelTitle: sn.ChannelTitle,
		PublishedAt:  sn.PublishedAt,
	}, nil
}

// GetStatistics fetches view/engagement counters and content details. A
// duration the upstream encodes unparseably fails the whole field with
// MalformedDuration rather than returning half a record.
func (c *Client) GetStatistics(ctx context.Context, videoID string) (*engine.VideoStatistics, error) {
	engine.IncrStatistics()

	resp, err := c.svc.Videos.List([]string{"statistics", "contentDetails"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, classifyAPIError(err, "video")
	}
	if len(resp.Items) == 0 {
		return nil, engine.Errf(engine.KindNotFound, "video not found")
	}

	item := resp.Items[0]
	out := &engine.VideoStatistics{}
	if item.Statistics != nil {
		out.ViewCount = item.Statistics.ViewCount
		out.LikeCount = item.Statistics.LikeCount
		out.CommentCount = item.Statistics.CommentCount
	}
	if item.ContentDetails != nil {
		out.Definition = item.ContentDetails.Definition
		out.Caption = item.ContentDetails.Caption == "true"
		if raw := item.ContentDetails.Duration; raw != "" {
			d, err := ParseDuration(raw)
			if err != nil {
				return nil, err
			}
			out.Duration = d
		}
	}
	return out, nil
}

// GetComments fetches up to maxResults top-level comments, relevance-ordered,
// in plain text.
func (c *Client) GetComments(ctx context.Context, videoID string, maxResults int) ([]engine.Comment, error) {
	engine.IncrComments()

	if maxResults < 1 {
		maxResults = 1
	}
	if maxResults > 100 {
		maxResults = 100
	}

	resp, err := c.svc.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(int64(maxResults)).
		Order("relevance").
		TextFormat("plainText").
		Context(ctx).Do()
	if err != nil {
		return nil, classifyAPIError(err, "video")
	}

	comments := make([]engine.Comment, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		sn := item.Snippet.TopLevelComment.Snippet
		comments = append(comments, engine.Comment{
			Author:      sn.AuthorDisplayName,
			Text:        sn.TextDisplay,
			Likes:       sn.LikeCount,
			PublishedAt: sn.PublishedAt,
		})
	}
	return comments, nil
}

// thumbnailMap flattens the API thumbnail set into rendition-name keys.
func thumbnailMap(t *ytapi.ThumbnailDetails) map[string]engine.Thumbnail {
	if t == nil {
		return nil
	}
	out := make(map[string]engine.Thumbnail)
	add := func(name string, th *ytapi.Thumbnail) {
		if th != nil {
			out[name] = engine.Thumbnail{URL: th.Url, Width: th.Width, Height: th.Height}
		}
	}
	add("default", t.Default)
	add("medium", t.Medium)
	add("high", t.High)
	add("standard", t.Standard)
	add("maxres", t.Maxres)
	return out
}

// pickThumbnail resolves one thumbnail URL via the fallback chain
// default → medium → high, first present wins.
func pickThumbnail(t *ytapi.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*ytapi.Thumbnail{t.Default, t.Medium, t.High} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}
