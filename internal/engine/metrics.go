package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the service.
var metrics struct {
	AnalyzeRequests        atomic.Int64
	OverviewRequests       atomic.Int64
	TranscriptRequests     atomic.Int64
	MetadataRequests       atomic.Int64
	StatisticsRequests     atomic.Int64
	CommentsRequests       atomic.Int64
	SearchRequests         atomic.Int64
	ChannelInfoRequests    atomic.Int64
	ChannelUploadsRequests atomic.Int64
}

// Incrementors for the aggregator and the youtube adapter package.
func IncrAnalyze()        { metrics.AnalyzeRequests.Add(1) }
func IncrOverview()       { metrics.OverviewRequests.Add(1) }
func IncrTranscript()     { metrics.TranscriptRequests.Add(1) }
func IncrMetadata()       { metrics.MetadataRequests.Add(1) }
func IncrStatistics()     { metrics.StatisticsRequests.Add(1) }
func IncrComments()       { metrics.CommentsRequests.Add(1) }
func IncrSearch()         { metrics.SearchRequests.Add(1) }
func IncrChannelInfo()    { metrics.ChannelInfoRequests.Add(1) }
func IncrChannelUploads() { metrics.ChannelUploadsRequests.Add(1) }

// GetMetrics returns a snapshot of all counters plus the cache stats.
func GetMetrics(c *Cache) map[string]int64 {
	out := map[string]int64{
		"analyze_requests":         metrics.AnalyzeRequests.Load(),
		"overview_requests":        metrics.OverviewRequests.Load(),
		"transcript_requests":      metrics.TranscriptRequests.Load(),
		"metadata_requests":        metrics.MetadataRequests.Load(),
		"statistics_requests":      metrics.StatisticsRequests.Load(),
		"comments_requests":        metrics.CommentsRequests.Load(),
		"search_requests":          metrics.SearchRequests.Load(),
		"channel_info_requests":    metrics.ChannelInfoRequests.Load(),
		"channel_uploads_requests": metrics.ChannelUploadsRequests.Load(),
	}
	if c != nil {
		hits, misses := c.Stats()
		out["cache_hits"] = hits
		out["cache_misses"] = misses
	}
	return out
}

// FormatMetrics renders the counters as simple text for the metrics endpoint.
func FormatMetrics(c *Cache) string {
	m := GetMetrics(c)
	keys := []string{
		"analyze_requests", "overview_requests",
		"transcript_requests", "metadata_requests", "statistics_requests", "comments_requests",
		"search_requests", "channel_info_requests", "channel_uploads_requests",
		"cache_hits", "cache_misses",
	}
	var sb strings.Builder
	for _, k := range keys {
		if v, ok := m[k]; ok {
			fmt.Fprintf(&sb, "%s %d\n", k, v)
		}
	}
	return sb.String()
}
