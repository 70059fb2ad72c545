package engine

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// fetchWorkers bounds the per-request worker pool. Deliberately small:
// upstream rate limits make wider fan-out counterproductive, so this is a
// throttle, not a tuning knob.
const fetchWorkers = 3

// Analyzer issues the concurrent per-field provider calls of one aggregation
// and folds the outcomes into a fixed-shape result. The provider (usually a
// CachedProvider) is injected; the analyzer holds no process-wide state.
type Analyzer struct {
	provider    Provider
	commentsMax int
	uploadsMax  int
	timeout     time.Duration
}

// NewAnalyzer builds an analyzer over the given provider.
func NewAnalyzer(p Provider, cfg Config) *Analyzer {
	commentsMax := cfg.CommentMaxResults
	if commentsMax <= 0 {
		commentsMax = 100
	}
	uploadsMax := cfg.UploadMaxResults
	if uploadsMax <= 0 {
		uploadsMax = 10
	}
	return &Analyzer{
		provider:    p,
		commentsMax: commentsMax,
		uploadsMax:  uploadsMax,
		timeout:     cfg.FetchTimeout,
	}
}

type fieldFetch struct {
	name string
	fn   func(context.Context) (any, error)
}

type fieldResult struct {
	name  string
	value any
	err   error
}

// runFields dispatches every field on the bounded pool and returns one result
// per field in completion order. The errgroup join always awaits the full
// set: a field's failure is data, not an abort, so no field is ever dropped
// and no field's completion blocks another's.
func (a *Analyzer) runFields(ctx context.Context, fields []fieldFetch) []fieldResult {
	done := make(chan fieldResult, len(fields))

	var g errgroup.Group
	g.SetLimit(fetchWorkers)
	for _, f := range fields {
		g.Go(func() error {
			fctx := ctx
			if a.timeout > 0 {
				var cancel context.CancelFunc
				fctx, cancel = context.WithTimeout(ctx, a.timeout)
				defer cancel()
			}
			v, err := f.fn(fctx)
			done <- fieldResult{name: f.name, value: v, err: err}
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors
	close(done)

	results := make([]fieldResult, 0, len(fields))
	for r := range done {
		results = append(results, r)
	}
	return results
}

// Analyze fetches transcript, metadata, statistics and comments for a video
// concurrently and classifies the overall result. Each field fails on its own
// merits; there is no short-circuit between fields, and the call returns only
// once all four have resolved.
func (a *Analyzer) Analyze(ctx context.Context, videoID string) *VideoAnalysis {
	IncrAnalyze()

	out := &VideoAnalysis{VideoID: videoID}
	results := a.runFields(ctx, []fieldFetch{
		{FieldTranscript, func(c context.Context) (any, error) {
			return a.provider.GetTranscript(c, videoID)
		}},
		{FieldMetadata, func(c context.Context) (any, error) {
			return a.provider.GetMetadata(c, videoID)
		}},
		{FieldStatistics, func(c context.Context) (any, error) {
			return a.provider.GetStatistics(c, videoID)
		}},
		{FieldComments, func(c context.Context) (any, error) {
			return a.provider.GetComments(c, videoID, a.commentsMax)
		}},
	})

	for _, r := range results {
		if r.err != nil {
			slog.Warn("analyze: field failed",
				slog.String("video_id", videoID),
				slog.String("field", r.name),
				slog.Any("error", r.err))
			out.Errors = append(out.Errors, FieldError{Field: r.name, Reason: Reason(r.err)})
		}
		switch r.name {
		case FieldTranscript:
			out.Transcript = outcomeOf[[]TranscriptSegment](r)
		case FieldMetadata:
			out.Metadata = outcomeOf[*VideoMetadata](r)
		case FieldStatistics:
			out.Statistics = outcomeOf[*VideoStatistics](r)
		case FieldComments:
			out.Comments = outcomeOf[[]Comment](r)
		}
	}
	return out
}

// Overview fetches channel info and recent uploads concurrently, with the
// same completion and classification rules as Analyze over a two-field set.
func (a *Analyzer) Overview(ctx context.Context, channelID string) *ChannelOverview {
	IncrOverview()

	out := &ChannelOverview{ChannelID: channelID}
	results := a.runFields(ctx, []fieldFetch{
		{FieldChannelInfo, func(c context.Context) (any, error) {
			return a.provider.GetChannelInfo(c, channelID)
		}},
		{FieldChannelUploads, func(c context.Context) (any, error) {
			return a.provider.GetChannelUploads(c, channelID, a.uploadsMax)
		}},
	})

	for _, r := range results {
		if r.err != nil {
			slog.Warn("overview: field failed",
				slog.String("channel_id", channelID),
				slog.String("field", r.name),
				slog.Any("error", r.err))
			out.Errors = append(out.Errors, FieldError{Field: r.name, Reason: Reason(r.err)})
		}
		switch r.name {
		case FieldChannelInfo:
			out.Info = outcomeOf[*ChannelInfo](r)
		case FieldChannelUploads:
			out.Uploads = outcomeOf[[]UploadItem](r)
		}
	}
	return out
}

func outcomeOf[T any](r fieldResult) Outcome[T] {
	if r.err != nil {
		return Outcome[T]{Err: r.err}
	}
	v, _ := r.value.(T)
	return Outcome[T]{Value: v}
}
