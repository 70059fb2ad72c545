package engine

// Outcome is the per-field result of one provider call: a value or a typed
// failure, never both.
type Outcome[T any] struct {
	Value T
	Err   error
}

// OK reports whether the fetch produced a value.
func (o Outcome[T]) OK() bool { return o.Err == nil }

// FieldError pairs a failed field with its machine-readable reason.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"error"`
}

// Field names of the unified video aggregation.
const (
	FieldTranscript = "transcript"
	FieldMetadata   = "metadata"
	FieldStatistics = "statistics"
	FieldComments   = "comments"

	FieldChannelInfo    = "channel_info"
	FieldChannelUploads = "uploads"
)

// VideoAnalysis owns the fixed field set of one unified video aggregation.
// Populated once by the analyzer, handed to the composer, then discarded.
// Errors holds one entry per failed field, in completion order.
type VideoAnalysis struct {
	VideoID    string
	Transcript Outcome[[]TranscriptSegment]
	Metadata   Outcome[*VideoMetadata]
	Statistics Outcome[*VideoStatistics]
	Comments   Outcome[[]Comment]
	Errors     []FieldError
}

// Success reports whether at least one field resolved.
func (a *VideoAnalysis) Success() bool {
	return a.Transcript.OK() || a.Metadata.OK() || a.Statistics.OK() || a.Comments.OK()
}

// PartialSuccess reports whether the aggregation both succeeded and failed:
// at least one field resolved and at least one did not.
func (a *VideoAnalysis) PartialSuccess() bool {
	return a.Success() && len(a.Errors) > 0
}

// QuotaCost is the summed fixed weight of the attempted field set,
// independent of which fields failed.
func (a *VideoAnalysis) QuotaCost() int {
	return QuotaTranscript + QuotaMetadata + QuotaStatistics + QuotaComments
}

// ChannelOverview is the two-field companion aggregation over a channel.
type ChannelOverview struct {
	ChannelID string
	Info      Outcome[*ChannelInfo]
	Uploads   Outcome[[]UploadItem]
	Errors    []FieldError
}

func (o *ChannelOverview) Success() bool {
	return o.Info.OK() || o.Uploads.OK()
}

func (o *ChannelOverview) PartialSuccess() bool {
	return o.Success() && len(o.Errors) > 0
}

func (o *ChannelOverview) QuotaCost() int {
	return QuotaChannelInfo + QuotaChannelUploads
}
