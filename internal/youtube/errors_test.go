package youtube

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"

	"github.com/derekcheungsa/YouTubeDataFetcher/internal/engine"
)

func TestClassifyAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want engine.Kind
	}{
		{
			"comments disabled reason",
			&googleapi.Error{Code: 403, Errors: []googleapi.ErrorItem{{Reason: "commentsDisabled"}}},
			engine.KindCommentsDisabled,
		},
		{
			"quota reason",
			&googleapi.Error{Code: 403, Errors: []googleapi.ErrorItem{{Reason: "quotaExceeded"}}},
			engine.KindQuotaExceeded,
		},
		{
			"daily limit reason",
			&googleapi.Error{Code: 403, Errors: []googleapi.ErrorItem{{Reason: "dailyLimitExceeded"}}},
			engine.KindQuotaExceeded,
		},
		{
			"video not found reason",
			&googleapi.Error{Code: 404, Errors: []googleapi.ErrorItem{{Reason: "videoNotFound"}}},
			engine.KindNotFound,
		},
		{
			"plain 404",
			&googleapi.Error{Code: 404},
			engine.KindNotFound,
		},
		{
			"403 with quota message",
			&googleapi.Error{Code: 403, Message: "The request cannot be completed because you have exceeded your quota."},
			engine.KindQuotaExceeded,
		},
		{
			"plain 403",
			&googleapi.Error{Code: 403, Message: "forbidden"},
			engine.KindForbidden,
		},
		{
			"429",
			&googleapi.Error{Code: 429},
			engine.KindQuotaExceeded,
		},
		{
			"400",
			&googleapi.Error{Code: 400, Message: "invalid parameter"},
			engine.KindMalformedResponse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyAPIError(tt.err, "video")
			assert.Equal(t, tt.want, engine.KindOf(got))
		})
	}
}

func TestClassifyAPIErrorNonGoogleapi(t *testing.T) {
	raw := errors.New("connection refused")
	got := classifyAPIError(raw, "video")
	assert.Equal(t, engine.Kind(""), engine.KindOf(got))
	assert.ErrorIs(t, got, raw)
}

func TestClassifyAPIErrorUnknownCode(t *testing.T) {
	gerr := &googleapi.Error{Code: 500, Message: "backend error"}
	got := classifyAPIError(gerr, "video")
	assert.Equal(t, engine.Kind(""), engine.KindOf(got))
	assert.ErrorIs(t, got, gerr)
}

func TestQuotaLike(t *testing.T) {
	assert.True(t, quotaLike(engine.Errf(engine.KindQuotaExceeded, "x")))
	assert.True(t, quotaLike(engine.Errf(engine.KindForbidden, "x")))
	assert.False(t, quotaLike(engine.Errf(engine.KindNotFound, "x")))
	assert.False(t, quotaLike(errors.New("plain")))
}
