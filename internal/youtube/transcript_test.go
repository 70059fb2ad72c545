package youtube

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derekcheungsa/YouTubeDataFetcher/internal/engine"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"flat object", `{"a":1};var x = 2`, `{"a":1}`},
		{"nested object", `{"a":{"b":{"c":3}}}trailing`, `{"a":{"b":{"c":3}}}`},
		{"braces inside strings", `{"a":"}{","b":2}`, `{"a":"}{","b":2}`},
		{"escaped quote in string", `{"a":"say \"}\" loud"}`, `{"a":"say \"}\" loud"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON([]byte(tt.input))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, string(got))
			assert.True(t, json.Valid(got))
		})
	}
}

func TestExtractJSONRejects(t *testing.T) {
	assert.Nil(t, extractJSON(nil))
	assert.Nil(t, extractJSON([]byte("var x = 1")))
	assert.Nil(t, extractJSON([]byte(`{"unterminated":`)))
}

func TestExtractTranscriptToken(t *testing.T) {
	data := []byte(`{"x":{"getTranscriptEndpoint":{"params":"CgNhc3ISAmVuGgA%3D"}}}`)
	token, ok := extractTranscriptToken(data)
	require.True(t, ok)
	assert.Equal(t, "CgNhc3ISAmVuGgA=", token, "token is URL-decoded")

	_, ok = extractTranscriptToken([]byte(`{"no":"panel"}`))
	assert.False(t, ok)
}

func TestNeedsPoToken(t *testing.T) {
	assert.True(t, needsPoToken("https://www.youtube.com/api/timedtext?v=x&exp=xpe&pot=1"))
	assert.False(t, needsPoToken("https://www.youtube.com/api/timedtext?v=x&lang=en"))
}

func TestPickBestTrack(t *testing.T) {
	manual := func(lang string) captionTrack {
		return captionTrack{BaseURL: "https://yt/timedtext?lang=" + lang, LanguageCode: lang}
	}
	asr := func(lang string) captionTrack {
		return captionTrack{BaseURL: "https://yt/timedtext?lang=" + lang + "&kind=asr", LanguageCode: lang, Kind: "asr"}
	}
	blocked := func(lang string) captionTrack {
		return captionTrack{BaseURL: "https://yt/timedtext?lang=" + lang + "&exp=xpe", LanguageCode: lang}
	}

	t.Run("manual preferred beats asr preferred", func(t *testing.T) {
		track, ok := pickBestTrack([]captionTrack{asr("en"), manual("en")}, []string{"en"})
		require.True(t, ok)
		assert.Empty(t, track.Kind)
	})

	t.Run("asr preferred beats manual other language", func(t *testing.T) {
		track, ok := pickBestTrack([]captionTrack{manual("fr"), asr("de")}, []string{"de"})
		require.True(t, ok)
		assert.Equal(t, "de", track.LanguageCode)
	})

	t.Run("english fallback", func(t *testing.T) {
		track, ok := pickBestTrack([]captionTrack{manual("fr"), manual("en-GB")}, []string{"ja"})
		require.True(t, ok)
		assert.Equal(t, "en-GB", track.LanguageCode)
	})

	t.Run("first usable as last resort", func(t *testing.T) {
		track, ok := pickBestTrack([]captionTrack{manual("fr"), manual("de")}, []string{"ja"})
		require.True(t, ok)
		assert.Equal(t, "fr", track.LanguageCode)
	})

	t.Run("potoken tracks are skipped", func(t *testing.T) {
		track, ok := pickBestTrack([]captionTrack{blocked("en"), manual("fr")}, []string{"en"})
		require.True(t, ok)
		assert.Equal(t, "fr", track.LanguageCode)
	})

	t.Run("all tracks need potoken", func(t *testing.T) {
		_, ok := pickBestTrack([]captionTrack{blocked("en"), blocked("fr")}, []string{"en"})
		assert.False(t, ok)
	})
}

func TestParseTimedText(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.12" dur="2.5">hello &amp;amp; welcome</text>
  <text start="2.62" dur="1.0"></text>
  <text start="3.62" dur="4.38">to the &amp;#39;show&amp;#39;</text>
</transcript>`)

	segs, err := parseTimedText(body)
	require.NoError(t, err)
	require.Len(t, segs, 2, "empty lines are dropped")

	assert.Equal(t, "hello & welcome", segs[0].Text)
	assert.InDelta(t, 0.12, segs[0].Start, 1e-9)
	assert.InDelta(t, 2.5, segs[0].Duration, 1e-9)
	assert.Equal(t, "to the 'show'", segs[1].Text)
}

func TestParseTimedTextEmpty(t *testing.T) {
	_, err := parseTimedText([]byte(`<transcript></transcript>`))
	require.Error(t, err)
	assert.Equal(t, engine.KindNotFound, engine.KindOf(err))
}

func TestParseTimedTextMalformed(t *testing.T) {
	_, err := parseTimedText([]byte(`<transcript><text`))
	require.Error(t, err)
	assert.Equal(t, engine.KindMalformedResponse, engine.KindOf(err))
}

func TestPanelSegments(t *testing.T) {
	raw := `{
	  "actions": [{
	    "updateEngagementPanelAction": {
	      "content": {"transcriptRenderer": {"content": {"transcriptSearchPanelRenderer": {"body": {"transcriptSegmentListRenderer": {"initialSegments": [
	        {"transcriptSegmentRenderer": {"startMs": "0", "endMs": "1500", "snippet": {"runs": [{"text": "first"}, {"text": "line"}]}}},
	        {"transcriptSegmentRenderer": {"startMs": "1500", "endMs": "1400", "snippet": {"runs": [{"text": "clamped"}]}}},
	        {"transcriptSegmentRenderer": {"startMs": "3000", "endMs": "4000", "snippet": {"runs": []}}},
	        {}
	      ]}}}}}}
	    }
	  }]
	}`
	var tr transcriptResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &tr))

	segs := panelSegments(tr)
	require.Len(t, segs, 2)

	assert.Equal(t, "first line", segs[0].Text)
	assert.InDelta(t, 0.0, segs[0].Start, 1e-9)
	assert.InDelta(t, 1.5, segs[0].Duration, 1e-9)

	assert.Equal(t, "clamped", segs[1].Text)
	assert.InDelta(t, 0.0, segs[1].Duration, 1e-9, "negative durations clamp to zero")
}

func TestClassifyPlayability(t *testing.T) {
	tests := []struct {
		name   string
		status string
		reason string
		want   engine.Kind
	}{
		{"login required", "LOGIN_REQUIRED", "Sign in to confirm you're not a bot", engine.KindBlocked},
		{"login required age", "LOGIN_REQUIRED", "Sign in to confirm your age", engine.KindAgeRestricted},
		{"age check", "AGE_CHECK_REQUIRED", "", engine.KindAgeRestricted},
		{"content check", "CONTENT_CHECK_REQUIRED", "", engine.KindAgeRestricted},
		{"unplayable", "UNPLAYABLE", "not available in your country", engine.KindUnplayable},
		{"error", "ERROR", "Video unavailable", engine.KindNotFound},
		{"unknown with reason", "WEIRD", "something odd", engine.KindUnplayable},
		{"unknown without reason", "WEIRD", "", engine.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyPlayability(tt.status, tt.reason)
			assert.Equal(t, tt.want, engine.KindOf(err))
		})
	}
}

func TestPickTranscriptErr(t *testing.T) {
	blocked := engine.Errf(engine.KindBlocked, "blocked")
	notFound := engine.Errf(engine.KindNotFound, "missing")
	raw := errors.New("connection reset")

	assert.Equal(t, blocked, pickTranscriptErr(notFound, blocked, raw), "typed non-NotFound wins")
	assert.Equal(t, notFound, pickTranscriptErr(raw, notFound, raw), "typed NotFound beats raw")
	assert.Equal(t, raw, pickTranscriptErr(raw, raw, raw), "last raw error as fallback")
}

func TestMsToSeconds(t *testing.T) {
	assert.InDelta(t, 1.5, msToSeconds("1500"), 1e-9)
	assert.InDelta(t, 0.0, msToSeconds("junk"), 1e-9)
}
