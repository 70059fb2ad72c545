package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derekcheungsa/YouTubeDataFetcher/internal/engine"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		raw     string
		total   int64
		hours   int64
		minutes int64
		seconds int64
	}{
		{"PT1H2M3S", 3723, 1, 2, 3},
		{"PT15M33S", 933, 0, 15, 33},
		{"PT45S", 45, 0, 0, 45},
		{"PT2H", 7200, 2, 0, 0},
		{"PT0S", 0, 0, 0, 0},
		{"P1DT2H3M4S", 93784, 26, 3, 4},
		{"P2D", 172800, 48, 0, 0},
		{"PT90M", 5400, 1, 30, 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			d, err := ParseDuration(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.raw, d.Raw)
			assert.Equal(t, tt.total, d.TotalSeconds)
			assert.Equal(t, tt.hours, d.Hours)
			assert.Equal(t, tt.minutes, d.Minutes)
			assert.Equal(t, tt.seconds, d.Seconds)
		})
	}
}

func TestParseDurationMalformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "PT", "P", "1H2M", "PT1.5S", "PT-5S", "p1dt2h"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseDuration(raw)
			require.Error(t, err)
			assert.Equal(t, engine.KindMalformedDuration, engine.KindOf(err))
		})
	}
}
