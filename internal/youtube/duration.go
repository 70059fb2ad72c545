package youtube

import (
	"regexp"
	"strconv"

	"github.com/derekcheungsa/YouTubeDataFetcher/internal/engine"
)

// The Data API encodes durations as ISO-8601 time spans (PT1H2M3S). Videos
// longer than a day exist, so the day component is accepted and folded into
// hours, matching the total-seconds arithmetic downstream consumers expect.
var durationRE = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseDuration parses an ISO-8601 duration into components. A string that
// does not parse yields MalformedDuration, never a panic.
func ParseDuration(raw string) (engine.Duration, error) {
	m := durationRE.FindStringSubmatch(raw)
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "" && m[4] == "") {
		return engine.Duration{}, engine.Errf(engine.KindMalformedDuration, "cannot parse duration %q", raw)
	}

	num := func(s string) int64 {
		if s == "" {
			return 0
		}
		n, _ := strconv.ParseInt(s, 10, 64)
		return n
	}
	total := ((num(m[1])*24+num(m[2]))*60+num(m[3]))*60 + num(m[4])

	return engine.Duration{
		Raw:          raw,
		TotalSeconds: total,
		Hours:        total / 3600,
		Minutes:      (total % 3600) / 60,
		Seconds:      total % 60,
	}, nil
}
