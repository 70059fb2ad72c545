package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/derekcheungsa/YouTubeDataFetcher/internal/engine"
)

// Transcript fetching — the zero-quota scraping path.
// Primary:  watch page ytInitialPlayerResponse → caption XML (works from any IP)
// Fallback: /next → engagement panel → /get_transcript  (works from datacenter IPs)
// Fallback: ANDROID Innertube /player → captionTracks   (works from non-blocked IPs)

// GetTranscript fetches caption segments for a video, trying each path in
// turn. The returned error is the most specific typed failure the chain
// produced.
func (c *Client) GetTranscript(ctx context.Context, videoID string) ([]engine.TranscriptSegment, error) {
	engine.IncrTranscript()

	segs, err1 := c.transcriptFromWatchPage(ctx, videoID)
	if err1 == nil {
		return segs, nil
	}
	slog.Warn("youtube: watch page transcript failed, trying engagement panel",
		slog.String("id", videoID), slog.Any("err", err1))

	segs, err2 := c.transcriptFromEngagementPanel(ctx, videoID)
	if err2 == nil {
		return segs, nil
	}
	slog.Warn("youtube: engagement panel failed, trying player",
		slog.String("id", videoID), slog.Any("err", err2))

	segs, err3 := c.transcriptFromPlayer(ctx, videoID)
	if err3 == nil {
		return segs, nil
	}
	return nil, pickTranscriptErr(err1, err2, err3)
}

// pickTranscriptErr chooses the most informative failure of the chain: a
// typed non-NotFound error beats a typed NotFound, which beats a raw
// transport error.
func pickTranscriptErr(errs ...error) error {
	for _, err := range errs {
		if k := engine.KindOf(err); k != "" && k != engine.KindNotFound {
			return err
		}
	}
	for _, err := range errs {
		if engine.KindOf(err) != "" {
			return err
		}
	}
	return errs[len(errs)-1]
}

// classifyPlayability converts an Innertube playability status into the
// typed taxonomy.
func classifyPlayability(status, reason string) error {
	switch status {
	case "LOGIN_REQUIRED":
		if strings.Contains(strings.ToLower(reason), "age") {
			return engine.Errf(engine.KindAgeRestricted, "video requires age verification")
		}
		return engine.Errf(engine.KindBlocked, "YouTube requires sign-in from this address")
	case "AGE_CHECK_REQUIRED", "CONTENT_CHECK_REQUIRED":
		return engine.Errf(engine.KindAgeRestricted, "video requires age verification")
	case "UNPLAYABLE":
		return engine.Errf(engine.KindUnplayable, "video is unplayable: %s", reason)
	case "ERROR":
		return engine.Errf(engine.KindNotFound, "video is unavailable: %s", reason)
	}
	if reason != "" {
		return engine.Errf(engine.KindUnplayable, "captions unavailable: %s", reason)
	}
	return engine.Errf(engine.KindNotFound, "no transcript available")
}

const playerResponseMarker = "ytInitialPlayerResponse = "

// transcriptFromWatchPage scrapes the watch page HTML and follows the caption
// track URL embedded in ytInitialPlayerResponse.
func (c *Client) transcriptFromWatchPage(ctx context.Context, videoID string) ([]engine.TranscriptSegment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.youtube.com/watch?v="+videoID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, engine.Errf(engine.KindBlocked, "watch page returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	idx := strings.Index(string(body), playerResponseMarker)
	if idx < 0 {
		return nil, engine.Errf(engine.KindBlocked, "player response missing from watch page; consent or bot wall likely")
	}
	raw := extractJSON(body[idx+len(playerResponseMarker):])
	if raw == nil {
		return nil, engine.Errf(engine.KindMalformedResponse, "could not isolate player response JSON")
	}

	var pr playerResponse
	if err := json.Unmarshal(raw, &pr); err != nil {
		return nil, engine.Errf(engine.KindMalformedResponse, "decode player response: %v", err)
	}
	return c.segmentsFromPlayerResponse(ctx, &pr)
}

// getTranscriptTokenRE extracts the continuation token from a raw /next JSON
// response.
var getTranscriptTokenRE = regexp.MustCompile(`"getTranscriptEndpoint":\{"params":"([^"]+)"`)

func extractTranscriptToken(data []byte) (string, bool) {
	m := getTranscriptTokenRE.FindSubmatch(data)
	if len(m) < 2 {
		return "", false
	}
	// The params value in the /next response is URL-encoded; /get_transcript
	// expects the decoded (raw base64) form.
	decoded, err := url.QueryUnescape(string(m[1]))
	if err != nil {
		return string(m[1]), true
	}
	return decoded, true
}

// transcriptFromEngagementPanel fetches a transcript via
// /next → engagement panel token → /get_transcript.
func (c *Client) transcriptFromEngagementPanel(ctx context.Context, videoID string) ([]engine.TranscriptSegment, error) {
	visitor := visitorData()

	nextData, err := c.postInnertubeWeb(ctx, innertubeNextURL, map[string]any{
		"videoId": videoID,
		"context": webContext(visitor),
	}, visitor)
	if err != nil {
		return nil, fmt.Errorf("/next: %w", err)
	}

	token, ok := extractTranscriptToken(nextData)
	if !ok {
		return nil, engine.Errf(engine.KindNotFound, "no transcript panel for this video")
	}

	data, err := c.postInnertubeWeb(ctx, innertubeTranscriptURL, map[string]any{
		"params": token,
		"context": map[string]any{
			"client": webClient{
				ClientName:    "WEB",
				ClientVersion: webClientVersion,
				VisitorData:   visitor,
				Hl:            "en",
				Gl:            "US",
			},
		},
	}, visitor)
	if err != nil {
		return nil, fmt.Errorf("/get_transcript: %w", err)
	}

	var tr transcriptResponse
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, engine.Errf(engine.KindMalformedResponse, "decode transcript: %v", err)
	}

	segs := panelSegments(tr)
	if len(segs) == 0 {
		return nil, engine.Errf(engine.KindNotFound, "transcript panel returned no segments")
	}
	return segs, nil
}

// panelSegments flattens a /get_transcript response into timed segments.
// Timings arrive as millisecond strings.
func panelSegments(tr transcriptResponse) []engine.TranscriptSegment {
	var segs []engine.TranscriptSegment
	for _, action := range tr.Actions {
		if action.UpdateEngagementPanelAction == nil {
			continue
		}
		initial := action.UpdateEngagementPanelAction.Content.
			TranscriptRenderer.Content.
			TranscriptSearchPanelRenderer.Body.
			TranscriptSegmentListRenderer.InitialSegments
		for _, seg := range initial {
			r := seg.TranscriptSegmentRenderer
			if r == nil {
				continue
			}
			var sb strings.Builder
			for _, run := range r.Snippet.Runs {
				if run.Text == "" {
					continue
				}
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(run.Text)
			}
			if sb.Len() == 0 {
				continue
			}
			start := msToSeconds(r.StartMs)
			end := msToSeconds(r.EndMs)
			dur := end - start
			if dur < 0 {
				dur = 0
			}
			segs = append(segs, engine.TranscriptSegment{Text: sb.String(), Start: start, Duration: dur})
		}
	}
	return segs
}

func msToSeconds(ms string) float64 {
	n, err := strconv.ParseFloat(ms, 64)
	if err != nil {
		return 0
	}
	return n / 1000
}

// transcriptFromPlayer uses the ANDROID Innertube /player endpoint.
func (c *Client) transcriptFromPlayer(ctx context.Context, videoID string) ([]engine.TranscriptSegment, error) {
	body, err := json.Marshal(playerRequest{
		VideoID: videoID,
		Context: playerContext{
			Client: androidClient{
				ClientName:        "ANDROID",
				ClientVersion:     androidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, innertubePlayerURL+"?prettyPrint=false", strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", androidUA)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", androidVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("android player: %w", err)
	}
	defer resp.Body.Close()

	var pr playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, engine.Errf(engine.KindMalformedResponse, "decode player: %v", err)
	}
	return c.segmentsFromPlayerResponse(ctx, &pr)
}

// segmentsFromPlayerResponse resolves the best caption track of a player
// response and fetches its timedtext XML.
func (c *Client) segmentsFromPlayerResponse(ctx context.Context, pr *playerResponse) ([]engine.TranscriptSegment, error) {
	if pr.Captions == nil {
		status, reason := "", ""
		if pr.PlayabilityStatus != nil {
			status, reason = pr.PlayabilityStatus.Status, pr.PlayabilityStatus.Reason
		}
		if status == "OK" {
			return nil, engine.Errf(engine.KindNotFound, "no transcript available")
		}
		return nil, classifyPlayability(status, reason)
	}
	tracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, engine.Errf(engine.KindNotFound, "no caption tracks")
	}
	track, ok := pickBestTrack(tracks, c.langs)
	if !ok {
		return nil, engine.Errf(engine.KindBlocked, "all caption tracks require a browser proof-of-origin token")
	}
	return c.fetchTimedText(ctx, track.BaseURL)
}

// needsPoToken reports whether a caption track URL requires a PoToken
// (browser-only). Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track for the language
// preferences: manual track in a preferred language, then auto-generated in a
// preferred language, then any English track, then the first usable one.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return tracks[0], false
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// --- timedtext XML ---

type timedText struct {
	Lines []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Text  string  `xml:",chardata"`
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
}

// fetchTimedText fetches a caption XML URL and converts it into segments.
func (c *Client) fetchTimedText(ctx context.Context, baseURL string) ([]engine.TranscriptSegment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", chromeUA)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil, err
	}
	return parseTimedText(body)
}

// parseTimedText decodes timedtext XML into segments. Caption text is
// HTML-escaped inside the XML character data, so it is unescaped a second
// time here.
func parseTimedText(body []byte) ([]engine.TranscriptSegment, error) {
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, engine.Errf(engine.KindMalformedResponse, "parse timedtext XML: %v", err)
	}

	segs := make([]engine.TranscriptSegment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text == "" {
			continue
		}
		segs = append(segs, engine.TranscriptSegment{Text: text, Start: line.Start, Duration: line.Dur})
	}
	if len(segs) == 0 {
		return nil, engine.Errf(engine.KindNotFound, "caption track is empty")
	}
	return segs, nil
}
