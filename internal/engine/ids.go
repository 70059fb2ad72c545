package engine

import (
	"regexp"
	"strings"
)

// Identifier extraction. Inputs are either bare tokens or full URLs; the
// output is always a validated canonical identifier, so downstream code never
// re-validates. Extraction is a pure parse and happens before any network
// call, so malformed input costs zero quota.

var (
	bareVideoIDRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	videoURLRE    = regexp.MustCompile(`(?:youtube\.com/watch\?(?:[^#\s]*&)?v=|youtu\.be/|youtube\.com/embed/)([A-Za-z0-9_-]{11})`)

	bareChannelIDRE = regexp.MustCompile(`^UC[A-Za-z0-9_-]{22}$`)
	channelURLRE    = regexp.MustCompile(`youtube\.com/channel/(UC[A-Za-z0-9_-]{22})`)
)

// ExtractVideoID pulls the 11-char video ID out of a bare token or any
// watch/short-link/embed URL. Fails with InvalidFormat when no candidate of
// the right shape appears anywhere in the input.
func ExtractVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if bareVideoIDRE.MatchString(input) {
		return input, nil
	}
	if m := videoURLRE.FindStringSubmatch(input); len(m) == 2 {
		return m[1], nil
	}
	return "", Errf(KindInvalidFormat, "no 11-character video id found in %q", input)
}

// ExtractChannelID accepts a canonical UC... token or a /channel/UC... URL.
// Vanity and handle URLs are rejected with a remediation hint: resolving them
// needs an extra lookup against a capability this service does not carry.
func ExtractChannelID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if bareChannelIDRE.MatchString(input) {
		return input, nil
	}
	if m := channelURLRE.FindStringSubmatch(input); len(m) == 2 {
		return m[1], nil
	}
	if strings.Contains(input, "youtube.com/c/") ||
		strings.Contains(input, "youtube.com/user/") ||
		strings.Contains(input, "youtube.com/@") {
		return "", Errf(KindUnsupportedIdentifier,
			"custom URLs and handles cannot be resolved here; use the canonical channel id (starts with UC, found in /channel/... URLs or the channel's About page)")
	}
	return "", Errf(KindInvalidFormat, "no channel id found in %q", input)
}
