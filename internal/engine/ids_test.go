package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare id with whitespace", "  dQw4w9WgXcQ\n", "dQw4w9WgXcQ"},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url extra params", "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ"},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"no scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractVideoIDInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too short", "dQw4w9WgXc"},
		{"too long bare", "dQw4w9WgXcQQ"},
		{"illegal chars", "dQw4w9WgX!Q"},
		{"watch url without v", "https://www.youtube.com/watch?list=PL123"},
		{"plain text", "never gonna give you up"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractVideoID(tt.input)
			require.Error(t, err)
			assert.Equal(t, KindInvalidFormat, KindOf(err))
		})
	}
}

func TestExtractChannelID(t *testing.T) {
	const id = "UC_x5XG1OV2P6uZZ5FSM9Ttw"

	got, err := ExtractChannelID(id)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	got, err = ExtractChannelID("https://www.youtube.com/channel/" + id)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	got, err = ExtractChannelID("https://www.youtube.com/channel/" + id + "/videos")
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestExtractChannelIDUnsupported(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"vanity url", "https://www.youtube.com/c/GoogleDevelopers"},
		{"user url", "https://www.youtube.com/user/GoogleDevelopers"},
		{"handle url", "https://www.youtube.com/@GoogleDevelopers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractChannelID(tt.input)
			require.Error(t, err)
			assert.Equal(t, KindUnsupportedIdentifier, KindOf(err))
			assert.Contains(t, Detail(err), "canonical channel id")
		})
	}
}

func TestExtractChannelIDInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong prefix", "AB_x5XG1OV2P6uZZ5FSM9Ttw"},
		{"too short", "UC_x5XG1OV2P6uZZ5FSM9Tt"},
		{"bare handle", "@GoogleDevelopers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractChannelID(tt.input)
			require.Error(t, err)
			assert.Equal(t, KindInvalidFormat, KindOf(err))
		})
	}
}
