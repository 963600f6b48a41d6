package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyExtractor(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		want    []string
	}{
		{
			name:    "single key with capture group",
			pattern: `([A-Z][A-Z0-9]+-\d+)`,
			text:    "PROJ-123 fix the login flow",
			want:    []string{"PROJ-123"},
		},
		{
			name:    "multiple keys keep first seen order",
			pattern: `([A-Z][A-Z0-9]+-\d+)`,
			text:    "PROJ-2 depends on OTHER-7 and PROJ-1",
			want:    []string{"PROJ-2", "OTHER-7", "PROJ-1"},
		},
		{
			name:    "duplicates removed after uppercasing",
			pattern: `([A-Z][A-Z0-9]+-\d+)`,
			text:    "proj-1 then PROJ-1 again and Proj-1",
			want:    []string{"PROJ-1"},
		},
		{
			name:    "no capture group uses whole match",
			pattern: `[A-Z]+-\d+`,
			text:    "see ABC-9 for details",
			want:    []string{"ABC-9"},
		},
		{
			name:    "no match yields nil",
			pattern: `([A-Z][A-Z0-9]+-\d+)`,
			text:    "chore: bump dependencies",
			want:    nil,
		},
		{
			name:    "empty text yields nil",
			pattern: `([A-Z][A-Z0-9]+-\d+)`,
			text:    "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor, err := NewKeyExtractor(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, extractor.Extract(tt.text))
		})
	}
}

func TestNewKeyExtractorInvalidPattern(t *testing.T) {
	_, err := NewKeyExtractor(`([A-Z`)
	require.Error(t, err)
}
