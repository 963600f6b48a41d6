package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectRevert(t *testing.T) {
	tests := []struct {
		name    string
		summary string
		message string
		want    string
	}{
		{
			name:    "plain revert",
			summary: `Revert "Foo bar commit"`,
			message: "Revert \"Foo bar commit\"\n\nThis reverts commit 1a2b3c4d5e6f.",
			want:    "1a2b3c4d5e6f",
		},
		{
			name:    "revert of a revert restores original work",
			summary: `Revert "Revert "Foo bar commit""`,
			message: "Revert \"Revert \"Foo bar commit\"\"\n\nThis reverts commit 1a2b3c4d5e6f.",
			want:    "",
		},
		{
			name:    "triple nested revert is a revert again",
			summary: `Revert "Revert "Revert "Foo bar commit"""`,
			message: "Revert \"Revert \"Revert \"Foo bar commit\"\"\"\n\nThis reverts commit 1a2b3c4d5e6f.",
			want:    "1a2b3c4d5e6f",
		},
		{
			name:    "mentioning the word revert is not enough",
			summary: "Fix revert handling",
			message: "Fix revert handling\n\nWe should revert less often.",
			want:    "",
		},
		{
			name:    "pattern must be anchored at the start",
			summary: "Also Revert \"Foo\"",
			message: "Also Revert \"Foo\"\n\nThis reverts commit 1a2b3c4d5e6f.",
			want:    "",
		},
		{
			name:    "pattern must be anchored at the end",
			summary: `Revert "Foo"`,
			message: "Revert \"Foo\"\n\nThis reverts commit 1a2b3c4d5e6f. And more text",
			want:    "",
		},
		{
			name:    "extra explanation between subject and trailer",
			summary: `Revert "Foo"`,
			message: "Revert \"Foo\"\n\nBroke the nightly build.\n\nThis reverts commit 9f8e7d6c.",
			want:    "9f8e7d6c",
		},
		{
			name:    "empty message",
			summary: "",
			message: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectRevert(tt.summary, tt.message))
		})
	}
}

func TestDetectRevertIdempotent(t *testing.T) {
	summary := "Fix revert handling"
	message := "Fix revert handling\n\nNothing to see here."

	first := DetectRevert(summary, message)
	second := DetectRevert(summary, message)

	assert.Empty(t, first)
	assert.Equal(t, first, second)
}
