package engine

import (
	"regexp"
	"strings"

	"github.com/maxbolgarin/shiplog/internal/model"
)

// revertPattern matches the message template produced by `git revert`:
//
//	Revert "<original subject>"
//
//	This reverts commit <hash>.
//
// Matching happens after newlines are collapsed to spaces and is anchored
// at both ends, so a message that merely mentions the word "revert" is
// never classified. This template is a deliberate narrow heuristic:
// reverts written by hand in another wording are treated as regular work.
var revertPattern = regexp.MustCompile(`^Revert "(.*)"\s*.*This reverts commit (\w+)\.$`)

const revertMarker = `Revert "`

// DetectRevert classifies a single commit message. It returns the SHA of
// the reverted commit, or an empty string when the message is not a
// revert. A revert of a revert restores the original content, so an even
// number of nested revert markers in the summary means "not a revert".
func DetectRevert(summary, message string) string {
	text := strings.TrimSpace(strings.ReplaceAll(message, "\n", " "))

	m := revertPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	if countRevertWraps(summary)%2 == 0 {
		return ""
	}

	return m[2]
}

// countRevertWraps counts consecutive leading revert markers: each nested
// revert wraps the previous summary in another `Revert "..."`.
func countRevertWraps(summary string) int {
	n := 0
	for strings.HasPrefix(summary, revertMarker) {
		summary = strings.TrimPrefix(summary, revertMarker)
		n++
	}
	return n
}

// DetectReverts runs revert detection over every commit in the list,
// setting the Reverted field in place.
func (e *Engine) DetectReverts(commits []*model.Commit) {
	for _, c := range commits {
		c.Reverted = DetectRevert(c.Subject, c.Message)
	}
}
