package engine

import (
	"strings"

	"github.com/maxbolgarin/shiplog/internal/model"
)

// Consolidate folds the messages of merged-in commits into their
// top-level commit, in discovery order, newline-joined and trimmed.
// Commits identified as reverts contribute no text of their own.
// Call exactly once per reduction pass: a second call over non-empty
// Merged lists would append the same text again.
func (e *Engine) Consolidate(top []*model.Commit) {
	for _, c := range top {
		consolidateMessages(c)
	}
}

func consolidateMessages(c *model.Commit) {
	if len(c.Merged) == 0 {
		return
	}

	subject := strings.TrimSpace(c.Subject)
	message := strings.TrimSpace(c.Message)

	for _, m := range c.Merged {
		if m.IsReverting() {
			continue
		}
		subject += "\n" + strings.TrimSpace(m.Subject)
		message += "\n" + strings.TrimSpace(m.Message)
	}

	c.Subject = strings.TrimSpace(subject)
	c.Message = strings.TrimSpace(message)
}
