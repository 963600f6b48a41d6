package engine

import (
	"github.com/maxbolgarin/shiplog/internal/model"
)

// Resolve collapses revert pairs in the flat post-reduction commit list.
// When the reverted commit is present in the list, it is annotated with
// RevertedBy and the reverting commit is dropped. A revert whose target
// lies outside the range stays in the list unresolved.
func (e *Engine) Resolve(commits []*model.Commit) []*model.Commit {
	index := make(map[string]*model.Commit, len(commits))
	for _, c := range commits {
		index[c.SHA] = c
	}

	for _, c := range commits {
		if c.Reverted == "" {
			continue
		}
		target, ok := index[c.Reverted]
		if !ok {
			continue // reverted commit is outside the window
		}
		target.RevertedBy = c.SHA
		delete(index, c.SHA)
	}

	out := make([]*model.Commit, 0, len(index))
	for _, c := range commits {
		if _, ok := index[c.SHA]; ok {
			out = append(out, c)
		}
	}
	return out
}

// MarkTicketReverts sets the reverted marker of every ticket from its
// single most recently dated commit. This reflects whether the ticket's
// latest known state is a revert, not whether it was ever reverted.
func (e *Engine) MarkTicketReverts(tickets []*model.Ticket) {
	for _, t := range tickets {
		t.Reverted = latestRevert(t)
	}
}

func latestRevert(t *model.Ticket) string {
	var latest *model.Commit
	for _, c := range t.Commits {
		if latest == nil || c.Date.After(latest.Date) {
			latest = c
		}
	}
	if latest == nil {
		return ""
	}
	if latest.Reverted != "" {
		return latest.Reverted
	}
	return latest.RevertedBy
}
