package engine

import (
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/shiplog/internal/model"
)

// Reduce partitions the flat reverse-chronological commit list into
// top-level commits and their merged-in descendants. The first record is
// assumed to be the range tip. The mainline is the chain of first-parent
// links from the tip; every commit reachable from a top-level commit only
// through non-first parents is grouped under it in Merged. Commits
// unreachable from the tip are dropped, that is not an error.
//
// It returns an error only for structurally invalid input (a record
// without a revision), since that indicates an integration bug.
func (e *Engine) Reduce(commits []*model.Commit) ([]*model.Commit, error) {
	if len(commits) == 0 {
		return nil, nil
	}

	index := make(map[string]*model.Commit, len(commits))
	for _, c := range commits {
		if c.SHA == "" {
			return nil, errm.New("commit record without revision")
		}
		if len(c.Parents) > 0 {
			c.Prev = c.Parents[0]
			c.MergeParents = c.Parents[1:]
		} else {
			c.Prev = ""
			c.MergeParents = nil
		}
		c.Merged = nil
		index[c.SHA] = c
	}

	// Walk the first-parent chain from the tip. Each visited commit
	// leaves the index so it cannot be claimed again as somebody's
	// merged ancestor.
	var top []*model.Commit
	for current := commits[0]; ; {
		delete(index, current.SHA)
		top = append(top, current)

		next, ok := index[current.Prev]
		if !ok {
			break // end of range or missing link
		}
		current = next
	}

	// Claim merged-in ancestors in mainline order, so a commit reachable
	// from several top-level commits goes to the most recent one.
	for _, t := range top {
		t.Merged = claimMerged(t, index)
	}

	return top, nil
}

// claimMerged collects every commit still in the index that is
// transitively reachable from the top-level commit through prev and
// merge-parent links. An explicit stack replaces recursion to stay safe
// on long histories. Discovery order is depth-first: immediate prev
// first, then its own prev, then its other parents.
func claimMerged(top *model.Commit, index map[string]*model.Commit) []*model.Commit {
	var merged []*model.Commit

	stack := make([]string, 0, len(top.MergeParents)+1)
	for i := len(top.MergeParents) - 1; i >= 0; i-- {
		stack = append(stack, top.MergeParents[i])
	}
	stack = append(stack, top.Prev)

	for len(stack) > 0 {
		sha := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c, ok := index[sha]
		if !ok {
			continue
		}
		delete(index, sha) // claimed exactly once
		merged = append(merged, c)

		for i := len(c.MergeParents) - 1; i >= 0; i-- {
			stack = append(stack, c.MergeParents[i])
		}
		stack = append(stack, c.Prev)
	}

	return merged
}
