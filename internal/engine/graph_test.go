package engine

import (
	"testing"

	"github.com/maxbolgarin/shiplog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(Config{})
	require.NoError(t, err)
	return e
}

func commit(sha string, parents ...string) *model.Commit {
	return &model.Commit{SHA: sha, Parents: parents}
}

func shas(commits []*model.Commit) []string {
	out := make([]string, 0, len(commits))
	for _, c := range commits {
		out = append(out, c.SHA)
	}
	return out
}

func TestReduceLinearHistory(t *testing.T) {
	e := newTestEngine(t)

	commits := []*model.Commit{
		commit("c3", "c2"),
		commit("c2", "c1"),
		commit("c1"),
	}

	top, err := e.Reduce(commits)
	require.NoError(t, err)

	assert.Equal(t, []string{"c3", "c2", "c1"}, shas(top))
	for _, c := range top {
		assert.Empty(t, c.Merged)
	}
}

func TestReduceMergeCommit(t *testing.T) {
	e := newTestEngine(t)

	// c5 merges a branch with b2 and b1 into the mainline c4 -> c3.
	commits := []*model.Commit{
		commit("c5", "c4", "b2"),
		commit("b2", "b1"),
		commit("c4", "c3"),
		commit("b1", "c3"),
		commit("c3"),
	}

	top, err := e.Reduce(commits)
	require.NoError(t, err)

	require.Equal(t, []string{"c5", "c4", "c3"}, shas(top))
	assert.Equal(t, []string{"b2", "b1"}, shas(top[0].Merged))
	assert.Empty(t, top[1].Merged)
	assert.Empty(t, top[2].Merged)
}

func TestReduceClaimsEachCommitOnce(t *testing.T) {
	e := newTestEngine(t)

	// a1 is reachable from the merge parents of both c3 and c2. The most
	// recent top-level commit in mainline order claims it.
	commits := []*model.Commit{
		commit("c3", "c2", "a1"),
		commit("c2", "c1", "a1"),
		commit("a1", "c1"),
		commit("c1"),
	}

	top, err := e.Reduce(commits)
	require.NoError(t, err)

	require.Equal(t, []string{"c3", "c2", "c1"}, shas(top))
	assert.Equal(t, []string{"a1"}, shas(top[0].Merged))
	assert.Empty(t, top[1].Merged)

	total := len(top)
	for _, c := range top {
		total += len(c.Merged)
	}
	assert.Equal(t, len(commits), total)
}

func TestReduceDiscoveryOrder(t *testing.T) {
	e := newTestEngine(t)

	// Merge commit c2 brings in a branch: prev chain first (b2 then its
	// prev b1), then the other parents of claimed commits.
	commits := []*model.Commit{
		commit("c2", "c1", "x1"),
		commit("b2", "b1"),
		commit("x1", "b2", "b0"),
		commit("b1", "c1"),
		commit("b0", "c1"),
		commit("c1"),
	}

	top, err := e.Reduce(commits)
	require.NoError(t, err)

	require.Equal(t, []string{"c2", "c1"}, shas(top))
	assert.Equal(t, []string{"x1", "b2", "b1", "b0"}, shas(top[0].Merged))
}

func TestReduceDropsOrphans(t *testing.T) {
	e := newTestEngine(t)

	commits := []*model.Commit{
		commit("c2", "c1"),
		commit("c1"),
		commit("orphan", "unknown"),
	}

	top, err := e.Reduce(commits)
	require.NoError(t, err)

	assert.Equal(t, []string{"c2", "c1"}, shas(top))
}

func TestReduceMissingRevision(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Reduce([]*model.Commit{commit("c1"), commit("")})
	require.Error(t, err)
}

func TestReduceEmptyInput(t *testing.T) {
	e := newTestEngine(t)

	top, err := e.Reduce(nil)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestReduceIdempotentOnFlattenedOutput(t *testing.T) {
	e := newTestEngine(t)

	commits := []*model.Commit{
		commit("c3", "c2", "b1"),
		commit("b1", "c2"),
		commit("c2", "c1"),
		commit("c1"),
	}

	top, err := e.Reduce(commits)
	require.NoError(t, err)
	require.Equal(t, []string{"c3", "c2", "c1"}, shas(top))

	again, err := e.Reduce(top)
	require.NoError(t, err)

	assert.Equal(t, shas(top), shas(again))
	for _, c := range again {
		assert.Empty(t, c.Merged)
	}
}
