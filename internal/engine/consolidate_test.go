package engine

import (
	"testing"

	"github.com/maxbolgarin/shiplog/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestConsolidate(t *testing.T) {
	e := newTestEngine(t)

	top := &model.Commit{
		SHA:     "c5",
		Subject: "rev 5",
		Message: "rev 5 body",
		Merged: []*model.Commit{
			{SHA: "b2", Subject: "rev 2b", Message: "rev 2b body"},
			{SHA: "b1", Subject: "rev 2a", Message: "rev 2a body"},
		},
	}

	e.Consolidate([]*model.Commit{top})

	assert.Equal(t, "rev 5\nrev 2b\nrev 2a", top.Subject)
	assert.Equal(t, "rev 5 body\nrev 2b body\nrev 2a body", top.Message)
}

func TestConsolidateSkipsReverts(t *testing.T) {
	e := newTestEngine(t)

	top := &model.Commit{
		SHA:     "c5",
		Subject: "rev 5",
		Message: "rev 5",
		Merged: []*model.Commit{
			{SHA: "b2", Subject: "rev 2b", Message: "rev 2b", Reverted: "10"},
			{SHA: "b1", Subject: "rev 2a", Message: "rev 2a"},
		},
	}

	e.Consolidate([]*model.Commit{top})

	assert.Equal(t, "rev 5\nrev 2a", top.Subject)
}

func TestConsolidateTrimsWhitespace(t *testing.T) {
	e := newTestEngine(t)

	top := &model.Commit{
		SHA:     "c2",
		Subject: "  top  ",
		Message: "top body\n\n",
		Merged: []*model.Commit{
			{SHA: "b1", Subject: "\nmerged\t", Message: "  merged body  "},
		},
	}

	e.Consolidate([]*model.Commit{top})

	assert.Equal(t, "top\nmerged", top.Subject)
	assert.Equal(t, "top body\nmerged body", top.Message)
}

func TestConsolidateNoMergedIsNoop(t *testing.T) {
	e := newTestEngine(t)

	top := &model.Commit{SHA: "c1", Subject: "unchanged", Message: "unchanged body"}

	e.Consolidate([]*model.Commit{top})
	e.Consolidate([]*model.Commit{top})

	assert.Equal(t, "unchanged", top.Subject)
	assert.Equal(t, "unchanged body", top.Message)
}
