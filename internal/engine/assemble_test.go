package engine

import (
	"testing"
	"time"

	"github.com/maxbolgarin/shiplog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticketKeys(tickets []*model.Ticket) []string {
	out := make([]string, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, t.Key)
	}
	return out
}

func TestAssemblePartitionsCommits(t *testing.T) {
	e := newTestEngine(t)

	ticket := &model.Ticket{Key: "PROJ-1", Status: "Todo", Type: "Bug"}
	commits := []*model.Commit{
		{SHA: "a", Tickets: []*model.Ticket{ticket}},
		{SHA: "b"},
		{SHA: "c", RevertedBy: "d"},
	}

	changelog := e.Assemble(commits)

	assert.Equal(t, []string{"a", "b", "c"}, shas(changelog.Commits.All))
	assert.Equal(t, []string{"a"}, shas(changelog.Commits.Tickets))
	assert.Equal(t, []string{"b", "c"}, shas(changelog.Commits.NoTickets))
	assert.Equal(t, []string{"c"}, shas(changelog.Commits.Reverted))
}

func TestAssembleDeduplicatesTickets(t *testing.T) {
	e := newTestEngine(t)

	// The same ticket key arrives through two records: the first record
	// wins, its commit list accumulates both referencing commits.
	first := &model.Ticket{Key: "PROJ-1", Summary: "first", Type: "Bug"}
	second := &model.Ticket{Key: "PROJ-1", Summary: "second", Type: "Bug"}

	commits := []*model.Commit{
		{SHA: "a", Tickets: []*model.Ticket{first}},
		{SHA: "b", Tickets: []*model.Ticket{second}},
	}

	changelog := e.Assemble(commits)

	require.Len(t, changelog.Tickets.All, 1)
	ticket := changelog.Tickets.All[0]
	assert.Equal(t, "first", ticket.Summary)
	assert.Equal(t, []string{"a", "b"}, shas(ticket.Commits))
}

func TestAssembleSortsTicketsByType(t *testing.T) {
	e := newTestEngine(t)

	commits := []*model.Commit{
		{SHA: "a", Tickets: []*model.Ticket{{Key: "PROJ-1", Type: "Story"}}},
		{SHA: "b", Tickets: []*model.Ticket{{Key: "PROJ-2", Type: "Bug"}}},
		{SHA: "c", Tickets: []*model.Ticket{{Key: "PROJ-3", Type: "Epic"}}},
	}

	changelog := e.Assemble(commits)

	assert.Equal(t, []string{"PROJ-2", "PROJ-3", "PROJ-1"}, ticketKeys(changelog.Tickets.All))
}

func TestAssembleApprovalPartition(t *testing.T) {
	e, err := New(Config{ApprovalStatuses: []string{"done", "closed"}})
	require.NoError(t, err)

	commits := []*model.Commit{
		{SHA: "a", Tickets: []*model.Ticket{{Key: "PROJ-1", Status: "Done", Type: "Bug"}}},
		{SHA: "b", Tickets: []*model.Ticket{{Key: "PROJ-2", Status: "Todo", Type: "Bug"}}},
		{SHA: "c", Tickets: []*model.Ticket{{Key: "PROJ-3", Status: "Closed", Type: "Bug"}}},
	}

	changelog := e.Assemble(commits)

	assert.Equal(t, []string{"PROJ-1", "PROJ-3"}, ticketKeys(changelog.Tickets.Approved))
	assert.Equal(t, []string{"PROJ-2"}, ticketKeys(changelog.Tickets.Pending))
}

func TestAssembleEmptyApprovalListMeansAllPending(t *testing.T) {
	e := newTestEngine(t)

	commits := []*model.Commit{
		{SHA: "a", Tickets: []*model.Ticket{{Key: "PROJ-1", Status: "Done", Type: "Bug"}}},
	}

	changelog := e.Assemble(commits)

	assert.Empty(t, changelog.Tickets.Approved)
	assert.Equal(t, []string{"PROJ-1"}, ticketKeys(changelog.Tickets.Pending))
}

func TestAssembleRevertedTickets(t *testing.T) {
	e := newTestEngine(t)

	ticket := &model.Ticket{Key: "PROJ-1", Type: "Bug"}
	commits := []*model.Commit{
		{SHA: "a", Date: time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC), Reverted: "10", Tickets: []*model.Ticket{ticket}},
	}

	changelog := e.Assemble(commits)

	require.Equal(t, []string{"PROJ-1"}, ticketKeys(changelog.Tickets.Reverted))
	assert.Equal(t, "10", changelog.Tickets.Reverted[0].Reverted)
}

func TestAssembleGroupsPendingByReporter(t *testing.T) {
	e := newTestEngine(t)

	alice := model.User{Name: "Alice", Email: "alice@example.com"}
	bob := model.User{Name: "Bob", Email: "bob@example.com"}

	commits := []*model.Commit{
		{SHA: "a", Tickets: []*model.Ticket{{Key: "PROJ-1", Type: "Bug", Reporter: bob, SlackUser: "bob"}}},
		{SHA: "b", Tickets: []*model.Ticket{{Key: "PROJ-2", Type: "Bug", Reporter: alice}}},
		{SHA: "c", Tickets: []*model.Ticket{{Key: "PROJ-3", Type: "Bug", Reporter: bob}}},
	}

	changelog := e.Assemble(commits)

	owners := changelog.Tickets.PendingByOwner
	require.Len(t, owners, 2)

	assert.Equal(t, "Alice", owners[0].Name)
	assert.Equal(t, []string{"PROJ-2"}, ticketKeys(owners[0].Tickets))

	assert.Equal(t, "Bob", owners[1].Name)
	assert.Equal(t, "bob", owners[1].SlackUser)
	assert.Equal(t, []string{"PROJ-1", "PROJ-3"}, ticketKeys(owners[1].Tickets))
}

func TestFilterTicketTypes(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name: "no lists keeps everything",
			want: []string{"PROJ-1", "PROJ-2", "PROJ-3"},
		},
		{
			name:    "include wins when non-empty",
			include: []string{"bug"},
			exclude: []string{"Bug"},
			want:    []string{"PROJ-1"},
		},
		{
			name:    "exclude applies without include",
			exclude: []string{"epic"},
			want:    []string{"PROJ-1", "PROJ-2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(Config{IncludeTypes: tt.include, ExcludeTypes: tt.exclude})
			require.NoError(t, err)

			c := &model.Commit{SHA: "a", Tickets: []*model.Ticket{
				{Key: "PROJ-1", Type: "Bug"},
				{Key: "PROJ-2", Type: "Story"},
				{Key: "PROJ-3", Type: "Epic"},
			}}

			e.FilterTicketTypes([]*model.Commit{c})
			assert.Equal(t, tt.want, ticketKeys(c.Tickets))
		})
	}
}
