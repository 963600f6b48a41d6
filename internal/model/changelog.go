package model

// Changelog is the assembled result of one run, handed to rendering.
type Changelog struct {
	Release    string          `json:"release,omitempty"`
	Commits    CommitPartition `json:"commits"`
	Tickets    TicketPartition `json:"tickets"`
	Highlights string          `json:"highlights,omitempty"`
}

// CommitPartition splits the reduced commit list into reporting groups.
type CommitPartition struct {
	All       []*Commit `json:"all"`
	Tickets   []*Commit `json:"tickets"`
	NoTickets []*Commit `json:"no_tickets"`
	Reverted  []*Commit `json:"reverted"`
}

// TicketPartition splits the referenced tickets into reporting groups.
type TicketPartition struct {
	All      []*Ticket `json:"all"`
	Approved []*Ticket `json:"approved"`
	Pending  []*Ticket `json:"pending"`
	Reverted []*Ticket `json:"reverted"`

	// PendingByOwner groups pending tickets per reporter, sorted by the
	// reporter display name.
	PendingByOwner []*Reporter `json:"pending_by_owner"`
}

// Reporter holds the pending tickets of one issue reporter.
type Reporter struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	SlackUser string    `json:"slack_user,omitempty"`
	Tickets   []*Ticket `json:"tickets"`
}
