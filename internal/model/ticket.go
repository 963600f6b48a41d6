package model

// Ticket represents one issue tracker item referenced from commit messages.
type Ticket struct {
	Key      string `json:"key"`
	Summary  string `json:"summary"`
	Status   string `json:"status"`
	Type     string `json:"type"`
	Reporter User   `json:"reporter"`
	URL      string `json:"url,omitempty"`

	// SlackUser is the chat handle resolved from the reporter email,
	// empty when the lookup failed or the notifier is disabled.
	SlackUser string `json:"slack_user,omitempty"`

	// Reverted carries the revert SHA taken from the ticket's most
	// recently dated commit, empty when that commit is live work.
	Reverted string `json:"reverted,omitempty"`

	// Commits accumulates every commit in the run that referenced this
	// ticket, filled by the changelog assembler.
	Commits []*Commit `json:"commits,omitempty"`
}
