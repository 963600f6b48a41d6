package model

import "time"

// Commit represents a git commit inside one changelog run.
type Commit struct {
	SHA     string    `json:"sha"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`
	Author  User      `json:"author"`
	Date    time.Time `json:"date"`
	URL     string    `json:"url"`

	// Parents holds the parent SHAs in git order: the first entry is the
	// mainline continuation, the rest are merged-in branch tips.
	Parents []string `json:"parents"`

	// Tickets are attached by the tracker fetcher after key extraction.
	Tickets []*Ticket `json:"tickets,omitempty"`

	// Reverted is the SHA this commit reverts, set by revert detection.
	// RevertedBy is the SHA of the commit that reverts this one, set by
	// revert resolution. Both are empty when not applicable.
	Reverted   string `json:"reverted,omitempty"`
	RevertedBy string `json:"reverted_by,omitempty"`

	// Graph-reduction working state, valid only during one reduction pass.
	Prev         string    `json:"-"`
	MergeParents []string  `json:"-"`
	Merged       []*Commit `json:"-"`
}

// ShortSHA returns the abbreviated commit hash.
func (c *Commit) ShortSHA() string {
	if len(c.SHA) < 8 {
		return c.SHA
	}
	return c.SHA[:8]
}

// IsReverting reports whether this commit undoes another one.
func (c *Commit) IsReverting() bool {
	return c.Reverted != ""
}

// User represents a git author or an issue tracker account.
type User struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
}
