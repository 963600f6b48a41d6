package interfaces

import (
	"context"

	"github.com/maxbolgarin/shiplog/internal/model"
)

// CommitProvider defines the interface for VCS providers (GitLab, GitHub).
type CommitProvider interface {
	// GetCommitRange returns the commits of from..to in reverse
	// chronological order, the range tip first, with parent SHAs.
	GetCommitRange(ctx context.Context, projectID, from, to string) ([]*model.Commit, error)

	// Webhook handling for serve mode
	ValidateWebhook(payload []byte, authToken string) error
	ParseWebhookEvent(payload []byte) (*model.TagEvent, error)
	IsTagPushEvent(event *model.TagEvent) bool
}

// TicketTracker defines the interface for the issue tracker.
type TicketTracker interface {
	GetTicket(ctx context.Context, key string) (*model.Ticket, error)
	CreateVersion(ctx context.Context, name string) error
	AssignVersion(ctx context.Context, ticketKey, version string) error
}

// Notifier defines the interface for the chat integration.
type Notifier interface {
	PostMessage(ctx context.Context, text string) error
	LookupUser(ctx context.Context, email string) (string, error)
}

// Summarizer generates an optional highlights paragraph for a changelog.
type Summarizer interface {
	Summarize(ctx context.Context, changelog string) (string, error)
}
