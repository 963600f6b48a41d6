package model

// TagEvent represents a webhook push event from a VCS provider.
type TagEvent struct {
	Type      string `json:"type"`
	ProjectID string `json:"project_id"`
	Ref       string `json:"ref"`
	Tag       string `json:"tag"`
	Before    string `json:"before"`
	After     string `json:"after"`
	User      User   `json:"user"`
}

// ProviderConfig is the provider-facing subset of the configuration.
type ProviderConfig struct {
	BaseURL       string
	Token         string
	WebhookSecret string
}

// TrackerConfig is the tracker-facing subset of the configuration.
type TrackerConfig struct {
	BaseURL    string
	Email      string
	APIToken   string
	ProjectKey string
}
