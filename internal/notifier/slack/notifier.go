package slack

import (
	"context"
	"fmt"
	"net/url"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/shiplog/internal/model/interfaces"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultBaseURL = "https://slack.com/api"

var _ interfaces.Notifier = (*Notifier)(nil)

// Notifier implements the Notifier interface for the Slack Web API
type Notifier struct {
	client  *cliex.HTTP
	channel string
	logger  logze.Logger
}

// New creates a new Slack notifier
func New(token, channel string) (*Notifier, error) {
	if token == "" {
		return nil, errm.New("Slack token is required")
	}
	log := logze.With("notifier", "slack", "component", "notifier")

	cli, err := cliex.New(cliex.WithBaseURL(defaultBaseURL), cliex.WithLogger(log))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create Slack client")
	}
	cli.C().SetAuthToken(token)

	return &Notifier{
		client:  cli,
		channel: channel,
		logger:  log,
	}, nil
}

// PostMessage posts the changelog text to the configured channel
func (n *Notifier) PostMessage(ctx context.Context, text string) error {
	body := map[string]any{
		"channel": n.channel,
		"text":    text,
	}

	resp, err := n.client.Post(ctx, "chat.postMessage", body)
	if err != nil {
		return errm.Wrap(err, "failed to post message to Slack")
	}

	var result slackResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return errm.Wrap(err, "failed to parse Slack response")
	}
	if !result.OK {
		return errm.New("Slack API error: %s", result.Error)
	}

	return nil
}

// LookupUser resolves a Slack username from an email address. A user
// that cannot be found is not an error for the caller: the ticket just
// ships without a chat handle.
func (n *Notifier) LookupUser(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", nil
	}

	apiURL := fmt.Sprintf("users.lookupByEmail?email=%s", url.QueryEscape(email))

	resp, err := n.client.Get(ctx, apiURL)
	if err != nil {
		return "", errm.Wrap(err, "failed to look up Slack user")
	}

	var result slackUserResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", errm.Wrap(err, "failed to parse Slack user response")
	}
	if !result.OK {
		return "", errm.New("Slack API error: %s", result.Error)
	}

	return result.User.Name, nil
}
