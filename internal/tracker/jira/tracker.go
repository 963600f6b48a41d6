package jira

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/shiplog/internal/model"
	"github.com/maxbolgarin/shiplog/internal/model/interfaces"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var _ interfaces.TicketTracker = (*Tracker)(nil)

// Tracker implements the TicketTracker interface for the Jira REST API
type Tracker struct {
	client *cliex.HTTP
	config model.TrackerConfig
	logger logze.Logger
}

// New creates a new Jira tracker
func New(config model.TrackerConfig) (*Tracker, error) {
	if config.BaseURL == "" {
		return nil, errm.New("Jira base URL is required")
	}
	log := logze.With("tracker", "jira", "component", "tracker")

	cli, err := cliex.New(cliex.WithBaseURL(config.BaseURL), cliex.WithLogger(log))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create Jira client")
	}
	cli.C().SetBasicAuth(config.Email, config.APIToken)

	return &Tracker{
		client: cli,
		config: config,
		logger: log,
	}, nil
}

// GetTicket fetches a single issue by key
func (t *Tracker) GetTicket(ctx context.Context, key string) (*model.Ticket, error) {
	apiURL := fmt.Sprintf("rest/api/2/issue/%s?fields=summary,status,issuetype,reporter", key)

	resp, err := t.client.Get(ctx, apiURL)
	if err != nil {
		return nil, errm.Wrap(err, "failed to get issue from Jira")
	}

	var issue jiraIssue
	if err := json.Unmarshal(resp.Body(), &issue); err != nil {
		return nil, errm.Wrap(err, "failed to parse Jira issue response")
	}

	return t.convertJiraIssue(&issue), nil
}

// CreateVersion creates a release version in the configured project
func (t *Tracker) CreateVersion(ctx context.Context, name string) error {
	if t.config.ProjectKey == "" {
		return errm.New("project_key is required to create a version")
	}

	body := jiraVersionRequest{
		Name:    name,
		Project: t.config.ProjectKey,
	}

	_, err := t.client.Post(ctx, "rest/api/2/version", body)
	if err != nil {
		return errm.Wrap(err, "failed to create version in Jira")
	}

	return nil
}

// AssignVersion adds the release version to the issue's fixVersions
func (t *Tracker) AssignVersion(ctx context.Context, ticketKey, version string) error {
	apiURL := fmt.Sprintf("rest/api/2/issue/%s", ticketKey)

	body := map[string]any{
		"update": map[string]any{
			"fixVersions": []map[string]any{
				{"add": map[string]string{"name": version}},
			},
		},
	}

	_, err := t.client.Put(ctx, apiURL, body)
	if err != nil {
		return errm.Wrap(err, "failed to assign version in Jira")
	}

	return nil
}

// convertJiraIssue converts a Jira issue to our model
func (t *Tracker) convertJiraIssue(issue *jiraIssue) *model.Ticket {
	return &model.Ticket{
		Key:     issue.Key,
		Summary: issue.Fields.Summary,
		Status:  issue.Fields.Status.Name,
		Type:    issue.Fields.Issuetype.Name,
		URL:     fmt.Sprintf("%s/browse/%s", t.config.BaseURL, issue.Key),
		Reporter: model.User{
			ID:    issue.Fields.Reporter.AccountID,
			Name:  issue.Fields.Reporter.DisplayName,
			Email: issue.Fields.Reporter.EmailAddress,
		},
	}
}
