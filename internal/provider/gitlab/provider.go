package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/shiplog/internal/model"
	"github.com/maxbolgarin/shiplog/internal/model/interfaces"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const (
	defaultBaseURL = "https://gitlab.com"

	tagRefPrefix = "refs/tags/"
	perPage      = 100
)

var _ interfaces.CommitProvider = (*Provider)(nil)

// Provider implements the CommitProvider interface for GitLab
type Provider struct {
	client *gitlab.Client
	config model.ProviderConfig
	logger logze.Logger
}

// New creates a new GitLab provider
func New(config model.ProviderConfig) (*Provider, error) {
	if config.Token == "" {
		return nil, errm.New("GitLab token is required")
	}
	logger := logze.With("provider", "gitlab", "component", "provider")

	baseURL := lang.Check(config.BaseURL, defaultBaseURL)

	client, err := gitlab.NewClient(config.Token, gitlab.WithBaseURL(baseURL))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create GitLab client")
	}

	return &Provider{
		client: client,
		config: config,
		logger: logger,
	}, nil
}

// GetCommitRange returns the commits of from..to, range tip first, with
// parent SHAs populated for graph reduction.
func (p *Provider) GetCommitRange(ctx context.Context, projectID, from, to string) ([]*model.Commit, error) {
	opts := &gitlab.ListCommitsOptions{
		RefName: gitlab.Ptr(fmt.Sprintf("%s..%s", from, to)),
		ListOptions: gitlab.ListOptions{
			PerPage: perPage,
			Page:    1,
		},
	}

	var result []*model.Commit
	for {
		commits, resp, err := p.client.Commits.ListCommits(projectID, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, errm.Wrap(err, "failed to list commits from GitLab")
		}

		for _, commit := range commits {
			result = append(result, p.convertGitLabCommit(commit))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	p.logger.Debug("fetched commit range", "project_id", projectID, "from", from, "to", to, "commits", len(result))

	return result, nil
}

// ValidateWebhook validates the webhook token
func (p *Provider) ValidateWebhook(payload []byte, authToken string) error {
	if p.config.WebhookSecret == "" {
		return nil // No secret configured, skip validation
	}

	if authToken != p.config.WebhookSecret {
		return errm.New("invalid webhook token")
	}

	return nil
}

// ParseWebhookEvent parses a GitLab webhook event
func (p *Provider) ParseWebhookEvent(payload []byte) (*model.TagEvent, error) {
	var gitlabPayload gitlabPayload
	if err := json.Unmarshal(payload, &gitlabPayload); err != nil {
		return nil, errm.Wrap(err, "failed to parse GitLab webhook payload")
	}

	event := &model.TagEvent{
		Type:      gitlabPayload.ObjectKind,
		ProjectID: gitlabPayload.Project.PathWithNamespace,
		Ref:       gitlabPayload.Ref,
		Tag:       strings.TrimPrefix(gitlabPayload.Ref, tagRefPrefix),
		Before:    gitlabPayload.Before,
		After:     gitlabPayload.After,
		User: model.User{
			Username: gitlabPayload.UserUsername,
			Name:     gitlabPayload.UserName,
		},
	}

	return event, nil
}

// IsTagPushEvent reports whether the event is a tag push
func (p *Provider) IsTagPushEvent(event *model.TagEvent) bool {
	return event.Type == "tag_push" && strings.HasPrefix(event.Ref, tagRefPrefix)
}

// convertGitLabCommit converts a GitLab commit to our model
func (p *Provider) convertGitLabCommit(commit *gitlab.Commit) *model.Commit {
	return &model.Commit{
		SHA:     commit.ID,
		Subject: commit.Title,
		Message: strings.TrimSpace(commit.Message),
		URL:     commit.WebURL,
		Date:    lang.Deref(commit.CommittedDate),
		Parents: commit.ParentIDs,
		Author: model.User{
			Name:  commit.AuthorName,
			Email: commit.AuthorEmail,
		},
	}
}
