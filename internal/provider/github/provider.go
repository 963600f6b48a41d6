package github

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/shiplog/internal/model"
	"github.com/maxbolgarin/shiplog/internal/model/interfaces"
	"golang.org/x/oauth2"
)

const (
	tagRefPrefix = "refs/tags/"
	perPage      = 100
)

var _ interfaces.CommitProvider = (*Provider)(nil)

// Provider implements the CommitProvider interface for GitHub
type Provider struct {
	client *github.Client
	config model.ProviderConfig
	logger logze.Logger
}

// New creates a new GitHub provider
func New(config model.ProviderConfig) (*Provider, error) {
	if config.Token == "" {
		return nil, errm.New("GitHub token is required")
	}
	logger := logze.With("provider", "github", "component", "provider")

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: config.Token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	client := github.NewClient(tc)
	if config.BaseURL != "" {
		var err error
		client, err = github.NewClient(tc).WithEnterpriseURLs(config.BaseURL, config.BaseURL)
		if err != nil {
			return nil, errm.Wrap(err, "failed to create GitHub Enterprise client")
		}
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
	owner, repo, err := splitProjectID(projectID)
	if err != nil {
		return nil, err
	}

	opts := &github.ListOptions{PerPage: perPage}

	var result []*model.Commit
	for {
		comparison, resp, err := p.client.Repositories.CompareCommits(ctx, owner, repo, from, to, opts)
		if err != nil {
			return nil, errm.Wrap(err, "failed to compare commits on GitHub")
		}

		for _, commit := range comparison.Commits {
			result = append(result, p.convertGitHubCommit(commit))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	// GitHub returns the comparison oldest first, the engine expects the
	// range tip at the head.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	p.logger.Debug("fetched commit range", "project_id", projectID, "from", from, "to", to, "commits", len(result))

	return result, nil
}

// ValidateWebhook validates the webhook HMAC signature
func (p *Provider) ValidateWebhook(payload []byte, signature string) error {
	if p.config.WebhookSecret == "" {
		return nil // No secret configured, skip validation
	}

	mac := hmac.New(sha256.New, []byte(p.config.WebhookSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	cleanSignature := strings.TrimPrefix(signature, "sha256=")

	if !hmac.Equal([]byte(expected), []byte(cleanSignature)) {
		return errm.New("GitHub webhook signature verification failed")
	}

	return nil
}

// ParseWebhookEvent parses a GitHub push webhook event
func (p *Provider) ParseWebhookEvent(payload []byte) (*model.TagEvent, error) {
	var githubPayload githubPayload
	if err := json.Unmarshal(payload, &githubPayload); err != nil {
		return nil, errm.Wrap(err, "failed to parse GitHub webhook payload")
	}

	event := &model.TagEvent{
		Type:      "push",
		ProjectID: githubPayload.Repository.FullName,
		Ref:       githubPayload.Ref,
		Tag:       strings.TrimPrefix(githubPayload.Ref, tagRefPrefix),
		Before:    githubPayload.Before,
		After:     githubPayload.After,
		User: model.User{
			Username: githubPayload.Sender.Login,
		},
	}

	return event, nil
}

// IsTagPushEvent reports whether the event is a tag push
func (p *Provider) IsTagPushEvent(event *model.TagEvent) bool {
	return strings.HasPrefix(event.Ref, tagRefPrefix)
}

// convertGitHubCommit converts a GitHub commit to our model
func (p *Provider) convertGitHubCommit(commit *github.RepositoryCommit) *model.Commit {
	message := strings.TrimSpace(commit.GetCommit().GetMessage())
	subject, _, _ := strings.Cut(message, "\n")

	parents := make([]string, 0, len(commit.Parents))
	for _, parent := range commit.Parents {
		parents = append(parents, parent.GetSHA())
	}

	return &model.Commit{
		SHA:     commit.GetSHA(),
		Subject: strings.TrimSpace(subject),
		Message: message,
		URL:     commit.GetHTMLURL(),
		Date:    commit.GetCommit().GetAuthor().GetDate().Time,
		Parents: parents,
		Author: model.User{
			Name:  commit.GetCommit().GetAuthor().GetName(),
			Email: commit.GetCommit().GetAuthor().GetEmail(),
		},
	}
}

func splitProjectID(projectID string) (string, string, error) {
	parts := strings.Split(projectID, "/")
	if len(parts) != 2 {
		return "", "", errm.New("invalid GitHub project ID format, expected 'owner/repo'")
	}
	return parts[0], parts[1], nil
}
