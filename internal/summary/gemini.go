package summary

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/shiplog/internal/model/interfaces"
	"google.golang.org/genai"
)

const systemPrompt = `You are a release manager. Given a changelog, write a short ` +
	`"highlights" paragraph (3-4 sentences, no headings, no lists) for a team chat ` +
	`announcement. Mention the most user-visible changes first.`

var _ interfaces.Summarizer = (*Summarizer)(nil)

// Summarizer generates a highlights paragraph for a changelog via the
// Gemini API.
type Summarizer struct {
	client *genai.Client
	config Config
	logger logze.Logger
}

// New creates a new Gemini summarizer
func New(ctx context.Context, cfg Config) (*Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, erro.New("Gemini API key is required")
	}
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	transport := &http.Transport{}
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, erro.Wrap(err, "failed to parse proxy URL")
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Transport: transport,
		},
	})
	if err != nil {
		return nil, erro.Wrap(err, "failed to create Gemini client")
	}

	return &Summarizer{
		client: client,
		config: cfg,
		logger: logze.With("component", "summary"),
	}, nil
}

// Summarize generates a highlights paragraph for the rendered changelog.
func (s *Summarizer) Summarize(ctx context.Context, changelog string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType:  "text/plain",
		Temperature:       &s.config.Temperature,
		MaxOutputTokens:   int32(s.config.MaxTokens),
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
	}

	result, err := s.client.Models.GenerateContent(ctx,
		s.config.Model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: changelog}}}},
		config,
	)
	if err != nil {
		return "", s.handleAPIError(err)
	}

	var content string
	if len(result.Candidates) > 0 {
		candidate := result.Candidates[0]
		if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
			content = candidate.Content.Parts[0].Text
		}
	}

	return strings.TrimSpace(content), nil
}

// handleAPIError maps common API failures to readable errors
func (s *Summarizer) handleAPIError(err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "429"):
		return erro.New("rate limit exceeded")
	case strings.Contains(errStr, "401") || strings.Contains(errStr, "403"):
		return erro.New("authentication failed")
	case strings.Contains(errStr, "503"):
		return erro.New("Gemini API service unavailable")
	default:
		return erro.Wrap(err, "Gemini API error")
	}
}
