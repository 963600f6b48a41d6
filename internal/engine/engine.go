package engine

import (
	"regexp"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/shiplog/internal/model"
)

const defaultTicketPattern = `([A-Z][A-Z0-9]+-\d+)`

// Config represents changelog engine configuration
type Config struct {
	TicketPattern    string   `yaml:"ticket_pattern" env:"CHANGELOG_TICKET_PATTERN"`
	ApprovalStatuses []string `yaml:"approval_statuses" env:"CHANGELOG_APPROVAL_STATUSES"`
	IncludeTypes     []string `yaml:"include_types" env:"CHANGELOG_INCLUDE_TYPES"`
	ExcludeTypes     []string `yaml:"exclude_types" env:"CHANGELOG_EXCLUDE_TYPES"`
}

func (c *Config) PrepareAndValidate() error {
	c.TicketPattern = lang.Check(c.TicketPattern, defaultTicketPattern)
	if _, err := regexp.Compile("(?i)" + c.TicketPattern); err != nil {
		return errm.Wrap(err, "invalid ticket pattern")
	}
	return nil
}

// Engine holds the commit-graph reduction and revert-resolution pipeline.
// All of its stages are pure in-memory transformations, they never block
// and never perform I/O.
type Engine struct {
	cfg       Config
	extractor *KeyExtractor
	log       logze.Logger
}

// New creates a new changelog engine
func New(cfg Config) (*Engine, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "failed to prepare and validate config")
	}

	extractor, err := NewKeyExtractor(cfg.TicketPattern)
	if err != nil {
		return nil, errm.Wrap(err, "failed to create key extractor")
	}

	return &Engine{
		cfg:       cfg,
		extractor: extractor,
		log:       logze.With("component", "engine"),
	}, nil
}

// Extractor returns the configured ticket key extractor.
func (e *Engine) Extractor() *KeyExtractor {
	return e.extractor
}

// Process runs the reduction pipeline over the raw reverse-chronological
// commit list: revert detection, graph reduction, message consolidation
// and commit-level revert collapse. The result is the flat list of
// surviving top-level commits.
func (e *Engine) Process(commits []*model.Commit) ([]*model.Commit, error) {
	e.DetectReverts(commits)

	top, err := e.Reduce(commits)
	if err != nil {
		return nil, errm.Wrap(err, "failed to reduce commit graph")
	}

	e.Consolidate(top)

	resolved := e.Resolve(top)

	e.log.Debug("processed commit range",
		"raw_commits", len(commits),
		"top_level", len(top),
		"after_revert_collapse", len(resolved),
	)

	return resolved, nil
}
