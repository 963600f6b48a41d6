package app

import (
	"context"

	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/shiplog/internal/config"
	"github.com/maxbolgarin/shiplog/internal/engine"
	"github.com/maxbolgarin/shiplog/internal/model"
	"github.com/maxbolgarin/shiplog/internal/model/interfaces"
	"github.com/maxbolgarin/shiplog/internal/notifier"
	"github.com/maxbolgarin/shiplog/internal/notifier/slack"
	"github.com/maxbolgarin/shiplog/internal/provider"
	"github.com/maxbolgarin/shiplog/internal/render"
	"github.com/maxbolgarin/shiplog/internal/server"
	"github.com/maxbolgarin/shiplog/internal/service"
	"github.com/maxbolgarin/shiplog/internal/summary"
	"github.com/maxbolgarin/shiplog/internal/tracker/jira"
)

// Shiplog is the main service that orchestrates all components
type Shiplog struct {
	provider      interfaces.CommitProvider
	tracker       interfaces.TicketTracker
	service       *service.Service
	webhookServer *server.Server

	cfg config.Config
	log logze.Logger
}

// New creates a new changelog service
func New(ctx contem.Context, cfg config.Config) (*Shiplog, error) {
	app := &Shiplog{
		cfg: cfg,
		log: logze.With("component", "app"),
	}

	if err := app.init(ctx, cfg); err != nil {
		return nil, errm.Wrap(err, "failed to initialize service")
	}

	return app, nil
}

// Generate runs one changelog generation
func (s *Shiplog) Generate(ctx context.Context, req service.Request) (*service.Result, error) {
	result, err := s.service.Generate(ctx, req)
	if err != nil {
		return nil, errm.Wrap(err, "failed to generate changelog")
	}
	return result, nil
}

// StartServer starts the webhook server for serve mode
func (s *Shiplog) StartServer(ctx context.Context) error {
	if err := s.webhookServer.Start(ctx); err != nil {
		return errm.Wrap(err, "failed to start webhook server")
	}
	return nil
}

func (s *Shiplog) init(ctx contem.Context, cfg config.Config) (err error) {

	// Create VCS provider
	s.provider, err = provider.NewProvider(cfg.Provider)
	if err != nil {
		return errm.Wrap(err, "failed to create VCS provider")
	}

	// Create issue tracker client
	if err := cfg.Tracker.PrepareAndValidate(); err != nil {
		return errm.Wrap(err, "failed to validate tracker config")
	}
	s.tracker, err = jira.New(model.TrackerConfig{
		BaseURL:    cfg.Tracker.BaseURL,
		Email:      cfg.Tracker.Email,
		APIToken:   cfg.Tracker.APIToken,
		ProjectKey: cfg.Tracker.ProjectKey,
	})
	if err != nil {
		return errm.Wrap(err, "failed to create issue tracker")
	}

	// Create the commit-graph engine
	eng, err := engine.New(cfg.Changelog)
	if err != nil {
		return errm.Wrap(err, "failed to create changelog engine")
	}

	renderer, err := render.New(cfg.Render)
	if err != nil {
		return errm.Wrap(err, "failed to create renderer")
	}

	chat, err := s.initNotifier(cfg.Notifier)
	if err != nil {
		return errm.Wrap(err, "failed to create notifier")
	}

	summarizer, err := s.initSummarizer(ctx, cfg.Summary)
	if err != nil {
		return errm.Wrap(err, "failed to create summarizer")
	}

	// Create the changelog service - this is the central orchestrator
	s.service = service.New(s.provider, s.tracker, chat, summarizer, eng, renderer, cfg.Tracker)

	// Create webhook server - just an event source
	s.webhookServer, err = server.New(cfg.Server, s.provider, s.service)
	if err != nil {
		return errm.Wrap(err, "failed to create webhook server")
	}
	ctx.Add(s.webhookServer.Stop)

	return nil
}

func (s *Shiplog) initNotifier(cfg notifier.Config) (interfaces.Notifier, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, nil
	}
	return slack.New(cfg.Token, cfg.Channel)
}

func (s *Shiplog) initSummarizer(ctx context.Context, cfg summary.Config) (interfaces.Summarizer, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	return summary.New(ctx, cfg)
}

// LoadConfig loads the application configuration
func LoadConfig(path string) (config.Config, error) {
	return config.Load(path)
}
