package service

import (
	"context"
	"strings"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/shiplog/internal/engine"
	"github.com/maxbolgarin/shiplog/internal/model"
	"github.com/maxbolgarin/shiplog/internal/model/interfaces"
	"github.com/maxbolgarin/shiplog/internal/render"
	"github.com/maxbolgarin/shiplog/internal/tracker"
)

// Service runs one changelog generation end to end: fetch commits,
// reduce the graph, attach tickets, assemble, render, and optionally
// post the result and tag the tickets with a release version.
type Service struct {
	provider   interfaces.CommitProvider
	tracker    interfaces.TicketTracker
	notifier   interfaces.Notifier
	summarizer interfaces.Summarizer
	engine     *engine.Engine
	renderer   *render.Renderer

	trackerCfg tracker.Config
	log        logze.Logger
}

// Request describes one changelog run.
type Request struct {
	ProjectID string
	From      string
	To        string
	Release   string // version to create and assign, empty to skip
	Post      bool   // post the rendered changelog to chat
}

// Result carries the assembled changelog and its rendered text.
type Result struct {
	Changelog *model.Changelog
	Text      string
}

// New creates a new changelog service. Notifier and summarizer are
// optional and may be nil.
func New(
	provider interfaces.CommitProvider,
	ticketTracker interfaces.TicketTracker,
	notifier interfaces.Notifier,
	summarizer interfaces.Summarizer,
	eng *engine.Engine,
	renderer *render.Renderer,
	trackerCfg tracker.Config,
) *Service {
	return &Service{
		provider:   provider,
		tracker:    ticketTracker,
		notifier:   notifier,
		summarizer: summarizer,
		engine:     eng,
		renderer:   renderer,
		trackerCfg: trackerCfg,
		log:        logze.With("component", "service"),
	}
}

// Generate runs the full changelog pipeline for one commit range.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	log := s.log.WithFields(
		"project_id", req.ProjectID,
		"from", req.From,
		"to", req.To,
		"release", req.Release,
	)
	timer := abstract.StartTimer()

	log.Info("starting changelog generation")

	raw, err := s.provider.GetCommitRange(ctx, req.ProjectID, req.From, req.To)
	if err != nil {
		return nil, errm.Wrap(err, "failed to fetch commit range")
	}

	commits, err := s.engine.Process(raw)
	if err != nil {
		return nil, errm.Wrap(err, "failed to process commits")
	}

	fetcher, err := tracker.NewFetcher(s.tracker, s.engine.Extractor(), s.trackerCfg)
	if err != nil {
		return nil, errm.Wrap(err, "failed to create ticket fetcher")
	}
	defer fetcher.Close()

	if err := fetcher.PopulateTickets(ctx, commits); err != nil {
		return nil, errm.Wrap(err, "failed to populate tickets")
	}

	s.engine.FilterTicketTypes(commits)
	s.resolveChatUsers(ctx, commits)

	changelog := s.engine.Assemble(commits)
	changelog.Release = req.Release

	if s.summarizer != nil {
		s.generateHighlights(ctx, changelog, log)
	}

	text, err := s.renderer.Render(changelog)
	if err != nil {
		return nil, errm.Wrap(err, "failed to render changelog")
	}

	if req.Release != "" {
		s.tagRelease(ctx, changelog, req.Release, log)
	}

	if req.Post && s.notifier != nil {
		if err := s.notifier.PostMessage(ctx, text); err != nil {
			log.Error("failed to post changelog to chat", "error", err)
		}
	}

	log.Info("changelog generated",
		"raw_commits", len(raw),
		"commits", len(commits),
		"tickets", len(changelog.Tickets.All),
		"elapsed_time", timer.ElapsedTime().String(),
	)

	return &Result{Changelog: changelog, Text: text}, nil
}

// HandleTagEvent runs changelog generation for a pushed tag.
func (s *Service) HandleTagEvent(ctx context.Context, event *model.TagEvent) error {
	if isZeroHash(event.Before) {
		s.log.Warn("tag push without a previous revision, skipping", "tag", event.Tag)
		return nil
	}

	_, err := s.Generate(ctx, Request{
		ProjectID: event.ProjectID,
		From:      event.Before,
		To:        event.After,
		Release:   event.Tag,
		Post:      true,
	})
	return err
}

// resolveChatUsers looks up the chat handle of every distinct ticket
// reporter. A failed lookup only means the ticket ships without one.
func (s *Service) resolveChatUsers(ctx context.Context, commits []*model.Commit) {
	if s.notifier == nil {
		return
	}

	seen := make(map[string]struct{})
	for _, c := range commits {
		for _, t := range c.Tickets {
			if _, ok := seen[t.Key]; ok {
				continue
			}
			seen[t.Key] = struct{}{}

			user, err := s.notifier.LookupUser(ctx, t.Reporter.Email)
			if err != nil {
				s.log.Debug("failed to resolve chat user", "key", t.Key, "email", t.Reporter.Email, "error", err)
				continue
			}
			t.SlackUser = user
		}
	}
}

// generateHighlights asks the summarizer for a highlights paragraph over
// a preliminary rendering. Failure is non-fatal: the changelog ships
// without highlights.
func (s *Service) generateHighlights(ctx context.Context, changelog *model.Changelog, log logze.Logger) {
	preliminary, err := s.renderer.Render(changelog)
	if err != nil {
		log.Error("failed to render changelog for highlights", "error", err)
		return
	}

	highlights, err := s.summarizer.Summarize(ctx, preliminary)
	if err != nil {
		log.Error("failed to generate highlights", "error", err)
		return
	}
	changelog.Highlights = highlights
}

// tagRelease creates the release version and assigns it to every
// unreverted ticket. Errors are reported but do not fail the run.
func (s *Service) tagRelease(ctx context.Context, changelog *model.Changelog, release string, log logze.Logger) {
	if err := s.tracker.CreateVersion(ctx, release); err != nil {
		log.Error("failed to create release version", "release", release, "error", err)
	}

	for _, t := range changelog.Tickets.All {
		if t.Reverted != "" {
			continue
		}
		if err := s.tracker.AssignVersion(ctx, t.Key, release); err != nil {
			log.Error("failed to assign release version", "key", t.Key, "release", release, "error", err)
		}
	}
}

func isZeroHash(hash string) bool {
	return hash == "" || strings.Trim(hash, "0") == ""
}
