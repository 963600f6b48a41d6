package server

import (
	"context"
	"net/http"

	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/servex/v2"
	"github.com/maxbolgarin/shiplog/internal/model/interfaces"
	"github.com/maxbolgarin/shiplog/internal/service"
	"github.com/panjf2000/ants/v2"
)

// Server handles webhook requests from VCS providers: a tag push
// triggers a changelog run for the pushed range.
type Server struct {
	provider interfaces.CommitProvider
	service  *service.Service
	config   Config
	log      logze.Logger
	server   *servex.Server
	pool     *ants.Pool
}

// New creates a new webhook server
func New(cfg Config, provider interfaces.CommitProvider, svc *service.Service) (*Server, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	log := logze.With("module", "server")

	srv, err := servex.NewServer(
		servex.WithReadTimeout(cfg.Timeout),
		servex.WithIdleTimeout(cfg.Timeout*2),
		servex.WithLogger(log),
		servex.WithHealthEndpoint(),
		servex.WithDefaultMetrics(),
		servex.WithCertificate(cfg.Certificate),
	)
	if err != nil {
		return nil, erro.Wrap(err, "failed to create server")
	}

	pool, err := ants.NewPool(cfg.PoolSize)
	if err != nil {
		return nil, erro.Wrap(err, "failed to create ants pool")
	}

	h := &Server{
		provider: provider,
		service:  svc,
		config:   cfg,
		log:      log,
		server:   srv,
		pool:     pool,
	}

	srv.HandleFunc(cfg.Endpoint, h.handleWebhook)

	return h, nil
}

// Start starts the webhook server
func (h *Server) Start(ctx context.Context) error {
	if h.config.EnableHTTPS {
		return h.server.StartHTTPS(h.config.Address)
	}
	return h.server.StartHTTP(h.config.Address)
}

// Stop stops the webhook server
func (h *Server) Stop(ctx context.Context) error {
	h.pool.Release()
	return h.server.Shutdown(ctx)
}

// handleWebhook handles incoming webhook requests
func (h *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)

	body, err := ctx.Read()
	if err != nil {
		ctx.BadRequest(err, "failed to read webhook body")
		return
	}

	// Get token from headers (provider-specific)
	token := h.getAuthFromHeaders(r)

	if err := h.provider.ValidateWebhook(body, token); err != nil {
		ctx.Unauthorized(err, "webhook validation failed")
		return
	}

	event, err := h.provider.ParseWebhookEvent(body)
	if err != nil {
		ctx.BadRequest(err, "failed to parse webhook event")
		return
	}

	if !h.provider.IsTagPushEvent(event) {
		h.log.Debug("ignoring non-tag push event", "type", event.Type, "ref", event.Ref)
		ctx.Response(http.StatusOK)
		return
	}

	err = h.pool.Submit(func() {
		if err := h.service.HandleTagEvent(context.Background(), event); err != nil {
			h.log.Error("failed to handle tag event", "tag", event.Tag, "error", err)
		}
	})
	if err != nil {
		ctx.InternalServerError(err, "failed to schedule changelog run")
		return
	}

	ctx.Response(http.StatusOK)
}

func (h *Server) getAuthFromHeaders(r *http.Request) string {
	if token := r.Header.Get("X-Gitlab-Token"); token != "" {
		return token
	}
	return r.Header.Get("X-Hub-Signature-256")
}
