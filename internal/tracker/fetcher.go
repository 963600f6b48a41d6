package tracker

import (
	"context"
	"sync"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/shiplog/internal/engine"
	"github.com/maxbolgarin/shiplog/internal/model"
	"github.com/maxbolgarin/shiplog/internal/model/interfaces"
	"github.com/panjf2000/ants/v2"
	"golang.org/x/time/rate"
)

// Fetcher populates commit records with the tickets their messages
// reference. Each distinct key triggers exactly one tracker request per
// run: the cache and the rate limiter are scoped to the fetcher
// instance, never shared between runs.
type Fetcher struct {
	tracker   interfaces.TicketTracker
	extractor *engine.KeyExtractor
	pool      *ants.Pool
	limiter   *rate.Limiter
	cache     *abstract.SafeMap[string, *model.Ticket]
	log       logze.Logger
}

// NewFetcher creates a new ticket fetcher for one changelog run
func NewFetcher(tracker interfaces.TicketTracker, extractor *engine.KeyExtractor, cfg Config) (*Fetcher, error) {
	pool, err := ants.NewPool(cfg.PoolSize)
	if err != nil {
		return nil, errm.Wrap(err, "failed to create ants pool")
	}

	return &Fetcher{
		tracker:   tracker,
		extractor: extractor,
		pool:      pool,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		cache:     abstract.NewSafeMap[string, *model.Ticket](),
		log:       logze.With("component", "fetcher"),
	}, nil
}

// Close releases the worker pool.
func (f *Fetcher) Close() {
	f.pool.Release()
}

// PopulateTickets extracts ticket keys from every commit message and
// attaches the fetched ticket objects. A failed fetch is logged and the
// ticket omitted, the run continues.
func (f *Fetcher) PopulateTickets(ctx context.Context, commits []*model.Commit) error {
	keysPerCommit := make([][]string, len(commits))
	seen := make(map[string]struct{})
	var distinct []string

	for i, c := range commits {
		keys := f.extractor.Extract(c.Message)
		keysPerCommit[i] = keys
		for _, key := range keys {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			distinct = append(distinct, key)
		}
	}

	var wg sync.WaitGroup
	for _, key := range distinct {
		wg.Add(1)
		err := f.pool.Submit(func() {
			defer wg.Done()
			f.fetchTicket(ctx, key)
		})
		if err != nil {
			wg.Done()
			return errm.Wrap(err, "failed to submit ticket fetch")
		}
	}
	wg.Wait()

	for i, c := range commits {
		for _, key := range keysPerCommit[i] {
			if ticket := f.cache.Get(key); ticket != nil {
				c.Tickets = append(c.Tickets, ticket)
			}
		}
	}

	return nil
}

func (f *Fetcher) fetchTicket(ctx context.Context, key string) {
	if f.cache.Get(key) != nil {
		return
	}

	if err := f.limiter.Wait(ctx); err != nil {
		f.log.Error("rate limiter interrupted", "key", key, "error", err)
		return
	}

	ticket, err := f.tracker.GetTicket(ctx, key)
	if err != nil {
		f.log.Error("failed to fetch ticket, omitting", "key", key, "error", err)
		return
	}

	f.cache.Set(key, ticket)
}
