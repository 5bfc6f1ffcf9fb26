// Package poller runs the background feed-fetch loop: periodic polling
// of every configured source, per-source retry with exponential backoff,
// cross-feed deduplication, and delivery of display-ready batches to the
// ticker over a single-slot channel.
//
// Uses context cancellation as the ONLY stop mechanism.
package poller

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/tickerd/internal/config"
	"github.com/abelbrown/tickerd/internal/feeds"
	"github.com/abelbrown/tickerd/internal/logging"
)

// maxConcurrentFetches limits parallel fetch operations.
const maxConcurrentFetches = 5

// poolSize bounds the rolling pool of headlines batches are drawn from.
// The pool lets quiet news cycles keep a full ticker: a cycle with no
// genuinely new entries still delivers the recent ones.
const poolSize = 100

// fetcher is satisfied by *fetch.Fetcher; an interface for testing.
type fetcher interface {
	Fetch(ctx context.Context, src config.Source) ([]feeds.Item, error)
}

// shownMemory is satisfied by *memory.Memory. Optional (nil disables
// cross-session down-ranking).
type shownMemory interface {
	RecentlyShown(url string) bool
}

// sourceState tracks per-source failure history. Owned by the poll
// goroutine; no locking needed.
type sourceState struct {
	src          config.Source
	consecErrors int
	lastErr      error
}

// Poller is the producer side of the ticker.
type Poller struct {
	cfg     *config.Config
	fetcher fetcher
	memory  shownMemory
	window  *feeds.Window
	states  []*sourceState

	pool     []feeds.Item
	poolKeys map[feeds.Key]struct{}

	out   chan feeds.Batch
	cycle int
	wg    sync.WaitGroup
}

// New creates a Poller for the configured sources. The sources slice in
// cfg is treated as immutable.
func New(cfg *config.Config, f fetcher, mem shownMemory) *Poller {
	states := make([]*sourceState, len(cfg.Sources))
	for i, src := range cfg.Sources {
		states[i] = &sourceState{src: src}
	}
	return &Poller{
		cfg:      cfg,
		fetcher:  f,
		memory:   mem,
		window:   feeds.NewWindow(cfg.DedupCycles),
		states:   states,
		poolKeys: make(map[feeds.Key]struct{}),
		out:      make(chan feeds.Batch, 1),
	}
}

// Batches returns the hand-off channel the display loop drains.
// Delivery is drop-oldest: when the slot is full the pending batch is
// discarded in favor of the new one.
func (p *Poller) Batches() <-chan feeds.Batch {
	return p.out
}

// Start begins background polling: an immediate first cycle, then one
// every cfg.PollInterval until ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		p.pollCycle(ctx)

		ticker := time.NewTicker(p.cfg.PollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.pollCycle(ctx)
			}
		}
	}()
}

// Wait blocks until the poll goroutine exits. Call after cancelling the
// context passed to Start.
func (p *Poller) Wait() {
	p.wg.Wait()
}

// pollCycle fetches every source concurrently, merges the survivors into
// the pool, and delivers a fresh batch.
func (p *Poller) pollCycle(ctx context.Context) {
	p.cycle++
	start := time.Now()

	results := make([][]feeds.Item, len(p.states))

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)
	for i, state := range p.states {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			results[i] = p.fetchWithRetry(ctx, state)
			return nil // errors are per-source, never fail the group
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		return
	}

	// Merge this cycle's successes in configured source order, then drop
	// stories already seen this cycle or in the recent dedup window.
	var merged []feeds.Item
	succeeded := 0
	for _, items := range results {
		if items != nil {
			succeeded++
			merged = append(merged, items...)
		}
	}
	fresh := p.window.Filter(merged)
	p.addToPool(fresh)

	logging.Info("poll cycle complete",
		"cycle", p.cycle,
		"sources_ok", succeeded,
		"sources_total", len(p.states),
		"new_items", len(fresh),
		"pool", len(p.pool),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	items := p.selectForDisplay()
	if len(items) == 0 {
		// Nothing to show yet (e.g. every source failed at startup).
		// Keep whatever batch the display side already has.
		return
	}
	p.deliver(feeds.Batch{Cycle: p.cycle, Items: items})
}

// fetchWithRetry attempts one source up to cfg.RetryAttempts times with
// exponential backoff between attempts. Returns nil when the source
// failed this cycle; it will be retried next cycle.
func (p *Poller) fetchWithRetry(ctx context.Context, state *sourceState) []feeds.Item {
	var lastErr error

	for attempt := 1; attempt <= p.cfg.RetryAttempts; attempt++ {
		fetchCtx, cancel := context.WithTimeout(ctx, p.cfg.FetchTimeout)
		items, err := p.fetcher.Fetch(fetchCtx, state.src)
		cancel()

		if err == nil {
			state.consecErrors = 0
			state.lastErr = nil
			logging.Debug("fetched source", "source", state.src.Name, "items", len(items))
			return items
		}
		if ctx.Err() != nil {
			return nil
		}

		lastErr = err
		logging.Warn("fetch attempt failed",
			"source", state.src.Name, "attempt", attempt, "error", err)

		if attempt == p.cfg.RetryAttempts {
			break
		}
		if !sleepCtx(ctx, BackoffDelay(p.cfg.RetryBase, p.cfg.RetryMax, attempt)) {
			return nil
		}
	}

	// Attempt ceiling reached; skip this source until the next cycle.
	state.consecErrors++
	state.lastErr = lastErr
	logging.Error("source failed this cycle",
		"source", state.src.Name,
		"consecutive_cycles", state.consecErrors,
		"error", lastErr)
	return nil
}

// BackoffDelay returns the delay before retry attempt+1 after `attempt`
// consecutive failures: base doubled per failure, capped at max.
// Non-decreasing in attempt.
func BackoffDelay(base, max time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= max {
			return max
		}
	}
	if d > max {
		return max
	}
	return d
}

// sleepCtx sleeps for d, returning false if ctx was cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// addToPool appends genuinely new items, evicting the oldest beyond
// poolSize.
func (p *Poller) addToPool(items []feeds.Item) {
	for _, item := range items {
		k := feeds.KeyFor(item)
		if _, ok := p.poolKeys[k]; ok {
			continue
		}
		p.poolKeys[k] = struct{}{}
		p.pool = append(p.pool, item)
	}
	if excess := len(p.pool) - poolSize; excess > 0 {
		for _, old := range p.pool[:excess] {
			delete(p.poolKeys, feeds.KeyFor(old))
		}
		p.pool = append([]feeds.Item(nil), p.pool[excess:]...)
	}
}

// selectForDisplay orders the pool for the ticker: headlines not shown
// in recent sessions first, then round-robin interleaved by source and
// capped at MaxHeadlines.
func (p *Poller) selectForDisplay() []feeds.Item {
	if len(p.pool) == 0 {
		return nil
	}

	ordered := p.pool
	if p.memory != nil {
		unseen := make([]feeds.Item, 0, len(p.pool))
		var seen []feeds.Item
		for _, item := range p.pool {
			if p.memory.RecentlyShown(item.URL) {
				seen = append(seen, item)
			} else {
				unseen = append(unseen, item)
			}
		}
		ordered = append(unseen, seen...)
	}

	return feeds.Interleave(ordered, p.cfg.MaxHeadlines)
}

// deliver places the batch on the hand-off channel without ever blocking
// on the display loop: a full slot means the pending batch is stale, so
// it is dropped in favor of the new one. Freshness beats completeness.
func (p *Poller) deliver(batch feeds.Batch) {
	select {
	case p.out <- batch:
		return
	default:
	}

	// Slot full: discard the pending batch, then try once more. The
	// second send can only lose to a concurrent consumer, in which case
	// the slot is free.
	select {
	case <-p.out:
	default:
	}
	select {
	case p.out <- batch:
	default:
	}
}

// SourceErrors returns the current consecutive-cycle failure count per
// source name. For status display and tests.
func (p *Poller) SourceErrors() map[string]int {
	out := make(map[string]int, len(p.states))
	for _, s := range p.states {
		out[s.src.Name] = s.consecErrors
	}
	return out
}
