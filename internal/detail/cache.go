package detail

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"coinScope/internal/gecko"
	"coinScope/internal/model"
)

// Fetcher loads one detail record. *gecko.Client implements it.
type Fetcher interface {
	GetCoinDetail(ctx context.Context, id model.AssetID) (*model.CoinDetail, error)
}

// Cache holds per-asset detail entries and drives their fetch lifecycle.
type Cache struct {
	fetcher Fetcher
	logger  *zap.Logger
	now     func() time.Time

	maxAge     time.Duration
	staleGuard bool

	mu      sync.Mutex
	entries map[model.AssetID]Entry
	seq     map[model.AssetID]uint64
	// latest is the sequence whose response may be applied. It trails seq
	// when the newest request was cancelled while older ones still run.
	latest  map[model.AssetID]uint64
	pending map[model.AssetID]map[uint64]struct{}
	// settled is the last non-loading status and error of each entry.
	settled map[model.AssetID]Entry
}

// Option configures a Cache.
type Option func(*Cache)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock replaces time.Now for LastUpdated stamps and freshness checks.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithMaxAge sets how long data counts as fresh for Ensure. Zero means forever.
func WithMaxAge(d time.Duration) Option {
	return func(c *Cache) {
		c.maxAge = d
	}
}

// WithStaleGuard toggles discarding of out-of-order responses. It is on by
// default, so a response only lands if no newer request for the same id is
// still outstanding. Passing false restores last-writer-wins: the last
// response to arrive wins, even if it belongs to an older request.
func WithStaleGuard(enabled bool) Option {
	return func(c *Cache) {
		c.staleGuard = enabled
	}
}

func NewCache(fetcher Fetcher, opts ...Option) *Cache {
	c := &Cache{
		fetcher:    fetcher,
		logger:     zap.NewNop(),
		now:        time.Now,
		staleGuard: true,
		entries:    make(map[model.AssetID]Entry),
		seq:        make(map[model.AssetID]uint64),
		latest:     make(map[model.AssetID]uint64),
		pending:    make(map[model.AssetID]map[uint64]struct{}),
		settled:    make(map[model.AssetID]Entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the entry for id. Ids never requested read as StatusIdle.
func (c *Cache) Get(id model.AssetID) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entryLocked(id)
}

// Snapshot returns a copy of all entries.
func (c *Cache) Snapshot() map[model.AssetID]Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[model.AssetID]Entry, len(c.entries))
	for id, e := range c.entries {
		out[id] = e
	}
	return out
}

// Ensure fetches id unless the cache already holds fresh data for it, in
// which case the returned task is already complete.
func (c *Cache) Ensure(ctx context.Context, id model.AssetID) *Task {
	c.mu.Lock()
	e := c.entryLocked(id)
	if e.Fresh(c.now(), c.maxAge) {
		c.mu.Unlock()
		return completedTask(id, e)
	}
	c.mu.Unlock()
	return c.Request(ctx, id)
}

// Request always starts a new fetch for id. The entry moves to
// StatusLoading immediately, keeping any previous data.
func (c *Cache) Request(ctx context.Context, id model.AssetID) *Task {
	c.mu.Lock()
	c.seq[id]++
	task := newTask(ctx, id, c.seq[id])
	c.latest[id] = task.seq
	if c.pending[id] == nil {
		c.pending[id] = make(map[uint64]struct{})
	}
	c.pending[id][task.seq] = struct{}{}
	e := c.entryLocked(id)
	if e.Status != StatusLoading {
		c.settled[id] = Entry{Status: e.Status, Err: e.Err}
	}
	e.Status = StatusLoading
	e.Err = ""
	c.entries[id] = e
	c.mu.Unlock()

	c.logger.Debug("detail request", zap.String("id", id.String()), zap.Uint64("seq", task.seq), zap.String("task", task.ID.String()))

	go func() {
		detail, err := c.fetcher.GetCoinDetail(task.ctx, id)
		c.complete(task, detail, err)
	}()

	return task
}

func (c *Cache) complete(task *Task, detail *model.CoinDetail, fetchErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := task.AssetID
	latest := c.latest[id] == task.seq
	delete(c.pending[id], task.seq)
	e := c.entryLocked(id)

	if task.ctx.Err() != nil {
		if latest {
			c.handBack(id)
		}
		task.finish(c.entryLocked(id), ErrCanceled)
		return
	}

	if c.staleGuard && !latest {
		c.logger.Debug("discard stale detail response",
			zap.String("id", id.String()),
			zap.Uint64("seq", task.seq),
			zap.Uint64("latest", c.latest[id]),
		)
		task.finish(e, ErrStale)
		return
	}
	if len(c.pending[id]) == 0 {
		delete(c.pending, id)
	}

	if fetchErr == nil && detail == nil {
		fetchErr = gecko.ErrMalformedResponse
	}

	if fetchErr != nil {
		msg := gecko.APIMessage(fetchErr)
		if msg == "" {
			msg = DefaultErrorMessage
		}
		e.Status = StatusFailed
		e.Err = msg
		c.entries[id] = e
		c.settled[id] = Entry{Status: e.Status, Err: e.Err}
		c.logger.Warn("detail fetch failed", zap.String("id", id.String()), zap.Error(fetchErr))
		task.finish(e, fetchErr)
		return
	}

	e = Entry{
		Data:        detail,
		Status:      StatusSucceeded,
		LastUpdated: c.now(),
	}
	c.entries[id] = e
	c.settled[id] = Entry{Status: e.Status}
	task.finish(e, nil)
}

// handBack runs after the latest request for id was cancelled. The newest
// request still in flight becomes the one allowed to land; with none left
// the entry returns to its last settled status. Must hold c.mu.
func (c *Cache) handBack(id model.AssetID) {
	var newest uint64
	for seq := range c.pending[id] {
		if seq > newest {
			newest = seq
		}
	}
	if newest > 0 {
		c.latest[id] = newest
		return
	}
	delete(c.pending, id)

	e := c.entryLocked(id)
	if e.Status != StatusLoading {
		return
	}
	prev, ok := c.settled[id]
	if !ok {
		prev = Entry{Status: StatusIdle}
	}
	e.Status = prev.Status
	e.Err = prev.Err
	c.entries[id] = e
}

func (c *Cache) entryLocked(id model.AssetID) Entry {
	e, ok := c.entries[id]
	if !ok {
		return Entry{Status: StatusIdle}
	}
	return e
}
