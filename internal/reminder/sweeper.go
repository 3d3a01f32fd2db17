package reminder

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/crm-api/internal/platform/rediscache"
)

// DefaultSweepInterval is how often the sweep runs when the config does
// not override it.
const DefaultSweepInterval = 5 * time.Minute

// NotifyFunc receives a due reminder. The default sink logs it; tests
// and alternative alerting hook in here. Firing is fire-and-forget.
type NotifyFunc func(title, dueDate string)

// Sweeper periodically drains due entries from the reminder set. It is
// an in-process recurring task: Start is idempotent (a second Start
// replaces the previous schedule, guarding against double registration
// after a restart), one failed sweep never stops the schedule, and the
// first sweep runs immediately on Start.
type Sweeper struct {
	cache    *rediscache.Cache
	interval time.Duration
	notify   NotifyFunc
	logger   *slog.Logger
	timeFunc func() time.Time // injectable for testing

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// SweeperOption customizes a Sweeper.
type SweeperOption func(*Sweeper)

// WithNotify overrides the notification sink.
func WithNotify(fn NotifyFunc) SweeperOption {
	return func(s *Sweeper) { s.notify = fn }
}

// WithTimeFunc overrides the clock, for tests.
func WithTimeFunc(fn func() time.Time) SweeperOption {
	return func(s *Sweeper) { s.timeFunc = fn }
}

// NewSweeper creates a sweeper over the given cache handle. A zero
// interval falls back to DefaultSweepInterval.
func NewSweeper(cache *rediscache.Cache, interval time.Duration, logger *slog.Logger, opts ...SweeperOption) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	s := &Sweeper{
		cache:    cache,
		interval: interval,
		logger:   logger.With(slog.String("component", "reminder_sweeper")),
		timeFunc: time.Now,
	}
	s.notify = func(title, dueDate string) {
		s.logger.Info("reminder due", "title", title, "due_date", dueDate)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start registers the recurring sweep and runs one sweep immediately.
// Calling Start while a schedule is active stops the old schedule
// first, so a restart never ends up with two concurrent sweeps.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.wg.Wait()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("initial reminder sweep failed", "error", err)
	}

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("reminder sweeper started", "interval", s.interval.String())
}

// Stop halts the recurring sweep and waits for an in-flight sweep to
// finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.cancel = nil
}

func (s *Sweeper) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				// Never fatal; the next tick tries again.
				s.logger.Error("reminder sweep failed", "error", err)
			}
		}
	}
}

// RunOnce executes a single sweep: it snapshots every entry scored at
// or below now, fires a notification per parseable entry, and removes
// exactly the snapshot in one batch. Entries added with a due time ≤
// now while the sweep runs are left for the next pass. Unparseable
// payloads are skipped, not fatal to the batch.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	now := s.timeFunc().UnixMilli()

	due, err := s.cache.ZRangeByScoreMax(ctx, SortedSetKey, now)
	if err != nil {
		return err
	}

	for _, raw := range due {
		var p payload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			s.logger.Warn("skipping malformed reminder entry", "error", err)
			continue
		}
		s.notify(p.Title, p.DueDate)
	}

	if len(due) > 0 {
		if err := s.cache.ZRemove(ctx, SortedSetKey, due...); err != nil {
			return err
		}
	}
	return nil
}
