package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmhodges/clock"
	"github.com/md-rashed-zaman/companion/internal/model"
)

// Store is the appointment persistence the scheduler scans. Read returns the
// current snapshot for a user; WriteAll replaces it wholesale.
type Store interface {
	ListUserIDs(ctx context.Context) ([]string, error)
	Read(ctx context.Context, userID string) ([]model.Appointment, error)
	WriteAll(ctx context.Context, userID string, appts []model.Appointment) error
}

// Sink displays platform notifications. Show is fire-and-forget: delivery
// failures are the sink's problem and never surface into the scan.
type Sink interface {
	Granted(ctx context.Context, userID string) bool
	Show(ctx context.Context, userID, title, body string)
}

// FiredFunc observes each reminder the moment it fires (event publishing,
// UI banners). Best-effort only.
type FiredFunc func(ctx context.Context, userID string, appt model.Appointment, firedAt time.Time)

type Scheduler struct {
	store    Store
	sink     Sink
	logger   *slog.Logger
	clk      clock.Clock
	interval time.Duration
	window   int
	onFired  FiredFunc
}

type Config struct {
	Interval      time.Duration
	WindowMinutes int
}

func NewScheduler(store Store, sink Sink, logger *slog.Logger, cfg Config) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.WindowMinutes <= 0 {
		cfg.WindowMinutes = DefaultWindowMinutes
	}
	return &Scheduler{
		store:    store,
		sink:     sink,
		logger:   logger,
		clk:      clock.New(),
		interval: cfg.Interval,
		window:   cfg.WindowMinutes,
	}
}

// OnFired registers the fired-reminder observer. Must be called before Run.
func (s *Scheduler) OnFired(fn FiredFunc) {
	s.onFired = fn
}

// SetClock swaps the wall clock for a controllable one.
func (s *Scheduler) SetClock(clk clock.Clock) {
	s.clk = clk
}

// Run drives the scan loop until ctx is cancelled. Ticks are handled
// synchronously on this goroutine, so scans never overlap and write-backs
// happen in tick order.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.tick(ctx); err != nil {
				s.logger.Error("reminder scan failed", "err", err)
			}
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) error {
	users, err := s.store.ListUserIDs(ctx)
	if err != nil {
		return err
	}

	now := s.clk.Now()
	for _, userID := range users {
		appts, err := s.store.Read(ctx, userID)
		if err != nil {
			s.logger.Error("appointment read failed", "err", err, "user_id", userID)
			continue
		}

		res := Scan(now, appts, s.window)
		if !res.Changed {
			continue
		}

		for _, a := range res.Fired {
			if s.sink.Granted(ctx, userID) {
				s.sink.Show(ctx, userID, NotifyTitle, Body(a))
			}
			if s.onFired != nil {
				s.onFired(ctx, userID, a, now)
			}
		}

		// A failed write is retried implicitly: the flags recompute on the
		// next tick and the same snapshot is written again.
		if err := s.store.WriteAll(ctx, userID, res.Updated); err != nil {
			s.logger.Error("appointment write-back failed", "err", err, "user_id", userID)
			continue
		}
		s.logger.Info("reminders fired", "user_id", userID, "count", len(res.Fired))
	}
	return nil
}
