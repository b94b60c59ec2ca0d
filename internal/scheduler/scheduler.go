package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smallbiznis/procura/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("scheduler: invalid configuration")

// Job is the unit of nightly work, keyed by processing date.
type Job interface {
	RunDate(ctx context.Context, date string) error
}

type Params struct {
	fx.In

	Log    *zap.Logger
	Clock  clock.Clock
	Job    Job
	Config Config `optional:"true"`
}

// Scheduler fires the nightly job once per calendar day at the configured
// time. A failed run is logged and retried the next day, never mid-day:
// each processing date gets exactly one attempt per scheduler process.
type Scheduler struct {
	log    *zap.Logger
	clock  clock.Clock
	cfg    Config
	job    Job
	hour   int
	minute int

	lastRun string
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.Clock == nil || p.Job == nil {
		return nil, ErrInvalidConfig
	}
	cfg := p.Config.withDefaults()
	hour, minute, err := parseAt(cfg.At)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		log:    p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		clock:  p.Clock,
		cfg:    cfg,
		job:    p.Job,
		hour:   hour,
		minute: minute,
	}, nil
}

// RunOnce fires the job if the trigger time has passed and today's run
// has not happened yet. Safe to call on every tick.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	now := s.clock.Now()
	date, due := s.due(now)
	if !due {
		return nil
	}
	s.lastRun = date

	log := s.log.With(zap.String("date", date))
	log.Info("nightly run triggered")

	jobCtx, cancel := context.WithTimeout(ctx, s.cfg.JobTimeout)
	defer cancel()

	if err := s.job.RunDate(jobCtx, date); err != nil {
		log.Error("nightly run failed", zap.Error(err))
		return fmt.Errorf("nightly run %s: %w", date, err)
	}
	log.Info("nightly run completed")
	return nil
}

// RunForever ticks until the context is canceled. Job errors are already
// logged by RunOnce and never stop the loop.
func (s *Scheduler) RunForever(ctx context.Context) {
	s.log.Info("scheduler started",
		zap.String("at", s.cfg.At),
		zap.Duration("tick", s.cfg.TickInterval),
	)
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			_ = s.RunOnce(ctx)
		}
	}
}

// due reports whether the trigger time has passed for a date that has
// not run yet.
func (s *Scheduler) due(now time.Time) (string, bool) {
	trigger := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, now.Location())
	if now.Before(trigger) {
		return "", false
	}
	date := now.Format("2006-01-02")
	if date == s.lastRun {
		return "", false
	}
	return date, true
}

func parseAt(at string) (int, int, error) {
	parts := strings.SplitN(at, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: schedule time %q", ErrInvalidConfig, at)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: schedule time %q", ErrInvalidConfig, at)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: schedule time %q", ErrInvalidConfig, at)
	}
	return hour, minute, nil
}
