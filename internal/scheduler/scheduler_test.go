package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smallbiznis/procura/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeJob struct {
	dates []string
	err   error
}

func (f *fakeJob) RunDate(ctx context.Context, date string) error {
	f.dates = append(f.dates, date)
	return f.err
}

func newScheduler(t *testing.T, c clock.Clock, job Job) *Scheduler {
	t.Helper()
	s, err := New(Params{
		Log:    zap.NewNop(),
		Clock:  c,
		Job:    job,
		Config: Config{At: "22:00"},
	})
	require.NoError(t, err)
	return s
}

func TestRunOnce_NotDueBeforeTrigger(t *testing.T) {
	fc := clock.NewFakeClock(time.Date(2026, 8, 27, 21, 59, 0, 0, time.UTC))
	job := &fakeJob{}
	s := newScheduler(t, fc, job)

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Empty(t, job.dates)
}

func TestRunOnce_FiresAtTrigger(t *testing.T) {
	fc := clock.NewFakeClock(time.Date(2026, 8, 27, 22, 0, 0, 0, time.UTC))
	job := &fakeJob{}
	s := newScheduler(t, fc, job)

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, []string{"2026-08-27"}, job.dates)
}

func TestRunOnce_OnlyOncePerDay(t *testing.T) {
	fc := clock.NewFakeClock(time.Date(2026, 8, 27, 22, 0, 0, 0, time.UTC))
	job := &fakeJob{}
	s := newScheduler(t, fc, job)

	require.NoError(t, s.RunOnce(context.Background()))
	fc.Advance(30 * time.Minute)
	require.NoError(t, s.RunOnce(context.Background()))
	assert.Len(t, job.dates, 1)

	fc.Advance(24 * time.Hour)
	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, []string{"2026-08-27", "2026-08-28"}, job.dates)
}

func TestRunOnce_JobErrorDoesNotRetrySameDay(t *testing.T) {
	fc := clock.NewFakeClock(time.Date(2026, 8, 27, 23, 0, 0, 0, time.UTC))
	job := &fakeJob{err: errors.New("hdfs down")}
	s := newScheduler(t, fc, job)

	assert.Error(t, s.RunOnce(context.Background()))
	fc.Advance(10 * time.Minute)
	require.NoError(t, s.RunOnce(context.Background()))
	assert.Len(t, job.dates, 1)
}

func TestNew_InvalidScheduleTime(t *testing.T) {
	_, err := New(Params{
		Log:    zap.NewNop(),
		Clock:  clock.NewFakeClock(time.Now()),
		Job:    &fakeJob{},
		Config: Config{At: "25:99"},
	})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNew_MissingDependencies(t *testing.T) {
	_, err := New(Params{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, "22:00", cfg.At)
	assert.Equal(t, time.Minute, cfg.TickInterval)
	assert.Equal(t, 30*time.Minute, cfg.JobTimeout)
}
