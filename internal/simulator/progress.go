package simulator

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/liarsbar/internal/statistics"
)

// progressReporter logs periodic training progress. The clock is injectable
// so tests can drive the report interval without sleeping.
type progressReporter struct {
	clock  quartz.Clock
	logger *log.Logger
	every  time.Duration
	start  time.Time
	last   time.Time
}

func newProgressReporter(clock quartz.Clock, logger *log.Logger, every time.Duration) *progressReporter {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.Default()
	}
	now := clock.Now()
	return &progressReporter{
		clock:  clock,
		logger: logger,
		every:  every,
		start:  now,
		last:   now,
	}
}

func (r *progressReporter) maybeReport(episodes int, stats *statistics.Statistics, epsilon float64, states int) {
	if r.every <= 0 {
		return
	}
	now := r.clock.Now()
	if now.Sub(r.last) < r.every {
		return
	}
	r.last = now

	elapsed := now.Sub(r.start)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(episodes) / elapsed.Seconds()
	}
	r.logger.Info("training progress",
		"episodes", episodes,
		"winRate", stats.WinRate(),
		"meanReward", stats.Mean(),
		"epsilon", epsilon,
		"states", states,
		"episodesPerSec", rate)
}
