package avoid

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/atomic"

	"go.viam.com/pitchguard/logging"
	"go.viam.com/pitchguard/utils"
)

// Loop drives a Guard at its period. Each tick it pulls the incoming pitch
// command from source and hands the decision to sink.
type Loop struct {
	mu      sync.Mutex
	guard   *Guard
	clk     clock.Clock
	source  func() float64
	sink    func(Decision)
	logger  logging.Logger
	workers *utils.StoppableWorkers
	ticks   atomic.Uint64
}

// NewLoop returns a stopped loop. A nil clk uses the wall clock.
func NewLoop(
	guard *Guard,
	clk clock.Clock,
	source func() float64,
	sink func(Decision),
	logger logging.Logger,
) *Loop {
	if clk == nil {
		clk = clock.New()
	}
	return &Loop{guard: guard, clk: clk, source: source, sink: sink, logger: logger}
}

// Start begins ticking. Starting a running loop does nothing.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.workers != nil {
		return
	}
	ticker := l.clk.Ticker(l.guard.Period())
	l.workers = utils.NewStoppableWorkers(func(ctx context.Context) {
		defer ticker.Stop()
		l.run(ctx, ticker.C)
	})
}

func (l *Loop) run(ctx context.Context, tick <-chan time.Time) {
	last := l.guard.Status().State
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
		}
		d := l.guard.Tick(l.source())
		l.ticks.Inc()
		if d.State != last {
			l.logger.Infow("avoidance state changed", "from", last, "to", d.State, "distance_cm", d.DistanceCm)
			last = d.State
		}
		l.sink(d)
	}
}

// Stop halts the loop and waits for the in-flight tick to finish.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.workers == nil {
		return
	}
	l.workers.Stop()
	l.workers = nil
}

// Ticks returns how many ticks have run.
func (l *Loop) Ticks() uint64 {
	return l.ticks.Load()
}
