package monitor

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ismet55555/yojenkins-sub000/internal/logger"
)

// sleepStep bounds how long a poller takes to notice pause, resume or shutdown.
const sleepStep = 100 * time.Millisecond

// FetchFunc retrieves the current value of a resource.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// PauseGate is the shared pause flag. The render loop writes it, pollers read it.
type PauseGate struct {
	paused atomic.Bool
}

// Set pauses or resumes all pollers sharing the gate.
func (g *PauseGate) Set(paused bool) {
	g.paused.Store(paused)
}

// Paused reports whether polling is paused.
func (g *PauseGate) Paused() bool {
	return g.paused.Load()
}

// PollerConfig describes one resource to poll.
type PollerConfig[T any] struct {
	Name     string
	Interval time.Duration
	Fetch    FetchFunc[T]
}

// Poller refreshes a Snapshot on a fixed interval in its own goroutine.
type Poller[T any] struct {
	cfg  PollerConfig[T]
	slot *Snapshot[T]
	gate *PauseGate
	log  logger.Logger
	done chan struct{}

	cycles   atomic.Int64
	failures atomic.Int64
}

// NewPoller creates a poller writing into slot. The config is copied and
// not consulted again after Start.
func NewPoller[T any](cfg PollerConfig[T], slot *Snapshot[T], gate *PauseGate, log logger.Logger) *Poller[T] {
	if cfg.Interval < sleepStep {
		cfg.Interval = sleepStep
	}
	if gate == nil {
		gate = &PauseGate{}
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Poller[T]{
		cfg:  cfg,
		slot: slot,
		gate: gate,
		log:  log,
		done: make(chan struct{}),
	}
}

// Start launches the polling goroutine. It stops when ctx is cancelled.
func (p *Poller[T]) Start(ctx context.Context) {
	go p.run(ctx)
}

// Done is closed once the polling goroutine has returned.
func (p *Poller[T]) Done() <-chan struct{} {
	return p.done
}

// Cycles returns how many fetches have been attempted.
func (p *Poller[T]) Cycles() int64 {
	return p.cycles.Load()
}

// Failures returns how many fetches failed or panicked.
func (p *Poller[T]) Failures() int64 {
	return p.failures.Load()
}

func (p *Poller[T]) run(ctx context.Context) {
	defer close(p.done)
	p.log.Debug("poller %s started (every %s)", p.cfg.Name, p.cfg.Interval)

	for {
		if ctx.Err() != nil {
			p.log.Debug("poller %s stopped", p.cfg.Name)
			return
		}
		if !p.gate.Paused() {
			p.cycle(ctx)
		}
		if !p.sleep(ctx) {
			p.log.Debug("poller %s stopped", p.cfg.Name)
			return
		}
	}
}

// cycle runs one fetch. A panic in the fetch is contained here so the loop
// keeps going with the next cycle.
func (p *Poller[T]) cycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			p.failures.Add(1)
			p.log.Error("poller %s: fetch panicked: %v", p.cfg.Name, r)
		}
	}()

	p.cycles.Add(1)
	v, err := p.cfg.Fetch(ctx)
	if err != nil {
		p.failures.Add(1)
		if ctx.Err() == nil {
			p.log.Warn("poller %s: %v", p.cfg.Name, err)
		}
		return
	}

	// A pause or shutdown that landed mid-fetch wins over the result.
	if p.gate.Paused() || ctx.Err() != nil {
		return
	}
	p.slot.Set(v)
}

// sleep waits out the interval in short steps. It returns false on shutdown,
// and returns early when a pause is lifted so resuming refreshes immediately.
func (p *Poller[T]) sleep(ctx context.Context) bool {
	wasPaused := p.gate.Paused()
	deadline := time.Now().Add(p.cfg.Interval)

	t := time.NewTicker(sleepStep)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-t.C:
		}

		paused := p.gate.Paused()
		if wasPaused && !paused {
			return true
		}
		wasPaused = paused
		if !paused && !time.Now().Before(deadline) {
			return true
		}
	}
}

// String is used in debug output.
func (p *Poller[T]) String() string {
	return fmt.Sprintf("poller(%s, %s)", p.cfg.Name, p.cfg.Interval)
}
