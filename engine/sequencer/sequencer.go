// Package sequencer replaces nested timer-callback chains with an explicit
// ordered queue of timed steps consumed by a single driving loop, making
// cancellation explicit.
package sequencer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// maxConsecutiveErrors is the circuit-breaker threshold: after this many
// consecutive step failures the run stops.
const maxConsecutiveErrors = 3

// Step is one (delay, action) pair. The player waits Delay, then runs
// Action.
type Step struct {
	// Name identifies the step in logs and callbacks.
	Name string

	// Delay is how long to wait before running the action.
	Delay time.Duration

	// Action performs the step. A nil action is a pure delay.
	Action func(ctx context.Context) error
}

// Callbacks defines optional hooks for playback events, letting
// display-specific code react without coupling the player to a surface.
type Callbacks struct {
	// OnStep is called before each step's action runs.
	OnStep func(name string)

	// OnDone is called when the queue is fully consumed.
	OnDone func()

	// OnError is called when a step's action fails.
	OnError func(name string, err error)
}

// Player consumes an ordered queue of timed steps. One Run drives the whole
// queue; cancellation arrives through the context.
type Player struct {
	mu        sync.Mutex
	steps     []Step
	running   bool
	cancel    context.CancelFunc
	callbacks Callbacks
}

// NewPlayer creates a Player with the given callbacks.
func NewPlayer(callbacks Callbacks) *Player {
	return &Player{callbacks: callbacks}
}

// Enqueue appends steps to the queue. Safe to call before Run; steps added
// while running are picked up by the active loop.
func (p *Player) Enqueue(steps ...Step) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.steps = append(p.steps, steps...)
}

// Len returns the number of steps not yet consumed.
func (p *Player) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.steps)
}

// Running reports whether a Run loop is active.
func (p *Player) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Stop cancels the active run, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Run consumes the queue in order, waiting each step's delay before its
// action. Returns when the queue is empty, the context is canceled, or the
// consecutive-error circuit breaker trips.
//
// Parameters:
//   - ctx: controls cancellation of the whole run
//
// Returns:
//   - error: the context error on cancellation, or the last step error when
//     the circuit breaker trips
func (p *Player) Run(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("sequencer: context cannot be nil")
	}

	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("sequencer: already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.running = true
	p.cancel = cancel
	p.mu.Unlock()

	defer func() {
		cancel()
		p.mu.Lock()
		p.running = false
		p.cancel = nil
		p.mu.Unlock()
	}()

	consecutiveErrors := 0
	var lastErr error

	for {
		step, ok := p.next()
		if !ok {
			if p.callbacks.OnDone != nil {
				p.callbacks.OnDone()
			}
			return nil
		}

		if step.Delay > 0 {
			timer := time.NewTimer(step.Delay)
			select {
			case <-runCtx.Done():
				timer.Stop()
				return runCtx.Err()
			case <-timer.C:
			}
		} else if err := runCtx.Err(); err != nil {
			return err
		}

		if p.callbacks.OnStep != nil {
			p.callbacks.OnStep(step.Name)
		}
		if step.Action == nil {
			continue
		}

		if err := step.Action(runCtx); err != nil {
			consecutiveErrors++
			lastErr = err
			log.Warn().
				Str("step", step.Name).
				Int("consecutive_errors", consecutiveErrors).
				Err(err).
				Msg("sequencer step failed")
			if p.callbacks.OnError != nil {
				p.callbacks.OnError(step.Name, err)
			}
			if consecutiveErrors >= maxConsecutiveErrors {
				return fmt.Errorf("sequencer: stopping after %d consecutive errors: %w", consecutiveErrors, lastErr)
			}
			continue
		}
		consecutiveErrors = 0
	}
}

// next pops the head of the queue.
func (p *Player) next() (Step, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.steps) == 0 {
		return Step{}, false
	}
	step := p.steps[0]
	p.steps = p.steps[1:]
	return step, true
}
