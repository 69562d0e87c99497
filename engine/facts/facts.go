// Package facts feeds the educational-content panel. Facts are composed in
// the background on a worker pool and handed over through a buffered
// channel, so the per-frame path never waits on content generation.
package facts

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Pool sizing: generation is cheap, so two workers with a deep queue keep
// the buffer full without contending with the render loop.
const (
	poolWorkers     = 2
	poolQueueSize   = 256
	poolIdleTimeout = time.Second

	defaultBuffer = 8
)

// corpus holds the fact templates. Each entry pairs a topic with a detail
// slotted into the template.
var corpus = []struct {
	topic  string
	detail string
}{
	{"your eyes", "a human eye sees flicker up to roughly 60-90 Hz, which is why frame pacing targets that range"},
	{"GPUs", "a modern GPU runs the same tiny program for every pixel on screen, millions of times per frame"},
	{"shaders", "raymarched shaders render entire worlds with no geometry at all, just a distance function"},
	{"frame budgets", "at 60 fps a frame has 16.7 milliseconds to do everything, including the parts you can't see"},
	{"fractals", "the Mandelbrot set's boundary is infinitely long even though it encloses a finite area"},
	{"displays", "a 4K screen has four times the pixels of 1080p, which is why resolution scaling saves so much work"},
	{"batteries", "rendering at half the frame rate can roughly halve GPU power draw on mobile devices"},
	{"color", "your eye has only three color sensors; every hue you see is mixed from their overlap"},
}

// Provider pre-generates fact strings for the content panel.
type Provider interface {
	// Next returns the next ready fact without blocking.
	//
	// Returns:
	//   - string: the fact text
	//   - bool: false when no fact is ready yet
	Next() (string, bool)

	// Close stops refills and releases the buffer. Safe to call once.
	Close()
}

// provider implements the Provider interface.
type provider struct {
	pool   worker.DynamicWorkerPool
	buffer chan string
	rng    *rand.Rand

	mu       sync.Mutex
	taskID   int
	closed   bool
	inflight int
}

var _ Provider = &provider{}

// NewProvider creates a Provider and starts filling its buffer.
//
// Parameters:
//   - options: functional options for provider configuration
//
// Returns:
//   - Provider: the newly created provider
func NewProvider(options ...ProviderBuilderOption) Provider {
	p := &provider{
		pool:   worker.NewDynamicWorkerPool(poolWorkers, poolQueueSize, poolIdleTimeout),
		buffer: make(chan string, defaultBuffer),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range options {
		opt(p)
	}
	p.refill()
	return p
}

func (p *provider) Next() (string, bool) {
	select {
	case fact := <-p.buffer:
		p.refill()
		return fact, true
	default:
		p.refill()
		return "", false
	}
}

func (p *provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// refill tops the buffer back up to capacity. Generation runs on the pool;
// the caller never blocks.
func (p *provider) refill() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	want := cap(p.buffer) - len(p.buffer) - p.inflight
	for i := 0; i < want; i++ {
		// Draw randomness under the lock; rand.Rand is not safe for
		// concurrent use inside pool workers.
		entry := corpus[p.rng.Intn(len(corpus))]
		id := p.taskID
		p.taskID++
		p.inflight++

		p.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				fact := fmt.Sprintf("did you know? about %s: %s.", entry.topic, entry.detail)
				p.mu.Lock()
				closed := p.closed
				p.inflight--
				p.mu.Unlock()
				if closed {
					return nil, nil
				}
				select {
				case p.buffer <- fact:
				default:
				}
				return nil, nil
			},
		})
	}
}
