package facts

import (
	"strings"
	"testing"
	"time"
)

// waitForFact polls Next until a fact is ready or the deadline passes.
func waitForFact(t *testing.T, p Provider) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if fact, ok := p.Next(); ok {
			return fact
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("no fact ready within deadline")
	return ""
}

func TestProviderDeliversFacts(t *testing.T) {
	p := NewProvider(WithSeed(1))
	defer p.Close()

	fact := waitForFact(t, p)
	if !strings.HasPrefix(fact, "did you know?") {
		t.Errorf("fact = %q, want the panel template prefix", fact)
	}
}

func TestNextNeverBlocks(t *testing.T) {
	p := NewProvider(WithSeed(1), WithBufferSize(1))
	defer p.Close()

	// Immediately after construction the buffer may be empty; Next must
	// return promptly either way.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			p.Next()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Next blocked")
	}
}

func TestProviderRefills(t *testing.T) {
	p := NewProvider(WithSeed(7), WithBufferSize(4))
	defer p.Close()

	seen := 0
	deadline := time.Now().Add(3 * time.Second)
	for seen < 10 && time.Now().Before(deadline) {
		if _, ok := p.Next(); ok {
			seen++
		} else {
			time.Sleep(5 * time.Millisecond)
		}
	}
	if seen < 10 {
		t.Errorf("drew %d facts, want the provider to keep refilling past its buffer size", seen)
	}
}

func TestCloseStopsRefills(t *testing.T) {
	p := NewProvider(WithSeed(1), WithBufferSize(2))
	waitForFact(t, p)
	p.Close()

	// Drain whatever is buffered; after that no new facts appear.
	for {
		if _, ok := p.Next(); !ok {
			break
		}
	}
	time.Sleep(50 * time.Millisecond)
	if _, ok := p.Next(); ok {
		t.Error("provider produced a fact after Close")
	}
}
