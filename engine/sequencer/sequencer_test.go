package sequencer

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunConsumesStepsInOrder(t *testing.T) {
	var order []string
	p := NewPlayer(Callbacks{})
	for _, name := range []string{"first", "second", "third"} {
		n := name
		p.Enqueue(Step{
			Name: n,
			Action: func(context.Context) error {
				order = append(order, n)
				return nil
			},
		})
	}

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("ran %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("step %d = %q, want %q", i, order[i], want[i])
		}
	}
	if p.Len() != 0 {
		t.Errorf("queue not drained, %d steps left", p.Len())
	}
}

func TestRunHonorsDelays(t *testing.T) {
	p := NewPlayer(Callbacks{})
	p.Enqueue(
		Step{Name: "a", Delay: 20 * time.Millisecond},
		Step{Name: "b", Delay: 20 * time.Millisecond},
	)

	started := time.Now()
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if elapsed := time.Since(started); elapsed < 40*time.Millisecond {
		t.Errorf("run finished in %v, want at least 40ms of accumulated delay", elapsed)
	}
}

func TestRunCancellation(t *testing.T) {
	ran := false
	p := NewPlayer(Callbacks{})
	p.Enqueue(
		Step{Name: "slow", Delay: 5 * time.Second},
		Step{Name: "after", Action: func(context.Context) error {
			ran = true
			return nil
		}},
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := p.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if ran {
		t.Error("step after cancellation still ran")
	}
	if p.Running() {
		t.Error("player still marked running after cancellation")
	}
}

func TestStopCancelsRun(t *testing.T) {
	p := NewPlayer(Callbacks{})
	p.Enqueue(Step{Name: "slow", Delay: 5 * time.Second})

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()

	// Wait for the run loop to start before stopping it.
	deadline := time.Now().Add(time.Second)
	for !p.Running() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	p.Stop()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestCircuitBreakerStopsAfterConsecutiveErrors(t *testing.T) {
	failing := func(context.Context) error { return errors.New("boom") }

	attempts := 0
	p := NewPlayer(Callbacks{
		OnError: func(string, error) { attempts++ },
	})
	for i := 0; i < 10; i++ {
		p.Enqueue(Step{Name: "fail", Action: failing})
	}

	err := p.Run(context.Background())
	if err == nil {
		t.Fatal("Run returned nil, want circuit-breaker error")
	}
	if attempts != maxConsecutiveErrors {
		t.Errorf("ran %d failing steps, want %d before tripping", attempts, maxConsecutiveErrors)
	}
}

func TestSuccessResetsErrorStreak(t *testing.T) {
	calls := 0
	p := NewPlayer(Callbacks{})
	// Alternate failure and success: the streak never reaches the breaker.
	for i := 0; i < 6; i++ {
		fail := i%2 == 0
		p.Enqueue(Step{Name: "step", Action: func(context.Context) error {
			calls++
			if fail {
				return errors.New("transient")
			}
			return nil
		}})
	}

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 6 {
		t.Errorf("ran %d steps, want all 6", calls)
	}
}

func TestCallbacksFire(t *testing.T) {
	var steps []string
	doneCalled := false
	p := NewPlayer(Callbacks{
		OnStep: func(name string) { steps = append(steps, name) },
		OnDone: func() { doneCalled = true },
	})
	p.Enqueue(Step{Name: "only"})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(steps) != 1 || steps[0] != "only" {
		t.Errorf("OnStep calls = %v, want [only]", steps)
	}
	if !doneCalled {
		t.Error("OnDone not called")
	}
}
