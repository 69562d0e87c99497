package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/glimmer-vis/glimmer/engine/dialog"
	"github.com/glimmer-vis/glimmer/engine/facts"
	"github.com/glimmer-vis/glimmer/engine/sequencer"
)

// factInterval is how often a background fact is surfaced in the transcript.
const factInterval = 12 * time.Second

// Runner manages the chat replay lifecycle: it plays a dialog script through
// the sequencer and forwards events to the bubbletea program.
type Runner struct {
	program *tea.Program
	script  *dialog.Script
	facts   facts.Provider
}

// programEvents adapts dialog playback events onto tea program messages.
type programEvents struct {
	program *tea.Program
}

func (p programEvents) TypingStarted(speaker string) {
	p.program.Send(TypingMsg{Speaker: speaker})
}

func (p programEvents) MessageShown(speaker, text string) {
	p.program.Send(MessageShownMsg{Speaker: speaker, Text: text, At: time.Now()})
}

func (p programEvents) ChoicePicked(label string) {
	p.program.Send(ChoicePickedMsg{Label: label, At: time.Now()})
}

// NewRunner creates a chat replay runner for the given script.
//
// Parameters:
//   - script: the parsed dialog script to play
//   - factsProvider: the background fact source; may be nil to disable facts
//
// Returns:
//   - *Runner: the runner, ready to Run
//   - error: an error if the script is nil
func NewRunner(script *dialog.Script, factsProvider facts.Provider) (*Runner, error) {
	if script == nil {
		return nil, fmt.Errorf("script cannot be nil")
	}

	r := &Runner{
		script: script,
		facts:  factsProvider,
	}

	r.program = tea.NewProgram(
		NewModel(),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	return r, nil
}

// Run starts playback and blocks until the TUI exits.
//
// Parameters:
//   - ctx: cancellation stops script playback and the fact ticker
//
// Returns:
//   - error: an error if playback could not start or the TUI failed
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	steps, err := r.script.Steps(programEvents{program: r.program})
	if err != nil {
		return fmt.Errorf("failed to compile script: %w", err)
	}

	player := sequencer.NewPlayer(sequencer.Callbacks{
		OnDone: func() {
			r.program.Send(PlaybackDoneMsg{})
		},
		OnError: func(stepName string, stepErr error) {
			r.program.Send(PlaybackErrorMsg{Error: stepErr.Error()})
		},
	})
	player.Enqueue(steps...)

	go func() {
		if runErr := player.Run(ctx); runErr != nil {
			log.Warn().Err(runErr).Msg("script playback stopped")
		}
	}()

	if r.facts != nil {
		go r.tickFacts(ctx)
	}

	_, err = r.program.Run()
	return err
}

// tickFacts surfaces a background fact in the transcript at a fixed cadence.
// Next never blocks; a miss just means the pool has not refilled yet.
func (r *Runner) tickFacts(ctx context.Context) {
	ticker := time.NewTicker(factInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if fact, ok := r.facts.Next(); ok {
				r.program.Send(FactMsg{Text: fact, At: time.Now()})
			}
		}
	}
}

// Start creates a runner and plays the script until the TUI exits.
// This is the main entry point for chat mode.
func Start(ctx context.Context, script *dialog.Script, factsProvider facts.Provider) error {
	runner, err := NewRunner(script, factsProvider)
	if err != nil {
		return fmt.Errorf("failed to create runner: %w", err)
	}
	return runner.Run(ctx)
}
