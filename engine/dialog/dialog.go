// Package dialog models the canned dialog graph the chat simulation
// replays: a static tree of nodes with scripted timing, loaded from TOML
// and compiled into sequencer steps.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/glimmer-vis/glimmer/engine/sequencer"
)

var (
	// ErrNodeNotFound is returned when a node references a missing id.
	ErrNodeNotFound = errors.New("dialog: node not found")

	// ErrCycle is returned when following the script revisits a node.
	ErrCycle = errors.New("dialog: script contains a cycle")
)

// Choice is one selectable reply on a node. Playback is fully scripted, so
// the node's Pick index decides which choice is taken.
type Choice struct {
	Label string `toml:"label"`
	Next  string `toml:"next"`
}

// Node is one message in the dialog tree.
type Node struct {
	ID      string `toml:"id"`
	Speaker string `toml:"speaker"`
	Text    string `toml:"text"`

	// TypingMs is how long the typing indicator shows before the message.
	TypingMs int `toml:"typing_ms"`

	// PauseMs is the dwell time after the message before the next node.
	PauseMs int `toml:"pause_ms"`

	// Next is the id of the following node. Empty with no choices ends the
	// script.
	Next string `toml:"next"`

	// Choices, when present, replace Next; Pick selects which one the
	// scripted playback takes.
	Choices []Choice `toml:"choice"`
	Pick    int      `toml:"pick"`
}

// Script is a complete dialog tree.
type Script struct {
	Title string `toml:"title"`
	Start string `toml:"start"`
	Nodes []Node `toml:"node"`

	index map[string]*Node
}

// Events receives playback side effects, keeping the dialog logic testable
// without a rendering surface.
type Events interface {
	// TypingStarted fires when a speaker's typing indicator should show.
	TypingStarted(speaker string)

	// MessageShown fires when a message should appear.
	MessageShown(speaker, text string)

	// ChoicePicked fires when scripted playback takes a choice.
	ChoicePicked(label string)
}

// Parse decodes a TOML script and builds the node index.
//
// Parameters:
//   - data: the TOML source
//
// Returns:
//   - *Script: the decoded script
//   - error: decode failures, a missing start node, or duplicate node ids
func Parse(data string) (*Script, error) {
	var s Script
	if _, err := toml.Decode(data, &s); err != nil {
		return nil, fmt.Errorf("dialog: decode script: %w", err)
	}
	if err := s.buildIndex(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses a TOML script file.
//
// Parameters:
//   - path: the script file path
//
// Returns:
//   - *Script: the decoded script
//   - error: file or decode failures
func Load(path string) (*Script, error) {
	var s Script
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("dialog: load script %s: %w", path, err)
	}
	if err := s.buildIndex(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) buildIndex() error {
	s.index = make(map[string]*Node, len(s.Nodes))
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if n.ID == "" {
			return fmt.Errorf("dialog: node %d has no id", i)
		}
		if _, dup := s.index[n.ID]; dup {
			return fmt.Errorf("dialog: duplicate node id %q", n.ID)
		}
		s.index[n.ID] = n
	}
	if s.Start == "" && len(s.Nodes) > 0 {
		s.Start = s.Nodes[0].ID
	}
	if _, ok := s.index[s.Start]; !ok {
		return fmt.Errorf("%w: start node %q", ErrNodeNotFound, s.Start)
	}
	return nil
}

// Node returns the node with the given id.
func (s *Script) Node(id string) (*Node, bool) {
	n, ok := s.index[id]
	return n, ok
}

// next resolves the node following n under scripted playback, returning nil
// when the script ends at n.
func (s *Script) next(n *Node) (*Node, *Choice, error) {
	if len(n.Choices) > 0 {
		pick := n.Pick
		if pick < 0 || pick >= len(n.Choices) {
			pick = 0
		}
		c := &n.Choices[pick]
		target, ok := s.index[c.Next]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q (choice from %q)", ErrNodeNotFound, c.Next, n.ID)
		}
		return target, c, nil
	}
	if n.Next == "" {
		return nil, nil, nil
	}
	target, ok := s.index[n.Next]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q (next of %q)", ErrNodeNotFound, n.Next, n.ID)
	}
	return target, nil, nil
}

// Walk follows the scripted path from the start node to the end and returns
// the visited nodes in order.
//
// Returns:
//   - []*Node: the nodes in playback order
//   - error: ErrCycle when a node repeats, ErrNodeNotFound for dangling ids
func (s *Script) Walk() ([]*Node, error) {
	var path []*Node
	seen := make(map[string]bool, len(s.Nodes))

	n := s.index[s.Start]
	for n != nil {
		if seen[n.ID] {
			return nil, fmt.Errorf("%w: revisited %q", ErrCycle, n.ID)
		}
		seen[n.ID] = true
		path = append(path, n)

		next, _, err := s.next(n)
		if err != nil {
			return nil, err
		}
		n = next
	}
	return path, nil
}

// Steps compiles the scripted path into sequencer steps: for each node, a
// typing event after the typing delay, the message after it, the scripted
// choice pick, then the dwell pause.
//
// Parameters:
//   - ev: the playback event sink (must not be nil)
//
// Returns:
//   - []sequencer.Step: the compiled steps in playback order
//   - error: path resolution failures (cycles, dangling ids)
func (s *Script) Steps(ev Events) ([]sequencer.Step, error) {
	path, err := s.Walk()
	if err != nil {
		return nil, err
	}

	var steps []sequencer.Step
	for _, n := range path {
		node := n
		steps = append(steps, sequencer.Step{
			Name: node.ID + "/typing",
			Action: func(context.Context) error {
				ev.TypingStarted(node.Speaker)
				return nil
			},
		})
		steps = append(steps, sequencer.Step{
			Name:  node.ID + "/message",
			Delay: time.Duration(node.TypingMs) * time.Millisecond,
			Action: func(context.Context) error {
				ev.MessageShown(node.Speaker, node.Text)
				return nil
			},
		})
		if len(node.Choices) > 0 {
			_, choice, err := s.next(node)
			if err != nil {
				return nil, err
			}
			label := choice.Label
			steps = append(steps, sequencer.Step{
				Name:  node.ID + "/choice",
				Delay: time.Duration(node.PauseMs) * time.Millisecond,
				Action: func(context.Context) error {
					ev.ChoicePicked(label)
					return nil
				},
			})
		} else if node.PauseMs > 0 {
			steps = append(steps, sequencer.Step{
				Name:  node.ID + "/pause",
				Delay: time.Duration(node.PauseMs) * time.Millisecond,
			})
		}
	}
	return steps, nil
}
