package engine

import (
	"github.com/glimmer-vis/glimmer/engine/control"
	"github.com/glimmer-vis/glimmer/engine/renderer"
	"github.com/glimmer-vis/glimmer/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets a pre-configured window for the engine to drive.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer that produces frames on render decisions.
//
// Parameters:
//   - r: a pre-configured Renderer instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithSession sets the adaptive quality session driving the frame loop.
// When omitted, a session with default controller settings is created.
//
// Parameters:
//   - s: a pre-configured Session instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSession(s control.Session) EngineBuilderOption {
	return func(e *engine) {
		e.session = s
	}
}
