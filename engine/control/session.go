// Package control owns the per-session adaptive rendering control loop:
// FPS estimation, the quality state machine, and frame pacing, sequenced
// once per frame callback.
package control

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/glimmer-vis/glimmer/engine/quality"
)

// FrameDecision is the outcome of one frame callback: whether to render,
// and the quality state the rendering backend should consume.
type FrameDecision struct {
	// Render is true when this callback should produce a rendered frame.
	Render bool

	// Level is the active quality level after this callback's evaluation.
	Level quality.Level

	// Params are the render parameters for the backend's uniforms.
	Params quality.Params

	// FPS is the most recent FPS window reading.
	FPS int

	// FPSUpdated is true when this callback closed an FPS window and FPS
	// holds a fresh reading.
	FPSUpdated bool
}

// Session is the explicit owner of all adaptive-quality state for one
// rendering session. All methods must be called from the single logical
// thread driving the frame callback; no locking is performed.
type Session interface {
	// ID returns the session identifier used for log correlation.
	ID() uuid.UUID

	// OnFrame is the per-refresh entry point. It sequences the FPS
	// estimator, the quality state machine, and the frame pacer, and
	// returns the render/skip decision with the current render parameters.
	//
	// Errors are recoverable: a non-monotonic timestamp is reported and the
	// sample ignored, with the prior state intact. The control loop must
	// keep ticking regardless.
	//
	// Parameters:
	//   - now: the frame timestamp (must be strictly increasing)
	//
	// Returns:
	//   - FrameDecision: the render decision and quality state
	//   - error: ErrNonMonotonicTime for an ignored out-of-order sample
	OnFrame(now time.Time) (FrameDecision, error)

	// SetQualityManually applies a user-requested level by name. Unknown
	// names fail with ErrInvalidLevel and leave state untouched.
	SetQualityManually(name string) error

	// CycleQuality applies the manual cycle and returns the new level.
	CycleQuality() quality.Level

	// SetBatterySaving feeds an external power-state update into the
	// controller.
	SetBatterySaving(on bool)

	// OnResize re-derives the resolution class for the new surface size
	// without changing the quality level.
	OnResize(width, height int)

	// Suspend marks the session inactive (visibility lost / teardown). A
	// suspended session skips every frame without mutating pacing state.
	Suspend()

	// Resume reactivates the session, re-initializing the pacing baseline
	// and the FPS window to the resume timestamp.
	Resume(now time.Time)

	// Controller exposes the underlying quality state machine.
	Controller() quality.Controller
}

// session implements the Session interface.
type session struct {
	id         uuid.UUID
	estimator  *quality.Estimator
	controller quality.Controller
	pacer      *quality.Pacer
	suspended  bool
}

var _ Session = &session{}

// NewSession creates a Session with the provided options.
//
// Parameters:
//   - options: functional options for session configuration
//
// Returns:
//   - Session: the newly created session
func NewSession(options ...SessionBuilderOption) Session {
	s := &session{
		id:        uuid.New(),
		estimator: quality.NewEstimator(),
		pacer:     quality.NewPacer(),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.controller == nil {
		s.controller = quality.NewController()
	}
	return s
}

func (s *session) ID() uuid.UUID {
	return s.id
}

func (s *session) OnFrame(now time.Time) (FrameDecision, error) {
	if s.suspended {
		return s.decision(false), nil
	}

	fps, updated, err := s.estimator.Observe(now)
	if err != nil {
		// Ignore the sample, keep last-known-good state, keep ticking.
		if errors.Is(err, quality.ErrNonMonotonicTime) {
			d := s.decision(false)
			d.FPS = s.estimator.LastFPS()
			return d, err
		}
		return s.decision(false), err
	}

	if updated {
		s.controller.Evaluate(fps)
	}

	interval := quality.TargetInterval(s.controller.Level(), s.controller.Device())
	render, demote := s.pacer.ShouldRender(now, interval)
	if demote {
		demoted := s.controller.DemoteOnce()
		log.Debug().
			Str("session", s.id.String()).
			Str("level", demoted.String()).
			Msg("emergency demotion: frame callbacks starved past skip budget")
	}

	d := s.decision(render)
	d.FPS = s.estimator.LastFPS()
	d.FPSUpdated = updated
	return d, nil
}

func (s *session) SetQualityManually(name string) error {
	return s.controller.SetLevelByName(name)
}

func (s *session) CycleQuality() quality.Level {
	return s.controller.Cycle()
}

func (s *session) SetBatterySaving(on bool) {
	s.controller.SetBatterySaving(on)
}

func (s *session) OnResize(width, height int) {
	s.controller.SetScreenSize(width, height)
}

func (s *session) Suspend() {
	s.suspended = true
}

func (s *session) Resume(now time.Time) {
	s.suspended = false
	s.pacer.Resume(now)
	s.estimator.Reset()
}

func (s *session) Controller() quality.Controller {
	return s.controller
}

func (s *session) decision(render bool) FrameDecision {
	return FrameDecision{
		Render: render,
		Level:  s.controller.Level(),
		Params: s.controller.Params(),
	}
}
