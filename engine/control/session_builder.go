package control

import (
	"github.com/google/uuid"

	"github.com/glimmer-vis/glimmer/engine/quality"
)

// SessionBuilderOption is a functional option for configuring a Session.
// Use the With* functions to create options that are applied directly to
// the session instance.
type SessionBuilderOption func(*session)

// WithController sets a pre-configured quality controller. Without this
// option the session creates a default controller.
//
// Parameters:
//   - c: the controller to use
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithController(c quality.Controller) SessionBuilderOption {
	return func(s *session) {
		s.controller = c
	}
}

// WithID overrides the generated session identifier.
//
// Parameters:
//   - id: the identifier to use
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithID(id uuid.UUID) SessionBuilderOption {
	return func(s *session) {
		s.id = id
	}
}
