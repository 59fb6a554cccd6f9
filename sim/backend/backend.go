// Package backend defines the harness's presentation collaborators. A
// backend owns a window (or terminal, or nothing), renders the frame buffer
// and translates platform input events into actions.
package backend

import (
	"github.com/wren/goosesim/sim/input"
	"github.com/wren/goosesim/sim/video"
)

// Backend is one complete presentation platform.
type Backend interface {
	// Init configures the backend. Resource-acquisition failures are
	// returned as errors and are fatal to the harness: there is no retry.
	Init(config Config) error

	// Update polls platform events, forwards them to the input manager,
	// and presents the frame. It is called exactly once per scanned frame.
	Update(frame *video.FrameBuffer) error

	// Cleanup releases backend resources on shutdown.
	Cleanup() error
}

// Config holds backend configuration.
type Config struct {
	Title        string
	Width        int
	Height       int
	Scale        int
	InputManager *input.Manager
	Callbacks    Callbacks
}

// Callbacks lets backends talk back to the harness.
type Callbacks struct {
	// OnQuit signals shutdown (window close, quit key). Checked by the
	// harness once per frame; a running frame scan always completes first.
	OnQuit func()
}
