//go:build !sdl2

package sdl2

import (
	"fmt"

	"github.com/wren/goosesim/sim/backend"
	"github.com/wren/goosesim/sim/video"
)

// Backend stub for builds without SDL2.
type Backend struct{}

func New() *Backend {
	return &Backend{}
}

func (s *Backend) Init(config backend.Config) error {
	return fmt.Errorf("SDL2 backend not available - build with -tags sdl2 to enable")
}

func (s *Backend) Update(frame *video.FrameBuffer) error {
	return fmt.Errorf("SDL2 backend not available")
}

func (s *Backend) Cleanup() error {
	return nil
}
