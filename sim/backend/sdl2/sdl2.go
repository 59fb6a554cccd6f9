//go:build sdl2

// Package sdl2 presents frames in an SDL window. Building it requires the
// SDL2 development libraries; default builds use the stub instead (build
// tag sdl2).
package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/wren/goosesim/sim/backend"
	"github.com/wren/goosesim/sim/input/action"
	"github.com/wren/goosesim/sim/input/event"
	"github.com/wren/goosesim/sim/video"
)

// Backend implements backend.Backend with an SDL window, renderer and
// streaming texture.
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	config   backend.Config
	running  bool
}

func New() *Backend {
	return &Backend{}
}

func (s *Backend) Init(config backend.Config) error {
	s.config = config

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("sdl2: init: %v", err)
	}
	sdl.SetHint(sdl.HINT_NO_SIGNAL_HANDLERS, "1")

	scale := config.Scale
	if scale < 1 {
		scale = 1
	}
	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(config.Width*scale), int32(config.Height*scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("sdl2: create window: %v", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("sdl2: create renderer: %v", err)
	}
	s.renderer = renderer

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(config.Width), int32(config.Height),
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("sdl2: create texture: %v", err)
	}
	s.texture = texture

	s.running = true
	slog.Info("SDL2 backend initialized", "width", config.Width, "height", config.Height, "scale", scale)
	return nil
}

func (s *Backend) Update(frame *video.FrameBuffer) error {
	if !s.running {
		return nil
	}

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		s.handleEvent(ev)
	}
	if !s.running {
		return nil
	}

	pixels := frame.ToSlice()
	if err := s.texture.Update(nil, unsafe.Pointer(&pixels[0]), frame.Width()*4); err != nil {
		return fmt.Errorf("sdl2: texture update: %v", err)
	}
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
	return nil
}

func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")
	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()
	return nil
}

func (s *Backend) handleEvent(ev sdl.Event) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		s.quit()
	case *sdl.KeyboardEvent:
		pressed := e.Type == sdl.KEYDOWN
		switch e.Keysym.Sym {
		case sdl.K_ESCAPE:
			if pressed {
				s.quit()
			}
		case sdl.K_SPACE, sdl.K_UP:
			s.trigger(action.ButtonJump, pressed, e.Repeat)
		case sdl.K_h:
			s.trigger(action.ButtonSecondary, pressed, e.Repeat)
		}
	}
}

func (s *Backend) trigger(act action.Action, pressed bool, repeat uint8) {
	if s.config.InputManager == nil || repeat != 0 {
		return
	}
	if pressed {
		s.config.InputManager.Trigger(act, event.Press)
	} else {
		s.config.InputManager.Trigger(act, event.Release)
	}
}

func (s *Backend) quit() {
	s.running = false
	if s.config.Callbacks.OnQuit != nil {
		s.config.Callbacks.OnQuit()
	}
}
