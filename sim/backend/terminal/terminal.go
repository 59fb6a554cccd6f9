// Package terminal renders the frame buffer into a terminal with tcell,
// using half-block cells so every character carries two vertical pixels.
package terminal

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/wren/goosesim/sim/backend"
	"github.com/wren/goosesim/sim/input/action"
	"github.com/wren/goosesim/sim/input/event"
	"github.com/wren/goosesim/sim/video"
)

// keyTimeout is how long a key counts as held after its last press event.
// Terminals report key repeats, not releases, so release is inferred by
// expiry.
const keyTimeout = 150 * time.Millisecond

// Backend implements backend.Backend on a tcell screen.
type Backend struct {
	screen  tcell.Screen
	config  backend.Config
	running bool

	keyStates  map[action.Action]time.Time
	activeKeys map[action.Action]bool
}

func New() *Backend {
	return &Backend{}
}

func (t *Backend) Init(config backend.Config) error {
	t.config = config
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	t.screen = screen
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()
	t.running = true

	slog.Info("Terminal backend initialized")
	return nil
}

func (t *Backend) Update(frame *video.FrameBuffer) error {
	if !t.running {
		return nil
	}

	now := time.Now()
	for t.screen.HasPendingEvent() {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			t.processKey(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	t.expireKeys(now)
	t.render(frame)
	t.screen.Show()
	return nil
}

func (t *Backend) Cleanup() error {
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}

func (t *Backend) processKey(ev *tcell.EventKey, now time.Time) {
	switch {
	case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
		t.running = false
		if t.config.Callbacks.OnQuit != nil {
			t.config.Callbacks.OnQuit()
		}
	case ev.Key() == tcell.KeyUp || (ev.Key() == tcell.KeyRune && ev.Rune() == ' '):
		t.keyStates[action.ButtonJump] = now
	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'h' || ev.Rune() == 'H'):
		t.keyStates[action.ButtonSecondary] = now
	}
}

// expireKeys turns key timestamps into Press/Release triggers on the input
// manager: press on first sighting, release once the timestamp goes stale.
func (t *Backend) expireKeys(now time.Time) {
	active := make(map[action.Action]bool)
	for act, last := range t.keyStates {
		if now.Sub(last) < keyTimeout {
			active[act] = true
			if !t.activeKeys[act] && t.config.InputManager != nil {
				t.config.InputManager.Trigger(act, event.Press)
			}
		} else {
			delete(t.keyStates, act)
		}
	}
	for act := range t.activeKeys {
		if !active[act] && t.config.InputManager != nil {
			t.config.InputManager.Trigger(act, event.Release)
		}
	}
	t.activeKeys = active
}

// render downsamples the frame to the terminal size, two pixel rows per
// character cell via the upper-half-block rune.
func (t *Backend) render(frame *video.FrameBuffer) {
	termW, termH := t.screen.Size()
	if termW <= 0 || termH <= 0 {
		return
	}
	cellsY := termH
	for cy := 0; cy < cellsY; cy++ {
		for cx := 0; cx < termW; cx++ {
			topY := (cy * 2) * frame.Height() / (cellsY * 2)
			botY := (cy*2 + 1) * frame.Height() / (cellsY * 2)
			x := cx * frame.Width() / termW
			top := frame.GetPixel(x, topY)
			bot := frame.GetPixel(x, botY)
			style := tcell.StyleDefault.
				Foreground(rgbColor(top)).
				Background(rgbColor(bot))
			t.screen.SetContent(cx, cy, '▀', nil, style)
		}
	}
}

func rgbColor(argb uint32) tcell.Color {
	return tcell.NewRGBColor(
		int32((argb>>16)&0xFF),
		int32((argb>>8)&0xFF),
		int32(argb&0xFF),
	)
}
