// Package headless runs the harness without any display, for automated
// testing and batch rendering.
package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wren/goosesim/sim/backend"
	"github.com/wren/goosesim/sim/video"
)

// Backend counts frames and quits after a fixed number.
type Backend struct {
	config     backend.Config
	frameCount int
	maxFrames  int
	snapshots  SnapshotConfig
}

// SnapshotConfig controls periodic frame dumps.
type SnapshotConfig struct {
	Interval  int // save every N frames; 0 disables
	Directory string
}

func New(maxFrames int, snapshots SnapshotConfig) *Backend {
	return &Backend{maxFrames: maxFrames, snapshots: snapshots}
}

func (h *Backend) Init(config backend.Config) error {
	h.config = config
	if h.snapshots.Interval > 0 {
		if err := os.MkdirAll(h.snapshots.Directory, 0755); err != nil {
			return fmt.Errorf("headless: snapshot dir: %w", err)
		}
	}
	slog.Info("Running headless",
		"frames", h.maxFrames,
		"snapshot_interval", h.snapshots.Interval)
	return nil
}

func (h *Backend) Update(frame *video.FrameBuffer) error {
	h.frameCount++

	if h.snapshots.Interval > 0 && h.frameCount%h.snapshots.Interval == 0 {
		if err := h.saveSnapshot(frame); err != nil {
			slog.Error("Failed to save snapshot", "frame", h.frameCount, "error", err)
		}
	}

	if h.frameCount%10 == 0 {
		slog.Info("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	if h.frameCount >= h.maxFrames {
		slog.Info("Headless run completed", "frames", h.frameCount)
		if h.config.Callbacks.OnQuit != nil {
			h.config.Callbacks.OnQuit()
		}
	}
	return nil
}

func (h *Backend) Cleanup() error { return nil }

// saveSnapshot writes a coarse text rendering of the frame, quartering the
// resolution so a 640x480 frame fits a wide terminal dump.
func (h *Backend) saveSnapshot(frame *video.FrameBuffer) error {
	path := filepath.Join(h.snapshots.Directory, fmt.Sprintf("frame_%05d.txt", h.frameCount))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	shades := []rune{' ', '░', '▒', '▓', '█'}
	const step = 4
	for y := 0; y < frame.Height(); y += step {
		for x := 0; x < frame.Width(); x += step {
			p := frame.GetPixel(x, y)
			lum := (((p >> 16) & 0xFF) + ((p >> 8) & 0xFF) + (p & 0xFF)) / 3
			fmt.Fprintf(f, "%c", shades[int(lum)*len(shades)/256])
		}
		fmt.Fprintln(f)
	}
	return nil
}
