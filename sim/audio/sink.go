package audio

import (
	"fmt"

	"github.com/ebitengine/oto/v3"
)

// FillFunc fills dst with signed samples. It runs on the audio thread's
// schedule and must never block: missing data is filled with silence, not
// waited for.
type FillFunc func(dst []int16)

// RingFill returns a FillFunc draining the ring, the normal live-audio
// consumer.
func RingFill(ring *Ring) FillFunc {
	var scratch []uint16
	return func(dst []int16) {
		if cap(scratch) < len(dst) {
			scratch = make([]uint16, len(dst))
		}
		s := scratch[:len(dst)]
		ring.Pull(s)
		for i, u := range s {
			dst[i] = ToSigned(u)
		}
	}
}

// GeneratorFill returns a FillFunc that clocks the design from inside the
// audio callback itself, one forced sample per requested sample. Only valid
// when no other schedule clocks the design.
func GeneratorFill(gen *Generator) FillFunc {
	return func(dst []int16) {
		for i := range dst {
			dst[i] = gen.ForceNext()
		}
	}
}

// Sink plays samples through the host audio device. The device pulls
// fixed-size blocks on its own schedule via the FillFunc.
type Sink struct {
	ctx    *oto.Context
	player *oto.Player
}

type sinkReader struct {
	fill FillFunc
	buf  []int16
}

func (r *sinkReader) Read(p []byte) (int, error) {
	n := len(p) / 2
	if cap(r.buf) < n {
		r.buf = make([]int16, n)
	}
	samples := r.buf[:n]
	r.fill(samples)
	for i, s := range samples {
		p[2*i] = byte(s)
		p[2*i+1] = byte(uint16(s) >> 8)
	}
	return n * 2, nil
}

// NewSink opens the audio device and starts playback. Device-open failure
// is fatal to the caller: there is no retry path.
func NewSink(sampleRate int, fill FillFunc) (*Sink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("audio: open device: %w", err)
	}
	<-ready

	s := &Sink{ctx: ctx}
	s.player = ctx.NewPlayer(&sinkReader{fill: fill})
	s.player.Play()
	return s, nil
}

// Close stops playback and releases the player.
func (s *Sink) Close() error {
	if s.player != nil {
		return s.player.Close()
	}
	return nil
}
