// Package audio bridges the simulation-clocked sample producer to a
// host-clocked consumer. The two sides share nothing but a bounded ring
// buffer with one cursor per side.
package audio

import "sync/atomic"

// Silence is the unsigned-16-bit representation of signed zero. Underruns
// are filled with this value; they are a normal steady-state condition, not
// an error.
const Silence uint16 = 0x8000

// DefaultRingCapacity holds roughly 42ms of audio at the design's sample
// rate.
const DefaultRingCapacity = 2048

// Ring is a fixed-capacity single-producer/single-consumer ring of
// unsigned 16-bit samples. The write cursor is written only by the
// producer, the read cursor only by the consumer; both are atomic
// word-sized values, so no locks are needed and neither side ever blocks
// on the other.
type Ring struct {
	buf       []uint16
	write     atomic.Uint32
	read      atomic.Uint32
	drops     atomic.Uint64
	underruns atomic.Uint64
}

// NewRing creates a ring with the given capacity. One slot is kept empty to
// distinguish full from empty, so a ring of capacity n holds n-1 samples.
func NewRing(capacity int) *Ring {
	if capacity < 2 {
		capacity = 2
	}
	r := &Ring{buf: make([]uint16, capacity)}
	for i := range r.buf {
		r.buf[i] = Silence
	}
	return r
}

// Push appends one sample. When the next write position would collide with
// the read cursor the sample is dropped instead: the producer runs at a
// fixed simulation cadence and must not stall, and unread data is never
// overwritten.
func (r *Ring) Push(sample uint16) bool {
	w := r.write.Load()
	next := (w + 1) % uint32(len(r.buf))
	if next == r.read.Load() {
		r.drops.Add(1)
		return false
	}
	r.buf[w] = sample
	r.write.Store(next)
	return true
}

// Pull fills dst from the buffer, substituting Silence once the read cursor
// catches the write cursor. It never blocks and never fails; it returns the
// number of real (non-substituted) samples delivered.
func (r *Ring) Pull(dst []uint16) int {
	n := 0
	rd := r.read.Load()
	for i := range dst {
		if rd == r.write.Load() {
			dst[i] = Silence
			r.underruns.Add(1)
			continue
		}
		dst[i] = r.buf[rd]
		rd = (rd + 1) % uint32(len(r.buf))
		n++
	}
	r.read.Store(rd)
	return n
}

// Len reports how many samples are currently buffered.
func (r *Ring) Len() int {
	w := r.write.Load()
	rd := r.read.Load()
	if w >= rd {
		return int(w - rd)
	}
	return len(r.buf) - int(rd-w)
}

// Drops reports how many samples the producer has discarded on a full
// buffer.
func (r *Ring) Drops() uint64 { return r.drops.Load() }

// Underruns reports how many silence samples the consumer has substituted.
func (r *Ring) Underruns() uint64 { return r.underruns.Load() }
