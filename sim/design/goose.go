package design

// Timing and audio constants of the reference design. The sample rate is
// derived from the clock and divider, never written down as a rounded
// literal: 48 MHz / 1024 = 46875 Hz exactly.
const (
	ClockHz         = 48_000_000
	SampleDivPeriod = 1024
	SampleRateHz    = ClockHz / SampleDivPeriod

	JumpDurationMs      = 120
	DeathDurationMs     = 250
	HighscoreDurationMs = 280
	SoundPaddingMs      = 50
)

// Scan timing (VGA 640x480@60).
const (
	hTotal   = 800
	hVisible = 640
	vTotal   = 525
	vVisible = 480

	hSyncStart = hVisible + 16 // front porch
	hSyncEnd   = hSyncStart + 96
	vSyncStart = vVisible + 10
	vSyncEnd   = vSyncStart + 2
)

// Sound effect identifiers for the internal generator.
const (
	sfxIdle = iota
	sfxJump
	sfxDeath
	sfxHighscore
)

const sfxAmplitude = 12000

// triggerCaptureCycles is how long a trigger pin must be held before the
// registered capture logic accepts it.
const triggerCaptureCycles = 2

// Goose is a pure-Go stand-in for the compiled goose-game model. It
// reproduces the pin contract of the real design: VGA scan counters driving
// the 2-bit RGB output bus, a halt input that freezes the scan, and an audio
// controller with a sample divider, a one-cycle new-sample strobe and a
// small sound-effect generator. It exists so the harness and its tests can
// run without an externally compiled model.
type Goose struct {
	clk  bool
	edge bool
	rstn bool
	ui   uint8
	uo   uint8

	h, v int

	// audio controller
	sampleDiv uint32
	newSample bool
	sampleReg int16

	evJump, evDeath, evHighscore bool
	gameRunning                  bool

	holdJump, holdDeath, holdHighscore int
	pendingSfx                         int

	sfx          int
	sfxTotal     int
	sfxRemaining int
	sfxPhase     int
}

var (
	_ Design    = (*Goose)(nil)
	_ Inspector = (*Goose)(nil)
	_ Forcer    = (*Goose)(nil)
)

// NewGoose returns a reference design in its pre-reset state.
func NewGoose() *Goose {
	return &Goose{gameRunning: true}
}

func (g *Goose) SetClock(high bool) {
	if high && !g.clk {
		g.edge = true
	}
	g.clk = high
}

func (g *Goose) SetResetN(high bool) { g.rstn = high }
func (g *Goose) SetInputs(bus uint8) { g.ui = bus }
func (g *Goose) Inputs() uint8       { return g.ui }
func (g *Goose) Outputs() uint8      { return g.uo }

func (g *Goose) Eval() {
	if g.edge {
		g.edge = false
		g.risingEdge()
	}
	g.uo = g.scanOutput()
}

func (g *Goose) risingEdge() {
	if !g.rstn {
		g.h, g.v = 0, 0
		g.sampleDiv = 0
		g.newSample = false
		g.sampleReg = 0
		g.holdJump, g.holdDeath, g.holdHighscore = 0, 0, 0
		g.pendingSfx = sfxIdle
		g.sfx = sfxIdle
		g.sfxRemaining = 0
		g.sfxPhase = 0
		return
	}

	halted := g.ui&0x02 != 0
	if !halted {
		g.h++
		if g.h >= hTotal {
			g.h = 0
			g.v++
			if g.v >= vTotal {
				g.v = 0
			}
		}
	}

	// In the combined build the jump button doubles as the jump sound
	// trigger. The standalone event pins are OR'd in so the audio-only
	// harness can drive the generator directly.
	g.captureTrigger(&g.holdJump, g.evJump || g.ui&0x01 != 0, sfxJump)
	g.captureTrigger(&g.holdDeath, g.evDeath, sfxDeath)
	g.captureTrigger(&g.holdHighscore, g.evHighscore, sfxHighscore)

	// new_sample is registered: it goes high on the edge after the divider
	// reaches its terminal count.
	wrapped := g.sampleDiv >= SampleDivPeriod-1
	if wrapped {
		g.sampleDiv = 0
	} else {
		g.sampleDiv++
	}
	g.newSample = wrapped
	if g.newSample {
		g.sampleTick()
	}
}

func (g *Goose) captureTrigger(hold *int, pin bool, sfx int) {
	if !pin {
		*hold = 0
		return
	}
	*hold++
	if *hold == triggerCaptureCycles && g.gameRunning && g.sfx == sfxIdle {
		g.pendingSfx = sfx
	}
}

// sampleTick runs once per sample period, in the divided clock domain.
func (g *Goose) sampleTick() {
	if g.sfx == sfxIdle && g.pendingSfx != sfxIdle {
		g.sfx = g.pendingSfx
		g.pendingSfx = sfxIdle
		g.sfxTotal = durationSamples(g.sfx)
		g.sfxRemaining = g.sfxTotal
		g.sfxPhase = 0
	}

	if g.sfx == sfxIdle || !g.gameRunning {
		g.sampleReg = 0
		return
	}

	g.sampleReg = g.sfxSample()
	g.sfxPhase++
	g.sfxRemaining--
	if g.sfxRemaining <= 0 {
		g.sfx = sfxIdle
	}
}

func durationSamples(sfx int) int {
	switch sfx {
	case sfxJump:
		return JumpDurationMs * SampleRateHz / 1000
	case sfxDeath:
		return DeathDurationMs * SampleRateHz / 1000
	case sfxHighscore:
		return HighscoreDurationMs * SampleRateHz / 1000
	}
	return 0
}

// sfxSample produces the current square-wave sample. Jump sweeps up, death
// sweeps down, highscore alternates between two tones.
func (g *Goose) sfxSample() int16 {
	progress := g.sfxTotal - g.sfxRemaining
	var freq int
	switch g.sfx {
	case sfxJump:
		freq = 300 + 600*progress/g.sfxTotal
	case sfxDeath:
		freq = 500 - 380*progress/g.sfxTotal
	case sfxHighscore:
		if (8*progress/g.sfxTotal)%2 == 0 {
			freq = 660
		} else {
			freq = 880
		}
	}
	period := SampleRateHz / freq
	if period < 2 {
		period = 2
	}
	if g.sfxPhase%period < period/2 {
		return sfxAmplitude
	}
	return -sfxAmplitude
}

// scanOutput packs the current scan position into the output bus:
// {HSync, B0, G0, R0, VSync, B1, G1, R1} from bit 7 down to bit 0.
func (g *Goose) scanOutput() uint8 {
	var bus uint8

	if !(g.h >= hSyncStart && g.h < hSyncEnd) {
		bus |= 1 << 7 // hsync inactive (active low)
	}
	if !(g.v >= vSyncStart && g.v < vSyncEnd) {
		bus |= 1 << 3 // vsync inactive (active low)
	}

	if g.h < hVisible && g.v < vVisible {
		r, gr, b := g.pixelAt(g.h, g.v)
		bus |= (r & 1) << 4 // R0
		bus |= (r >> 1) & 1 // R1
		bus |= (gr & 1) << 5
		bus |= ((gr >> 1) & 1) << 1
		bus |= (b & 1) << 6
		bus |= ((b >> 1) & 1) << 2
	}
	return bus
}

// pixelAt draws the demo scene: sky gradient, a sun, and ground.
func (g *Goose) pixelAt(x, y int) (r, gr, b uint8) {
	const groundY = 400
	if y >= groundY {
		return 1, 2, 0
	}
	// sun block
	if x >= 520 && x < 580 && y >= 60 && y < 120 {
		return 3, 3, 0
	}
	// sky darkens towards the top
	shade := uint8(1 + y*3/(2*groundY)) // 1..2
	return 0, shade, 3
}

func (g *Goose) Signal(path string) (uint32, bool) {
	switch path {
	case SigNewSample:
		if g.newSample {
			return 1, true
		}
		return 0, true
	case SigSampleReg:
		return uint32(uint16(g.sampleReg)), true
	case SigSampleDiv:
		return g.sampleDiv, true
	case SigEventJump:
		return boolSig(g.evJump), true
	case SigEventDeath:
		return boolSig(g.evDeath), true
	case SigEventHighscore:
		return boolSig(g.evHighscore), true
	case SigGameRunning:
		return boolSig(g.gameRunning), true
	}
	return 0, false
}

func (g *Goose) SetSignal(path string, value uint32) bool {
	switch path {
	case SigSampleDiv:
		g.sampleDiv = value % SampleDivPeriod
	case SigEventJump:
		g.evJump = value != 0
	case SigEventDeath:
		g.evDeath = value != 0
	case SigEventHighscore:
		g.evHighscore = value != 0
	case SigGameRunning:
		g.gameRunning = value != 0
	default:
		return false
	}
	return true
}

func boolSig(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
