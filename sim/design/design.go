// Package design defines the contract between the simulation harness and a
// compiled hardware model. The model is opaque: the harness only toggles the
// clock pin, evaluates, and reads or writes named pins. Anything beyond that
// (the logic inside the design) is the model's own business.
package design

// Design is a handle to a synchronous hardware model. The harness owns the
// handle exclusively for its lifetime.
//
// Output pins are only valid immediately after an Eval following a clock
// edge. Reading them before the first reset-then-run sequence is undefined.
type Design interface {
	// SetClock drives the clk pin. Simulated time only advances through
	// low/high toggles of this pin followed by Eval.
	SetClock(high bool)

	// SetResetN drives the rst_n pin at the wire level (active low: false
	// asserts reset).
	SetResetN(high bool)

	// SetInputs drives the 8-bit input pin bus.
	SetInputs(bus uint8)

	// Inputs returns the value currently driven on the input bus.
	Inputs() uint8

	// Outputs reads the 8-bit output pin bus.
	Outputs() uint8

	// Eval re-evaluates the model against the current pin state.
	Eval()
}

// Inspector is implemented by models that expose internal hierarchical
// signals for instrumentation, such as an audio sample register or a
// "new sample" strobe. Paths are dot-separated, e.g.
// "audio_ctrl.new_sample".
type Inspector interface {
	// Signal reads an internal signal. ok is false if the path is unknown,
	// which callers should treat as "tap unavailable" rather than an error.
	Signal(path string) (value uint32, ok bool)
}

// Forcer is implemented by models that allow internal registers to be
// overwritten. The harness uses this for the sample-divider fallback when a
// sample strobe never shows up within its expected cycle bound.
type Forcer interface {
	// SetSignal overwrites an internal signal, returning false if the path
	// is unknown or read-only.
	SetSignal(path string, value uint32) bool
}

// Well-known instrumentation paths, matching the audio controller hierarchy
// of the reference design.
const (
	SigNewSample = "audio_ctrl.new_sample"
	SigSampleReg = "audio_ctrl.audio_sample_reg"
	SigSampleDiv = "audio_ctrl.sample_div"

	SigEventJump      = "event_jump"
	SigEventDeath     = "event_death"
	SigEventHighscore = "event_highscore"
	SigGameRunning    = "game_running"
)
