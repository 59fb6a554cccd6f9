package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wren/goosesim/sim/clock"
	"github.com/wren/goosesim/sim/design"
)

func newQuietDriver(t *testing.T) *clock.Driver {
	t.Helper()
	d := clock.NewDriver(design.NewGoose())
	d.Reset()
	d.Warmup(10)
	return d
}

func TestGenerator_NaturalSamplePacing(t *testing.T) {
	driver := newQuietDriver(t)
	gen, err := NewGenerator(driver)
	require.NoError(t, err)

	gen.NextSample() // align to the divider phase
	start := driver.Cycles()
	for i := 0; i < 4; i++ {
		gen.NextSample()
	}
	elapsed := driver.Cycles() - start
	assert.EqualValues(t, 4*design.SampleDivPeriod, elapsed,
		"one sample per divider period when the strobe is observed naturally")
	assert.Zero(t, gen.Fallbacks())
}

func TestGenerator_ForcedFallback(t *testing.T) {
	driver := newQuietDriver(t)
	gen, err := NewGenerator(driver)
	require.NoError(t, err)

	// With a timeout far below the divider period the natural wait can
	// never observe the strobe, so every sample takes the forced path.
	gen.SetReadyTimeout(4)
	for i := 0; i < 3; i++ {
		gen.NextSample()
	}
	assert.EqualValues(t, 3, gen.Fallbacks())
}

func TestGenerator_ForceNextIsOneCycle(t *testing.T) {
	driver := newQuietDriver(t)
	gen, err := NewGenerator(driver)
	require.NoError(t, err)

	start := driver.Cycles()
	for i := 0; i < 16; i++ {
		gen.ForceNext()
	}
	assert.EqualValues(t, 16, driver.Cycles()-start,
		"callback-clocked pacing is exactly one cycle per sample")
}

func TestGenerator_RenderJumpSound(t *testing.T) {
	driver := newQuietDriver(t)
	gen, err := NewGenerator(driver)
	require.NoError(t, err)

	jump := Sounds[0]
	require.Equal(t, "jump", jump.Name)

	samples, err := gen.Render(jump)
	require.NoError(t, err)

	wantLen := (design.JumpDurationMs + design.SoundPaddingMs) * SampleRate / 1000
	assert.Len(t, samples, wantLen, "duration plus padding, truncating division")

	nonSilent := 0
	for _, s := range samples {
		if s != 0 {
			nonSilent++
		}
	}
	assert.Greater(t, nonSilent, wantLen/2, "triggered sound is not silence")
}

func TestGenerator_SoundCatalogueLengths(t *testing.T) {
	tests := []struct {
		name       string
		durationMs int
	}{
		{"jump", design.JumpDurationMs},
		{"death", design.DeathDurationMs},
		{"highscore", design.HighscoreDurationMs},
	}
	for i, tt := range tests {
		assert.Equal(t, tt.name, Sounds[i].Name)
		assert.Equal(t, (tt.durationMs+design.SoundPaddingMs)*SampleRate/1000, Sounds[i].Samples())
	}
}

func TestTap_PushesOnStrobe(t *testing.T) {
	goose := design.NewGoose()
	driver := clock.NewDriver(goose)
	driver.Reset()

	ring := NewRing(64)
	tap := NewTap(goose, ring)
	require.True(t, tap.Available())

	for i := 0; i < 3*design.SampleDivPeriod; i++ {
		driver.Cycle()
		tap.OnCycle()
	}
	assert.Equal(t, 3, ring.Len(), "one sample lands in the ring per divider period")
	assert.EqualValues(t, 3, tap.Produced())
}

func TestTap_UnavailableStaysQuiet(t *testing.T) {
	ring := NewRing(8)
	tap := NewTap(plainDesign{}, ring)
	assert.False(t, tap.Available())
	tap.OnCycle()
	assert.Zero(t, ring.Len())
}

type plainDesign struct{}

func (plainDesign) SetClock(bool)   {}
func (plainDesign) SetResetN(bool)  {}
func (plainDesign) SetInputs(uint8) {}
func (plainDesign) Inputs() uint8   { return 0 }
func (plainDesign) Outputs() uint8  { return 0 }
func (plainDesign) Eval()           {}
