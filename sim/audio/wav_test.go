package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWAV_RoundTrip(t *testing.T) {
	samples := []int16{0, 1000, -1000, 32767, -32768, 0}
	path := filepath.Join(t.TempDir(), "out.wav")

	require.NoError(t, WriteWAV(path, samples, SampleRate))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	assert.EqualValues(t, SampleRate, dec.SampleRate)
	assert.EqualValues(t, 16, dec.BitDepth)
	assert.EqualValues(t, 1, dec.NumChans)

	require.Len(t, buf.Data, len(samples))
	for i, s := range samples {
		assert.EqualValues(t, s, buf.Data[i], "sample %d", i)
	}
}

func TestWriteWAV_DerivedSampleRate(t *testing.T) {
	// The export rate must come from the clock and divider constants, not
	// a rounded literal.
	assert.Equal(t, 46875, SampleRate)
	assert.Equal(t, 48_000_000/1024, SampleRate)
}
