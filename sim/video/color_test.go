package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand2_BitReplication(t *testing.T) {
	// The replication law, not linear scaling: each 2-bit value repeated
	// four times across the byte.
	expected := map[uint8]uint8{0: 0, 1: 85, 2: 170, 3: 255}
	for in, want := range expected {
		assert.Equal(t, want, Expand2(in), "Expand2(%d)", in)
	}
}

func TestExpand2_TruncatesHighBits(t *testing.T) {
	assert.Equal(t, Expand2(1), Expand2(5), "only the low 2 bits should matter")
}

func TestUnpackRGB(t *testing.T) {
	tests := []struct {
		name    string
		bus     uint8
		r, g, b uint8
	}{
		{name: "all channels zero", bus: 0x88, r: 0, g: 0, b: 0}, // syncs inactive only
		{name: "red full", bus: 1<<0 | 1<<4, r: 3},
		{name: "green full", bus: 1<<1 | 1<<5, g: 3},
		{name: "blue full", bus: 1<<2 | 1<<6, b: 3},
		{name: "red msb only", bus: 1 << 0, r: 2},
		{name: "red lsb only", bus: 1 << 4, r: 1},
		{name: "mixed", bus: 1<<0 | 1<<5 | 1<<2 | 1<<6, r: 2, g: 1, b: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := UnpackRGB(tt.bus)
			assert.Equal(t, tt.r, r, "red")
			assert.Equal(t, tt.g, g, "green")
			assert.Equal(t, tt.b, b, "blue")
		})
	}
}

func TestSyncBits(t *testing.T) {
	assert.True(t, HSync(0x80))
	assert.False(t, HSync(0x7F))
	assert.True(t, VSync(0x08))
	assert.False(t, VSync(0xF7))
}

func TestPackARGB(t *testing.T) {
	assert.Equal(t, uint32(0xFFFFFFFF), PackARGB(3, 3, 3))
	assert.Equal(t, uint32(0xFF000000), PackARGB(0, 0, 0))
	assert.Equal(t, uint32(0xFF55AAFF), PackARGB(1, 2, 3))
}

func TestBusToARGB(t *testing.T) {
	// full white pixel with syncs inactive
	bus := uint8(0x88 | 1<<0 | 1<<4 | 1<<1 | 1<<5 | 1<<2 | 1<<6)
	assert.Equal(t, uint32(0xFFFFFFFF), BusToARGB(bus))
}
