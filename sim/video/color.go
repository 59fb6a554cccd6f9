package video

// Output bus layout, bit 7 down to bit 0:
// {HSync, B0, G0, R0, VSync, B1, G1, R1}. Each color channel is two bits,
// reassembled as {bit1, bit0}.
const (
	busR1    = 1 << 0
	busG1    = 1 << 1
	busB1    = 1 << 2
	busVSync = 1 << 3
	busR0    = 1 << 4
	busG0    = 1 << 5
	busB0    = 1 << 6
	busHSync = 1 << 7
)

// Expand2 widens a 2-bit channel sample to 8 bits by bit replication:
// 00->0, 01->85, 10->170, 11->255. This is the replication law, not linear
// scaling, and must stay bit-exact.
func Expand2(x uint8) uint8 {
	x &= 0x03
	return x<<6 | x<<4 | x<<2 | x
}

// UnpackRGB extracts the three 2-bit channel samples from the output bus.
func UnpackRGB(bus uint8) (r, g, b uint8) {
	r = (bus&busR1)<<1 | (bus&busR0)>>4
	g = (bus&busG1)>>1<<1 | (bus&busG0)>>5
	b = (bus&busB1)>>2<<1 | (bus&busB0)>>6
	return r, g, b
}

// HSync reports the raw hsync pin level (active low on the wire).
func HSync(bus uint8) bool { return bus&busHSync != 0 }

// VSync reports the raw vsync pin level (active low on the wire).
func VSync(bus uint8) bool { return bus&busVSync != 0 }

// PackARGB expands the three 2-bit samples and packs them as an opaque
// ARGB8888 pixel.
func PackARGB(r, g, b uint8) uint32 {
	return 0xFF000000 |
		uint32(Expand2(r))<<16 |
		uint32(Expand2(g))<<8 |
		uint32(Expand2(b))
}

// BusToARGB converts one output bus sample straight to a packed pixel.
func BusToARGB(bus uint8) uint32 {
	r, g, b := UnpackRGB(bus)
	return PackARGB(r, g, b)
}
