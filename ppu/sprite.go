package ppu

// Sprite attribute bits, byte 2 of an OAM entry. Bits 2-4 are
// unimplemented on the real chip and read back as 0.
const (
	attrPaletteMask = 0x03   // sprite palette group (selects $3F10-$3F1C)
	attrBehindBG    = 1 << 5 // rendered behind opaque background pixels
	attrFlipH       = 1 << 6
	attrFlipV       = 1 << 7

	attrImplemented = attrPaletteMask | attrBehindBG | attrFlipH | attrFlipV
)

// sprite is one OAM entry as the evaluation pass copies it into the
// per-scanline slots. y holds the stored coordinate, which the hardware
// keeps one line early: evaluation on scanline N picks the sprites drawn
// on N+1, so y never needs adjusting here. x doubles as the countdown
// the shifter logic decrements until the sprite becomes active.
type sprite struct {
	y    uint8
	tile uint8
	attr uint8
	x    uint8
}

func spriteFromOAM(raw []uint8) sprite {
	return sprite{
		y:    raw[0],
		tile: raw[1],
		attr: raw[2] & attrImplemented,
		x:    raw[3],
	}
}

func (s sprite) paletteGroup() uint8 { return s.attr & attrPaletteMask }
func (s sprite) behindBG() bool      { return s.attr&attrBehindBG != 0 }
func (s sprite) flipH() bool         { return s.attr&attrFlipH != 0 }
func (s sprite) flipV() bool         { return s.attr&attrFlipV != 0 }
