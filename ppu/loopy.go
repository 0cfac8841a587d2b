package ppu

// loopy is the internal 15-bit VRAM address register the NES's real PPU
// uses for both the current (v) and temporary (t) scroll position:
//
//	yyy NN YYYYY XXXXX
//	||| || ||||| +++++-- coarse X scroll
//	||| || +++++-------- coarse Y scroll
//	||| ++-------------- nametable select
//	+++----------------- fine Y scroll
type loopy struct {
	data uint16 // only 15 bits used
}

func (l *loopy) coarseX() uint16    { return l.data & 0x001F }
func (l *loopy) coarseY() uint16    { return (l.data & 0x03E0) >> 5 }
func (l *loopy) nametableX() uint16 { return (l.data & 0x0400) >> 10 }
func (l *loopy) nametableY() uint16 { return (l.data & 0x0800) >> 11 }
func (l *loopy) fineY() uint16      { return (l.data & 0x7000) >> 12 }

// incrementCoarseX wraps at the edge of a nametable, flipping to the
// horizontally adjacent one.
func (l *loopy) incrementCoarseX() {
	if l.coarseX() == 31 {
		l.data &^= 0x001F
		l.data ^= 0x0400
	} else {
		l.data++
	}
}

// incrementY advances fine-Y, rolling into coarse-Y (with the NES's
// off-by-one quirk at row 29, the last real tile row) and then into the
// vertically adjacent nametable.
func (l *loopy) incrementY() {
	if l.fineY() < 7 {
		l.data += 0x1000
		return
	}
	l.data &^= 0x7000

	y := l.coarseY()
	switch y {
	case 29:
		y = 0
		l.data ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	l.data = (l.data &^ 0x03E0) | (y << 5)
}

// transferX copies the horizontal bits (coarse-X, nametable-X) from src.
func (l *loopy) transferX(src loopy) {
	l.data = (l.data &^ 0x041F) | (src.data & 0x041F)
}

// transferY copies the vertical bits (coarse-Y, fine-Y, nametable-Y).
func (l *loopy) transferY(src loopy) {
	l.data = (l.data &^ 0x7BE0) | (src.data & 0x7BE0)
}
