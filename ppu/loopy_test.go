package ppu

import "testing"

func TestIncrementCoarseXWraps(t *testing.T) {
	var l loopy
	l.data = 31 // coarse X at the last tile of the nametable
	l.incrementCoarseX()
	if l.coarseX() != 0 {
		t.Fatalf("coarseX = %d, want 0", l.coarseX())
	}
	if l.nametableX() != 1 {
		t.Fatalf("nametableX = %d, want 1 (flipped)", l.nametableX())
	}
}

func TestIncrementYFineToCoarse(t *testing.T) {
	var l loopy
	for i := 0; i < 7; i++ {
		l.incrementY()
	}
	if l.fineY() != 7 || l.coarseY() != 0 {
		t.Fatalf("fineY=%d coarseY=%d, want 7,0", l.fineY(), l.coarseY())
	}
	l.incrementY()
	if l.fineY() != 0 || l.coarseY() != 1 {
		t.Fatalf("fineY=%d coarseY=%d, want 0,1", l.fineY(), l.coarseY())
	}
}

func TestIncrementYRow29FlipsNametable(t *testing.T) {
	var l loopy
	l.data = (7 << 12) | (29 << 5) // fine Y 7, coarse Y 29
	l.incrementY()
	if l.coarseY() != 0 {
		t.Fatalf("coarseY = %d, want 0", l.coarseY())
	}
	if l.nametableY() != 1 {
		t.Fatalf("nametableY = %d, want 1 (flipped)", l.nametableY())
	}
}

func TestIncrementYRow31WrapsWithoutFlip(t *testing.T) {
	// Rows 30/31 are the attribute area; writing scroll values there is
	// legal and wraps without switching nametables.
	var l loopy
	l.data = (7 << 12) | (31 << 5)
	l.incrementY()
	if l.coarseY() != 0 || l.nametableY() != 0 {
		t.Fatalf("coarseY=%d nametableY=%d, want 0,0", l.coarseY(), l.nametableY())
	}
}

func TestTransferXAndY(t *testing.T) {
	var v, src loopy
	src.data = 0x7FFF
	v.transferX(src)
	if v.data != 0x041F {
		t.Fatalf("transferX left v = %#04x, want 0x041f", v.data)
	}
	v.data = 0
	v.transferY(src)
	if v.data != 0x7BE0 {
		t.Fatalf("transferY left v = %#04x, want 0x7be0", v.data)
	}
}
