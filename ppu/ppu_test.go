package ppu

import (
	"testing"

	"github.com/nesbus/nescore/cartridge"
)

// testCart is a flat 8K of CHR-RAM with a selectable mirroring mode.
type testCart struct {
	chr    [0x2000]uint8
	mirror cartridge.Mirroring
}

func (c *testCart) PPURead(addr uint16) (uint8, bool) { return c.chr[addr&0x1FFF], true }
func (c *testCart) PPUWrite(addr uint16, d uint8) bool {
	c.chr[addr&0x1FFF] = d
	return true
}
func (c *testCart) Mirroring() cartridge.Mirroring { return c.mirror }

func newTestPPU(m cartridge.Mirroring) (*PPU, *testCart) {
	cart := &testCart{mirror: m}
	p := New()
	p.ConnectCartridge(cart)
	return p, cart
}

// setAddr performs the two PPUADDR writes that load v.
func setAddr(p *PPU, addr uint16) {
	p.CPUWrite(RegPPUADDR, uint8(addr>>8))
	p.CPUWrite(RegPPUADDR, uint8(addr))
}

func TestPPUAddrTwoWritesSetV(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)
	setAddr(p, 0x2306)
	if p.v.data != 0x2306 {
		t.Fatalf("v = %#04x, want 0x2306", p.v.data)
	}
	if p.writeLatch {
		t.Fatalf("write latch should be clear after the second write")
	}
}

func TestPPUScrollWrites(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)
	p.CPUWrite(RegPPUSCROLL, 0x7D) // coarse X 15, fine X 5
	p.CPUWrite(RegPPUSCROLL, 0x5E) // coarse Y 11, fine Y 6

	if p.fineX != 5 {
		t.Fatalf("fineX = %d, want 5", p.fineX)
	}
	want := uint16(6<<12 | 11<<5 | 15)
	if p.t.data != want {
		t.Fatalf("t = %#04x, want %#04x", p.t.data, want)
	}
}

func TestStatusReadClearsVBlankAndLatch(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)
	p.status |= statusVBlank
	p.CPUWrite(RegPPUSCROLL, 0x10) // sets the latch

	got := p.CPURead(RegPPUSTATUS)
	if got&statusVBlank == 0 {
		t.Fatalf("first status read = %#02x, want vblank set", got)
	}
	if p.status&statusVBlank != 0 {
		t.Fatalf("vblank should clear as a read side effect")
	}
	if p.writeLatch {
		t.Fatalf("write latch should reset as a read side effect")
	}
}

func TestPPUDataBufferedRead(t *testing.T) {
	p, cart := newTestPPU(cartridge.MirrorHorizontal)
	cart.chr[0x0010] = 0xAA
	cart.chr[0x0011] = 0xBB

	setAddr(p, 0x0010)
	if got := p.CPURead(RegPPUDATA); got != 0x00 {
		t.Fatalf("first read = %#02x, want stale buffer 0x00", got)
	}
	if got := p.CPURead(RegPPUDATA); got != 0xAA {
		t.Fatalf("second read = %#02x, want 0xaa", got)
	}
	if got := p.CPURead(RegPPUDATA); got != 0xBB {
		t.Fatalf("third read = %#02x, want 0xbb (auto-increment)", got)
	}
}

func TestPPUDataPaletteReadsAreImmediate(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)
	p.palette[1] = 0x17

	setAddr(p, 0x3F01)
	if got := p.CPURead(RegPPUDATA); got != 0x17 {
		t.Fatalf("palette read = %#02x, want immediate 0x17", got)
	}
}

func TestVRAMIncrement32(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)
	p.CPUWrite(RegPPUCTRL, ctrlIncrement)
	setAddr(p, 0x2000)
	p.CPUWrite(RegPPUDATA, 0x01)
	if p.v.data != 0x2020 {
		t.Fatalf("v after write = %#04x, want 0x2020", p.v.data)
	}
}

func TestPaletteMirror(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)

	setAddr(p, 0x3F10)
	p.CPUWrite(RegPPUDATA, 0x2C)

	setAddr(p, 0x3F00)
	if got := p.CPURead(RegPPUDATA); got != 0x2C {
		t.Fatalf("read($3F00) = %#02x, want 0x2c written via $3F10", got)
	}
}

func TestNametableMirroring(t *testing.T) {
	cases := []struct {
		mirror     cartridge.Mirroring
		writeAddr  uint16
		mirrorAddr uint16
	}{
		{cartridge.MirrorVertical, 0x2000, 0x2800},
		{cartridge.MirrorHorizontal, 0x2000, 0x2400},
		{cartridge.MirrorOneScreenLo, 0x2000, 0x2C00},
		{cartridge.MirrorOneScreenHi, 0x2400, 0x2C00},
	}

	for _, tc := range cases {
		t.Run(tc.mirror.String(), func(t *testing.T) {
			p, _ := newTestPPU(tc.mirror)
			p.write(tc.writeAddr, 0x42)
			if got := p.read(tc.mirrorAddr); got != 0x42 {
				t.Fatalf("read(%#04x) = %#02x, want 0x42 written at %#04x",
					tc.mirrorAddr, got, tc.writeAddr)
			}
		})
	}
}

func TestVBlankTiming(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)
	p.CPUWrite(RegPPUCTRL, ctrlGenerateNMI)

	// From the pre-render line's dot 0, vblank sets at scanline 241
	// dot 1: 242 full scanlines of 341 dots, plus one more dot.
	ticks := 242*341 + 1
	for i := 0; i < ticks; i++ {
		p.Clock()
	}
	if p.status&statusVBlank != 0 {
		t.Fatalf("vblank set one dot early")
	}
	p.Clock()
	if p.status&statusVBlank == 0 {
		t.Fatalf("vblank not set at scanline 241 dot 1")
	}
	if !p.PendingNMI() {
		t.Fatalf("NMI should be pending once vblank starts")
	}
}

func TestFrameCompleteOncePerFrame(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)
	const frame = 262 * 341
	for i := 0; i < frame-1; i++ {
		p.Clock()
		if p.FrameComplete() {
			t.Fatalf("frame complete after only %d dots", i+1)
		}
	}
	p.Clock()
	if !p.FrameComplete() {
		t.Fatalf("frame not complete after %d dots", frame)
	}
}

func TestBackdropFillsFramebuffer(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)
	p.palette[0] = 0x21
	p.CPUWrite(RegPPUMASK, maskShowBG)

	for i := 0; i < 262*341; i++ {
		p.Clock()
	}

	want := systemPalette[0x21]
	fb := p.Framebuffer()
	for _, i := range []int{0, 128, 239*256 + 255} {
		if fb[i] != want {
			t.Fatalf("framebuffer[%d] = %#06x, want backdrop %#06x", i, fb[i], want)
		}
	}
}

func TestSpriteEvaluation(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)
	p.scanline = 10

	// Sprite 0 and one more intersect scanline 10; everything else is
	// parked offscreen.
	for i := range p.oam {
		p.oam[i] = 0xEF
	}
	p.oam[0] = 8  // sprite 0: y=8, rows 8-15
	p.oam[20] = 5 // sprite 5: y=5

	p.evaluateSprites()

	if p.spriteCount != 2 {
		t.Fatalf("spriteCount = %d, want 2", p.spriteCount)
	}
	if !p.spriteZeroOnLine {
		t.Fatalf("sprite zero should be flagged on this line")
	}
	if p.status&statusSpriteOverflow != 0 {
		t.Fatalf("overflow should not be set for 2 sprites")
	}
}

func TestSpriteOverflow(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)
	p.scanline = 4

	for i := 0; i < 9; i++ {
		p.oam[i*4] = 0 // nine sprites all covering scanline 4
	}
	for i := 9; i < 64; i++ {
		p.oam[i*4] = 0xEF
	}

	p.evaluateSprites()

	if p.spriteCount != 8 {
		t.Fatalf("spriteCount = %d, want the 8-sprite limit", p.spriteCount)
	}
	if p.status&statusSpriteOverflow == 0 {
		t.Fatalf("a ninth in-range sprite must set the overflow flag")
	}
}

func TestSpriteHeightFollowsCtrl(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)
	if p.spriteHeight() != 8 {
		t.Fatalf("default sprite height = %d, want 8", p.spriteHeight())
	}
	p.CPUWrite(RegPPUCTRL, ctrlSpriteSize)
	if p.spriteHeight() != 16 {
		t.Fatalf("8x16 sprite height = %d, want 16", p.spriteHeight())
	}
}

func TestFlipByte(t *testing.T) {
	cases := map[uint8]uint8{0x01: 0x80, 0xF0: 0x0F, 0xA5: 0xA5, 0xC3: 0xC3, 0x12: 0x48}
	for in, want := range cases {
		if got := flipByte(in); got != want {
			t.Fatalf("flipByte(%#02x) = %#02x, want %#02x", in, got, want)
		}
	}
}

func TestSpriteDecode(t *testing.T) {
	raw := []uint8{0x30, 0x81, 0xE2, 0x40}
	s := spriteFromOAM(raw)

	if s.y != 0x30 || s.tile != 0x81 || s.x != 0x40 {
		t.Fatalf("decoded sprite = %+v, want y=0x30 tile=0x81 x=0x40", s)
	}
	if s.paletteGroup() != 2 || !s.behindBG() || !s.flipH() || !s.flipV() {
		t.Fatalf("attribute decode wrong: %+v", s)
	}
	// The unimplemented attribute bits read back as 0.
	if s.attr != raw[2]&attrImplemented {
		t.Fatalf("attr = %#02x, want %#02x", s.attr, raw[2]&attrImplemented)
	}
}

func TestOAMDataReadWrite(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)
	p.CPUWrite(RegOAMADDR, 0x10)
	p.CPUWrite(RegOAMDATA, 0x42)
	if p.oam[0x10] != 0x42 {
		t.Fatalf("oam[0x10] = %#02x, want 0x42", p.oam[0x10])
	}
	if p.OAMAddr() != 0x11 {
		t.Fatalf("OAMAddr() = %#02x, want auto-incremented 0x11", p.OAMAddr())
	}

	p.CPUWrite(RegOAMADDR, 0x10)
	if got := p.CPURead(RegOAMDATA); got != 0x42 {
		t.Fatalf("OAMDATA read = %#02x, want 0x42", got)
	}
}
