// Package ppu implements the NES Picture Processing Unit: register file,
// nametable/palette/OAM memories, and the per-dot rendering pipeline that
// produces a 256x240 framebuffer.
package ppu

import "github.com/nesbus/nescore/cartridge"

// Register indices for the 8 CPU-visible registers at $2000-$2007.
const (
	RegPPUCTRL = iota
	RegPPUMASK
	RegPPUSTATUS
	RegOAMADDR
	RegOAMDATA
	RegPPUSCROLL
	RegPPUADDR
	RegPPUDATA
)

// PPUCTRL bits.
const (
	ctrlNametableMask = 0x03
	ctrlIncrement     = 1 << 2
	ctrlSpritePattern = 1 << 3
	ctrlBGPattern     = 1 << 4
	ctrlSpriteSize    = 1 << 5
	ctrlGenerateNMI   = 1 << 7
)

// PPUMASK bits.
const (
	maskGrayscale      = 1 << 0
	maskShowBGLeft     = 1 << 1
	maskShowSpriteLeft = 1 << 2
	maskShowBG         = 1 << 3
	maskShowSprites    = 1 << 4
)

// PPUSTATUS bits.
const (
	statusSpriteOverflow = 1 << 5
	statusSpriteZeroHit  = 1 << 6
	statusVBlank         = 1 << 7
)

// Cartridge is the read-only (plus CHR-RAM write) surface the PPU borrows
// from the Console for a clock() call. The Console retains exclusive
// ownership of the underlying *cartridge.Cartridge.
type Cartridge interface {
	PPURead(addr uint16) (uint8, bool)
	PPUWrite(addr uint16, data uint8) bool
	Mirroring() cartridge.Mirroring
}

// PPU holds all NES PPU state: memories, register file, the internal
// scroll registers, both pixel pipelines and the dot counters.
type PPU struct {
	cart Cartridge

	nameTable    [2][1024]uint8
	palette      [32]uint8
	oam          [256]uint8
	secondaryOAM [8 * 4]uint8

	ctrl, mask, status, oamAddr uint8

	v, t       loopy
	fineX      uint8
	writeLatch bool
	dataBuffer uint8

	scanline int16
	cycle    int16

	frameComplete bool
	pendingNMI    bool

	bgNextTileID, bgNextTileAttrib, bgNextTileLSB, bgNextTileMSB uint8
	bgShifterPatternLo, bgShifterPatternHi                       uint16
	bgShifterAttribLo, bgShifterAttribHi                         uint16

	spriteCount                            int
	spritesOnLine                          [8]sprite
	spriteShifterLo, spriteShifterHi       [8]uint8
	spriteZeroOnLine, spriteZeroBeingDrawn bool

	framebuffer [256 * 240]uint32
}

// New returns a PPU with no cartridge connected; ConnectCartridge must be
// called before Clock produces meaningful pixels.
func New() *PPU {
	return &PPU{scanline: -1}
}

// ConnectCartridge gives the PPU read (and CHR-RAM write) access for the
// lifetime of the Console's cartridge.
func (p *PPU) ConnectCartridge(c Cartridge) {
	p.cart = c
}

func (p *PPU) physicalNametable(logicalPage int) int {
	switch p.cart.Mirroring() {
	case cartridge.MirrorVertical:
		return logicalPage % 2
	case cartridge.MirrorOneScreenLo:
		return 0
	case cartridge.MirrorOneScreenHi:
		return 1
	default:
		return logicalPage / 2
	}
}

func paletteIndex(addr uint16) uint16 {
	a := addr & 0x1F
	switch a {
	case 0x10, 0x14, 0x18, 0x1C:
		a -= 0x10
	}
	return a
}

// read is the PPU's internal 14-bit bus: pattern tables via the
// cartridge, nametables with mirroring, palette RAM with its own mirror.
func (p *PPU) read(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		v, _ := p.cart.PPURead(addr)
		return v
	case addr < 0x3F00:
		a := addr & 0x0FFF
		page := int(a / 0x400)
		return p.nameTable[p.physicalNametable(page)][a%0x400]
	default:
		return p.palette[paletteIndex(addr)]
	}
}

func (p *PPU) write(addr uint16, data uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.cart.PPUWrite(addr, data)
	case addr < 0x3F00:
		a := addr & 0x0FFF
		page := int(a / 0x400)
		p.nameTable[p.physicalNametable(page)][a%0x400] = data
	default:
		p.palette[paletteIndex(addr)] = data
	}
}

func (p *PPU) vramIncrement() uint16 {
	if p.ctrl&ctrlIncrement != 0 {
		return 32
	}
	return 1
}

// CPURead services a CPU read of one of the 8 memory-mapped registers.
func (p *PPU) CPURead(reg uint16) uint8 {
	switch reg {
	case RegPPUSTATUS:
		result := (p.status & 0xE0) | (p.dataBuffer & 0x1F)
		p.status &^= statusVBlank
		p.writeLatch = false
		return result
	case RegOAMDATA:
		return p.oam[p.oamAddr]
	case RegPPUDATA:
		result := p.dataBuffer
		p.dataBuffer = p.read(p.v.data)
		if p.v.data&0x3FFF >= 0x3F00 {
			result = p.dataBuffer
		}
		p.v.data += p.vramIncrement()
		return result
	default:
		return 0
	}
}

// CPUWrite services a CPU write to one of the 8 memory-mapped registers.
func (p *PPU) CPUWrite(reg uint16, data uint8) {
	switch reg {
	case RegPPUCTRL:
		p.ctrl = data
		p.t.data = (p.t.data &^ 0x0C00) | (uint16(data&ctrlNametableMask) << 10)
	case RegPPUMASK:
		p.mask = data
	case RegOAMADDR:
		p.oamAddr = data
	case RegOAMDATA:
		p.oam[p.oamAddr] = data
		p.oamAddr++
	case RegPPUSCROLL:
		if !p.writeLatch {
			p.fineX = data & 0x07
			p.t.data = (p.t.data &^ 0x001F) | uint16(data>>3)
			p.writeLatch = true
		} else {
			p.t.data = (p.t.data &^ 0x73E0) | (uint16(data&0x07) << 12) | (uint16(data>>3) << 5)
			p.writeLatch = false
		}
	case RegPPUADDR:
		if !p.writeLatch {
			p.t.data = (p.t.data & 0x00FF) | (uint16(data&0x3F) << 8)
			p.writeLatch = true
		} else {
			p.t.data = (p.t.data &^ 0x00FF) | uint16(data)
			p.v = p.t
			p.writeLatch = false
		}
	case RegPPUDATA:
		p.write(p.v.data, data)
		p.v.data += p.vramIncrement()
	}
}

// WriteOAMByte is used by the Console's OAM DMA controller, which copies
// a CPU page straight into OAM byte-by-byte.
func (p *PPU) WriteOAMByte(idx uint8, data uint8) { p.oam[idx] = data }

// OAMAddr exposes the current OAMADDR, which DMA reads start from.
func (p *PPU) OAMAddr() uint8 { return p.oamAddr }

// Framebuffer returns the current 256x240 packed-RGB pixel buffer.
func (p *PPU) Framebuffer() []uint32 { return p.framebuffer[:] }

// OAM returns the full 256-byte object attribute memory.
func (p *PPU) OAM() []uint8 { return p.oam[:] }

// Nametables returns the two physical 1 KiB nametable pages.
func (p *PPU) Nametables() [2][1024]uint8 { return p.nameTable }

// PendingNMI is true once per frame, at the start of vblank, if the CPU
// hasn't been notified yet; Console consumes it with TakePendingNMI.
func (p *PPU) PendingNMI() bool { return p.pendingNMI }

// TakePendingNMI clears and returns the pending-NMI flag.
func (p *PPU) TakePendingNMI() bool {
	v := p.pendingNMI
	p.pendingNMI = false
	return v
}

// FrameComplete is true for one Clock() call at the end of each frame.
func (p *PPU) FrameComplete() bool { return p.frameComplete }

// ClearFrameComplete resets the flag after the host has observed it.
func (p *PPU) ClearFrameComplete() { p.frameComplete = false }

func (p *PPU) renderingEnabled() bool {
	return p.mask&(maskShowBG|maskShowSprites) != 0
}
