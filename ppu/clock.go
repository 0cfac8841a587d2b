package ppu

// This file is the per-dot state machine: background tile fetches feed the
// shift registers, sprite evaluation fills the secondary OAM for the next
// scanline, and the pixel mux combines both planes into the framebuffer.

func (p *PPU) spriteHeight() int16 {
	if p.ctrl&ctrlSpriteSize != 0 {
		return 16
	}
	return 8
}

func (p *PPU) incrementScrollX() {
	if p.renderingEnabled() {
		p.v.incrementCoarseX()
	}
}

func (p *PPU) incrementScrollY() {
	if p.renderingEnabled() {
		p.v.incrementY()
	}
}

func (p *PPU) transferAddressX() {
	if p.renderingEnabled() {
		p.v.transferX(p.t)
	}
}

func (p *PPU) transferAddressY() {
	if p.renderingEnabled() {
		p.v.transferY(p.t)
	}
}

// loadBackgroundShifters parallel-loads the next tile's pattern bits into
// the low byte of the 16-bit shifters; the attribute bits are smeared
// across a whole byte since they apply to every pixel of the tile.
func (p *PPU) loadBackgroundShifters() {
	p.bgShifterPatternLo = (p.bgShifterPatternLo & 0xFF00) | uint16(p.bgNextTileLSB)
	p.bgShifterPatternHi = (p.bgShifterPatternHi & 0xFF00) | uint16(p.bgNextTileMSB)

	attrLo, attrHi := uint16(0x0000), uint16(0x0000)
	if p.bgNextTileAttrib&0x01 != 0 {
		attrLo = 0x00FF
	}
	if p.bgNextTileAttrib&0x02 != 0 {
		attrHi = 0x00FF
	}
	p.bgShifterAttribLo = (p.bgShifterAttribLo & 0xFF00) | attrLo
	p.bgShifterAttribHi = (p.bgShifterAttribHi & 0xFF00) | attrHi
}

func (p *PPU) updateShifters() {
	if p.mask&maskShowBG != 0 {
		p.bgShifterPatternLo <<= 1
		p.bgShifterPatternHi <<= 1
		p.bgShifterAttribLo <<= 1
		p.bgShifterAttribHi <<= 1
	}

	if p.mask&maskShowSprites != 0 && p.cycle >= 1 && p.cycle < 258 {
		for i := 0; i < p.spriteCount; i++ {
			if p.spritesOnLine[i].x > 0 {
				p.spritesOnLine[i].x--
			} else {
				p.spriteShifterLo[i] <<= 1
				p.spriteShifterHi[i] <<= 1
			}
		}
	}
}

// backgroundFetch runs the 8-dot tile fetch cadence: nametable byte,
// attribute byte, pattern LSB, pattern MSB, then advance coarse-X.
func (p *PPU) backgroundFetch() {
	switch (p.cycle - 1) % 8 {
	case 0:
		p.loadBackgroundShifters()
		p.bgNextTileID = p.read(0x2000 | (p.v.data & 0x0FFF))
	case 2:
		attr := p.read(0x23C0 | (p.v.data & 0x0C00) |
			((p.v.coarseY() >> 2) << 3) | (p.v.coarseX() >> 2))
		// Each attribute byte covers a 4x4 tile block; shift the
		// relevant 2-bit quadrant down.
		if p.v.coarseY()&0x02 != 0 {
			attr >>= 4
		}
		if p.v.coarseX()&0x02 != 0 {
			attr >>= 2
		}
		p.bgNextTileAttrib = attr & 0x03
	case 4:
		base := uint16(0)
		if p.ctrl&ctrlBGPattern != 0 {
			base = 0x1000
		}
		p.bgNextTileLSB = p.read(base + uint16(p.bgNextTileID)<<4 + p.v.fineY())
	case 6:
		base := uint16(0)
		if p.ctrl&ctrlBGPattern != 0 {
			base = 0x1000
		}
		p.bgNextTileMSB = p.read(base + uint16(p.bgNextTileID)<<4 + p.v.fineY() + 8)
	case 7:
		p.incrementScrollX()
	}
}

// evaluateSprites scans primary OAM for sprites intersecting the next
// scanline, copying up to 8 into the secondary OAM and latching sprite
// zero's presence; a ninth in-range sprite sets the overflow flag.
func (p *PPU) evaluateSprites() {
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
	p.spriteCount = 0
	p.spriteZeroOnLine = false
	for i := range p.spriteShifterLo {
		p.spriteShifterLo[i] = 0
		p.spriteShifterHi[i] = 0
	}

	height := p.spriteHeight()
	for i := 0; i < 64; i++ {
		diff := p.scanline - int16(p.oam[i*4])
		if diff < 0 || diff >= height {
			continue
		}
		if p.spriteCount == 8 {
			p.status |= statusSpriteOverflow
			break
		}
		copy(p.secondaryOAM[p.spriteCount*4:], p.oam[i*4:i*4+4])
		p.spritesOnLine[p.spriteCount] = spriteFromOAM(p.oam[i*4 : i*4+4])
		if i == 0 {
			p.spriteZeroOnLine = true
		}
		p.spriteCount++
	}
}

func flipByte(b uint8) uint8 {
	b = (b&0xF0)>>4 | (b&0x0F)<<4
	b = (b&0xCC)>>2 | (b&0x33)<<2
	b = (b&0xAA)>>1 | (b&0x55)<<1
	return b
}

// fetchSpritePatterns fills the per-sprite shift registers for the
// scanline the secondary OAM was evaluated against, handling both 8x8
// and 8x16 sprites and vertical/horizontal flips.
func (p *PPU) fetchSpritePatterns() {
	for i := 0; i < p.spriteCount; i++ {
		s := p.spritesOnLine[i]
		row := p.scanline - int16(s.y)

		var addrLo uint16
		if p.ctrl&ctrlSpriteSize == 0 {
			// 8x8: pattern table from PPUCTRL bit 3.
			base := uint16(0)
			if p.ctrl&ctrlSpritePattern != 0 {
				base = 0x1000
			}
			if s.flipV() {
				row = 7 - row
			}
			addrLo = base | uint16(s.tile)<<4 | uint16(row)
		} else {
			// 8x16: pattern table from the tile id's bit 0; the
			// even tile is the top half, odd the bottom, swapped
			// when vertically flipped.
			base := uint16(s.tile&0x01) << 12
			tile := uint16(s.tile & 0xFE)
			if s.flipV() {
				row = 15 - row
			}
			if row > 7 {
				tile++
				row -= 8
			}
			addrLo = base | tile<<4 | uint16(row)
		}

		lo := p.read(addrLo)
		hi := p.read(addrLo + 8)
		if s.flipH() {
			lo = flipByte(lo)
			hi = flipByte(hi)
		}
		p.spriteShifterLo[i] = lo
		p.spriteShifterHi[i] = hi
	}
}

// renderPixel muxes the background shifters against the leading opaque
// sprite pixel and writes the resulting color to the framebuffer. Runs
// once per visible dot, at cycle x+1 for pixel x.
func (p *PPU) renderPixel() {
	var bgPixel, bgPalette uint8
	if p.mask&maskShowBG != 0 && (p.mask&maskShowBGLeft != 0 || p.cycle >= 9) {
		mux := uint16(0x8000) >> p.fineX
		var p0, p1 uint8
		if p.bgShifterPatternLo&mux != 0 {
			p0 = 1
		}
		if p.bgShifterPatternHi&mux != 0 {
			p1 = 1
		}
		bgPixel = p1<<1 | p0

		var a0, a1 uint8
		if p.bgShifterAttribLo&mux != 0 {
			a0 = 1
		}
		if p.bgShifterAttribHi&mux != 0 {
			a1 = 1
		}
		bgPalette = a1<<1 | a0
	}

	var fgPixel, fgPalette uint8
	var fgInFront bool
	p.spriteZeroBeingDrawn = false
	if p.mask&maskShowSprites != 0 && (p.mask&maskShowSpriteLeft != 0 || p.cycle >= 9) {
		for i := 0; i < p.spriteCount; i++ {
			if p.spritesOnLine[i].x != 0 {
				continue
			}
			lo := p.spriteShifterLo[i] >> 7
			hi := p.spriteShifterHi[i] >> 7
			px := hi<<1 | lo
			if px == 0 {
				continue
			}
			fgPixel = px
			fgPalette = p.spritesOnLine[i].paletteGroup() + 4
			fgInFront = !p.spritesOnLine[i].behindBG()
			if i == 0 && p.spriteZeroOnLine {
				p.spriteZeroBeingDrawn = true
			}
			break
		}
	}

	var pixel, palette uint8
	switch {
	case bgPixel == 0 && fgPixel == 0:
		// backdrop
	case bgPixel == 0:
		pixel, palette = fgPixel, fgPalette
	case fgPixel == 0:
		pixel, palette = bgPixel, bgPalette
	default:
		if fgInFront {
			pixel, palette = fgPixel, fgPalette
		} else {
			pixel, palette = bgPixel, bgPalette
		}

		if p.spriteZeroBeingDrawn && p.mask&maskShowBG != 0 && p.mask&maskShowSprites != 0 {
			// Sprite zero can't hit inside the left column unless
			// both left-column masks allow rendering there.
			first := int16(9)
			if p.mask&(maskShowBGLeft|maskShowSpriteLeft) == (maskShowBGLeft | maskShowSpriteLeft) {
				first = 1
			}
			if p.cycle >= first && p.cycle < 258 {
				p.status |= statusSpriteZeroHit
			}
		}
	}

	x, y := int(p.cycle-1), int(p.scanline)
	p.framebuffer[y*256+x] = p.colorFromPalette(palette, pixel)
}

// Clock advances the PPU by one dot. scanline -1 is the pre-render line;
// 0-239 are visible; 241 dot 1 starts vblank; 260 is the last line before
// wrapping back to the pre-render line.
func (p *PPU) Clock() {
	if p.scanline >= -1 && p.scanline < 240 {
		if p.scanline == -1 && p.cycle == 1 {
			p.status &^= statusVBlank | statusSpriteZeroHit | statusSpriteOverflow
			for i := range p.spriteShifterLo {
				p.spriteShifterLo[i] = 0
				p.spriteShifterHi[i] = 0
			}
		}

		if (p.cycle >= 2 && p.cycle < 258) || (p.cycle >= 321 && p.cycle < 338) {
			p.updateShifters()
			p.backgroundFetch()
		}

		if p.cycle == 256 {
			p.incrementScrollY()
		}
		if p.cycle == 257 {
			p.loadBackgroundShifters()
			p.transferAddressX()
		}
		if p.cycle == 338 || p.cycle == 340 {
			// Dummy nametable fetches at the end of the line.
			p.bgNextTileID = p.read(0x2000 | (p.v.data & 0x0FFF))
		}
		if p.scanline == -1 && p.cycle >= 280 && p.cycle < 305 {
			p.transferAddressY()
		}

		if p.scanline >= 0 {
			if p.cycle == 257 {
				p.evaluateSprites()
			}
			if p.cycle == 340 {
				p.fetchSpritePatterns()
			}
		}
	}

	if p.scanline == 241 && p.cycle == 1 {
		p.status |= statusVBlank
		if p.ctrl&ctrlGenerateNMI != 0 {
			p.pendingNMI = true
		}
	}

	if p.scanline >= 0 && p.scanline < 240 && p.cycle >= 1 && p.cycle <= 256 {
		p.renderPixel()
	}

	p.cycle++
	if p.cycle > 340 {
		p.cycle = 0
		p.scanline++
		if p.scanline > 260 {
			p.scanline = -1
			p.frameComplete = true
		}
	}
}

// Scanline and Cycle expose the dot counters, useful for trace tooling.
func (p *PPU) Scanline() int16 { return p.scanline }
func (p *PPU) Cycle() int16    { return p.cycle }
