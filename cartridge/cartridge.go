// Package cartridge parses iNES ROM images and owns the resulting PRG/CHR
// byte arrays, delegating every access through a selected Mapper.
package cartridge

import (
	"fmt"
	"io"

	"github.com/nesbus/nescore/mappers"
)

// Cartridge owns the raw PRG/CHR arrays and the Mapper chosen from the
// iNES header. Per the Console's ownership model, a Cartridge is created
// once per ROM load and replaced wholesale on eject/insert; the PPU only
// ever borrows it through Console-mediated reads.
type Cartridge struct {
	prg []byte
	chr []byte

	chrIsRAM   bool
	mapperID   uint8
	mirroring  Mirroring
	hasTrainer bool

	mapper mappers.Mapper
}

// Load parses an iNES byte stream into a Cartridge: 16-byte header,
// optional 512-byte trainer, PRG banks, then CHR banks (or CHR-RAM when
// the header declares none).
func Load(r io.Reader) (*Cartridge, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("invalid iNES file: %w", err)
	}

	hdr, err := parseHeader(buf)
	if err != nil {
		return nil, err
	}

	pos := headerSize
	if hdr.trainer {
		pos += trainerSize
	}

	prgLen := int(hdr.prgBanks) * prgBankSize
	if pos+prgLen > len(buf) {
		return nil, fmt.Errorf("truncated ROM: PRG wants %d bytes, have %d", prgLen, len(buf)-pos)
	}
	prg := buf[pos : pos+prgLen]
	pos += prgLen

	chrIsRAM := hdr.chrBanks == 0
	var chr []byte
	if chrIsRAM {
		chr = make([]byte, chrBankSize)
	} else {
		chrLen := int(hdr.chrBanks) * chrBankSize
		if pos+chrLen > len(buf) {
			return nil, fmt.Errorf("truncated ROM: CHR wants %d bytes, have %d", chrLen, len(buf)-pos)
		}
		chr = buf[pos : pos+chrLen]
	}

	m, err := mappers.New(hdr.mapperID, hdr.prgBanks, hdr.chrBanks)
	if err != nil {
		return nil, fmt.Errorf("unsupported mapper: %w", err)
	}

	return &Cartridge{
		prg:        prg,
		chr:        chr,
		chrIsRAM:   chrIsRAM,
		mapperID:   hdr.mapperID,
		mirroring:  hdr.mirroring,
		hasTrainer: hdr.trainer,
		mapper:     m,
	}, nil
}

// Mirroring reports the nametable layout the PPU should use.
func (c *Cartridge) Mirroring() Mirroring { return c.mirroring }

// MapperID is the iNES mapper number this cartridge was built with.
func (c *Cartridge) MapperID() uint8 { return c.mapperID }

// HasTrainer reports whether a 512-byte trainer was present (and skipped)
// in the source image.
func (c *Cartridge) HasTrainer() bool { return c.hasTrainer }

// PRGSize and CHRSize report the byte lengths of the owned arrays, mostly
// useful for tests asserting the iNES roundtrip property.
func (c *Cartridge) PRGSize() int { return len(c.prg) }
func (c *Cartridge) CHRSize() int { return len(c.chr) }

// CPURead consults the mapper for a CPU-side address; ok reports whether
// this cartridge claims the address at all, letting the Console fall back
// to its own decoding when it doesn't.
func (c *Cartridge) CPURead(addr uint16) (uint8, bool) {
	off, ok := c.mapper.CPUMapRead(addr)
	if !ok {
		return 0, false
	}
	return c.prg[off%uint32(len(c.prg))], true
}

// CPUWrite is a no-op whenever the mapper reports the address isn't a
// writable PRG window (true for mapper 0).
func (c *Cartridge) CPUWrite(addr uint16, data uint8) bool {
	off, ok := c.mapper.CPUMapWrite(addr, data)
	if !ok {
		return false
	}
	c.prg[off%uint32(len(c.prg))] = data
	return true
}

// PPURead reads a pattern-table byte via the mapper.
func (c *Cartridge) PPURead(addr uint16) (uint8, bool) {
	off, ok := c.mapper.PPUMapRead(addr)
	if !ok {
		return 0, false
	}
	return c.chr[off%uint32(len(c.chr))], true
}

// PPUWrite only actually stores when CHR is backed by RAM; on CHR-ROM
// cartridges the mapper may still claim the address but the write is
// dropped, matching real cartridge wiring.
func (c *Cartridge) PPUWrite(addr uint16, data uint8) bool {
	off, ok := c.mapper.PPUMapWrite(addr, data)
	if !ok || !c.chrIsRAM {
		return false
	}
	c.chr[off%uint32(len(c.chr))] = data
	return true
}
