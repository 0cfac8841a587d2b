// Package mappers translates CPU/PPU addresses into cartridge ROM/RAM
// offsets. Each mapper is a pure function of its own small bank-count
// state and the address being accessed; it never owns the PRG/CHR bytes
// themselves, only decides where in them a given address lands.
package mappers

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Mapper is the closed, tagged-variant dispatch surface: every mapper a
// cartridge can select implements these four operations. Adding a new
// mapper variant means adding a new implementation and registering it,
// not growing a class hierarchy.
type Mapper interface {
	ID() uint8
	// CPUMapRead translates a CPU address in [$8000,$FFFF] into a PRG
	// offset. ok is false if addr isn't claimed by this mapper.
	CPUMapRead(addr uint16) (offset uint32, ok bool)
	// CPUMapWrite translates a CPU-side write. Mappers with no writable
	// PRG window (NROM) return ok=false; the write is then dropped.
	CPUMapWrite(addr uint16, data uint8) (offset uint32, ok bool)
	// PPUMapRead translates a PPU address in [$0000,$1FFF] into a CHR
	// offset.
	PPUMapRead(addr uint16) (offset uint32, ok bool)
	// PPUMapWrite translates a PPU-side write; only meaningful when the
	// cartridge backs CHR with RAM, which the Cartridge decides.
	PPUMapWrite(addr uint16, data uint8) (offset uint32, ok bool)
}

// Factory builds a Mapper given the cartridge's PRG/CHR bank counts, as
// read from the iNES header.
type Factory func(prgBanks, chrBanks uint8) Mapper

var registry = map[uint8]Factory{}

// Register adds a mapper variant to the registry. Called from each
// mapper's own init(), so adding a mapper never touches a central switch.
func Register(id uint8, f Factory) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("mappers: id %d already registered", id))
	}
	registry[id] = f
}

// New constructs the mapper for id, or an error if no mapper is
// registered for it.
func New(id uint8, prgBanks, chrBanks uint8) (Mapper, error) {
	f, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unsupported mapper id %d", id)
	}
	return f(prgBanks, chrBanks), nil
}

// SupportedMappers lists the registered mapper ids, sorted, mostly useful
// for a host's diagnostic/about screen.
func SupportedMappers() []uint8 {
	ids := make([]uint8, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
