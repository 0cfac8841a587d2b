// Package console owns the NES system bus: CPU work RAM, controller
// latches, the OAM DMA engine, and the master clock that keeps the CPU
// and PPU in their 3:1 lockstep.
package console

import (
	"errors"

	"github.com/nesbus/nescore/cartridge"
	"github.com/nesbus/nescore/cpu"
	"github.com/nesbus/nescore/ppu"
)

// ErrNoCartridge is returned by DoFrame when nothing is inserted.
var ErrNoCartridge = errors.New("no cartridge loaded")

const ramSize = 0x0800 // 2KB built-in RAM, mirrored to $1FFF

const (
	maxRAMMirror = 0x1FFF
	maxPPUMirror = 0x3FFF
	oamDMA       = 0x4014
	controller1  = 0x4016
	controller2  = 0x4017
)

// SampleProducer is the audio hook: anything that can fill a buffer of
// mono float32 samples. The core itself only ships Silence; a real APU
// would slot in here.
type SampleProducer interface {
	ReadSamples(buf []float32)
}

// Silence is the stub producer used until an APU exists.
type Silence struct{}

func (Silence) ReadSamples(buf []float32) {
	for i := range buf {
		buf[i] = 0
	}
}

// Console wires the CPU, PPU and cartridge together and drives them. It
// exclusively owns every piece of mutable system state; the host talks
// to it single-threaded, typically one DoFrame per display refresh.
type Console struct {
	cpu  *cpu.CPU
	ppu  *ppu.PPU
	cart *cartridge.Cartridge

	ram         [ramSize]uint8
	controllers [2]controller

	dmaPage     uint8
	dmaAddr     uint8
	dmaData     uint8
	dmaTransfer bool
	dmaDummy    bool

	clockCounter uint64

	samples SampleProducer
}

// New returns a Console with no cartridge inserted.
func New() *Console {
	n := &Console{dmaDummy: true, samples: Silence{}}
	n.cpu = cpu.New(n)
	n.ppu = ppu.New()
	return n
}

// InsertCartridge replaces the current cartridge (if any) and hands the
// PPU its CHR/mirroring view. Call Reset afterwards to start it.
func (n *Console) InsertCartridge(c *cartridge.Cartridge) {
	n.cart = c
	n.ppu.ConnectCartridge(c)
}

// Reset presses the reset button: CPU latches the reset vector, DMA state
// and the master counter are cleared.
func (n *Console) Reset() {
	n.cpu.Reset()
	n.dmaPage, n.dmaAddr, n.dmaData = 0, 0, 0
	n.dmaTransfer = false
	n.dmaDummy = true
	n.clockCounter = 0
}

// CPURead decodes a CPU-side address. The cartridge gets first refusal;
// otherwise RAM, PPU registers, and controllers are decoded by range.
// Unmapped addresses read as 0 (open bus).
func (n *Console) CPURead(addr uint16) uint8 {
	if n.cart != nil {
		if v, ok := n.cart.CPURead(addr); ok {
			return v
		}
	}
	switch {
	case addr <= maxRAMMirror:
		return n.ram[addr&(ramSize-1)]
	case addr <= maxPPUMirror:
		return n.ppu.CPURead(addr & 0x0007)
	case addr == controller1 || addr == controller2:
		return n.controllers[addr&0x0001].read()
	}
	return 0
}

// CPUWrite decodes a CPU-side write; unmapped addresses swallow it.
func (n *Console) CPUWrite(addr uint16, val uint8) {
	if n.cart != nil && n.cart.CPUWrite(addr, val) {
		return
	}
	switch {
	case addr <= maxRAMMirror:
		n.ram[addr&(ramSize-1)] = val
	case addr <= maxPPUMirror:
		n.ppu.CPUWrite(addr&0x0007, val)
	case addr == oamDMA:
		n.dmaPage = val
		n.dmaAddr = 0
		n.dmaTransfer = true
	case addr == controller1:
		// The strobe line is shared by both controller ports.
		n.controllers[0].write(val)
		n.controllers[1].write(val)
	}
}

// Clock advances exactly one master cycle: PPU every time, CPU (or the
// DMA engine in its place) every third, then NMI delivery, then the
// counter. The ordering is load-bearing; games depend on it.
func (n *Console) Clock() {
	n.ppu.Clock()

	if n.clockCounter%3 == 0 {
		if n.dmaTransfer {
			if n.dmaDummy {
				// DMA can only begin on an even CPU cycle; burn
				// cycles until aligned.
				if n.clockCounter%2 == 1 {
					n.dmaDummy = false
				}
			} else {
				if n.clockCounter%2 == 0 {
					n.dmaData = n.CPURead(uint16(n.dmaPage)<<8 | uint16(n.dmaAddr))
				} else {
					n.ppu.WriteOAMByte(n.dmaAddr, n.dmaData)
					n.dmaAddr++
					if n.dmaAddr == 0 {
						n.dmaTransfer = false
						n.dmaDummy = true
					}
				}
			}
		} else {
			n.cpu.Clock()
		}
	}

	if n.ppu.TakePendingNMI() {
		n.cpu.NMI()
	}

	n.clockCounter++
}

// DoFrame clocks until the PPU reports a complete frame, then finishes
// the CPU instruction in progress so the machine stops on an instruction
// boundary.
func (n *Console) DoFrame() error {
	if n.cart == nil {
		return ErrNoCartridge
	}
	for !n.ppu.FrameComplete() {
		n.Clock()
	}
	n.ppu.ClearFrameComplete()
	for !n.cpu.InstructionComplete() {
		n.Clock()
	}
	return nil
}

// InstructionComplete reports whether the CPU is at an instruction
// boundary, for hosts driving Clock themselves.
func (n *Console) InstructionComplete() bool { return n.cpu.InstructionComplete() }

// WriteController ORs mask into controller idx's live button state.
func (n *Console) WriteController(idx int, mask uint8) {
	n.controllers[idx].setButtons(mask)
}

// ClearController releases every button on controller idx.
func (n *Console) ClearController(idx int) {
	n.controllers[idx].clearButtons()
}

// GetController returns controller idx's live button state.
func (n *Console) GetController(idx int) uint8 {
	return n.controllers[idx].buttons
}

// Framebuffer exposes the PPU's 256x240 packed-RGB pixel buffer.
func (n *Console) Framebuffer() []uint32 { return n.ppu.Framebuffer() }

// SystemClockCounter is the monotonic master-cycle count since Reset.
func (n *Console) SystemClockCounter() uint64 { return n.clockCounter }

// CPU and PPU expose the owned chips for trace drivers and debug views;
// hosts must not mutate them while a Clock or DoFrame call is running.
func (n *Console) CPU() *cpu.CPU { return n.cpu }
func (n *Console) PPU() *ppu.PPU { return n.ppu }

// RaiseMapperIRQ is the reserved entry point for cartridges that pull the
// IRQ line. No implemented mapper does yet.
func (n *Console) RaiseMapperIRQ() { n.cpu.IRQ() }

// Samples returns the current audio source, Silence until an APU is wired.
func (n *Console) Samples() SampleProducer { return n.samples }

// SetSampleProducer swaps the audio source, letting a host inject its own.
func (n *Console) SetSampleProducer(s SampleProducer) {
	if s == nil {
		s = Silence{}
	}
	n.samples = s
}
