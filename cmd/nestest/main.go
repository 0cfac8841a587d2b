// nestest drives a CPU test ROM in automation mode: PC is forced to a
// known start address instead of the reset vector, and one trace line is
// printed per instruction for diffing against a reference log.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/nesbus/nescore/cartridge"
	"github.com/nesbus/nescore/console"
	"github.com/nesbus/nescore/cpu"
)

var (
	romFile = flag.String("rom", "", "Path to the test ROM.")
	startPC = flag.Int("start_pc", 0xC000, "Initial PC (bypasses the reset vector).")
	cycles  = flag.Uint64("cycles", 8991, "CPU cycles to trace before stopping.")
)

func main() {
	flag.Parse()

	f, err := os.Open(*romFile)
	if err != nil {
		log.Fatalf("Couldn't open ROM: %v", err)
	}
	cart, err := cartridge.Load(f)
	f.Close()
	if err != nil {
		log.Fatalf("Invalid ROM: %v", err)
	}

	nes := console.New()
	nes.InsertCartridge(cart)
	nes.Reset()

	c := nes.CPU()
	for !c.InstructionComplete() {
		nes.Clock()
	}
	c.PC = uint16(*startPC)

	for c.TotalCycles() < *cycles {
		fmt.Println(traceLine(nes, c))
		step(nes, c)
	}
}

// step runs the console through exactly one CPU instruction.
func step(nes *console.Console, c *cpu.CPU) {
	for c.InstructionComplete() {
		nes.Clock()
	}
	for !c.InstructionComplete() {
		nes.Clock()
	}
}

func traceLine(nes *console.Console, c *cpu.CPU) string {
	pc := c.PC
	op := nes.CPURead(pc)

	var raw strings.Builder
	for i := 0; i < cpu.InstructionSize(op); i++ {
		fmt.Fprintf(&raw, "%02X ", nes.CPURead(pc+uint16(i)))
	}

	return fmt.Sprintf("%04X  %-9s %s  A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		pc, raw.String(), cpu.MnemonicFor(op),
		c.A, c.X, c.Y, c.P, c.SP, c.TotalCycles())
}
