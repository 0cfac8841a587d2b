package cpu

// instruction is one decode-table entry: plain function values selected
// once at init time and indexed by opcode byte at decode time.
type instruction struct {
	name   string
	mode   addrMode
	am     func(*CPU) uint8
	op     func(*CPU) uint8
	cycles uint8
}

// opcodeTable has one entry per possible opcode byte. Everything not
// explicitly assigned below defaults to a 2-cycle implicit NOP, which is
// how this CPU treats every unofficial/illegal opcode (including $DF,
// which some decode tables register as an unofficial DEC/DEX).
var opcodeTable [256]instruction

func init() {
	for i := range opcodeTable {
		opcodeTable[i] = instruction{"NOP", modeIMP, (*CPU).amIMP, (*CPU).opNOP, 2}
	}

	type row struct {
		op     uint8
		name   string
		mode   addrMode
		am     func(*CPU) uint8
		opFn   func(*CPU) uint8
		cycles uint8
	}

	rows := []row{
		{0x00, "BRK", modeIMP, (*CPU).amIMP, (*CPU).opBRK, 7},
		{0x01, "ORA", modeIZX, (*CPU).amIZX, (*CPU).opORA, 6},
		{0x05, "ORA", modeZP0, (*CPU).amZP0, (*CPU).opORA, 3},
		{0x06, "ASL", modeZP0, (*CPU).amZP0, (*CPU).opASL, 5},
		{0x08, "PHP", modeIMP, (*CPU).amIMP, (*CPU).opPHP, 3},
		{0x09, "ORA", modeIMM, (*CPU).amIMM, (*CPU).opORA, 2},
		{0x0A, "ASL", modeACC, (*CPU).amACC, (*CPU).opASL, 2},
		{0x0D, "ORA", modeABS, (*CPU).amABS, (*CPU).opORA, 4},
		{0x0E, "ASL", modeABS, (*CPU).amABS, (*CPU).opASL, 6},

		{0x10, "BPL", modeREL, (*CPU).amREL, (*CPU).opBPL, 2},
		{0x11, "ORA", modeIZY, (*CPU).amIZY, (*CPU).opORA, 5},
		{0x15, "ORA", modeZPX, (*CPU).amZPX, (*CPU).opORA, 4},
		{0x16, "ASL", modeZPX, (*CPU).amZPX, (*CPU).opASL, 6},
		{0x18, "CLC", modeIMP, (*CPU).amIMP, (*CPU).opCLC, 2},
		{0x19, "ORA", modeABY, (*CPU).amABY, (*CPU).opORA, 4},
		{0x1D, "ORA", modeABX, (*CPU).amABX, (*CPU).opORA, 4},
		{0x1E, "ASL", modeABX, (*CPU).amABX, (*CPU).opASL, 7},

		{0x20, "JSR", modeABS, (*CPU).amABS, (*CPU).opJSR, 6},
		{0x21, "AND", modeIZX, (*CPU).amIZX, (*CPU).opAND, 6},
		{0x24, "BIT", modeZP0, (*CPU).amZP0, (*CPU).opBIT, 3},
		{0x25, "AND", modeZP0, (*CPU).amZP0, (*CPU).opAND, 3},
		{0x26, "ROL", modeZP0, (*CPU).amZP0, (*CPU).opROL, 5},
		{0x28, "PLP", modeIMP, (*CPU).amIMP, (*CPU).opPLP, 4},
		{0x29, "AND", modeIMM, (*CPU).amIMM, (*CPU).opAND, 2},
		{0x2A, "ROL", modeACC, (*CPU).amACC, (*CPU).opROL, 2},
		{0x2C, "BIT", modeABS, (*CPU).amABS, (*CPU).opBIT, 4},
		{0x2D, "AND", modeABS, (*CPU).amABS, (*CPU).opAND, 4},
		{0x2E, "ROL", modeABS, (*CPU).amABS, (*CPU).opROL, 6},

		{0x30, "BMI", modeREL, (*CPU).amREL, (*CPU).opBMI, 2},
		{0x31, "AND", modeIZY, (*CPU).amIZY, (*CPU).opAND, 5},
		{0x35, "AND", modeZPX, (*CPU).amZPX, (*CPU).opAND, 4},
		{0x36, "ROL", modeZPX, (*CPU).amZPX, (*CPU).opROL, 6},
		{0x38, "SEC", modeIMP, (*CPU).amIMP, (*CPU).opSEC, 2},
		{0x39, "AND", modeABY, (*CPU).amABY, (*CPU).opAND, 4},
		{0x3D, "AND", modeABX, (*CPU).amABX, (*CPU).opAND, 4},
		{0x3E, "ROL", modeABX, (*CPU).amABX, (*CPU).opROL, 7},

		{0x40, "RTI", modeIMP, (*CPU).amIMP, (*CPU).opRTI, 6},
		{0x41, "EOR", modeIZX, (*CPU).amIZX, (*CPU).opEOR, 6},
		{0x45, "EOR", modeZP0, (*CPU).amZP0, (*CPU).opEOR, 3},
		{0x46, "LSR", modeZP0, (*CPU).amZP0, (*CPU).opLSR, 5},
		{0x48, "PHA", modeIMP, (*CPU).amIMP, (*CPU).opPHA, 3},
		{0x49, "EOR", modeIMM, (*CPU).amIMM, (*CPU).opEOR, 2},
		{0x4A, "LSR", modeACC, (*CPU).amACC, (*CPU).opLSR, 2},
		{0x4C, "JMP", modeABS, (*CPU).amABS, (*CPU).opJMP, 3},
		{0x4D, "EOR", modeABS, (*CPU).amABS, (*CPU).opEOR, 4},
		{0x4E, "LSR", modeABS, (*CPU).amABS, (*CPU).opLSR, 6},

		{0x50, "BVC", modeREL, (*CPU).amREL, (*CPU).opBVC, 2},
		{0x51, "EOR", modeIZY, (*CPU).amIZY, (*CPU).opEOR, 5},
		{0x55, "EOR", modeZPX, (*CPU).amZPX, (*CPU).opEOR, 4},
		{0x56, "LSR", modeZPX, (*CPU).amZPX, (*CPU).opLSR, 6},
		{0x58, "CLI", modeIMP, (*CPU).amIMP, (*CPU).opCLI, 2},
		{0x59, "EOR", modeABY, (*CPU).amABY, (*CPU).opEOR, 4},
		{0x5D, "EOR", modeABX, (*CPU).amABX, (*CPU).opEOR, 4},
		{0x5E, "LSR", modeABX, (*CPU).amABX, (*CPU).opLSR, 7},

		{0x60, "RTS", modeIMP, (*CPU).amIMP, (*CPU).opRTS, 6},
		{0x61, "ADC", modeIZX, (*CPU).amIZX, (*CPU).opADC, 6},
		{0x65, "ADC", modeZP0, (*CPU).amZP0, (*CPU).opADC, 3},
		{0x66, "ROR", modeZP0, (*CPU).amZP0, (*CPU).opROR, 5},
		{0x68, "PLA", modeIMP, (*CPU).amIMP, (*CPU).opPLA, 4},
		{0x69, "ADC", modeIMM, (*CPU).amIMM, (*CPU).opADC, 2},
		{0x6A, "ROR", modeACC, (*CPU).amACC, (*CPU).opROR, 2},
		{0x6C, "JMP", modeIND, (*CPU).amIND, (*CPU).opJMP, 5},
		{0x6D, "ADC", modeABS, (*CPU).amABS, (*CPU).opADC, 4},
		{0x6E, "ROR", modeABS, (*CPU).amABS, (*CPU).opROR, 6},

		{0x70, "BVS", modeREL, (*CPU).amREL, (*CPU).opBVS, 2},
		{0x71, "ADC", modeIZY, (*CPU).amIZY, (*CPU).opADC, 5},
		{0x75, "ADC", modeZPX, (*CPU).amZPX, (*CPU).opADC, 4},
		{0x76, "ROR", modeZPX, (*CPU).amZPX, (*CPU).opROR, 6},
		{0x78, "SEI", modeIMP, (*CPU).amIMP, (*CPU).opSEI, 2},
		{0x79, "ADC", modeABY, (*CPU).amABY, (*CPU).opADC, 4},
		{0x7D, "ADC", modeABX, (*CPU).amABX, (*CPU).opADC, 4},
		{0x7E, "ROR", modeABX, (*CPU).amABX, (*CPU).opROR, 7},

		{0x81, "STA", modeIZX, (*CPU).amIZX, (*CPU).opSTA, 6},
		{0x84, "STY", modeZP0, (*CPU).amZP0, (*CPU).opSTY, 3},
		{0x85, "STA", modeZP0, (*CPU).amZP0, (*CPU).opSTA, 3},
		{0x86, "STX", modeZP0, (*CPU).amZP0, (*CPU).opSTX, 3},
		{0x88, "DEY", modeIMP, (*CPU).amIMP, (*CPU).opDEY, 2},
		{0x8A, "TXA", modeIMP, (*CPU).amIMP, (*CPU).opTXA, 2},
		{0x8C, "STY", modeABS, (*CPU).amABS, (*CPU).opSTY, 4},
		{0x8D, "STA", modeABS, (*CPU).amABS, (*CPU).opSTA, 4},
		{0x8E, "STX", modeABS, (*CPU).amABS, (*CPU).opSTX, 4},

		{0x90, "BCC", modeREL, (*CPU).amREL, (*CPU).opBCC, 2},
		{0x91, "STA", modeIZY, (*CPU).amIZY, (*CPU).opSTA, 6},
		{0x94, "STY", modeZPX, (*CPU).amZPX, (*CPU).opSTY, 4},
		{0x95, "STA", modeZPX, (*CPU).amZPX, (*CPU).opSTA, 4},
		{0x96, "STX", modeZPY, (*CPU).amZPY, (*CPU).opSTX, 4},
		{0x98, "TYA", modeIMP, (*CPU).amIMP, (*CPU).opTYA, 2},
		{0x99, "STA", modeABY, (*CPU).amABY, (*CPU).opSTA, 5},
		{0x9A, "TXS", modeIMP, (*CPU).amIMP, (*CPU).opTXS, 2},
		{0x9D, "STA", modeABX, (*CPU).amABX, (*CPU).opSTA, 5},

		{0xA0, "LDY", modeIMM, (*CPU).amIMM, (*CPU).opLDY, 2},
		{0xA1, "LDA", modeIZX, (*CPU).amIZX, (*CPU).opLDA, 6},
		{0xA2, "LDX", modeIMM, (*CPU).amIMM, (*CPU).opLDX, 2},
		{0xA4, "LDY", modeZP0, (*CPU).amZP0, (*CPU).opLDY, 3},
		{0xA5, "LDA", modeZP0, (*CPU).amZP0, (*CPU).opLDA, 3},
		{0xA6, "LDX", modeZP0, (*CPU).amZP0, (*CPU).opLDX, 3},
		{0xA8, "TAY", modeIMP, (*CPU).amIMP, (*CPU).opTAY, 2},
		{0xA9, "LDA", modeIMM, (*CPU).amIMM, (*CPU).opLDA, 2},
		{0xAA, "TAX", modeIMP, (*CPU).amIMP, (*CPU).opTAX, 2},
		{0xAC, "LDY", modeABS, (*CPU).amABS, (*CPU).opLDY, 4},
		{0xAD, "LDA", modeABS, (*CPU).amABS, (*CPU).opLDA, 4},
		{0xAE, "LDX", modeABS, (*CPU).amABS, (*CPU).opLDX, 4},

		{0xB0, "BCS", modeREL, (*CPU).amREL, (*CPU).opBCS, 2},
		{0xB1, "LDA", modeIZY, (*CPU).amIZY, (*CPU).opLDA, 5},
		{0xB4, "LDY", modeZPX, (*CPU).amZPX, (*CPU).opLDY, 4},
		{0xB5, "LDA", modeZPX, (*CPU).amZPX, (*CPU).opLDA, 4},
		{0xB6, "LDX", modeZPY, (*CPU).amZPY, (*CPU).opLDX, 4},
		{0xB8, "CLV", modeIMP, (*CPU).amIMP, (*CPU).opCLV, 2},
		{0xB9, "LDA", modeABY, (*CPU).amABY, (*CPU).opLDA, 4},
		{0xBA, "TSX", modeIMP, (*CPU).amIMP, (*CPU).opTSX, 2},
		{0xBC, "LDY", modeABX, (*CPU).amABX, (*CPU).opLDY, 4},
		{0xBD, "LDA", modeABX, (*CPU).amABX, (*CPU).opLDA, 4},
		{0xBE, "LDX", modeABY, (*CPU).amABY, (*CPU).opLDX, 4},

		{0xC0, "CPY", modeIMM, (*CPU).amIMM, (*CPU).opCPY, 2},
		{0xC1, "CMP", modeIZX, (*CPU).amIZX, (*CPU).opCMP, 6},
		{0xC4, "CPY", modeZP0, (*CPU).amZP0, (*CPU).opCPY, 3},
		{0xC5, "CMP", modeZP0, (*CPU).amZP0, (*CPU).opCMP, 3},
		{0xC6, "DEC", modeZP0, (*CPU).amZP0, (*CPU).opDEC, 5},
		{0xC8, "INY", modeIMP, (*CPU).amIMP, (*CPU).opINY, 2},
		{0xC9, "CMP", modeIMM, (*CPU).amIMM, (*CPU).opCMP, 2},
		{0xCA, "DEX", modeIMP, (*CPU).amIMP, (*CPU).opDEX, 2},
		{0xCC, "CPY", modeABS, (*CPU).amABS, (*CPU).opCPY, 4},
		{0xCD, "CMP", modeABS, (*CPU).amABS, (*CPU).opCMP, 4},
		{0xCE, "DEC", modeABS, (*CPU).amABS, (*CPU).opDEC, 6},

		{0xD0, "BNE", modeREL, (*CPU).amREL, (*CPU).opBNE, 2},
		{0xD1, "CMP", modeIZY, (*CPU).amIZY, (*CPU).opCMP, 5},
		{0xD5, "CMP", modeZPX, (*CPU).amZPX, (*CPU).opCMP, 4},
		{0xD6, "DEC", modeZPX, (*CPU).amZPX, (*CPU).opDEC, 6},
		{0xD8, "CLD", modeIMP, (*CPU).amIMP, (*CPU).opCLD, 2},
		{0xD9, "CMP", modeABY, (*CPU).amABY, (*CPU).opCMP, 4},
		{0xDD, "CMP", modeABX, (*CPU).amABX, (*CPU).opCMP, 4},
		{0xDE, "DEC", modeABX, (*CPU).amABX, (*CPU).opDEC, 7},

		{0xE0, "CPX", modeIMM, (*CPU).amIMM, (*CPU).opCPX, 2},
		{0xE1, "SBC", modeIZX, (*CPU).amIZX, (*CPU).opSBC, 6},
		{0xE4, "CPX", modeZP0, (*CPU).amZP0, (*CPU).opCPX, 3},
		{0xE5, "SBC", modeZP0, (*CPU).amZP0, (*CPU).opSBC, 3},
		{0xE6, "INC", modeZP0, (*CPU).amZP0, (*CPU).opINC, 5},
		{0xE8, "INX", modeIMP, (*CPU).amIMP, (*CPU).opINX, 2},
		{0xE9, "SBC", modeIMM, (*CPU).amIMM, (*CPU).opSBC, 2},
		{0xEA, "NOP", modeIMP, (*CPU).amIMP, (*CPU).opNOP, 2},
		{0xEC, "CPX", modeABS, (*CPU).amABS, (*CPU).opCPX, 4},
		{0xED, "SBC", modeABS, (*CPU).amABS, (*CPU).opSBC, 4},
		{0xEE, "INC", modeABS, (*CPU).amABS, (*CPU).opINC, 6},

		{0xF0, "BEQ", modeREL, (*CPU).amREL, (*CPU).opBEQ, 2},
		{0xF1, "SBC", modeIZY, (*CPU).amIZY, (*CPU).opSBC, 5},
		{0xF5, "SBC", modeZPX, (*CPU).amZPX, (*CPU).opSBC, 4},
		{0xF6, "INC", modeZPX, (*CPU).amZPX, (*CPU).opINC, 6},
		{0xF8, "SED", modeIMP, (*CPU).amIMP, (*CPU).opSED, 2},
		{0xF9, "SBC", modeABY, (*CPU).amABY, (*CPU).opSBC, 4},
		{0xFD, "SBC", modeABX, (*CPU).amABX, (*CPU).opSBC, 4},
		{0xFE, "INC", modeABX, (*CPU).amABX, (*CPU).opINC, 7},
	}

	for _, r := range rows {
		opcodeTable[r.op] = instruction{r.name, r.mode, r.am, r.opFn, r.cycles}
	}
}
