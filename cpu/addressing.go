package cpu

// Addressing mode functions compute addrAbs (or addrRel for branches) and
// report whether the addressing itself can contribute the page-cross extra
// cycle; the CPU ANDs this with the opcode's own permission bit before
// adding the cycle, matching the published 6502 cycle tables.

func (c *CPU) amIMP() uint8 {
	return 0
}

func (c *CPU) amACC() uint8 {
	c.fetched = c.A
	return 0
}

func (c *CPU) amIMM() uint8 {
	c.addrAbs = c.PC
	c.PC++
	return 0
}

func (c *CPU) amZP0() uint8 {
	c.addrAbs = uint16(c.read(c.PC)) & 0x00FF
	c.PC++
	return 0
}

func (c *CPU) amZPX() uint8 {
	c.addrAbs = uint16(c.read(c.PC)+c.X) & 0x00FF
	c.PC++
	return 0
}

func (c *CPU) amZPY() uint8 {
	c.addrAbs = uint16(c.read(c.PC)+c.Y) & 0x00FF
	c.PC++
	return 0
}

func (c *CPU) amABS() uint8 {
	lo := uint16(c.read(c.PC))
	c.PC++
	hi := uint16(c.read(c.PC))
	c.PC++
	c.addrAbs = hi<<8 | lo
	return 0
}

func (c *CPU) amABX() uint8 {
	lo := uint16(c.read(c.PC))
	c.PC++
	hi := uint16(c.read(c.PC))
	c.PC++
	base := hi << 8
	c.addrAbs = base + lo + uint16(c.X)
	if c.addrAbs&0xFF00 != base {
		return 1
	}
	return 0
}

func (c *CPU) amABY() uint8 {
	lo := uint16(c.read(c.PC))
	c.PC++
	hi := uint16(c.read(c.PC))
	c.PC++
	base := hi << 8
	c.addrAbs = base + lo + uint16(c.Y)
	if c.addrAbs&0xFF00 != base {
		return 1
	}
	return 0
}

// amIND implements absolute indirect addressing including the infamous
// page-wrap bug: if the pointer's low byte is $FF, the high byte is
// fetched from the start of the same page instead of the next one.
func (c *CPU) amIND() uint8 {
	ptrLo := uint16(c.read(c.PC))
	c.PC++
	ptrHi := uint16(c.read(c.PC))
	c.PC++
	ptr := ptrHi<<8 | ptrLo

	var hi uint16
	if ptrLo == 0x00FF {
		hi = uint16(c.read(ptr & 0xFF00))
	} else {
		hi = uint16(c.read(ptr + 1))
	}
	lo := uint16(c.read(ptr))
	c.addrAbs = hi<<8 | lo
	return 0
}

func (c *CPU) amIZX() uint8 {
	t := uint16(c.read(c.PC))
	c.PC++
	lo := uint16(c.read((t + uint16(c.X)) & 0x00FF))
	hi := uint16(c.read((t + uint16(c.X) + 1) & 0x00FF))
	c.addrAbs = hi<<8 | lo
	return 0
}

func (c *CPU) amIZY() uint8 {
	t := uint16(c.read(c.PC))
	c.PC++
	lo := uint16(c.read(t & 0x00FF))
	hi := uint16(c.read((t + 1) & 0x00FF))
	base := hi << 8
	c.addrAbs = base + lo + uint16(c.Y)
	if c.addrAbs&0xFF00 != base {
		return 1
	}
	return 0
}

func (c *CPU) amREL() uint8 {
	rel := uint16(c.read(c.PC))
	c.PC++
	if rel&0x80 != 0 {
		rel |= 0xFF00
	}
	c.addrRel = rel
	return 0
}
