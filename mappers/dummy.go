package mappers

// dummyMapper spans the full address space unconditionally; it exists for
// unit tests that need a mapper without caring about bank math.
type dummyMapper struct{}

func (dummyMapper) ID() uint8 { return 0xFF }

func (dummyMapper) CPUMapRead(addr uint16) (uint32, bool) { return uint32(addr), true }
func (dummyMapper) CPUMapWrite(addr uint16, _ uint8) (uint32, bool) {
	return uint32(addr), true
}
func (dummyMapper) PPUMapRead(addr uint16) (uint32, bool) { return uint32(addr), true }
func (dummyMapper) PPUMapWrite(addr uint16, _ uint8) (uint32, bool) {
	return uint32(addr), true
}

// Dummy is a shared instance for tests.
var Dummy Mapper = dummyMapper{}
