package cpu

const (
	RAM_SIZE = 256 // Addressable memory cells.
)

// Ram is the flat byte-addressed memory of the machine.
//
// Every address the engine produces is already in range; an
// out-of-range access is an engine bug and fails fast with ErrAddress
// instead of wrapping.
type Ram struct {
	Cell [RAM_SIZE]uint8
}

// Read returns the cell at the given address.
func (ram *Ram) Read(address int) (value uint8, err error) {
	if address < 0 || address >= RAM_SIZE {
		err = ErrAddress(address)
		return
	}

	value = ram.Cell[address]
	return
}

// Write stores the value, masked to 8 bits, at the given address.
func (ram *Ram) Write(address int, value int) (err error) {
	if address < 0 || address >= RAM_SIZE {
		err = ErrAddress(address)
		return
	}

	ram.Cell[address] = MaskValue(value)
	return
}

// Reset zeroes all memory cells.
func (ram *Ram) Reset() {
	clear(ram.Cell[:])
}
