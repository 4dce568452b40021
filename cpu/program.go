package cpu

import (
	"iter"
)

// Line is one source line of a program listing, with the memory
// bytes it emitted. The loader emits one byte per line; the assembler
// may emit up to three.
type Line struct {
	LineNo    int      // Source line number, starting at 1.
	Addr      int      // Memory address of the first emitted byte.
	Words     []string // Source words after comment stripping.
	Bytes     []uint8  // Emitted machine bytes.
	LinkLabel string   // Label to resolve into the final byte.
}

// Program is an ordered listing of source lines and their bytes.
type Program struct {
	Lines []Line
}

// Debug locates the listing line covering a memory address.
type Debug struct {
	*Line
	Index int
}

func (prog *Program) Debug(addr int) (dbg Debug) {
	for n, ln := range prog.Lines {
		if addr >= ln.Addr && addr < ln.Addr+len(ln.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: addr - ln.Addr,
			}
			break
		}
	}

	return
}

// Size returns the number of memory bytes the program occupies.
func (prog *Program) Size() (size int) {
	for _, ln := range prog.Lines {
		size += len(ln.Bytes)
	}

	return
}

// Bytes iterates over all (address, byte) pairs of the program.
func (prog *Program) Bytes() iter.Seq2[int, uint8] {
	return func(yield func(addr int, value uint8) bool) {
		for _, ln := range prog.Lines {
			for n, value := range ln.Bytes {
				if !yield(ln.Addr+n, value) {
					return
				}
			}
		}
	}
}
