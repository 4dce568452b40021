// Package emulator wires an LS-8 machine to a program listing and
// drives the run loop, attributing runtime errors to source lines.
package emulator

import (
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
)

const (
	PROGRAM_ORIGIN = 0 // Address where programs are loaded.
)

var _emulator_defines = map[string]string{
	"PROGRAM_ORIGIN": fmt.Sprintf("%v", PROGRAM_ORIGIN),
}

// Emulator state. CPU + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Load parses the binary-literal machine-code format and installs it
// as the current program.
func (emu *Emulator) Load(input io.Reader) (err error) {
	loader := &cpu.Loader{Verbose: emu.Verbose}

	prog, err := loader.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// Assemble parses assembly source and installs it as the current
// program. The emulator's defines are predefined as equates.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// Reset resets the machine and writes the program into memory.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	for addr, value := range emu.Program.Bytes() {
		err = emu.Cpu.Ram.Write(PROGRAM_ORIGIN+addr, int(value))
		if err != nil {
			return
		}
	}

	return
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line number of the current program
// counter, or 0 when the counter is outside the listing.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction step of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Step()
	if err != nil {
		return
	}

	done = !emu.Cpu.Running
	return
}

// Run ticks the machine until the program halts.
func (emu *Emulator) Run() (err error) {
	for emu.Cpu.Running {
		_, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
