package cpu

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"os"
)

const (
	REG_COUNT = 8    // General-purpose registers.
	REG_SP    = 7    // Register 7 is reserved as the stack pointer.
	SP_BASE   = 0xF4 // Stack pointer value after reset.

	REG_MASK   = REG_COUNT - 1
	VALUE_MASK = 0xFF
)

var _cpu_defines = map[string]string{
	"RAM_SIZE":  fmt.Sprintf("%#v", RAM_SIZE),
	"REG_COUNT": fmt.Sprintf("%#v", REG_COUNT),
	"SP_BASE":   fmt.Sprintf("%#v", SP_BASE),
}

// Cpu is the simulation context for one LS-8 machine.
//
// All state is owned by a single instance and mutated strictly
// sequentially; run independent programs on independent instances.
type Cpu struct {
	Verbose bool // Set to enable per-instruction trace logging.

	Ram      Ram              // Flat 256-byte memory.
	Register [REG_COUNT]uint8 // Register bank, r7 is the stack pointer.
	Pc       int              // Current program counter.
	Flag     CpuFlag          // Result of the last CMP.
	Running  bool             // Cleared by HLT or a fatal error.

	Ticks int // Executed instruction counter.

	Output io.Writer // PRN destination.
}

// NewCpu creates a new machine in the reset state, printing to stdout.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Output: os.Stdout,
	}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the memory and registers.
// - Rewinds the program counter and compare flag.
// - Points the stack pointer near the top of memory.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Ram.Reset()
	clear(cpu.Register[:])
	cpu.Pc = 0
	cpu.Flag = FLAG_NONE
	cpu.Running = true
	cpu.Ticks = 0

	cpu.Register[REG_SP] = SP_BASE
}

// MaskIndex reduces a raw operand byte to a valid register index.
// Invalid indices silently alias onto valid ones; this is the defined
// wraparound of the architecture, not a safety check.
func MaskIndex(index int) int {
	return index & REG_MASK
}

// MaskValue reduces a raw value to the 8-bit register range.
func MaskValue(value int) uint8 {
	return uint8(value & VALUE_MASK)
}

// Reg returns the value of the register selected by the raw index.
func (cpu *Cpu) Reg(index int) uint8 {
	return cpu.Register[MaskIndex(index)]
}

// SetReg stores the masked value into the register selected by the
// raw index. This is the single boundary where raw operand bytes
// become register indices and values.
func (cpu *Cpu) SetReg(index int, value int) {
	cpu.Register[MaskIndex(index)] = MaskValue(value)
}

// Sp returns the current stack pointer, which is just register 7.
func (cpu *Cpu) Sp() uint8 {
	return cpu.Reg(REG_SP)
}

// push decrements the stack pointer and stores the value there.
func (cpu *Cpu) push(value uint8) (err error) {
	cpu.SetReg(REG_SP, int(cpu.Sp())-1)

	return cpu.Ram.Write(int(cpu.Sp()), int(value))
}

// pop reads the value at the stack pointer, then increments it.
func (cpu *Cpu) pop() (value uint8, err error) {
	value, err = cpu.Ram.Read(int(cpu.Sp()))
	if err != nil {
		return
	}

	cpu.SetReg(REG_SP, int(cpu.Sp())+1)
	return
}

// peek reads a memory cell without the range contract; cells past the
// end of memory read as zero. Used for candidate operand pre-fetch
// and tracing, where running off the end must stay harmless.
func (cpu *Cpu) peek(address int) uint8 {
	if address < 0 || address >= RAM_SIZE {
		return 0
	}

	return cpu.Ram.Cell[address]
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"flag",
		"running",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"top",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "flag":
			strval = cpu.Flag.String()
		case "running":
			strval = "false"
			if cpu.Running {
				strval = "true"
			}
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7":
			val := cpu.Register[byte(reg[1]-'0')]
			strval = fmt.Sprintf("%02X", val)
		case "top":
			strval = fmt.Sprintf("%02X @%02X", cpu.peek(int(cpu.Sp())), cpu.Sp())
		}
		text += fmt.Sprintf("% 7s: %v\n", reg, strval)
	}

	return
}

// trace returns the classic LS-8 trace line: the program counter, the
// three fetched bytes, and all eight registers, in hexadecimal.
func (cpu *Cpu) trace() string {
	text := fmt.Sprintf("TRACE: %02X | %02X %02X %02X |",
		cpu.Pc,
		cpu.peek(cpu.Pc),
		cpu.peek(cpu.Pc+1),
		cpu.peek(cpu.Pc+2))

	for _, val := range cpu.Register {
		text += fmt.Sprintf(" %02X", val)
	}

	return text
}

// Step executes a single fetch-decode-execute cycle.
//
// The two bytes after the opcode are always pre-fetched as candidate
// operands; the program counter advances by the declared operand
// count, so over-reading is harmless. Handlers that redirect control
// flow (JMP, JEQ, JNE, CALL, RET) set the next program counter
// themselves. Any error halts the machine.
func (cpu *Cpu) Step() (err error) {
	defer func() {
		if err != nil {
			cpu.Running = false
		}
	}()

	var opbyte uint8
	opbyte, err = cpu.Ram.Read(cpu.Pc)
	if err != nil {
		return
	}
	op := Opcode(opbyte)

	ins, ok := op.Lookup()
	if !ok {
		err = ErrOpcode{Pc: cpu.Pc, Op: op}
		return
	}

	a := int(cpu.peek(cpu.Pc + 1))
	b := int(cpu.peek(cpu.Pc + 2))

	if cpu.Verbose {
		log.Printf("%v", cpu.trace())
	}

	next_pc := cpu.Pc + 1 + ins.Operands

	switch op {
	case OP_HLT:
		cpu.Running = false
	case OP_LDI:
		cpu.SetReg(a, b)
	case OP_PRN:
		_, err = fmt.Fprintln(cpu.Output, cpu.Reg(a))
	case OP_ADD:
		err = cpu.Alu(ALU_OP_ADD, a, b)
	case OP_SUB:
		err = cpu.Alu(ALU_OP_SUB, a, b)
	case OP_MUL:
		err = cpu.Alu(ALU_OP_MUL, a, b)
	case OP_INC:
		err = cpu.Alu(ALU_OP_INC, a, a)
	case OP_DEC:
		err = cpu.Alu(ALU_OP_DEC, a, a)
	case OP_CMP:
		err = cpu.Alu(ALU_OP_CMP, a, b)
	case OP_PUSH:
		err = cpu.push(cpu.Reg(a))
	case OP_POP:
		var value uint8
		value, err = cpu.pop()
		if err == nil {
			cpu.SetReg(a, int(value))
		}
	case OP_CALL:
		// The return address is the instruction after the CALL.
		err = cpu.push(MaskValue(next_pc))
		if err == nil {
			next_pc = int(cpu.Reg(a))
		}
	case OP_RET:
		var addr uint8
		addr, err = cpu.pop()
		if err == nil {
			next_pc = int(addr)
		}
	case OP_JMP:
		next_pc = int(cpu.Reg(a))
	case OP_JEQ:
		if cpu.Flag == FLAG_EQUAL {
			next_pc = int(cpu.Reg(a))
		}
	case OP_JNE:
		if cpu.Flag != FLAG_EQUAL {
			next_pc = int(cpu.Reg(a))
		}
	}
	if err != nil {
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks += 1

	return
}

// Run runs the fetch-decode-execute loop until the machine halts.
func (cpu *Cpu) Run() (err error) {
	for cpu.Running {
		err = cpu.Step()
		if err != nil {
			return
		}
	}

	return
}
