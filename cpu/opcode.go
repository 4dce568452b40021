package cpu

import (
	"fmt"
)

// Opcode is a single LS-8 instruction byte.
//
// The encoding packs metadata into the byte itself: the top two bits
// are the operand byte count, and bit 5 marks instructions routed
// through the ALU. The instruction table below is the authority the
// engine dispatches on; the packed bits are pinned by tests.
type Opcode uint8

const (
	OP_HLT  = Opcode(0b00000001) // hlt
	OP_LDI  = Opcode(0b10000010) // ldi
	OP_PRN  = Opcode(0b01000111) // prn
	OP_ADD  = Opcode(0b10100000) // add
	OP_SUB  = Opcode(0b10100001) // sub
	OP_MUL  = Opcode(0b10100010) // mul
	OP_INC  = Opcode(0b01100101) // inc
	OP_DEC  = Opcode(0b01100110) // dec
	OP_PUSH = Opcode(0b01000101) // push
	OP_POP  = Opcode(0b01000110) // pop
	OP_CALL = Opcode(0b01010000) // call
	OP_RET  = Opcode(0b00010001) // ret
	OP_CMP  = Opcode(0b10100111) // cmp
	OP_JMP  = Opcode(0b01010100) // jmp
	OP_JEQ  = Opcode(0b01010101) // jeq
	OP_JNE  = Opcode(0b01010110) // jne
)

// Instruction describes one entry of the LS-8 instruction set.
type Instruction struct {
	Name     string // Assembler mnemonic.
	Operands int    // Operand bytes following the opcode, 0 to 2.
}

// instructionSet is the closed set of valid opcodes. Any byte not in
// this table is an invalid instruction and halts the machine.
var instructionSet = map[Opcode]Instruction{
	OP_HLT:  {Name: "hlt", Operands: 0},
	OP_LDI:  {Name: "ldi", Operands: 2},
	OP_PRN:  {Name: "prn", Operands: 1},
	OP_ADD:  {Name: "add", Operands: 2},
	OP_SUB:  {Name: "sub", Operands: 2},
	OP_MUL:  {Name: "mul", Operands: 2},
	OP_INC:  {Name: "inc", Operands: 1},
	OP_DEC:  {Name: "dec", Operands: 1},
	OP_PUSH: {Name: "push", Operands: 1},
	OP_POP:  {Name: "pop", Operands: 1},
	OP_CALL: {Name: "call", Operands: 1},
	OP_RET:  {Name: "ret", Operands: 0},
	OP_CMP:  {Name: "cmp", Operands: 2},
	OP_JMP:  {Name: "jmp", Operands: 1},
	OP_JEQ:  {Name: "jeq", Operands: 1},
	OP_JNE:  {Name: "jne", Operands: 1},
}

// opcodeByName maps assembler mnemonics back to opcodes.
var opcodeByName = func() map[string]Opcode {
	names := make(map[string]Opcode, len(instructionSet))
	for op, ins := range instructionSet {
		names[ins.Name] = op
	}
	return names
}()

// Lookup returns the instruction description for the opcode.
func (op Opcode) Lookup() (ins Instruction, ok bool) {
	ins, ok = instructionSet[op]
	return
}

// Operands returns the operand byte count packed into the top two
// bits of the opcode.
func (op Opcode) Operands() int {
	return int(op >> 6)
}

// IsAlu returns true if the opcode is handled by the ALU.
func (op Opcode) IsAlu() bool {
	return (op & 0b00100000) != 0
}

// String returns the mnemonic, or the raw byte for invalid opcodes.
func (op Opcode) String() string {
	ins, ok := op.Lookup()
	if !ok {
		return fmt.Sprintf("0b%08b", uint8(op))
	}

	return ins.Name
}
