package cpu

// AluOp is an ALU operation type.
type AluOp int

const (
	ALU_OP_ADD = AluOp(0) // add
	ALU_OP_SUB = AluOp(1) // sub
	ALU_OP_MUL = AluOp(2) // mul
	ALU_OP_INC = AluOp(3) // inc
	ALU_OP_DEC = AluOp(4) // dec
	ALU_OP_CMP = AluOp(5) // cmp
)

var aluOpName = map[AluOp]string{
	ALU_OP_ADD: "add",
	ALU_OP_SUB: "sub",
	ALU_OP_MUL: "mul",
	ALU_OP_INC: "inc",
	ALU_OP_DEC: "dec",
	ALU_OP_CMP: "cmp",
}

func (op AluOp) String() string {
	return aluOpName[op]
}

// CpuFlag is the tri-state result of the last CMP instruction.
// The zero value means no comparison has run yet.
type CpuFlag int

const (
	FLAG_NONE    = CpuFlag(0) // none
	FLAG_EQUAL   = CpuFlag(1) // eq
	FLAG_LESS    = CpuFlag(2) // lt
	FLAG_GREATER = CpuFlag(3) // gt
)

var cpuFlagName = map[CpuFlag]string{
	FLAG_NONE:    "none",
	FLAG_EQUAL:   "eq",
	FLAG_LESS:    "lt",
	FLAG_GREATER: "gt",
}

func (fl CpuFlag) String() string {
	return cpuFlagName[fl]
}

// Alu performs the requested operation on the registers selected by
// the raw indices a and b. Indices are masked to the register file
// before use, and every result wraps to 8 bits: registers are bytes,
// so ADD/SUB/MUL truncate the same way INC/DEC do.
//
// The default arm is unreachable through the instruction set, but is
// kept as a hard failure in case an opcode is ever miswired.
func (cpu *Cpu) Alu(op AluOp, a int, b int) (err error) {
	va := cpu.Reg(a)
	vb := cpu.Reg(b)

	switch op {
	case ALU_OP_ADD:
		cpu.SetReg(a, int(va)+int(vb))
	case ALU_OP_SUB:
		cpu.SetReg(a, int(va)-int(vb))
	case ALU_OP_MUL:
		cpu.SetReg(a, int(va)*int(vb))
	case ALU_OP_INC:
		cpu.SetReg(a, int(va)+1)
	case ALU_OP_DEC:
		cpu.SetReg(a, int(va)-1)
	case ALU_OP_CMP:
		switch {
		case va == vb:
			cpu.Flag = FLAG_EQUAL
		case va < vb:
			cpu.Flag = FLAG_LESS
		default:
			cpu.Flag = FLAG_GREATER
		}
	default:
		err = ErrAluOp
	}

	return
}
