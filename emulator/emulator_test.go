package emulator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Program)
}

// doRunAsm assembles a program, runs it to halt, and returns the
// printed output.
func doRunAsm(emu *Emulator, program []string, t *testing.T) (output string) {
	assert := assert.New(t)

	err := emu.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	err = emu.Reset()
	assert.NoError(err)

	prn := &bytes.Buffer{}
	emu.Cpu.Output = prn

	err = emu.Run()
	assert.NoError(err)
	if err != nil {
		t.Log(emu.Cpu.String())
		t.Fatal(err)
	}
	assert.False(emu.Cpu.Running)

	output = prn.String()
	return
}

func TestEmulatorAdd(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"ldi r0 8",
		"ldi r1 9",
		"add r0 r1",
		"prn r0",
		"hlt",
	}

	output := doRunAsm(emu, program, t)

	assert.Equal("17\n", output)
	assert.Equal(uint8(17), emu.Cpu.Reg(0))
	assert.Equal(5, emu.Ticks())
}

func TestEmulatorMul(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"ldi r0 8",
		"ldi r1 9",
		"mul r0 r1",
		"prn r0",
		"hlt",
	}

	output := doRunAsm(emu, program, t)

	assert.Equal("72\n", output)
}

func TestEmulatorStack(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"ldi r0 5",
		"push r0",
		"ldi r0 0",
		"pop r0",
		"prn r0",
		"hlt",
	}

	output := doRunAsm(emu, program, t)

	assert.Equal("5\n", output)
	assert.Equal(uint8(cpu.SP_BASE), emu.Cpu.Sp())
}

func TestEmulatorLoop(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"ldi r0 3",
		"ldi r2 loop",
		"loop:",
		"dec r0",
		"cmp r0 r1",
		"jne r2",
		"prn r0",
		"hlt",
	}

	output := doRunAsm(emu, program, t)

	assert.Equal("0\n", output)
	assert.Equal(uint8(0), emu.Cpu.Reg(0))
}

func TestEmulatorCallRet(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"ldi r0 subroutine",
		"ldi r1 2",
		"call r0",
		"call r0",
		"prn r1",
		"hlt",
		"subroutine:",
		"mul r1 r1",
		"ret",
	}

	output := doRunAsm(emu, program, t)

	// 2 squared twice.
	assert.Equal("16\n", output)
	assert.Equal(uint8(cpu.SP_BASE), emu.Cpu.Sp())
}

func TestEmulatorSpBase(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"ldi r0 SP_BASE # predefined from Defines()",
		"prn r0",
		"hlt",
	}

	output := doRunAsm(emu, program, t)

	assert.Equal("244\n", output)
}

func TestEmulatorLoadBinary(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	// print8.ls8, the classic first program.
	program := []string{
		"# print8.ls8",
		"10000010 # LDI R0,8",
		"00000000",
		"00001000",
		"01000111 # PRN R0",
		"00000000",
		"00000001 # HLT",
	}

	err := emu.Load(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	err = emu.Reset()
	assert.NoError(err)

	prn := &bytes.Buffer{}
	emu.Cpu.Output = prn

	err = emu.Run()
	assert.NoError(err)
	assert.Equal("8\n", prn.String())
}

func TestEmulatorLoadMalformed(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	err := emu.Load(strings.NewReader("12\n"))
	assert.Error(err)

	var syntax *cpu.ErrSyntax
	assert.ErrorAs(err, &syntax)
	assert.Equal(1, syntax.LineNo)

	// The failed load left the previous (empty) program in place.
	assert.Equal(0, emu.Program.Size())
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"ldi r0 1",
		".byte 0b11111111 # not an instruction",
	}

	err := emu.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	assert.NoError(emu.Reset())

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)

	_, err = emu.Tick()
	assert.Error(err)
	assert.False(emu.Cpu.Running)

	// The runtime error names the offending source line.
	var runtime *ErrRuntime
	assert.ErrorAs(err, &runtime)
	assert.Equal(2, runtime.LineNo)
	assert.ErrorIs(err, cpu.ErrOpcode{})
}

func TestEmulatorTickDone(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	err := emu.Assemble(strings.NewReader("hlt\n"))
	assert.NoError(err)
	assert.NoError(emu.Reset())

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}

	assert.Equal("0", defines["PROGRAM_ORIGIN"])
	assert.Equal("256", defines["RAM_SIZE"])
	assert.Equal("244", defines["SP_BASE"])
}
