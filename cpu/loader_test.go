package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoader(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}

	program := []string{
		"# print8.ls8: print the number 8",
		"",
		"10000010 # LDI R0,8",
		"00000000",
		"00001000",
		"01000111 # PRN R0",
		"00000000",
		"00000001 # HLT",
	}

	prog, err := ld.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	expected := []uint8{0b10000010, 0, 8, 0b01000111, 0, 0b00000001}

	assert.Equal(len(expected), prog.Size())
	for addr, value := range prog.Bytes() {
		assert.Equal(expected[addr], value)
	}

	// Comment and blank lines emit nothing; line numbers survive.
	assert.Equal(3, prog.Lines[0].LineNo)
	assert.Equal(0, prog.Lines[0].Addr)
	assert.Equal(8, prog.Lines[5].LineNo)
	assert.Equal(5, prog.Lines[5].Addr)
}

func TestLoader_Empty(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}

	prog, err := ld.Parse(strings.NewReader("# nothing but comments\n\n"))
	assert.NoError(err)
	assert.Equal(0, prog.Size())
}

func TestLoader_Malformed(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}

	_, err := ld.Parse(strings.NewReader("10000010\n12\n"))
	assert.Error(err)

	var syntax *ErrSyntax
	assert.ErrorAs(err, &syntax)
	assert.Equal(2, syntax.LineNo)
	assert.Equal("12", syntax.Line)
	assert.ErrorIs(err, ErrParseNumber("12"))
}

func TestLoader_NotBinary(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}

	// Nine bits do not fit an instruction byte.
	_, err := ld.Parse(strings.NewReader("100000000\n"))
	assert.Error(err)
	assert.ErrorIs(err, ErrParseNumber("100000000"))
}

func TestLoader_TooLarge(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}

	program := strings.Repeat("00000000\n", RAM_SIZE+1)
	_, err := ld.Parse(strings.NewReader(program))
	assert.ErrorIs(err, ErrProgramTooLarge)

	var syntax *ErrSyntax
	assert.ErrorAs(err, &syntax)
	assert.Equal(RAM_SIZE+1, syntax.LineNo)
}
