package cpu

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"strings"
)

// Loader reads the textual LS-8 machine-code format: one instruction
// byte per line, written as a base-2 literal. A '#' and everything
// after it is a comment; blank and comment-only lines are skipped.
// Bytes are placed at consecutive addresses starting at 0.
type Loader struct {
	Verbose bool // If set, verbosely logs each parsed line.
}

// Parse parses an input stream into a Program of raw bytes.
func (ld *Loader) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var lines []Line
	var lineno int
	var addr int

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if ld.Verbose {
			log.Printf("%v: %v", lineno, text)
		}

		line := strings.TrimSpace(strings.Split(text, "#")[0])
		if len(line) == 0 {
			continue
		}

		value, perr := strconv.ParseUint(line, 2, 8)
		if perr != nil {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: ErrParseNumber(line)}
			return
		}

		if addr >= RAM_SIZE {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: ErrProgramTooLarge}
			return
		}

		lines = append(lines, Line{
			LineNo: lineno,
			Addr:   addr,
			Words:  []string{line},
			Bytes:  []uint8{uint8(value)},
		})
		addr += 1
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		Lines: lines,
	}

	return
}
