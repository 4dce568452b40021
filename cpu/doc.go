// Package cpu implements the LS-8 microprocessor, its program loader,
// and its assembler.
//
// The machine consists of 256 bytes of flat RAM, eight 8-bit
// general-purpose registers (r7 doubles as the stack pointer), a
// program counter, and a tri-state compare flag. Execution is a strict
// fetch-decode-execute loop over one-byte opcodes followed by up to
// two operand bytes.
//
// Programs arrive either as the textual machine-code format (one
// base-2 instruction byte per line, see Loader) or as assembly source
// (see Assembler), both of which produce a Program listing that maps
// memory addresses back to source lines.
package cpu
