// Package cpu implements the processor core and assembler for the mos65 system.
//
// The processor is an 8-bit accumulator machine in the NMOS 6502 mold: an
// accumulator, two index registers, a status register, an 8-bit stack pointer
// into page one, and a 16-bit program counter over a flat byte-addressable
// memory. ComputerState owns the memory and registers and advances one
// instruction at a time through fetch, decode, operand resolution, and
// execution.
//
// The assembler provides a line-oriented assembly language for the
// instruction set, supporting labels, equates, data directives, and
// compile-time expression evaluation.
package cpu
