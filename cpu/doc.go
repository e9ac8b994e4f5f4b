// Package cpu implements the instruction execution engine for a
// configurable-width virtual machine.
//
// A Cpu owns a register file ("R1".."Rn"), the condition flag set
// {ZERO, CARRY, OVERFLOW, SIGN}, a flat zero-initialized memory array,
// and an inert program counter. Execute accepts one textual instruction
// at a time, validates the opcode and every operand before touching any
// state, and commits the masked result together with the flags the
// opcode defines. Arithmetic is delegated to the word package at the
// width fixed at construction.
package cpu
