package cpu

import (
	"strings"
)

// Opcode is the closed set of executable instructions.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_MOV   = Opcode(0)  // MOV
	OP_ADD   = Opcode(1)  // ADD
	OP_SUB   = Opcode(2)  // SUB
	OP_MUL   = Opcode(3)  // MUL
	OP_DIV   = Opcode(4)  // DIV
	OP_AND   = Opcode(5)  // AND
	OP_OR    = Opcode(6)  // OR
	OP_XOR   = Opcode(7)  // XOR
	OP_NOT   = Opcode(8)  // NOT
	OP_SHL   = Opcode(9)  // SHL
	OP_SHR   = Opcode(10) // SHR
	OP_LOAD  = Opcode(11) // LOAD
	OP_STORE = Opcode(12) // STORE
)

// opcodeMap maps an upper-cased opcode token to its Opcode.
var opcodeMap = map[string]Opcode{
	"MOV":   OP_MOV,
	"ADD":   OP_ADD,
	"SUB":   OP_SUB,
	"MUL":   OP_MUL,
	"DIV":   OP_DIV,
	"AND":   OP_AND,
	"OR":    OP_OR,
	"XOR":   OP_XOR,
	"NOT":   OP_NOT,
	"SHL":   OP_SHL,
	"SHR":   OP_SHR,
	"LOAD":  OP_LOAD,
	"STORE": OP_STORE,
}

// ParseOpcode decodes an instruction token, case-insensitively.
func ParseOpcode(token string) (op Opcode, ok bool) {
	op, ok = opcodeMap[strings.ToUpper(token)]
	return
}

// Operands returns the operand count the opcode requires.
func (op Opcode) Operands() int {
	if op == OP_NOT {
		return 1
	}

	return 2
}
