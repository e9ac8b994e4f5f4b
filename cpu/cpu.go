package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"regexp"
	"strings"

	"github.com/bitgrain/bitgrain/word"
)

// Flags is the condition flag set. Each flag is recomputed only by the
// opcodes that define behavior for it; the rest retain their value.
type Flags struct {
	Zero     bool
	Carry    bool
	Overflow bool
	Sign     bool
}

// registerPattern recognizes tokens shaped like register names, so that
// a reference to an absent register is not misread as a literal.
var registerPattern = regexp.MustCompile(`^R[0-9]+$`)

// Cpu is one emulated processor instance. It is exclusively owned by
// its caller; no concurrent access is supported.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	arith word.Arith
	names []string // Register iteration order, R1..Rn.
	reg   map[string]word.Value
	flags Flags
	mem   []word.Value
	pc    word.Value
}

// New creates a CPU with the given bit width, register count, and
// memory size. Width and register count must be at least 1; a memory
// size of 0 is legal and makes every LOAD/STORE out of bounds.
func New(width uint, registers int, memory int) (cpu *Cpu, err error) {
	arith, err := word.New(width)
	if err != nil {
		return
	}
	if registers < 1 {
		err = ErrNoRegisters
		return
	}
	if memory < 0 {
		err = ErrMemorySize
		return
	}

	cpu = &Cpu{
		arith: arith,
		reg:   make(map[string]word.Value, registers),
		mem:   make([]word.Value, memory),
		pc:    arith.Zero(),
	}

	for i := 1; i <= registers; i++ {
		name := fmt.Sprintf("R%d", i)
		cpu.names = append(cpu.names, name)
		cpu.reg[name] = arith.Zero()
	}
	for i := range cpu.mem {
		cpu.mem[i] = arith.Zero()
	}

	return
}

// Width returns the configured bit width.
func (cpu *Cpu) Width() uint {
	return cpu.arith.Width()
}

// MemorySize returns the configured memory cell count.
func (cpu *Cpu) MemorySize() int {
	return len(cpu.mem)
}

// Arith returns the arithmetic backend, for callers that render values.
func (cpu *Cpu) Arith() word.Arith {
	return cpu.arith
}

// Register returns the current masked value of a register, looked up
// case-insensitively.
func (cpu *Cpu) Register(name string) (v word.Value, ok bool) {
	v, ok = cpu.reg[strings.ToUpper(name)]
	return
}

// Registers iterates the register file in R1..Rn order.
func (cpu *Cpu) Registers() iter.Seq2[string, word.Value] {
	return func(yield func(string, word.Value) bool) {
		for _, name := range cpu.names {
			if !yield(name, cpu.reg[name]) {
				return
			}
		}
	}
}

// Flags iterates the condition flags in ZERO, CARRY, OVERFLOW, SIGN order.
func (cpu *Cpu) Flags() iter.Seq2[string, bool] {
	return func(yield func(string, bool) bool) {
		_ = yield("ZERO", cpu.flags.Zero) &&
			yield("CARRY", cpu.flags.Carry) &&
			yield("OVERFLOW", cpu.flags.Overflow) &&
			yield("SIGN", cpu.flags.Sign)
	}
}

// Reset clears the registers, flags, memory, and program counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	for _, name := range cpu.names {
		cpu.reg[name] = cpu.arith.Zero()
	}
	for i := range cpu.mem {
		cpu.mem[i] = cpu.arith.Zero()
	}
	cpu.flags = Flags{}
	cpu.pc = cpu.arith.Zero()
}

// Execute decodes and applies a single instruction line. Opcode and
// operands are fully validated before any state changes; on error the
// registers, flags, and memory are exactly as they were.
func (cpu *Cpu) Execute(line string) (err error) {
	line, err = cpu.expand(line)
	if err != nil {
		return
	}

	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return ErrEmptyInstruction
	}

	op, ok := ParseOpcode(tokens[0])
	if !ok {
		return ErrUnknownInstruction(tokens[0])
	}

	if cpu.Verbose {
		log.Printf("cpu: %v", strings.Join(tokens, " "))
	}

	args := tokens[1:]
	for i, arg := range args {
		args[i] = strings.TrimSuffix(arg, ",")
	}

	if len(args) < op.Operands() {
		return ErrOperandMissing
	}
	if len(args) > op.Operands() {
		return ErrOperandExtra
	}

	dst, err := cpu.register(args[0])
	if err != nil {
		return
	}

	var val word.Value
	if op.Operands() == 2 {
		val, err = cpu.getValue(args[1])
		if err != nil {
			return
		}
	}

	a := cpu.arith
	cur := cpu.reg[dst]

	switch op {
	case OP_MOV:
		cpu.reg[dst] = val
	case OP_ADD:
		res, carry := a.Add(cur, val)
		overflow := a.SignBit(cur) == a.SignBit(val) && a.SignBit(res) != a.SignBit(cur)
		cpu.commitArith(dst, res, carry, overflow)
	case OP_SUB:
		res, borrow := a.Sub(cur, val)
		overflow := a.SignBit(cur) != a.SignBit(val) && a.SignBit(res) != a.SignBit(cur)
		cpu.commitArith(dst, res, borrow, overflow)
	case OP_MUL:
		cpu.commitLogic(dst, a.Mul(cur, val))
	case OP_DIV:
		if a.IsZero(val) {
			return ErrDivisionByZero
		}
		cpu.commitLogic(dst, a.Div(cur, val))
	case OP_AND:
		cpu.commitLogic(dst, a.And(cur, val))
	case OP_OR:
		cpu.commitLogic(dst, a.Or(cur, val))
	case OP_XOR:
		cpu.commitLogic(dst, a.Xor(cur, val))
	case OP_NOT:
		cpu.commitLogic(dst, a.Not(cur))
	case OP_SHL, OP_SHR:
		amount, fits := a.Addr(val)
		if !fits {
			// Beyond 64 bits the amount is certainly >= width.
			amount = uint64(a.Width())
		}
		if op == OP_SHL {
			cpu.commitLogic(dst, a.Shl(cur, amount))
		} else {
			cpu.commitLogic(dst, a.Shr(cur, amount))
		}
	case OP_LOAD, OP_STORE:
		addr, fits := a.Addr(val)
		if !fits || addr >= uint64(len(cpu.mem)) {
			return ErrMemoryOutOfBounds(args[1])
		}
		if op == OP_LOAD {
			cpu.reg[dst] = cpu.mem[addr]
		} else {
			cpu.mem[addr] = cpu.reg[dst]
		}
	}

	return
}

// register resolves a destination token to an existing register name.
func (cpu *Cpu) register(token string) (name string, err error) {
	name = strings.ToUpper(token)
	if _, ok := cpu.reg[name]; !ok {
		name = ""
		err = ErrUnknownRegister(token)
	}

	return
}

// getValue resolves an operand token: a known register yields its
// current masked value, anything register-shaped but absent is an
// unknown register, and the rest must parse as an unsigned literal.
func (cpu *Cpu) getValue(token string) (v word.Value, err error) {
	name := strings.ToUpper(token)
	if val, ok := cpu.reg[name]; ok {
		v = val
		return
	}
	if registerPattern.MatchString(name) {
		err = ErrUnknownRegister(token)
		return
	}

	v, err = cpu.arith.Parse(token)
	if err != nil {
		v = nil
		err = errors.Join(ErrInvalidOperand(token), err)
	}

	return
}

// commitArith writes an ADD/SUB result with its full flag set.
func (cpu *Cpu) commitArith(dst string, res word.Value, carry bool, overflow bool) {
	cpu.reg[dst] = res
	cpu.flags.Zero = cpu.arith.IsZero(res)
	cpu.flags.Carry = carry
	cpu.flags.Overflow = overflow
	cpu.flags.Sign = cpu.arith.SignBit(res)
}

// commitLogic writes a result updating ZERO and SIGN only.
func (cpu *Cpu) commitLogic(dst string, res word.Value) {
	cpu.reg[dst] = res
	cpu.flags.Zero = cpu.arith.IsZero(res)
	cpu.flags.Sign = cpu.arith.SignBit(res)
}
