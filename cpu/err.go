package cpu

import (
	"errors"

	"github.com/bitgrain/bitgrain/translate"
)

var f = translate.From

var (
	// Construction errors
	ErrNoRegisters = errors.New(f("register count must be at least 1"))
	ErrMemorySize  = errors.New(f("memory size invalid"))

	// Execution errors
	ErrEmptyInstruction = errors.New(f("empty instruction"))
	ErrDivisionByZero   = errors.New(f("division by zero"))
	ErrOperandMissing   = errors.New(f("operand missing"))
	ErrOperandExtra     = errors.New(f("excessive operands"))
)

type ErrUnknownInstruction string

func (err ErrUnknownInstruction) Error() string {
	return f("unknown instruction '%v'", string(err))
}

func (err ErrUnknownInstruction) Is(target error) (ok bool) {
	_, ok = target.(ErrUnknownInstruction)
	return
}

type ErrUnknownRegister string

func (err ErrUnknownRegister) Error() string {
	return f("register '%v' not found", string(err))
}

func (err ErrUnknownRegister) Is(target error) (ok bool) {
	_, ok = target.(ErrUnknownRegister)
	return
}

type ErrInvalidOperand string

func (err ErrInvalidOperand) Error() string {
	return f("operand '%v' invalid", string(err))
}

func (err ErrInvalidOperand) Is(target error) (ok bool) {
	_, ok = target.(ErrInvalidOperand)
	return
}

type ErrExpression string

func (err ErrExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

func (err ErrExpression) Is(target error) (ok bool) {
	_, ok = target.(ErrExpression)
	return
}

type ErrMemoryOutOfBounds string

func (err ErrMemoryOutOfBounds) Error() string {
	return f("address '%v' out of bounds", string(err))
}

func (err ErrMemoryOutOfBounds) Is(target error) (ok bool) {
	_, ok = target.(ErrMemoryOutOfBounds)
	return
}
