package cpu

import (
	"errors"
	"regexp"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var exprPattern = regexp.MustCompile(`\$\([^\$]*\)`)

// expand substitutes each $(...) span in the line with its evaluated
// decimal value, before tokenization so expressions may contain spaces.
// A failed expression fails the whole instruction before any mutation.
func (cpu *Cpu) expand(line string) (out string, err error) {
	if !strings.Contains(line, "$(") {
		out = line
		return
	}

	out = exprPattern.ReplaceAllStringFunc(line, func(str string) string {
		expr := str[2 : len(str)-1]
		value, _err := cpu.evalExpr(expr)
		if _err != nil {
			err = errors.Join(ErrInvalidOperand(expr), _err)
			return str
		}
		return value
	})

	return
}

// evalExpr evaluates one expression with the current register
// magnitudes predeclared under their upper- and lower-case names.
// Expressions must produce a non-negative integer; starlark integers
// are unbounded, so any configured width is reachable.
func (cpu *Cpu) evalExpr(expr string) (value string, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}

	pred := starlark.StringDict{}
	for name, val := range cpu.Registers() {
		st := starlark.MakeBigInt(cpu.arith.Big(val))
		pred[name] = st
		pred[strings.ToLower(name)] = st
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}

	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrExpression(expr)
		return
	}

	i := st_int.BigInt()
	if i.Sign() < 0 {
		err = ErrExpression(expr)
		return
	}
	value = i.Text(10)

	return
}
