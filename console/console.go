// Package console drives a Cpu from line-oriented text: an interactive
// read-eval-print loop and a non-interactive script runner. It consumes
// the engine only through Execute and Snapshot; a failed instruction is
// reported and the loop continues.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/bitgrain/bitgrain/cpu"
)

// Console wraps a Cpu with its input and output streams.
type Console struct {
	In  io.Reader // Instruction source (default: os.Stdin).
	Out io.Writer // Report sink (default: os.Stdout).
	Cpu *cpu.Cpu
}

func (con *Console) in() io.Reader {
	if con.In == nil {
		return os.Stdin
	}

	return con.In
}

func (con *Console) out() io.Writer {
	if con.Out == nil {
		return os.Stdout
	}

	return con.Out
}

// interactive reports whether the input is a terminal, and a prompt
// is worth printing.
func (con *Console) interactive() bool {
	file, ok := con.in().(*os.File)

	return ok && term.IsTerminal(int(file.Fd()))
}

// Run reads instructions until EXIT/QUIT or end of input. DUMP prints
// the state snapshot, RESET clears the CPU; every other line goes to
// Execute. Engine errors are printed, never fatal.
func (con *Console) Run() (err error) {
	scanner := bufio.NewScanner(con.in())
	prompt := con.interactive()

	for {
		if prompt {
			fmt.Fprint(con.out(), "> ")
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToUpper(line) {
		case "":
			continue
		case "EXIT", "QUIT":
			return
		case "DUMP":
			fmt.Fprint(con.out(), con.Cpu.String())
		case "RESET":
			con.Cpu.Reset()
		default:
			if err := con.Cpu.Execute(line); err != nil {
				fmt.Fprintf(con.out(), "error: %v\n", err)
			}
		}
	}

	return scanner.Err()
}

// RunScript executes instructions from r until end of input. Blank
// lines and '#' comments are skipped. The first engine error stops the
// script, wrapped with its 1-based line number.
func (con *Console) RunScript(r io.Reader) (err error) {
	scanner := bufio.NewScanner(r)

	lineno := 0
	for scanner.Scan() {
		lineno++

		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		err = con.Cpu.Execute(line)
		if err != nil {
			return &ErrScript{LineNo: lineno, Err: err}
		}
	}

	return scanner.Err()
}
