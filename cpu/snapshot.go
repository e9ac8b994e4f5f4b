package cpu

import (
	"fmt"
	"iter"

	"github.com/bitgrain/bitgrain/internal"
)

// RegisterState is one register's renderings at the configured width.
type RegisterState struct {
	Name   string
	Value  string // Unsigned magnitude, decimal.
	Signed string // Two's-complement decode, decimal.
	Hex    string // 0x-prefixed upper-case hex.
	Binary string // Zero-padded to exactly Width digits, no prefix.
}

// FlagState is one condition flag.
type FlagState struct {
	Name string
	Set  bool
}

// Snapshot is a read-only projection of the CPU state.
type Snapshot struct {
	Width     uint
	Pc        string
	Registers []RegisterState
	Flags     []FlagState
}

// Snapshot projects the current state. It never mutates the CPU.
func (cpu *Cpu) Snapshot() (snap Snapshot) {
	a := cpu.arith

	snap.Width = a.Width()
	snap.Pc = a.Format(cpu.pc)

	for name, val := range cpu.Registers() {
		snap.Registers = append(snap.Registers, RegisterState{
			Name:   name,
			Value:  a.Format(val),
			Signed: a.Signed(val).Text(10),
			Hex:    a.Hex(val),
			Binary: a.Binary(val),
		})
	}

	for name, set := range cpu.Flags() {
		snap.Flags = append(snap.Flags, FlagState{Name: name, Set: set})
	}

	return
}

func (snap Snapshot) pcRow() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		yield("pc", snap.Pc)
	}
}

func (snap Snapshot) registerRows() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, reg := range snap.Registers {
			strval := fmt.Sprintf("%v (%v, 0b%v, signed %v)",
				reg.Value, reg.Hex, reg.Binary, reg.Signed)
			if !yield(reg.Name, strval) {
				return
			}
		}
	}
}

func (snap Snapshot) flagRows() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, flag := range snap.Flags {
			if !yield(flag.Name, fmt.Sprintf("%v", flag.Set)) {
				return
			}
		}
	}
}

// String renders the snapshot, one row per register and flag.
func (snap Snapshot) String() (text string) {
	rows := internal.IterSeq2Concat(snap.pcRow(), snap.registerRows(), snap.flagRows())
	for name, strval := range rows {
		text += fmt.Sprintf("% 8s: %v\n", name, strval)
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() string {
	return cpu.Snapshot().String()
}
