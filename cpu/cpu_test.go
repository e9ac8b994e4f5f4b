package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitgrain/bitgrain/word"
)

func regOf(cpu *Cpu, name string) string {
	v, ok := cpu.Register(name)
	if !ok {
		return "<missing>"
	}

	return cpu.Arith().Format(v)
}

func flagsOf(cpu *Cpu) (flags map[string]bool) {
	flags = map[string]bool{}
	for name, set := range cpu.Flags() {
		flags[name] = set
	}

	return
}

func TestNew(t *testing.T) {
	assert := assert.New(t)

	cpu, err := New(8, 8, 16)
	assert.NoError(err)
	assert.Equal(uint(8), cpu.Width())
	assert.Equal(16, cpu.MemorySize())

	assert.Equal("0", regOf(cpu, "R1"))
	assert.Equal("0", regOf(cpu, "R8"))
	_, ok := cpu.Register("R0")
	assert.False(ok)
	_, ok = cpu.Register("R9")
	assert.False(ok)

	_, err = New(0, 8, 16)
	assert.ErrorIs(err, word.ErrWidthZero)

	_, err = New(8, 0, 16)
	assert.ErrorIs(err, ErrNoRegisters)

	_, err = New(8, 8, -1)
	assert.ErrorIs(err, ErrMemorySize)

	// A zero-size memory is a legal degenerate configuration.
	cpu, err = New(8, 1, 0)
	assert.NoError(err)
	assert.ErrorIs(cpu.Execute("LOAD R1 0"), ErrMemoryOutOfBounds(""))
	assert.ErrorIs(cpu.Execute("STORE R1 0"), ErrMemoryOutOfBounds(""))
}

func TestExecuteScenarios(t *testing.T) {
	assert := assert.New(t)

	type step struct {
		line  string
		fails error
	}

	table := [](struct {
		name   string
		steps  []step
		reg    string
		value  string
		zero   bool
		carry  bool
		sign   bool
	}){
		{"add_wraps_with_carry",
			[]step{{"MOV R1 10", nil}, {"MOV R2 250", nil}, {"ADD R1 R2", nil}},
			"R1", "4", false, true, false},
		{"not_masks",
			[]step{{"MOV R1 5", nil}, {"NOT R1", nil}},
			"R1", "250", false, false, true},
		{"shl",
			[]step{{"MOV R1 3", nil}, {"SHL R1 2", nil}},
			"R1", "12", false, false, false},
		{"div_by_zero_leaves_target",
			[]step{{"MOV R1 10", nil}, {"DIV R1 0", ErrDivisionByZero}},
			"R1", "10", false, false, false},
		{"sub_borrows",
			[]step{{"MOV R1 1", nil}, {"SUB R1 2", nil}},
			"R1", "255", false, true, true},
		{"add_sub_round_trip",
			[]step{{"MOV R1 200", nil}, {"ADD R1 100", nil}, {"SUB R1 100", nil}},
			"R1", "200", false, true, true},
		{"mul_wraps",
			[]step{{"MOV R1 16", nil}, {"MUL R1 16", nil}},
			"R1", "0", true, false, false},
		{"div_truncates",
			[]step{{"MOV R1 7", nil}, {"DIV R1 2", nil}},
			"R1", "3", false, false, false},
		{"and",
			[]step{{"MOV R1 12", nil}, {"AND R1 10", nil}},
			"R1", "8", false, false, false},
		{"or",
			[]step{{"MOV R1 12", nil}, {"OR R1 3", nil}},
			"R1", "15", false, false, false},
		{"xor_self_zeroes",
			[]step{{"MOV R1 77", nil}, {"XOR R1 R1", nil}},
			"R1", "0", true, false, false},
		{"shr",
			[]step{{"MOV R1 12", nil}, {"SHR R1 2", nil}},
			"R1", "3", false, false, false},
		{"shl_by_width_zeroes",
			[]step{{"MOV R1 255", nil}, {"SHL R1 8", nil}},
			"R1", "0", true, false, false},
		{"shr_by_more_than_width_zeroes",
			[]step{{"MOV R1 255", nil}, {"SHR R1 200", nil}},
			"R1", "0", true, false, false},
		{"mov_masks_immediate",
			[]step{{"MOV R1 300", nil}},
			"R1", "44", false, false, false},
		{"register_operand",
			[]step{{"MOV R1 3", nil}, {"MOV R2 R1", nil}, {"ADD R2 R1", nil}},
			"R2", "6", false, false, false},
		{"hex_immediate",
			[]step{{"MOV R1 0xFF", nil}, {"SUB R1 0x0F", nil}},
			"R1", "240", false, false, true},
		{"case_and_commas",
			[]step{{"mov r1, 10", nil}, {"aDd R1, 5", nil}},
			"R1", "15", false, false, false},
	}

	for _, entry := range table {
		cpu, err := New(8, 8, 4)
		assert.NoError(err, entry.name)

		for _, s := range entry.steps {
			err = cpu.Execute(s.line)
			if s.fails != nil {
				assert.ErrorIs(err, s.fails, entry.name)
			} else {
				assert.NoError(err, entry.name)
			}
		}

		assert.Equal(entry.value, regOf(cpu, entry.reg), entry.name)
		flags := flagsOf(cpu)
		assert.Equal(entry.zero, flags["ZERO"], entry.name)
		assert.Equal(entry.carry, flags["CARRY"], entry.name)
		assert.Equal(entry.sign, flags["SIGN"], entry.name)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	assert := assert.New(t)

	cpu, err := New(8, 4, 4)
	assert.NoError(err)

	table := [](struct {
		name string
		line string
		err  error
	}){
		{"empty", "", ErrEmptyInstruction},
		{"blank", "   \t  ", ErrEmptyInstruction},
		{"unknown_instruction", "FROB R1 2", ErrUnknownInstruction("")},
		{"unknown_target", "MOV R9 2", ErrUnknownRegister("")},
		{"unknown_source", "MOV R1 R9", ErrUnknownRegister("")},
		{"unknown_source_lower", "MOV R1 r9", ErrUnknownRegister("")},
		{"invalid_literal", "MOV R1 zork", ErrInvalidOperand("")},
		{"negative_literal", "MOV R1 -5", ErrInvalidOperand("")},
		{"division_by_zero", "DIV R1 0", ErrDivisionByZero},
		{"load_out_of_bounds", "LOAD R1 4", ErrMemoryOutOfBounds("")},
		{"store_out_of_bounds", "STORE R1 4", ErrMemoryOutOfBounds("")},
		{"store_way_out", "STORE R1 0xFF", ErrMemoryOutOfBounds("")},
		{"operand_missing", "ADD R1", ErrOperandMissing},
		{"unary_operand_missing", "NOT", ErrOperandMissing},
		{"operand_extra", "ADD R1 2 3", ErrOperandExtra},
		{"unary_operand_extra", "NOT R1 R2", ErrOperandExtra},
		{"target_not_register", "ADD 5 5", ErrUnknownRegister("")},
	}

	for _, entry := range table {
		assert.ErrorIs(cpu.Execute(entry.line), entry.err, entry.name)
	}
}

func TestExecuteAtomicity(t *testing.T) {
	assert := assert.New(t)

	cpu, err := New(8, 4, 4)
	assert.NoError(err)

	// Establish known state: R1 = 5, memory[1] = 5, carry set.
	assert.NoError(cpu.Execute("MOV R1 5"))
	assert.NoError(cpu.Execute("STORE R1 1"))
	assert.NoError(cpu.Execute("MOV R2 255"))
	assert.NoError(cpu.Execute("ADD R2 1"))
	before := flagsOf(cpu)
	assert.True(before["CARRY"])

	failures := []string{
		"ADD R1 R9",
		"ADD R1 zork",
		"DIV R1 0",
		"DIV R1 R9",
		"LOAD R1 9",
		"STORE R1 9",
		"SUB R1",
		"SUB R1 1 2",
		"SHL R1 bogus",
	}
	for _, line := range failures {
		assert.Error(cpu.Execute(line), line)
		assert.Equal("5", regOf(cpu, "R1"), line)
		assert.Equal(before, flagsOf(cpu), line)
	}

	// Memory cell survived the failed stores.
	assert.NoError(cpu.Execute("LOAD R3 1"))
	assert.Equal("5", regOf(cpu, "R3"))
}

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	cpu, err := New(8, 4, 4)
	assert.NoError(err)

	assert.NoError(cpu.Execute("MOV R1 42"))
	assert.NoError(cpu.Execute("STORE R1 3"))
	assert.NoError(cpu.Execute("LOAD R2 3"))
	assert.Equal("42", regOf(cpu, "R2"))

	// Address may come from a register.
	assert.NoError(cpu.Execute("MOV R3 3"))
	assert.NoError(cpu.Execute("LOAD R4 R3"))
	assert.Equal("42", regOf(cpu, "R4"))

	// Unwritten cells read zero.
	assert.NoError(cpu.Execute("LOAD R2 0"))
	assert.Equal("0", regOf(cpu, "R2"))

	// One past the end.
	assert.ErrorIs(cpu.Execute("LOAD R1 4"), ErrMemoryOutOfBounds(""))

	// LOAD and STORE leave the flags alone.
	flags := flagsOf(cpu)
	assert.False(flags["ZERO"])
}

func TestFlagRetention(t *testing.T) {
	assert := assert.New(t)

	cpu, err := New(8, 4, 4)
	assert.NoError(err)

	// ADD sets carry; the logical ops recompute only ZERO and SIGN.
	assert.NoError(cpu.Execute("MOV R1 255"))
	assert.NoError(cpu.Execute("ADD R1 1"))
	flags := flagsOf(cpu)
	assert.True(flags["CARRY"])
	assert.True(flags["ZERO"])

	assert.NoError(cpu.Execute("MOV R1 129"))
	assert.NoError(cpu.Execute("AND R1 R1"))
	flags = flagsOf(cpu)
	assert.True(flags["CARRY"], "AND retains CARRY")
	assert.False(flags["ZERO"])
	assert.True(flags["SIGN"])

	// MOV changes no flags at all.
	assert.NoError(cpu.Execute("MOV R2 0"))
	assert.Equal(flags, flagsOf(cpu))
}

func TestSignedOverflowFlag(t *testing.T) {
	assert := assert.New(t)

	cpu, err := New(8, 2, 0)
	assert.NoError(err)

	// 127 + 1: positive operands, negative result.
	assert.NoError(cpu.Execute("MOV R1 127"))
	assert.NoError(cpu.Execute("ADD R1 1"))
	flags := flagsOf(cpu)
	assert.True(flags["OVERFLOW"])
	assert.True(flags["SIGN"])
	assert.False(flags["CARRY"])

	// 10 + 10: no signed overflow.
	assert.NoError(cpu.Execute("MOV R1 10"))
	assert.NoError(cpu.Execute("ADD R1 10"))
	assert.False(flagsOf(cpu)["OVERFLOW"])

	// -128 - 1 (as magnitudes: 128 - 1 = 127): signs differ, result
	// sign flips.
	assert.NoError(cpu.Execute("MOV R1 128"))
	assert.NoError(cpu.Execute("SUB R1 1"))
	flags = flagsOf(cpu)
	assert.True(flags["OVERFLOW"])
	assert.False(flags["SIGN"])
}

func TestWideWidths(t *testing.T) {
	assert := assert.New(t)

	cpu, err := New(128, 4, 4)
	assert.NoError(err)

	all := "340282366920938463463374607431768211455" // 2^128 - 1
	assert.NoError(cpu.Execute("MOV R1 " + all))
	assert.Equal(all, regOf(cpu, "R1"))

	assert.NoError(cpu.Execute("ADD R1 1"))
	assert.Equal("0", regOf(cpu, "R1"))
	flags := flagsOf(cpu)
	assert.True(flags["ZERO"])
	assert.True(flags["CARRY"])

	// Memory and shifting behave at width as well.
	assert.NoError(cpu.Execute("MOV R2 1"))
	assert.NoError(cpu.Execute("SHL R2 100"))
	assert.NoError(cpu.Execute("STORE R2 0"))
	assert.NoError(cpu.Execute("LOAD R3 0"))
	assert.Equal("1267650600228229401496703205376", regOf(cpu, "R3")) // 2^100

	assert.NoError(cpu.Execute("SHL R2 28"))
	assert.Equal("0", regOf(cpu, "R2"))

	// A register holding a >64-bit magnitude is not a valid address.
	assert.ErrorIs(cpu.Execute("LOAD R4 R3"), ErrMemoryOutOfBounds(""))
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	cpu, err := New(16, 2, 2)
	assert.NoError(err)

	assert.NoError(cpu.Execute("MOV R1 500"))
	assert.NoError(cpu.Execute("STORE R1 0"))
	assert.NoError(cpu.Execute("SUB R1 501"))
	assert.True(flagsOf(cpu)["CARRY"])

	cpu.Reset()

	assert.Equal("0", regOf(cpu, "R1"))
	assert.Equal(map[string]bool{
		"ZERO": false, "CARRY": false, "OVERFLOW": false, "SIGN": false,
	}, flagsOf(cpu))

	assert.NoError(cpu.Execute("LOAD R2 0"))
	assert.Equal("0", regOf(cpu, "R2"))
}

func TestSnapshot(t *testing.T) {
	assert := assert.New(t)

	cpu, err := New(8, 2, 0)
	assert.NoError(err)

	assert.NoError(cpu.Execute("MOV R1 10"))
	assert.NoError(cpu.Execute("MOV R2 250"))

	snap := cpu.Snapshot()
	assert.Equal(uint(8), snap.Width)
	assert.Equal("0", snap.Pc)

	assert.Equal([]RegisterState{
		{Name: "R1", Value: "10", Signed: "10", Hex: "0xA", Binary: "00001010"},
		{Name: "R2", Value: "250", Signed: "-6", Hex: "0xFA", Binary: "11111010"},
	}, snap.Registers)

	assert.Equal([]FlagState{
		{Name: "ZERO", Set: false},
		{Name: "CARRY", Set: false},
		{Name: "OVERFLOW", Set: false},
		{Name: "SIGN", Set: false},
	}, snap.Flags)

	// Taking a snapshot does not disturb the state.
	assert.Equal(snap, cpu.Snapshot())

	text := snap.String()
	assert.Contains(text, "pc: 0")
	assert.Contains(text, "R2: 250 (0xFA, 0b11111010, signed -6)")
	assert.Contains(text, "ZERO: false")
	assert.Equal(text, cpu.String())
}

func TestSnapshotBinaryPadding(t *testing.T) {
	assert := assert.New(t)

	for _, width := range []uint{1, 8, 64, 65, 1024} {
		cpu, err := New(width, 1, 0)
		assert.NoError(err)

		assert.NoError(cpu.Execute("MOV R1 1"))
		snap := cpu.Snapshot()
		assert.Len(snap.Registers[0].Binary, int(width))
		assert.True(strings.HasSuffix(snap.Registers[0].Binary, "1"))
	}
}
