package command

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
	}{
		{"", Step},
		{"   ", Step},
		{"l", Status},
		{"i", StepInto},
		{"o", StepOut},
		{"run", Run},
		{"reset", Reset},
		{"irq", IRQ},
		{"nmi", NMI},
		{"h", Help},
		{"help", Help},
		{" run ", Run},
		{"x", Unknown},
		{"R", Unknown},
		{"r", Unknown},
		{"ll", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := Parse(tt.input)
			assert.Equal(t, tt.expected, cmd.Kind)
		})
	}
}

func TestParseAddressCommands(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		expectedKind    Kind
		expectedAddress uint16
	}{
		{"breakpoint", "bp e008", SetBreakpoint, 0xE008},
		{"breakpoint upper case", "bp E008", SetBreakpoint, 0xE008},
		{"short address", "bp 1", SetBreakpoint, 0x0001},
		{"memory dump", "m 1000", DumpMemory, 0x1000},
		{"extra spaces", "m   0400", DumpMemory, 0x0400},
		{"tab separated breakpoint", "bp\te008", SetBreakpoint, 0xE008},
		{"tab separated dump", "m\t1000", DumpMemory, 0x1000},
		{"missing address", "m", Unknown, 0},
		{"missing address with space", "bp ", Unknown, 0},
		{"too long", "m 12345", Unknown, 0},
		{"not hex", "bp zz", Unknown, 0},
		{"unknown name", "x 1000", Unknown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Parse(tt.input)
			assert.Equal(t, tt.expectedKind, cmd.Kind)
			assert.Equal(t, tt.expectedAddress, cmd.Address)
		})
	}
}

func TestParseWriteMemory(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []byte
	}{
		{"three bytes", "w 1000 AA BB CC", []byte{0xAA, 0xBB, 0xCC}},
		{"lower case", "w 1000 0a ff", []byte{0x0A, 0xFF}},
		{"no data", "w 1000", nil},
		{"skips invalid pair", "w 1000 zz 12", []byte{0x12}},
		{"skips single character", "w 1000 x12", []byte{0x12}},
		{"trailing nibble", "w 1000 12 3", []byte{0x12}},
		{"comma separated", "w 1000,AA,BB,CC", []byte{0xAA, 0xBB, 0xCC}},
		{"colon after address", "w 1000:AA BB CC", []byte{0xAA, 0xBB, 0xCC}},
		{"tab after address", "w 1000\tAA BB CC", []byte{0xAA, 0xBB, 0xCC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Parse(tt.input)
			assert.Equal(t, WriteMemory, cmd.Kind)
			assert.Equal(t, uint16(0x1000), cmd.Address)
			assert.Equal(t, tt.expected, cmd.Data)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "step out", StepOut.String())
	assert.Equal(t, "kind(200)", Kind(200).String())
}
