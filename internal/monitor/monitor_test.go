package monitor

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/retroenv/c64monitor/internal/cpu"
	"github.com/retroenv/c64monitor/internal/debugger"
	"github.com/retroenv/c64monitor/internal/listing"
	"github.com/retroenv/c64monitor/internal/memory"
	"github.com/retroenv/c64monitor/internal/status"
	"github.com/retroenv/c64monitor/internal/terminal"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type testMachine struct {
	mem    *memory.AddressSpace
	ctl    *debugger.Controller
	output *bytes.Buffer
}

// runMonitor runs the monitor with the demo ROM until the input lines are
// consumed.
func runMonitor(t *testing.T, input ...string) testMachine {
	t.Helper()
	logger := log.NewTestLogger(t)

	mem := memory.New()
	lst, err := listing.Load(logger, listing.Demo(), mem, listing.Burn)
	assert.NoError(t, err)

	core := cpu.NewGo6502(mem)
	ctl := debugger.New(logger, core, mem)
	presenter := status.New(mem, lst)

	text := strings.Join(input, "\n")
	if len(input) > 0 {
		text += "\n"
	}

	var output bytes.Buffer
	console := terminal.NewPlain(logger, strings.NewReader(text), &output)

	m := New(logger, ctl, mem, presenter, console)
	assert.NoError(t, m.Run(context.Background()))

	return testMachine{mem: mem, ctl: ctl, output: &output}
}

func TestMonitor_DumpResetMemory(t *testing.T) {
	tm := runMonitor(t, "m 1000")

	for row := range 10 {
		expected := fmt.Sprintf("%04X: %s\n", 0x1000+row*8, strings.Repeat("00 ", 8))
		assert.True(t, strings.Contains(tm.output.String(), expected))
	}
	assert.False(t, strings.Contains(tm.output.String(), "1050: "))
}

func TestMonitor_WriteMemory(t *testing.T) {
	tm := runMonitor(t, "w 1000 AA BB CC", "m 1000")

	assert.True(t, strings.Contains(tm.output.String(), "1000: AA BB CC 00 00 00 00 00 \n"))
	assert.Equal(t, byte(0xBB), tm.mem.Read(0x1001))
}

func TestMonitor_WriteROMArea(t *testing.T) {
	tm := runMonitor(t, "w E000 12", "m E000")

	// the RAM below the ROM is written, reads still see the ROM
	assert.Equal(t, byte(0x12), tm.mem.ReadRAM(0xE000))
	assert.True(t, strings.Contains(tm.output.String(), "E000: A2 FF 9A D8 "))
}

func TestMonitor_InitialStatus(t *testing.T) {
	tm := runMonitor(t)

	out := tm.output.String()
	assert.True(t, strings.HasPrefix(out, "RAM was cleared!\n"))
	assert.True(t, strings.Contains(out, "PC: E000 "))
	assert.True(t, strings.Contains(out, "(BP:----)"))
	assert.True(t, strings.Contains(out, "\n.,E000 A2 FF"))
	assert.Equal(t, uint16(0xE000), tm.ctl.Registers().PC)
}

func TestMonitor_Breakpoint(t *testing.T) {
	tm := runMonitor(t, "bp e038", "run")

	assert.True(t, strings.Contains(tm.output.String(), "Breakpoint reached: E038\n"))
	assert.Equal(t, uint16(0xE038), tm.ctl.Registers().PC)
	assert.Equal(t, 3, tm.ctl.CallDepth())
	assert.Equal(t, debugger.BreakpointHit, tm.ctl.Reason())
}

func TestMonitor_StepOverCall(t *testing.T) {
	tm := runMonitor(t, "bp e008", "run", "")

	assert.Equal(t, uint16(0xE00B), tm.ctl.Registers().PC)
	assert.Equal(t, 0, tm.ctl.CallDepth())
	assert.Equal(t, debugger.StepComplete, tm.ctl.Reason())
}

func TestMonitor_StepInto(t *testing.T) {
	tm := runMonitor(t, "bp e008", "run", "i")

	assert.Equal(t, uint16(0xE020), tm.ctl.Registers().PC)
	assert.Equal(t, 1, tm.ctl.CallDepth())
	assert.Equal(t, debugger.UserPause, tm.ctl.Reason())
}

func TestMonitor_StepOut(t *testing.T) {
	tm := runMonitor(t, "bp e030", "run", "o")

	assert.Equal(t, uint16(0xE023), tm.ctl.Registers().PC)
	assert.Equal(t, 1, tm.ctl.CallDepth())
	assert.Equal(t, debugger.StepComplete, tm.ctl.Reason())
}

func TestMonitor_StepOutWithoutCall(t *testing.T) {
	tm := runMonitor(t, "o")

	assert.Equal(t, uint16(0xE000), tm.ctl.Registers().PC)
	assert.Equal(t, uint64(0), tm.ctl.Cycles())
}

func TestMonitor_SingleStep(t *testing.T) {
	tm := runMonitor(t, "", "")

	regs := tm.ctl.Registers()
	assert.Equal(t, uint16(0xE003), regs.PC)
	assert.Equal(t, byte(0xFF), regs.SP)
	assert.True(t, strings.Contains(tm.output.String(), "PC: E002 A:00 X:FF "))
}

func TestMonitor_Reset(t *testing.T) {
	tm := runMonitor(t, "w 1000 AA", "i", "reset", "m 1000")

	out := tm.output.String()
	assert.Equal(t, 2, strings.Count(out, "RAM was cleared!"))
	assert.True(t, strings.Contains(out, "1000: 00 00 "))
	assert.Equal(t, uint16(0xE000), tm.ctl.Registers().PC)
}

func TestMonitor_Interrupts(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected uint16
	}{
		{"irq", "irq", 0xE040},
		{"nmi", "nmi", 0xE041},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := runMonitor(t, tt.input)

			regs := tm.ctl.Registers()
			assert.Equal(t, tt.expected, regs.PC)
			assert.Equal(t, byte(0xFA), regs.SP)
			assert.True(t, strings.Contains(tm.output.String(), fmt.Sprintf("PC: %04X ", tt.expected)))
		})
	}
}

func TestMonitor_Timeout(t *testing.T) {
	tm := runMonitor(t, "run")

	assert.True(t, strings.Contains(tm.output.String(), "BREAK on timeout (5s)\n"))
	assert.Equal(t, debugger.TimeoutExpired, tm.ctl.Reason())
	assert.True(t, tm.ctl.Cycles() >= debugger.TimeoutCycles)
}

func TestMonitor_HelpAndUnknown(t *testing.T) {
	tm := runMonitor(t, "xyz", "help")

	assert.True(t, strings.Contains(tm.output.String(), `"bp HHHH": Set breakpoint`))
}

func TestMonitor_Canceled(t *testing.T) {
	logger := log.NewTestLogger(t)
	mem := memory.New()
	ctl := debugger.New(logger, cpu.NewGo6502(mem), mem)

	var output bytes.Buffer
	console := terminal.NewPlain(logger, strings.NewReader("run\n"), &output)
	m := New(logger, ctl, mem, status.New(mem, nil), console)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, m.Run(ctx))
	assert.Equal(t, "", output.String())
}
