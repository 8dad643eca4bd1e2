// Package debugger implements the execution controller of the monitor. It
// steps the CPU core one instruction at a time and decides when execution
// halts: on the breakpoint, after a step over or out of a subroutine, on
// timeout and after a reset.
package debugger

import (
	"github.com/retroenv/c64monitor/internal/cpu"
	"github.com/retroenv/retrogolib/log"
)

// TimeoutCycles is the number of cycles that may run without a halt, about
// 5 seconds at the C64 clock rate.
const TimeoutCycles = 5_000_000

// rasterCycles is the number of cycles per raster line.
const rasterCycles = 64

// Memory is the address space as seen by the controller.
type Memory interface {
	Read(address uint16) byte
	ClearRAM()
	TickRaster()
}

// Controller owns the execution state of the monitor.
type Controller struct {
	logger *log.Logger
	core   cpu.Core
	memory Memory

	breakpoint    uint16
	hasBreakpoint bool

	paused       bool
	resetPending bool
	reason       HaltReason

	stepOut       bool
	stepOutTarget uint16

	// return addresses of the calls that were entered but did not return yet,
	// only used for stepping decisions
	shadow []uint16

	baseline uint64 // cycle counter at the last halt
}

// New returns a controller that is halted with a reset pending.
func New(logger *log.Logger, core cpu.Core, memory Memory) *Controller {
	return &Controller{
		logger:       logger,
		core:         core,
		memory:       memory,
		paused:       true,
		resetPending: true,
		reason:       UserPause,
	}
}

// Check evaluates the halting conditions before the next instruction. It
// returns the reason of a halt that was triggered by this check, or NoHalt.
// If multiple conditions apply, the last one evaluated is returned.
func (c *Controller) Check() HaltReason {
	triggered := NoHalt
	pc := c.core.Registers().PC

	if c.stepOut && pc == c.stepOutTarget {
		c.stepOut = false
		triggered = c.halt(StepComplete)
	}

	if !c.paused {
		cycles := c.core.Cycles()
		if cycles-c.baseline >= TimeoutCycles || cycles < c.baseline {
			c.baseline = cycles
			triggered = c.halt(TimeoutExpired)
		}
	}

	if c.resetPending {
		c.reset()
		pc = c.core.Registers().PC
		triggered = c.halt(ResetRequested)
	}

	if c.hasBreakpoint && pc == c.breakpoint {
		triggered = c.halt(BreakpointHit)
	}

	return triggered
}

// Step executes one instruction and tracks subroutine calls and returns in
// the shadow call stack.
func (c *Controller) Step() {
	pc := c.core.Registers().PC
	opcode := c.memory.Read(pc)

	switch {
	case cpu.IsCall(opcode):
		c.shadow = append(c.shadow, pc+cpu.CallSize)
	case cpu.IsReturn(opcode):
		if len(c.shadow) > 0 {
			c.shadow = c.shadow[:len(c.shadow)-1]
		}
	}

	before := c.core.Cycles()
	c.core.Step()
	if before/rasterCycles != c.core.Cycles()/rasterCycles {
		c.memory.TickRaster()
	}

	if c.paused {
		c.reason = UserPause
	}
}

// Halted returns whether execution is stopped and waits for operator input.
func (c *Controller) Halted() bool {
	return c.paused
}

// Reason returns the reason of the last halt.
func (c *Controller) Reason() HaltReason {
	return c.reason
}

// Resume continues stepping until the next halting condition.
func (c *Controller) Resume() {
	c.paused = false
}

// Pause stops stepping on behalf of the operator.
func (c *Controller) Pause() {
	c.halt(UserPause)
}

// AtCall returns whether the program counter points to a subroutine call.
func (c *Controller) AtCall() bool {
	return cpu.IsCall(c.memory.Read(c.core.Registers().PC))
}

// StepOut runs until the innermost active subroutine returns to its caller.
// It returns false and does nothing if no call is active.
func (c *Controller) StepOut() bool {
	if len(c.shadow) == 0 {
		return false
	}
	c.runUntil(c.shadow[len(c.shadow)-1])
	return true
}

// StepOverCall runs the subroutine call at the program counter until it
// returns to the instruction following the call.
func (c *Controller) StepOverCall() {
	c.runUntil(c.core.Registers().PC + cpu.CallSize)
}

// RequestReset schedules a reset that is performed on the next check.
func (c *Controller) RequestReset() {
	c.resetPending = true
}

// SetBreakpoint sets the breakpoint, replacing any previous one.
func (c *Controller) SetBreakpoint(address uint16) {
	c.breakpoint = address
	c.hasBreakpoint = true
}

// Breakpoint returns the breakpoint address and whether one is set.
func (c *Controller) Breakpoint() (uint16, bool) {
	return c.breakpoint, c.hasBreakpoint
}

// IRQ enters the interrupt handler of the core.
func (c *Controller) IRQ() {
	c.core.IRQ()
}

// NMI enters the non-maskable interrupt handler of the core.
func (c *Controller) NMI() {
	c.core.NMI()
}

// Registers returns the current CPU registers.
func (c *Controller) Registers() cpu.Registers {
	return c.core.Registers()
}

// Cycles returns the cumulative cycle counter of the core.
func (c *Controller) Cycles() uint64 {
	return c.core.Cycles()
}

// Elapsed returns the cycles executed since the baseline.
func (c *Controller) Elapsed() uint64 {
	return c.core.Cycles() - c.baseline
}

// Rebase moves the elapsed cycle baseline to the current cycle counter.
func (c *Controller) Rebase() {
	c.baseline = c.core.Cycles()
}

// CallDepth returns the number of active calls in the shadow call stack.
func (c *Controller) CallDepth() int {
	return len(c.shadow)
}

// Shadow returns a copy of the shadow call stack, innermost call last.
func (c *Controller) Shadow() []uint16 {
	return append([]uint16(nil), c.shadow...)
}

func (c *Controller) runUntil(target uint16) {
	c.stepOut = true
	c.stepOutTarget = target
	c.paused = false
}

func (c *Controller) reset() {
	c.memory.ClearRAM()
	c.baseline = 0
	c.core.SetCycles(0)
	c.core.Reset()
	c.shadow = c.shadow[:0]
	c.stepOut = false
	c.resetPending = false
}

func (c *Controller) halt(reason HaltReason) HaltReason {
	if !c.paused {
		c.logger.Debug("Execution halted",
			log.Stringer("reason", reason),
			log.Hex("pc", c.core.Registers().PC))
	}
	c.paused = true
	c.reason = reason
	return reason
}
