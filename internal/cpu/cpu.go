// Package cpu defines the capability interface of the 6502 CPU core used by
// the monitor and provides an adapter over the go6502 emulator.
package cpu

// Interrupt and reset vector addresses of the 6502.
const (
	NMIVector   = 0xFFFA
	ResetVector = 0xFFFC
	IRQVector   = 0xFFFE
)

// Processor status flag bits.
const (
	FlagCarry     = 1 << 0
	FlagZero      = 1 << 1
	FlagInterrupt = 1 << 2
	FlagDecimal   = 1 << 3
	FlagBreak     = 1 << 4
	FlagUnused    = 1 << 5
	FlagOverflow  = 1 << 6
	FlagNegative  = 1 << 7
)

// Bus is the memory callback interface the core reads and writes through.
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// Registers is a snapshot of the CPU registers.
type Registers struct {
	PC    uint16
	A     byte
	X     byte
	Y     byte
	SP    byte
	Flags byte
}

// Core is the capability interface of an external CPU core. The monitor
// only steps it, observes registers and cycles and triggers the reset and
// interrupt entry points.
type Core interface {
	// Step executes exactly one instruction.
	Step()
	// Reset loads the program counter from the reset vector.
	Reset()
	// IRQ enters the maskable interrupt handler, regardless of the
	// interrupt disable flag.
	IRQ()
	// NMI enters the non-maskable interrupt handler.
	NMI()

	Registers() Registers
	Cycles() uint64
	SetCycles(cycles uint64)
}
