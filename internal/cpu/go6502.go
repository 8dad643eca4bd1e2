package cpu

import (
	gocpu "github.com/beevik/go6502/cpu"
)

var _ Core = &Go6502{}

// interruptCycles is the duration of the 6502 interrupt sequence.
const interruptCycles = 7

// Go6502 adapts the go6502 NMOS core to the Core interface.
type Go6502 struct {
	bus Bus
	cpu *gocpu.CPU
}

// NewGo6502 returns a core whose memory accesses are routed to the bus.
func NewGo6502(bus Bus) *Go6502 {
	return &Go6502{
		bus: bus,
		cpu: gocpu.NewCPU(gocpu.NMOS, newBusMemory(bus)),
	}
}

// Step executes one instruction.
func (c *Go6502) Step() {
	c.cpu.Step()
}

// Reset clears the registers and jumps through the reset vector.
func (c *Go6502) Reset() {
	reg := &c.cpu.Reg
	reg.A, reg.X, reg.Y = 0, 0, 0
	reg.SP = 0xFD
	reg.Decimal = false
	reg.InterruptDisable = true
	c.cpu.SetPC(c.readVector(ResetVector))
}

// IRQ pushes the return state and jumps through the IRQ vector.
func (c *Go6502) IRQ() {
	c.interrupt(IRQVector)
}

// NMI pushes the return state and jumps through the NMI vector.
func (c *Go6502) NMI() {
	c.interrupt(NMIVector)
}

// Registers returns a snapshot of the registers.
func (c *Go6502) Registers() Registers {
	reg := c.cpu.Reg
	return Registers{
		PC:    reg.PC,
		A:     reg.A,
		X:     reg.X,
		Y:     reg.Y,
		SP:    reg.SP,
		Flags: c.status(),
	}
}

// Cycles returns the cumulative cycle counter.
func (c *Go6502) Cycles() uint64 {
	return c.cpu.Cycles
}

// SetCycles overwrites the cumulative cycle counter.
func (c *Go6502) SetCycles(cycles uint64) {
	c.cpu.Cycles = cycles
}

func (c *Go6502) interrupt(vector uint16) {
	reg := &c.cpu.Reg
	c.push(byte(reg.PC >> 8))
	c.push(byte(reg.PC))
	c.push(c.status() &^ FlagBreak)
	reg.InterruptDisable = true
	c.cpu.SetPC(c.readVector(vector))
	c.cpu.Cycles += interruptCycles
}

func (c *Go6502) push(value byte) {
	c.bus.Write(0x0100|uint16(c.cpu.Reg.SP), value)
	c.cpu.Reg.SP--
}

func (c *Go6502) readVector(address uint16) uint16 {
	return uint16(c.bus.Read(address)) | uint16(c.bus.Read(address+1))<<8
}

// status packs the flags into the processor status byte. The unused bit
// always reads as set.
func (c *Go6502) status() byte {
	reg := c.cpu.Reg
	status := byte(FlagUnused)
	for _, f := range []struct {
		set bool
		bit byte
	}{
		{reg.Carry, FlagCarry},
		{reg.Zero, FlagZero},
		{reg.InterruptDisable, FlagInterrupt},
		{reg.Decimal, FlagDecimal},
		{reg.Overflow, FlagOverflow},
		{reg.Sign, FlagNegative},
	} {
		if f.set {
			status |= f.bit
		}
	}
	return status
}
