package cpu

import (
	gocpu "github.com/beevik/go6502/cpu"
)

var _ gocpu.Memory = &busMemory{}

// busMemory exposes a Bus as go6502 memory.
type busMemory struct {
	bus Bus
}

func newBusMemory(bus Bus) *busMemory {
	return &busMemory{bus: bus}
}

func (m *busMemory) LoadByte(addr uint16) byte {
	return m.bus.Read(addr)
}

func (m *busMemory) LoadBytes(addr uint16, b []byte) {
	for i := range b {
		b[i] = m.bus.Read(addr + uint16(i))
	}
}

// LoadAddress reads a little endian word. Like the NMOS 6502 the high byte
// is fetched from the start of the same page when the low byte sits at the
// end of a page.
func (m *busMemory) LoadAddress(addr uint16) uint16 {
	high := addr + 1
	if addr&0xFF == 0xFF {
		high = addr & 0xFF00
	}
	return uint16(m.bus.Read(addr)) | uint16(m.bus.Read(high))<<8
}

func (m *busMemory) StoreByte(addr uint16, v byte) {
	m.bus.Write(addr, v)
}

func (m *busMemory) StoreBytes(addr uint16, b []byte) {
	for i, v := range b {
		m.bus.Write(addr+uint16(i), v)
	}
}

func (m *busMemory) StoreAddress(addr uint16, v uint16) {
	m.bus.Write(addr, byte(v))
	m.bus.Write(addr+1, byte(v>>8))
}
