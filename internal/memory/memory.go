// Package memory implements the C64 address space with its RAM and ROM bank overlay.
package memory

// Bank boundaries of the ROMs that are visible to the CPU.
const (
	BasicStart  = 0xA000
	BasicEnd    = 0xBFFF
	KernalStart = 0xE000
	KernalEnd   = 0xFFFF

	// CharsetStart is the load address of the character ROM. It is hidden
	// behind the I/O area and never visible to the CPU.
	CharsetStart = 0xD000

	// StackPage is the base address of the 6502 hardware stack.
	StackPage = 0x0100

	// RasterRegister is the VIC-II register holding the current raster line.
	RasterRegister = 0xD012
)

// AddressSpace owns RAM and ROM and routes all CPU accesses through the
// bank overlay.
type AddressSpace struct {
	ram [0x10000]byte
	rom [0x10000]byte
}

// New returns a zero filled address space.
func New() *AddressSpace {
	return &AddressSpace{}
}

// IsROM returns whether a CPU read of the address is served by ROM.
func IsROM(address uint16) bool {
	return (address >= BasicStart && address <= BasicEnd) || address >= KernalStart
}

// Read returns the byte the CPU sees at the given address.
func (a *AddressSpace) Read(address uint16) byte {
	if IsROM(address) {
		return a.rom[address]
	}
	return a.ram[address]
}

// Write stores the value in RAM. Writes to ROM shadowed ranges land in the
// RAM underneath and are not visible to reads.
func (a *AddressSpace) Write(address uint16, value byte) {
	a.ram[address] = value
}

// ReadRAM returns the RAM byte at the address, ignoring the overlay.
func (a *AddressSpace) ReadRAM(address uint16) byte {
	return a.ram[address]
}

// ReadROM returns the ROM byte at the address, ignoring the overlay.
func (a *AddressSpace) ReadROM(address uint16) byte {
	return a.rom[address]
}

// WriteROM sets a ROM byte. Only the ROM loaders are supposed to call it.
func (a *AddressSpace) WriteROM(address uint16, value byte) {
	a.rom[address] = value
}

// LoadROM copies data into ROM starting at the address, wrapping at the
// end of the address space.
func (a *AddressSpace) LoadROM(address uint16, data []byte) {
	for i, b := range data {
		a.rom[address+uint16(i)] = b
	}
}

// ClearRAM zeroes the whole RAM, ROM is untouched.
func (a *AddressSpace) ClearRAM() {
	clear(a.ram[:])
}

// TickRaster advances the VIC-II raster line register.
func (a *AddressSpace) TickRaster() {
	a.ram[RasterRegister]++
}
