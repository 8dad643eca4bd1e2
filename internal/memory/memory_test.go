package memory

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func newFilled() *AddressSpace {
	a := New()
	for i := range 0x10000 {
		a.rom[i] = 0xEE
		a.ram[i] = 0x11
	}
	return a
}

func TestRead_Overlay(t *testing.T) {
	a := newFilled()

	tests := []struct {
		name    string
		address uint16
		want    byte
	}{
		{name: "zero page", address: 0x0000, want: 0x11},
		{name: "below basic", address: 0x9FFF, want: 0x11},
		{name: "basic start", address: 0xA000, want: 0xEE},
		{name: "basic end", address: 0xBFFF, want: 0xEE},
		{name: "upper ram", address: 0xC000, want: 0x11},
		{name: "charset hidden behind io", address: 0xD000, want: 0x11},
		{name: "io end", address: 0xDFFF, want: 0x11},
		{name: "kernal start", address: 0xE000, want: 0xEE},
		{name: "kernal end", address: 0xFFFF, want: 0xEE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Read(tt.address))
		})
	}
}

func TestRead_AllAddresses(t *testing.T) {
	a := newFilled()

	for i := range 0x10000 {
		address := uint16(i)
		want := a.ram[address]
		if IsROM(address) {
			want = a.rom[address]
		}
		if got := a.Read(address); got != want {
			t.Fatalf("read of $%04X returned $%02X, expected $%02X", address, got, want)
		}
	}
}

func TestWrite(t *testing.T) {
	a := newFilled()

	for i := range 0x10000 {
		address := uint16(i)
		a.Write(address, 0x42)

		got := a.Read(address)
		if IsROM(address) {
			if got != 0xEE {
				t.Fatalf("write to ROM at $%04X became visible", address)
			}
			if a.ReadRAM(address) != 0x42 {
				t.Fatalf("write to ROM at $%04X did not reach RAM", address)
			}
			continue
		}
		if got != 0x42 {
			t.Fatalf("write to $%04X not readable, got $%02X", address, got)
		}
	}
}

func TestClearRAM(t *testing.T) {
	a := newFilled()
	a.ClearRAM()

	assert.Equal(t, byte(0), a.Read(0x1000))
	assert.Equal(t, byte(0), a.ReadRAM(0xA000))
	assert.Equal(t, byte(0xEE), a.ReadROM(0x1000))
	assert.Equal(t, byte(0xEE), a.Read(0xE000))
}

func TestLoadROM(t *testing.T) {
	a := New()
	a.LoadROM(0xFFFE, []byte{1, 2, 3})

	assert.Equal(t, byte(1), a.Read(0xFFFE))
	assert.Equal(t, byte(2), a.Read(0xFFFF))
	assert.Equal(t, byte(3), a.ReadROM(0x0000))
	assert.Equal(t, byte(0), a.Read(0x0000))
}

func TestTickRaster(t *testing.T) {
	a := New()
	a.Write(RasterRegister, 0xFF)
	a.TickRaster()
	assert.Equal(t, byte(0), a.Read(RasterRegister))
	a.TickRaster()
	assert.Equal(t, byte(1), a.Read(RasterRegister))
}
