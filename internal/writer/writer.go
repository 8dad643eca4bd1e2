// Package writer exports the ROM banks of the address space as a disassembly
// listing that can be loaded again by the listing package.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/c64monitor/internal/cpu"
	"github.com/retroenv/c64monitor/internal/loader"
	"github.com/retroenv/c64monitor/internal/memory"
)

const dataBytesPerLine = 8

type lineWriterFunc func(address uint16, data []byte, text string) error

// Bank is an inclusive address range of ROM.
type Bank struct {
	Name  string
	Start uint16
	End   uint16
}

// Banks are the ROM banks covered by a listing, in listing order.
var Banks = []Bank{
	{Name: "BASIC", Start: memory.BasicStart, End: memory.BasicEnd},
	{Name: "KERNAL", Start: memory.KernalStart, End: memory.KernalEnd},
}

// Writer renders ROM contents in the listing format.
type Writer struct {
	bus    cpu.Bus
	writer io.Writer
}

// New creates a new writer that reads the ROM through the bus.
func New(bus cpu.Bus, writer io.Writer) *Writer {
	return &Writer{
		bus:    bus,
		writer: writer,
	}
}

// Write writes the comment header followed by all banks.
func (w Writer) Write() error {
	if err := w.WriteCommentHeader(); err != nil {
		return err
	}
	for _, bank := range Banks {
		if err := w.ProcessBank(bank); err != nil {
			return fmt.Errorf("writing bank %s: %w", bank.Name, err)
		}
	}
	return nil
}

// WriteCommentHeader writes the checksums of the banks as comments to the output.
func (w Writer) WriteCommentHeader() error {
	if _, err := fmt.Fprintln(w.writer, "; c64monitor ROM listing"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, bank := range Banks {
		checksum := loader.Checksum(w.read(bank.Start, int(bank.End)-int(bank.Start)+1))
		if _, err := fmt.Fprintf(w.writer, "; %s $%04X-$%04X checksum: $%04X\n",
			bank.Name, bank.Start, bank.End, checksum); err != nil {
			return fmt.Errorf("writing %s checksum: %w", bank.Name, err)
		}
	}
	return nil
}

// ProcessBank disassembles the bank and writes one line per instruction. An
// instruction that would cross the end of the bank is written as data.
func (w Writer) ProcessBank(bank Bank) error {
	if _, err := fmt.Fprintf(w.writer, "\n; %s ROM $%04X-$%04X\n\n", bank.Name, bank.Start, bank.End); err != nil {
		return fmt.Errorf("writing bank header: %w", err)
	}

	end := int(bank.End)
	for address := int(bank.Start); address <= end; {
		text, next := cpu.Disassemble(w.bus, uint16(address))
		size := int(next - uint16(address))

		if address+size-1 > end {
			data := w.read(uint16(address), end-address+1)
			if err := w.BundleDataWrites(uint16(address), data, nil); err != nil {
				return fmt.Errorf("writing bank end: %w", err)
			}
			break
		}

		if err := w.writeLine(uint16(address), w.read(uint16(address), size), text); err != nil {
			return fmt.Errorf("writing code line: %w", err)
		}
		address += size
	}
	return nil
}

// BundleDataWrites bundles writes of data bytes to print dataBytesPerLine bytes per line.
func (w Writer) BundleDataWrites(address uint16, data []byte, lineWriter lineWriterFunc) error {
	if lineWriter == nil {
		lineWriter = w.writeLine
	}

	for i := 0; i < len(data); i += dataBytesPerLine {
		chunk := data[i:min(len(data), i+dataBytesPerLine)]

		values := make([]string, len(chunk))
		for j, b := range chunk {
			values[j] = fmt.Sprintf("$%02X", b)
		}
		text := ".BYTE " + strings.Join(values, ",")

		if err := lineWriter(address+uint16(i), chunk, text); err != nil {
			return fmt.Errorf("writing data line: %w", err)
		}
	}
	return nil
}

func (w Writer) writeLine(address uint16, data []byte, text string) error {
	hex := make([]string, len(data))
	for i, b := range data {
		hex[i] = fmt.Sprintf("%02X", b)
	}
	if _, err := fmt.Fprintf(w.writer, ".,%04X %-24s%s\n", address, strings.Join(hex, " "), text); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

func (w Writer) read(address uint16, size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = w.bus.Read(address + uint16(i))
	}
	return data
}
