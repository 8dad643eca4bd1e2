// Package status renders the machine state shown on every halt of the monitor.
package status

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/c64monitor/internal/cpu"
	"github.com/retroenv/c64monitor/internal/memory"
)

const (
	stackWindow  = 8 // maximum number of stack bytes shown
	listingLines = 4 // line at the program counter plus its successors

	// flag letters, lower case when clear and upper case when set,
	// ordered from bit 0 to bit 7
	flagGrid = "cCzZiIdDbB-+vVnN"
)

// Controller provides the execution state to render.
type Controller interface {
	Registers() cpu.Registers
	Breakpoint() (uint16, bool)
	Cycles() uint64
	Elapsed() uint64
	CallDepth() int
}

// Listing provides the disassembly lines to show next to the registers.
type Listing interface {
	Lines() []string
	Find(address uint16) (int, bool)
}

// Presenter renders the status block.
type Presenter struct {
	memory  cpu.Bus
	listing Listing
	redraw  bool
}

// New returns a presenter that reads the stack and live disassembly through
// the given bus. The listing is optional.
func New(bus cpu.Bus, listing Listing) *Presenter {
	return &Presenter{
		memory:  bus,
		listing: listing,
		redraw:  true,
	}
}

// Invalidate marks the status as outdated, typically after an instruction
// was executed.
func (p *Presenter) Invalidate() {
	p.redraw = true
}

// NeedsRedraw returns whether the status changed since the last render.
func (p *Presenter) NeedsRedraw() bool {
	return p.redraw
}

// Render writes the stack window, the register line and the listing lines
// at the program counter and clears the redraw flag.
func (p *Presenter) Render(w io.Writer, ctl Controller) error {
	regs := ctl.Registers()

	var b strings.Builder
	b.WriteString(p.stackLine(regs.SP, ctl.CallDepth()))
	b.WriteByte('\n')
	b.WriteString(registerLine(regs, ctl))
	b.WriteByte('\n')
	for _, line := range p.code(regs.PC) {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing status: %w", err)
	}
	p.redraw = false
	return nil
}

// stackLine shows up to 8 bytes above the stack pointer, the most distant
// first.
func (p *Presenter) stackLine(sp byte, depth int) string {
	top := min(0xFF, int(sp)+stackWindow)

	var b strings.Builder
	fmt.Fprintf(&b, "S:01%02X [%04X:", sp, memory.StackPage+top)
	for s := top; s > int(sp); s-- {
		fmt.Fprintf(&b, " %02X", p.memory.Read(uint16(memory.StackPage+s)))
	}
	fmt.Fprintf(&b, "] %d JSRs active.", depth)
	return b.String()
}

func registerLine(regs cpu.Registers, ctl Controller) string {
	breakpoint := "----"
	if address, ok := ctl.Breakpoint(); ok {
		breakpoint = fmt.Sprintf("%04X", address)
	}

	return fmt.Sprintf("PC: %04X A:%02X X:%02X Y:%02X flags:%02X [%s] (BP:%s) Ticks: %d (+%d)",
		regs.PC, regs.A, regs.X, regs.Y, regs.Flags, FlagGrid(regs.Flags),
		breakpoint, ctl.Cycles(), ctl.Elapsed())
}

// FlagGrid returns the status flags as letters from bit 7 to bit 0, upper
// case for set flags.
func FlagGrid(flags byte) string {
	grid := make([]byte, 8)
	for bit := range 8 {
		set := int(flags>>bit) & 1
		grid[7-bit] = flagGrid[2*bit+set]
	}
	return string(grid)
}

// code returns the listing lines starting at the program counter, or a live
// disassembly if the listing does not contain the address.
func (p *Presenter) code(pc uint16) []string {
	if p.listing != nil {
		if i, ok := p.listing.Find(pc); ok {
			lines := p.listing.Lines()
			return lines[i:min(len(lines), i+listingLines)]
		}
	}

	lines := make([]string, 0, listingLines)
	address := pc
	for range listingLines {
		text, next := cpu.Disassemble(p.memory, address)
		lines = append(lines, FormatLine(p.memory, address, next-address, text))
		address = next
	}
	return lines
}

// FormatLine formats an instruction in the listing line format.
func FormatLine(bus cpu.Bus, address, size uint16, text string) string {
	hex := make([]string, 0, size)
	for i := range size {
		hex = append(hex, fmt.Sprintf("%02X", bus.Read(address+i)))
	}
	return fmt.Sprintf(".,%04X %-24s%s", address, strings.Join(hex, " "), text)
}
