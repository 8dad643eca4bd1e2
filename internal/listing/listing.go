// Package listing loads a textual disassembly listing of the C64 ROMs. The
// listing is kept for display and is either burned into ROM or verified
// against ROM contents that were loaded from binary images.
package listing

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/c64monitor/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// Column layout of an addressed listing line like
// ".,A000 94 E3       .WORD $E394".
const (
	addressColumn   = 2
	addressDigits   = 4
	bytesColumn     = 7
	bytesEndColumn  = 30
	maxBytesPerLine = 8
	maxLineLength   = 1 << 20
)

const (
	firstAddress = 0xA000
	gapStart     = 0xC000 // I/O and RAM area between BASIC and KERNAL
	gapEnd       = 0xE000
)

// Sentinel causes of an IntegrityError.
var (
	ErrNotHexAddress   = errors.New("not a hex address")
	ErrAddressMismatch = errors.New("address mismatch")
	ErrNoBytes         = errors.New("no bytes listed")
	ErrLineTooLong     = errors.New("line too long")
	ErrROMMismatch     = verification.ErrMismatch
)

// IntegrityError reports a listing that is inconsistent with itself or with
// the loaded ROM. The listing is a build artifact, so such an error is fatal
// for the monitor.
type IntegrityError struct {
	Line    int    // 1 based line number
	Content string // offending line
	Detail  string
	Err     error
}

func (e *IntegrityError) Error() string {
	msg := fmt.Sprintf("line #%d: %v", e.Line, e.Err)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return fmt.Sprintf("%s: %q", msg, e.Content)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// ROM gives the loader access to the ROM contents.
type ROM interface {
	ReadROM(address uint16) byte
	WriteROM(address uint16, value byte)
}

// Listing is the immutable list of lines of a loaded disassembly listing.
type Listing struct {
	lines []string
	index map[uint16]int // address to line index
}

// Load reads all lines of the listing and applies the ROM population policy of
// the mode to every addressed line. Addressed lines have to follow each other
// without gaps, starting at $A000, with the single jump from $C000 to $E000.
func Load(logger *log.Logger, r io.Reader, rom ROM, mode Mode) (*Listing, error) {
	l := &Listing{
		index: make(map[uint16]int),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineLength)
	expected := firstAddress
	var lineNr int

	for scanner.Scan() {
		lineNr++
		line := strings.TrimRight(scanner.Text(), "\r")
		l.lines = append(l.lines, line)
		if !isAddressed(line) {
			continue
		}

		address, err := parseAddress(line)
		if err != nil {
			return nil, &IntegrityError{Line: lineNr, Content: line, Detail: err.Error(), Err: ErrNotHexAddress}
		}
		if int(address) != expected {
			return nil, &IntegrityError{
				Line:    lineNr,
				Content: line,
				Detail:  fmt.Sprintf("address expected: %04X", expected),
				Err:     ErrAddressMismatch,
			}
		}

		data := parseBytes(line)
		if len(data) == 0 {
			return nil, &IntegrityError{Line: lineNr, Content: line, Err: ErrNoBytes}
		}

		if err := apply(logger, rom, mode, address, data); err != nil {
			return nil, &IntegrityError{Line: lineNr, Content: line, Detail: err.Error(), Err: ErrROMMismatch}
		}

		l.index[address] = len(l.lines) - 1
		expected += len(data)
		if expected == gapStart {
			expected = gapEnd
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &IntegrityError{
				Line:   lineNr + 1,
				Detail: fmt.Sprintf("limit is %d bytes", maxLineLength),
				Err:    ErrLineTooLong,
			}
		}
		return nil, fmt.Errorf("reading listing: %w", err)
	}

	logger.Debug("Listing loaded",
		log.Int("lines", len(l.lines)),
		log.Int("addressed", len(l.index)),
		log.Stringer("mode", mode))
	return l, nil
}

// Lines returns all lines of the listing.
func (l *Listing) Lines() []string {
	return l.lines
}

// Find returns the index of the line that lists the given address.
func (l *Listing) Find(address uint16) (int, bool) {
	i, ok := l.index[address]
	return i, ok
}

func apply(logger *log.Logger, rom ROM, mode Mode, address uint16, data []byte) error {
	switch mode {
	case Verify:
		if err := verification.CheckBytes(logger, rom, address, data); err != nil {
			return fmt.Errorf("disassembly doesn't match loaded ROM: %w", err)
		}
	default:
		for i, b := range data {
			rom.WriteROM(address+uint16(i), b)
		}
	}
	return nil
}

func isAddressed(line string) bool {
	return len(line) > 0 && line[0] == '.'
}

func parseAddress(line string) (uint16, error) {
	if len(line) < addressColumn+addressDigits {
		return 0, errors.New("line too short")
	}
	s := line[addressColumn : addressColumn+addressDigits]
	address, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("-->%s<--", s)
	}
	return uint16(address), nil
}

// parseBytes reads the opcode bytes of an addressed line. Each byte is a hex
// pair followed by a space or the end of the line, the first token that does
// not match ends the byte list.
func parseBytes(line string) []byte {
	var data []byte
	end := min(len(line), bytesEndColumn)

	for pos := bytesColumn; pos < end && len(data) < maxBytesPerLine; pos++ {
		if line[pos] == ' ' {
			continue
		}
		if pos+2 > len(line) {
			break
		}
		if pos+2 < len(line) && line[pos+2] != ' ' {
			break
		}

		b, err := strconv.ParseUint(line[pos:pos+2], 16, 8)
		if err != nil {
			break
		}
		data = append(data, byte(b))
		pos++
	}
	return data
}
