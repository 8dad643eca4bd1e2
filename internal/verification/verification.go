// Package verification verifies that the bytes of a disassembly listing match
// the ROM contents that were loaded from binary images.
package verification

import (
	"errors"
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// maxLoggedDiffs limits the logging of differing bytes per checked run.
const maxLoggedDiffs = 10

// ErrMismatch is returned when ROM contents differ from the expected bytes.
var ErrMismatch = errors.New("ROM contents mismatch")

// ROM provides read access to the ROM contents.
type ROM interface {
	ReadROM(address uint16) byte
}

// CheckBytes compares the expected bytes against the ROM starting at the given
// address. Every differing byte is logged and an error wrapping ErrMismatch is
// returned that shows the actual ROM bytes.
func CheckBytes(logger *log.Logger, rom ROM, address uint16, expected []byte) error {
	actual := make([]byte, len(expected))
	var diffs int

	for i, want := range expected {
		offset := address + uint16(i)
		actual[i] = rom.ReadROM(offset)
		if actual[i] == want {
			continue
		}

		diffs++
		if diffs <= maxLoggedDiffs {
			logger.Error("ROM byte mismatch",
				log.Hex("address", offset),
				log.Hex("expected", want),
				log.Hex("got", actual[i]))
		}
	}
	if diffs == 0 {
		return nil
	}

	return fmt.Errorf("%w: %d of %d bytes differ, ROM: %s",
		ErrMismatch, diffs, len(expected), FormatBytes(address, actual))
}

// FormatBytes renders a byte run the way the listing shows it, prefixed by
// its start address.
func FormatBytes(address uint16, data []byte) string {
	buf := &strings.Builder{}
	fmt.Fprintf(buf, ". %04X:", address)
	for _, b := range data {
		fmt.Fprintf(buf, " %02X", b)
	}
	return buf.String()
}
