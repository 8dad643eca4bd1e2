// Package command parses the operator input lines of the monitor.
package command

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Kind is the type of a parsed command.
type Kind uint8

const (
	Unknown       Kind = iota
	Status             // l
	Step               // empty line
	StepInto           // i
	StepOut            // o
	Run                // run
	Reset              // reset
	IRQ                // irq
	NMI                // nmi
	SetBreakpoint      // bp XXXX
	DumpMemory         // m XXXX
	WriteMemory        // w XXXX XX XX ...
	Help               // h, help
)

var kindNames = map[Kind]string{
	Unknown:       "unknown",
	Status:        "status",
	Step:          "step",
	StepInto:      "step into",
	StepOut:       "step out",
	Run:           "run",
	Reset:         "reset",
	IRQ:           "irq",
	NMI:           "nmi",
	SetBreakpoint: "breakpoint",
	DumpMemory:    "memory dump",
	WriteMemory:   "memory write",
	Help:          "help",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Command is a parsed operator command.
type Command struct {
	Kind    Kind
	Address uint16 // SetBreakpoint, DumpMemory and WriteMemory
	Data    []byte // WriteMemory
	Input   string // trimmed input line
}

var keywords = map[string]Kind{
	"":      Step,
	"l":     Status,
	"i":     StepInto,
	"o":     StepOut,
	"run":   Run,
	"reset": Reset,
	"irq":   IRQ,
	"nmi":   NMI,
	"h":     Help,
	"help":  Help,
}

var addressCommands = map[string]Kind{
	"bp": SetBreakpoint,
	"m":  DumpMemory,
	"w":  WriteMemory,
}

// Parse parses an input line. Unrecognized input returns a command of kind
// Unknown.
func Parse(line string) Command {
	line = strings.TrimSpace(line)
	cmd := Command{Input: line}

	if kind, ok := keywords[line]; ok {
		cmd.Kind = kind
		return cmd
	}

	end := strings.IndexFunc(line, unicode.IsSpace)
	if end < 0 {
		return cmd
	}
	kind, ok := addressCommands[line[:end]]
	if !ok {
		return cmd
	}

	args := strings.TrimLeftFunc(line[end:], unicode.IsSpace)
	digits := hexPrefixLength(args)
	if digits == 0 || digits > 4 {
		return cmd
	}
	address, err := strconv.ParseUint(args[:digits], 16, 16)
	if err != nil {
		return cmd
	}

	cmd.Kind = kind
	cmd.Address = uint16(address)
	if kind == WriteMemory {
		cmd.Data = parseData(args[digits:])
	}
	return cmd
}

// hexPrefixLength returns the number of leading hex digits of s.
func hexPrefixLength(s string) int {
	for i := range len(s) {
		if !isHexDigit(s[i]) {
			return i
		}
	}
	return len(s)
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// parseData reads hex byte pairs following the address. A position that does
// not start a valid pair is skipped by a single character, so pairs may be
// separated by any non-hex delimiter.
func parseData(s string) []byte {
	var data []byte
	for i := 0; i < len(s); {
		if s[i] == ' ' {
			i++
			continue
		}
		if i+2 <= len(s) {
			if value, err := strconv.ParseUint(s[i:i+2], 16, 8); err == nil {
				data = append(data, byte(value))
				i += 2
				continue
			}
		}
		i++
	}
	return data
}
