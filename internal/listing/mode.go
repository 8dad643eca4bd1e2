package listing

import (
	"fmt"
	"strings"
)

// Mode defines how the listing populates the ROM.
type Mode uint8

const (
	// Burn copies the listing bytes into ROM.
	Burn Mode = iota
	// Verify compares the listing bytes against ROM loaded from binary images.
	Verify
)

var modeNames = map[Mode]string{
	Burn:   "burn",
	Verify: "verify",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", m)
}

// ParseMode returns the mode for the given name.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(s)
	for mode, name := range modeNames {
		if name == s {
			return mode, nil
		}
	}
	return Burn, fmt.Errorf("unsupported ROM mode '%s'", s)
}
