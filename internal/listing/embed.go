package listing

import (
	_ "embed"
	"io"
	"strings"
)

//go:embed demo.lst
var demoListing string

// Demo returns the embedded demo ROM listing, which covers both ROM banks and
// lets the monitor run without any external files.
func Demo() io.Reader {
	return strings.NewReader(demoListing)
}
