// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Listing string // disassembly listing, the embedded demo listing is used if empty
	ROMs    string // directory containing the binary ROM images
	Export  string // file to export the ROM listing to
	Script  string // file with commands to execute before interactive input
}

// Flags contains behavior options.
type Flags struct {
	Mode  string // ROM population mode, burn or verify
	Debug bool
	Quiet bool
}

// Program options of the monitor.
type Program struct {
	Parameters
	Flags
}
