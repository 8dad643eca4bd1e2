// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/c64monitor/internal/listing"
	"github.com/retroenv/c64monitor/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) > 0 {
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("unexpected arguments: %s", strings.Join(args, " ")),
		}
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: c64monitor [options]\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Mode = strings.ToLower(strings.TrimSpace(opts.Mode))
	if opts.Mode == "" {
		return nil
	}
	if _, err := listing.ParseMode(opts.Mode); err != nil {
		return fmt.Errorf("invalid mode option: %w", err)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Listing, "listing", "", "name of the disassembly listing file, the embedded demo listing is used if no name given")
	flags.StringVar(&opts.ROMs, "roms", "", "directory of the basic, kernal and chargen ROM images (default: data next to the executable)")
	flags.StringVar(&opts.Mode, "mode", "", "ROM population mode (burn/verify), the build default is used if not given")
	flags.StringVar(&opts.Export, "export", "", "export the loaded ROM as listing to the given file and exit")
	flags.StringVar(&opts.Script, "script", "", "file with monitor commands to execute before reading interactive input")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
