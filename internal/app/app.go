// Package app wires the components of the monitor together.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/c64monitor/internal/config"
	"github.com/retroenv/c64monitor/internal/cpu"
	"github.com/retroenv/c64monitor/internal/debugger"
	"github.com/retroenv/c64monitor/internal/listing"
	"github.com/retroenv/c64monitor/internal/loader"
	"github.com/retroenv/c64monitor/internal/memory"
	"github.com/retroenv/c64monitor/internal/monitor"
	"github.com/retroenv/c64monitor/internal/options"
	"github.com/retroenv/c64monitor/internal/status"
	"github.com/retroenv/c64monitor/internal/terminal"
	"github.com/retroenv/c64monitor/internal/writer"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Machine is the loaded C64 address space together with its listing.
type Machine struct {
	Memory  *memory.AddressSpace
	Listing *listing.Listing
	Mode    listing.Mode
}

// PrintBanner prints the program name and version.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("c64monitor", log.String("version", buildinfo.Version(version, commit, date)))
}

// Load creates the address space and populates the ROM. In verify mode the
// binary ROM images are loaded first, if that fails the listing is burned
// into ROM instead.
func Load(logger *log.Logger, opts options.Program) (*Machine, error) {
	mode := config.DefaultMode
	if opts.Mode != "" {
		var err error
		mode, err = listing.ParseMode(opts.Mode)
		if err != nil {
			return nil, fmt.Errorf("parsing mode: %w", err)
		}
	}

	mem := memory.New()
	if mode == listing.Verify {
		if err := loadROMImages(logger, mem, opts.ROMs); err != nil {
			logger.Warn("Loading ROM images failed, burning listing into ROM instead", log.Err(err))
			mode = listing.Burn
		}
	}

	r, name, closer, err := openListing(opts.Listing)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closer.Close() }()

	lst, err := listing.Load(logger, r, mem, mode)
	if err != nil {
		return nil, fmt.Errorf("loading listing '%s': %w", name, err)
	}

	logger.Info("ROM populated",
		log.String("listing", name),
		log.Stringer("mode", mode),
		log.Int("lines", len(lst.Lines())))

	return &Machine{
		Memory:  mem,
		Listing: lst,
		Mode:    mode,
	}, nil
}

// Export writes the ROM banks of the machine as listing to the given file.
func Export(logger *log.Logger, machine *Machine, fileName string) error {
	f, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := writer.New(machine.Memory, w).Write(); err != nil {
		_ = f.Close()
		return fmt.Errorf("exporting listing: %w", err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flushing export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}

	logger.Info("Listing exported", log.String("file", fileName))
	return nil
}

// Run starts the interactive monitor on the machine and blocks until the
// context is canceled or the operator input ends.
func Run(ctx context.Context, logger *log.Logger, opts options.Program, machine *Machine) error {
	console, err := terminal.Open(logger, os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("opening console: %w", err)
	}
	defer func() {
		if err := console.Close(); err != nil {
			logger.Error("Closing console failed", log.Err(err))
		}
	}()

	if opts.Script != "" {
		lines, err := readScript(opts.Script)
		if err != nil {
			return err
		}
		console.Queue(lines)
	}

	return RunConsole(ctx, logger, machine, console)
}

// RunConsole runs the monitor on the machine using the given console.
func RunConsole(ctx context.Context, logger *log.Logger, machine *Machine, console monitor.Console) error {
	core := cpu.NewGo6502(machine.Memory)
	ctl := debugger.New(logger, core, machine.Memory)
	presenter := status.New(machine.Memory, machine.Listing)

	m := monitor.New(logger, ctl, machine.Memory, presenter, console)
	if err := m.Run(ctx); err != nil {
		return fmt.Errorf("running monitor: %w", err)
	}
	return nil
}

func loadROMImages(logger *log.Logger, mem *memory.AddressSpace, dir string) error {
	if dir == "" {
		var err error
		dir, err = config.DataPath()
		if err != nil {
			return err
		}
	}

	l := loader.New(logger, mem)
	if err := l.LoadAll(dir); err != nil {
		return fmt.Errorf("loading ROM images from '%s': %w", dir, err)
	}
	return nil
}

func openListing(fileName string) (io.Reader, string, io.Closer, error) {
	if fileName == "" {
		return listing.Demo(), "embedded demo", io.NopCloser(nil), nil
	}

	f, err := os.Open(fileName)
	if err != nil {
		return nil, "", nil, fmt.Errorf("opening listing file: %w", err)
	}
	return f, fileName, f, nil
}

func readScript(fileName string) ([]string, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("reading script file: %w", err)
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), nil
}
