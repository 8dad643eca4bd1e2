// Package monitor implements the interactive control loop of the C64
// monitor. It steps the CPU through the execution controller and reads
// operator commands whenever execution is halted.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/c64monitor/internal/command"
	"github.com/retroenv/c64monitor/internal/debugger"
	"github.com/retroenv/c64monitor/internal/status"
	"github.com/retroenv/retrogolib/log"
)

// Action tells the control loop what to do after a command.
type Action bool

const (
	Stay    Action = false // wait for the next command
	Advance Action = true  // execute the next instruction
)

const (
	dumpRows    = 10
	dumpColumns = 8
)

// Console is the operator console.
type Console interface {
	io.Writer
	ReadLine() (string, error)
}

// Memory is the address space as seen by the memory commands.
type Memory interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// Monitor connects the execution controller with the operator console.
type Monitor struct {
	logger    *log.Logger
	ctl       *debugger.Controller
	memory    Memory
	presenter *status.Presenter
	console   Console

	info string // halt message shown with the next status
}

// New returns a new monitor.
func New(logger *log.Logger, ctl *debugger.Controller, memory Memory,
	presenter *status.Presenter, console Console) *Monitor {
	return &Monitor{
		logger:    logger,
		ctl:       ctl,
		memory:    memory,
		presenter: presenter,
		console:   console,
	}
}

// Run executes the control loop until the context is canceled or the
// operator input ends.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			m.logger.Debug("Monitor canceled")
			return nil
		default:
		}

		wasHalted := m.ctl.Halted()
		reason := m.ctl.Check()
		m.info = m.haltInfo(reason)
		if reason != debugger.NoHalt && (!wasHalted || reason == debugger.ResetRequested) {
			m.presenter.Invalidate()
		}

		if m.ctl.Halted() {
			action, err := m.edit()
			if err != nil {
				if errors.Is(err, io.EOF) {
					m.logger.Debug("Input closed")
					return nil
				}
				return err
			}
			if action == Stay {
				continue
			}
		}

		m.ctl.Step()
		m.presenter.Invalidate()
	}
}

// edit shows the status if it changed and executes one operator command.
func (m *Monitor) edit() (Action, error) {
	if m.presenter.NeedsRedraw() {
		if m.info != "" {
			if _, err := fmt.Fprintln(m.console, m.info); err != nil {
				return Stay, fmt.Errorf("writing halt info: %w", err)
			}
		}
		if err := m.presenter.Render(m.console, m.ctl); err != nil {
			return Stay, fmt.Errorf("rendering status: %w", err)
		}
		m.ctl.Rebase()
	}

	line, err := m.console.ReadLine()
	if err != nil {
		return Stay, err
	}
	return m.execute(command.Parse(line))
}

func (m *Monitor) execute(cmd command.Command) (Action, error) {
	switch cmd.Kind {
	case command.Status:
		m.presenter.Invalidate()

	case command.Step:
		if m.ctl.AtCall() {
			m.ctl.StepOverCall()
		}
		return Advance, nil

	case command.StepInto:
		return Advance, nil

	case command.StepOut:
		if m.ctl.StepOut() {
			return Advance, nil
		}

	case command.Run:
		m.ctl.Resume()
		return Advance, nil

	case command.Reset:
		m.ctl.RequestReset()

	case command.IRQ:
		m.ctl.IRQ()
		m.presenter.Invalidate()

	case command.NMI:
		m.ctl.NMI()
		m.presenter.Invalidate()

	case command.SetBreakpoint:
		m.ctl.SetBreakpoint(cmd.Address)

	case command.DumpMemory:
		return Stay, m.dump(cmd.Address)

	case command.WriteMemory:
		m.write(cmd.Address, cmd.Data)

	case command.Help:
		if _, err := io.WriteString(m.console, helpText); err != nil {
			return Stay, fmt.Errorf("writing help: %w", err)
		}

	case command.Unknown:
		m.logger.Debug("Ignoring command", log.String("input", cmd.Input))
	}

	return Stay, nil
}

func (m *Monitor) haltInfo(reason debugger.HaltReason) string {
	switch reason {
	case debugger.TimeoutExpired:
		return "BREAK on timeout (5s)"
	case debugger.ResetRequested:
		return "RAM was cleared!"
	case debugger.BreakpointHit:
		address, _ := m.ctl.Breakpoint()
		return fmt.Sprintf("Breakpoint reached: %04X", address)
	default:
		return ""
	}
}

// dump prints 10 rows of 8 bytes starting at the address.
func (m *Monitor) dump(address uint16) error {
	for row := range uint16(dumpRows) {
		start := address + row*dumpColumns
		line := fmt.Sprintf("%04X: ", start)
		for column := range uint16(dumpColumns) {
			line += fmt.Sprintf("%02X ", m.memory.Read(start+column))
		}
		if _, err := fmt.Fprintln(m.console, line); err != nil {
			return fmt.Errorf("writing memory dump: %w", err)
		}
	}
	return nil
}

// write stores the bytes at incrementing addresses starting at the address.
func (m *Monitor) write(address uint16, data []byte) {
	for i, value := range data {
		m.memory.Write(address+uint16(i), value)
	}
	m.logger.Debug("Memory written", log.Hex("address", address), log.Int("bytes", len(data)))
}
