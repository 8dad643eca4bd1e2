// Package terminal implements the operator console of the monitor. An
// interactive terminal gets line editing with an in-session history,
// redirected input is read line by line.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Prompt is shown before every operator input.
const Prompt = "> "

type lineReader interface {
	ReadLine() (string, error)
}

// Console reads operator commands and writes monitor output.
type Console struct {
	logger *log.Logger
	reader lineReader
	output io.Writer
	script []string

	restore func() error
}

// Open returns a console for the given input and output. If the input is a
// terminal it is switched to raw mode and wrapped with line editing, Close
// restores the previous mode.
func Open(logger *log.Logger, input *os.File, output io.Writer) (*Console, error) {
	fd := int(input.Fd())
	if !term.IsTerminal(fd) {
		return NewPlain(logger, input, output), nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting terminal raw mode: %w", err)
	}

	screen := struct {
		io.Reader
		io.Writer
	}{input, output}
	t := term.NewTerminal(screen, Prompt)

	logger.Debug("Interactive terminal opened", log.Int("fd", fd))
	c := &Console{
		logger: logger,
		reader: t,
		output: t,
	}
	c.restore = func() error {
		return term.Restore(fd, state)
	}
	return c, nil
}

// NewPlain returns a console that reads lines from the reader and prints
// the prompt itself.
func NewPlain(logger *log.Logger, input io.Reader, output io.Writer) *Console {
	return &Console{
		logger: logger,
		reader: &plainReader{
			scanner: bufio.NewScanner(input),
			output:  output,
		},
		output: output,
	}
}

// Queue adds script commands that are returned before any operator input.
// Blank lines and lines starting with # are skipped.
func (c *Console) Queue(lines []string) {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c.script = append(c.script, line)
	}
	c.logger.Debug("Script queued", log.Int("commands", len(c.script)))
}

// ReadLine returns the next queued script command or reads a line of
// operator input. It returns io.EOF when the input is closed.
func (c *Console) ReadLine() (string, error) {
	if len(c.script) > 0 {
		line := c.script[0]
		c.script = c.script[1:]
		if _, err := fmt.Fprintf(c.output, "%s%s\n", Prompt, line); err != nil {
			return "", fmt.Errorf("echoing script command: %w", err)
		}
		return line, nil
	}

	line, err := c.reader.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return line, nil
}

// Write writes monitor output to the console.
func (c *Console) Write(p []byte) (int, error) {
	return c.output.Write(p)
}

// Close restores the terminal mode if it was changed.
func (c *Console) Close() error {
	if c.restore == nil {
		return nil
	}
	if err := c.restore(); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	c.restore = nil
	return nil
}

type plainReader struct {
	scanner *bufio.Scanner
	output  io.Writer
}

func (r *plainReader) ReadLine() (string, error) {
	if _, err := io.WriteString(r.output, Prompt); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", fmt.Errorf("scanning input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimRight(r.scanner.Text(), "\r"), nil
}
