package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"

	cerr "github.com/saeidalz13/battle-of-warships/internal/error"
	mb "github.com/saeidalz13/battle-of-warships/models/battleship"
)

type line struct {
	text string
	err  error
}

// ConsolePrompter reads shots and answers from a line based terminal.
// Lines are read on a separate goroutine so a prompt can give up when
// its context is cancelled.
type ConsolePrompter struct {
	in   io.Reader
	out  io.Writer
	size int

	lines     chan line
	startOnce sync.Once

	prompt *color.Color
	bad    *color.Color
}

var _ mb.Prompter = (*ConsolePrompter)(nil)

type Option func(*ConsolePrompter)

func WithoutColor() Option {
	return func(cp *ConsolePrompter) {
		cp.prompt.DisableColor()
		cp.bad.DisableColor()
	}
}

// NewConsolePrompter accepts coordinates in 1..size.
func NewConsolePrompter(in io.Reader, out io.Writer, size int, opts ...Option) *ConsolePrompter {
	cp := &ConsolePrompter{
		in:     in,
		out:    out,
		size:   size,
		lines:  make(chan line),
		prompt: color.New(color.FgGreen),
		bad:    color.New(color.FgRed),
	}
	for _, opt := range opts {
		opt(cp)
	}
	return cp
}

func (cp *ConsolePrompter) start() {
	go func() {
		defer close(cp.lines)

		scanner := bufio.NewScanner(cp.in)
		for scanner.Scan() {
			cp.lines <- line{text: scanner.Text()}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		cp.lines <- line{err: err}
	}()
}

// readLine returns io.EOF once the input is exhausted.
func (cp *ConsolePrompter) readLine(ctx context.Context) (string, error) {
	cp.startOnce.Do(cp.start)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-cp.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

// PromptCoordinates asks until the player enters two numbers inside the
// grid. The numbers are returned 1-indexed, as typed.
func (cp *ConsolePrompter) PromptCoordinates(ctx context.Context) (int, int, error) {
	for {
		fmt.Fprint(cp.out, cp.prompt.Sprint("Your shot: "))

		text, err := cp.readLine(ctx)
		if err != nil {
			return 0, 0, err
		}

		x, y, err := ParseShot(text, cp.size)
		if err != nil {
			cp.complain(err)
			continue
		}
		return x, y, nil
	}
}

func (cp *ConsolePrompter) complain(err error) {
	var msg string
	switch {
	case errors.Is(err, cerr.ErrCoordinateCount):
		msg = "Enter 2 coordinates"
	case errors.Is(err, cerr.ErrCoordinateNotNumber):
		msg = "Enter numbers!"
	case errors.Is(err, cerr.ErrOutOfGrid):
		msg = fmt.Sprintf("Enter numbers from 1 to %d", cp.size)
	default:
		msg = err.Error()
	}
	fmt.Fprintln(cp.out, cp.bad.Sprint(msg))
}

// Confirm asks a yes or no question until it gets an answer.
func (cp *ConsolePrompter) Confirm(ctx context.Context, question string) (bool, error) {
	for {
		fmt.Fprint(cp.out, cp.prompt.Sprint(question+" [y/n]: "))

		text, err := cp.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(text)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(cp.out, cp.bad.Sprint("Answer y or n"))
	}
}

// ParseShot reads "X Y" with both values in 1..size.
func ParseShot(text string, size int) (int, int, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return 0, 0, cerr.ErrCoordinateCount
	}

	x, errX := strconv.Atoi(fields[0])
	y, errY := strconv.Atoi(fields[1])
	if errX != nil || errY != nil {
		return 0, 0, cerr.ErrCoordinateNotNumber
	}

	if x < 1 || x > size || y < 1 || y > size {
		return 0, 0, cerr.ErrXorYOutOfGridBound(x, y)
	}
	return x, y, nil
}
