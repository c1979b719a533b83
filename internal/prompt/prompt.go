// Package prompt asks the console user yes/no questions and holds the window
// open before exit.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// PauseMessage is shown before the program exits.
const PauseMessage = "Press Enter to exit..."

// Prompter reads answers line by line from one input stream. A single reader
// goroutine owns the stream, so a question abandoned on cancellation does not
// swallow the line meant for the next one.
type Prompter struct {
	in          io.Reader
	out         io.Writer
	interactive bool

	once  sync.Once
	lines chan string
}

// New returns a Prompter. interactive controls whether Pause waits at all.
func New(in io.Reader, out io.Writer, interactive bool) *Prompter {
	return &Prompter{in: in, out: out, interactive: interactive}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Confirm asks question until the answer is Y, YES, N or NO in any case.
// End of input counts as no. Cancellation of ctx returns its error.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s (Y/N): ", question)
		text, err := p.readLine(ctx)
		if err != nil {
			fmt.Fprintln(p.out)
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
		switch strings.ToUpper(strings.TrimSpace(text)) {
		case "Y", "YES":
			return true, nil
		case "N", "NO":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please enter Y or N")
	}
}

// Pause waits for Enter when attached to a terminal and returns at once
// otherwise. Cancelling ctx while waiting ends the pause. A ctx that is
// already cancelled on entry belongs to an interrupted run whose notice must
// stay on screen, so Pause then waits for Enter alone.
func (p *Prompter) Pause(ctx context.Context) {
	if !p.interactive {
		return
	}
	if ctx.Err() != nil {
		ctx = context.Background()
	}
	fmt.Fprint(p.out, PauseMessage)
	if _, err := p.readLine(ctx); err != nil && ctx.Err() != nil {
		fmt.Fprintln(p.out)
	}
}

func (p *Prompter) readLine(ctx context.Context) (string, error) {
	p.once.Do(p.start)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case text, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return text, nil
	}
}

func (p *Prompter) start() {
	p.lines = make(chan string)
	go func() {
		defer close(p.lines)
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			p.lines <- scanner.Text()
		}
	}()
}
