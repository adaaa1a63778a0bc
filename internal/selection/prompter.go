package selection

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// LinePrompter reads answers line by line from a reader. Picks are entered as
// 1-based numbers.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter over in and out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// NewPrompter returns a TerminalPrompter when in is a terminal and a
// LinePrompter otherwise.
func NewPrompter(in io.Reader, out io.Writer) Prompter {
	if isTerminal(in) {
		return NewTerminalPrompter(out)
	}
	return NewLinePrompter(in, out)
}

func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *LinePrompter) Ask(title string) (string, error) {
	fmt.Fprintln(p.out, title)
	return p.readLine()
}

func (p *LinePrompter) Pick(title string, options []string) (int, error) {
	fmt.Fprintln(p.out, title)
	for i, opt := range options {
		fmt.Fprintf(p.out, "%d - %s\n", i+1, opt)
	}
	line, err := p.readLine()
	if err != nil {
		return 0, err
	}
	line = strings.TrimSpace(line)
	if line == cancelInput {
		return 0, ErrCancelled
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(options) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChoice, line)
	}
	return n - 1, nil
}

func (p *LinePrompter) Notify(message string) {
	fmt.Fprintln(p.out, message)
}

// readLine returns the next line. EOF with no pending input cancels.
func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", ErrCancelled
		}
		return strings.TrimRight(line, "\r"), nil
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
