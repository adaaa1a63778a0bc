package selection

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

// TerminalPrompter drives interactive huh forms.
type TerminalPrompter struct {
	out io.Writer
}

// NewTerminalPrompter creates a TerminalPrompter that writes notices to out.
func NewTerminalPrompter(out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{out: out}
}

func (p *TerminalPrompter) Ask(title string) (string, error) {
	var value string
	err := huh.NewInput().
		Title(title).
		Placeholder("name, or q to quit").
		Value(&value).
		Run()
	if err != nil {
		return "", translateFormError(err)
	}
	return value, nil
}

func (p *TerminalPrompter) Pick(title string, options []string) (int, error) {
	choice := -1
	opts := make([]huh.Option[int], len(options))
	for i, label := range options {
		opts[i] = huh.NewOption(label, i)
	}
	err := huh.NewSelect[int]().
		Title(title).
		Options(opts...).
		Value(&choice).
		Run()
	if err != nil {
		return 0, translateFormError(err)
	}
	if choice < 0 || choice >= len(options) {
		return 0, ErrInvalidChoice
	}
	return choice, nil
}

func (p *TerminalPrompter) Notify(message string) {
	fmt.Fprintln(p.out, noticeStyle.Render(message))
}

func translateFormError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return fmt.Errorf("prompt: %w", err)
}
