// Package console owns ANSI styling for terminal output.
//
// Ownership boundary:
// - style escape sequences
// - tty detection and the no-color switch
package console

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type Style string

const (
	Header    Style = "\033[95m"
	OKBlue    Style = "\033[94m"
	OKGreen   Style = "\033[92m"
	Warning   Style = "\033[93m"
	Fail      Style = "\033[91m"
	Bold      Style = "\033[1m"
	Underline Style = "\033[4m"

	reset = "\033[0m"
)

// Styler renders styled strings, or plain ones when the destination is
// not a terminal or color is switched off.
type Styler struct {
	enabled bool
}

// New builds a Styler for the given output file. noColor forces plain
// output regardless of tty state.
func New(out *os.File, noColor bool) Styler {
	if noColor {
		return Styler{}
	}
	fd := out.Fd()
	return Styler{enabled: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
}

func (s Styler) Enabled() bool { return s.enabled }

// Wrap surrounds text with the given styles and a trailing reset.
func (s Styler) Wrap(text string, styles ...Style) string {
	if !s.enabled || len(styles) == 0 {
		return text
	}
	var b strings.Builder
	for _, st := range styles {
		b.WriteString(string(st))
	}
	b.WriteString(text)
	b.WriteString(reset)
	return b.String()
}

func (s Styler) OK(text string) string   { return s.Wrap(text, OKGreen) }
func (s Styler) Info(text string) string { return s.Wrap(text, OKBlue) }
func (s Styler) Warn(text string) string { return s.Wrap(text, Warning) }
func (s Styler) Err(text string) string  { return s.Wrap(text, Fail, Bold) }
func (s Styler) Head(text string) string { return s.Wrap(text, Header, Bold) }
