// Package ui renders diagnostics and runtime stack traces for cmd/ember,
// and hosts the Bubble Tea models used by the interactive subcommands
// (gc-monitor). The plain, non-color renderer matches spec.md §7's
// message format byte-for-byte so piped output and tests stay stable;
// color is additive decoration layered on top with github.com/fatih/color.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"golang.org/x/text/width"

	"ember/internal/diag"
)

// Mode selects whether output is colorized, mirroring the teacher
// toolchain's --color auto|on|off flag.
type Mode string

const (
	Auto Mode = "auto"
	On   Mode = "on"
	Off  Mode = "off"
)

// ParseMode validates a --color flag value.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", Auto:
		return Auto, nil
	case On:
		return On, nil
	case Off:
		return Off, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (expected auto|on|off)", s)
	}
}

// shouldColor resolves Auto against whether w looks like a terminal.
func shouldColor(mode Mode, w io.Writer) bool {
	switch mode {
	case On:
		return true
	case Off:
		return false
	default:
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	frameColor   = color.New(color.FgCyan)
)

// RenderBag writes every diagnostic in bag to w, one per line, in the
// exact "[line N] Severity at ...: message" shape diag.Diagnostic.String
// produces. With color enabled, the severity word is styled.
func RenderBag(w io.Writer, bag *diag.Bag, mode Mode) {
	colored := shouldColor(mode, w)
	for _, d := range bag.Items() {
		if !colored {
			fmt.Fprintln(w, d.String())
			continue
		}
		line := d.String()
		sev := d.Severity.String()
		styled := line
		if d.Severity == diag.SevError {
			styled = errorColor.Sprint(sev)
		} else {
			styled = warningColor.Sprint(sev)
		}
		fmt.Fprintln(w, replaceFirst(line, sev, styled))
	}
}

// RenderStackTrace writes a runtime error's message followed by its
// "[line N] in <fn>" frames, matching (*vm.RuntimeError).Error()'s text
// exactly in non-color mode. err is typically a *vm.RuntimeError, but any
// error with that text shape renders identically since this only ever
// touches err.Error()'s string form.
func RenderStackTrace(w io.Writer, err error, mode Mode) {
	colored := shouldColor(mode, w)
	text := err.Error()
	if !colored {
		fmt.Fprintln(w, text)
		return
	}
	lines := splitLines(text)
	for i, l := range lines {
		if i == 0 {
			fmt.Fprintln(w, errorColor.Sprint(l))
			continue
		}
		fmt.Fprintln(w, frameColor.Sprint(l))
	}
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// replaceFirst substitutes the first occurrence of old with new in s.
func replaceFirst(s, old, new string) string {
	idx := indexOf(s, old)
	if idx < 0 {
		return s
	}
	return s[:idx] + new + s[idx+len(old):]
}

func indexOf(s, sub string) int {
	if len(sub) == 0 || len(sub) > len(s) {
		return -1
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// padLabel right-pads label to cols columns, accounting for double-width
// runes the way the teacher's progress table does. Fullwidth/halfwidth
// forms (e.g. identifiers quoted from CJK source) are folded to their
// canonical narrow/wide form with golang.org/x/text/width before
// go-runewidth measures the result, so the column math agrees with how
// the terminal actually renders the glyph rather than with the code
// point's nominal East Asian Width property.
func padLabel(label string, cols int) string {
	folded := width.Fold.String(label)
	w := runewidth.StringWidth(folded)
	if w >= cols {
		return label
	}
	return label + strings.Repeat(" ", cols-w)
}
