package errz

import (
	"errors"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders errors for display in a terminal.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

// Colors used for error formatting
var (
	colorHeader  = color.New(color.FgRed, color.Bold)
	colorLabel   = color.New(color.FgCyan)
	colorSnippet = color.New(color.FgWhite)
	colorCaret   = color.New(color.FgHiRed, color.Bold)
	colorHint    = color.New(color.FgHiYellow)
)

// Format renders err. Compile errors include the source snippet and caret;
// runtime errors include their kind and instruction offset.
func (f *Formatter) Format(err error) string {
	var cerr *CompileError
	if errors.As(err, &cerr) {
		return f.formatCompile(cerr)
	}
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return f.paint(colorHeader, rerr.FriendlyErrorMessage())
	}
	return f.paint(colorHeader, err.Error())
}

func (f *Formatter) formatCompile(e *CompileError) string {
	var b strings.Builder
	indent := strings.Repeat(" ", snippetIndent)
	b.WriteString(f.paint(colorHeader, "Error: "+e.Message))
	b.WriteString("\n")
	b.WriteString(f.paint(colorLabel, "Column: "))
	b.WriteString(strconv.Itoa(e.Column))
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString(f.paint(colorSnippet, e.Snippet))
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString(f.paint(colorCaret, e.Caret))
	if hint := e.Hint(); hint != "" {
		b.WriteString("\n")
		b.WriteString(f.paint(colorHint, hint))
	}
	return b.String()
}

func (f *Formatter) paint(c *color.Color, s string) string {
	if !f.UseColor || color.NoColor {
		return s
	}
	return c.Sprint(s)
}
