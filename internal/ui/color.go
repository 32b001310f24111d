// Package ui provides colored console output.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	// Colors
	Red    = color.New(color.FgRed)
	Green  = color.New(color.FgGreen)
	Yellow = color.New(color.FgYellow)
	Blue   = color.New(color.FgBlue)
	Cyan   = color.New(color.FgCyan)
	Bold   = color.New(color.Bold)
)

// Printer writes styled messages to one writer. Commands build one over
// cmd.OutOrStdout() so their output can be captured.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w. A nil w means color.Output.
func New(w io.Writer) *Printer {
	if w == nil {
		w = color.Output
	}
	return &Printer{w: w}
}

// Success prints a green success message with checkmark.
func (p *Printer) Success(format string, args ...any) {
	Green.Fprintf(p.w, "✓ "+format+"\n", args...)
}

// Error prints a red error message with X.
func (p *Printer) Error(format string, args ...any) {
	Red.Fprintf(p.w, "✗ "+format+"\n", args...)
}

// Warning prints a yellow warning message.
func (p *Printer) Warning(format string, args ...any) {
	Yellow.Fprintf(p.w, "⚠ "+format+"\n", args...)
}

// Info prints a blue info message.
func (p *Printer) Info(format string, args ...any) {
	Blue.Fprintf(p.w, format+"\n", args...)
}

// Header prints a bold header.
func (p *Printer) Header(format string, args ...any) {
	Bold.Fprintf(p.w, format+"\n", args...)
}

// Diagnostic prints a compiler style "file:line: kind: msg" line. The line
// is omitted when zero. The kind is red for errors and yellow otherwise.
func (p *Printer) Diagnostic(file string, line int, kind, msg string, isError bool) {
	if line > 0 {
		Bold.Fprintf(p.w, "%s:%d: ", file, line)
	} else {
		Bold.Fprintf(p.w, "%s: ", file)
	}
	c := Yellow
	if isError {
		c = Red
	}
	c.Fprint(p.w, kind)
	fmt.Fprintf(p.w, ": %s\n", msg)
}

// KeyValue prints a cyan key followed by its value.
func (p *Printer) KeyValue(key, value string) {
	Cyan.Fprint(p.w, key)
	fmt.Fprintf(p.w, " = %s\n", value)
}
