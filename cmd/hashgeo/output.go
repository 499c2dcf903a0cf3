package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// printer writes command output.
type printer struct {
	w io.Writer
}

func (p printer) title(format string, args ...any) {
	fmt.Fprintln(p.w, bold(fmt.Sprintf(format, args...)))
}

// field prints an aligned label/value pair.
func (p printer) field(label string, value any) {
	fmt.Fprintf(p.w, "  %s %v\n", cyan(fmt.Sprintf("%-12s", label)), value)
}

func (p printer) success(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", green("✔"), fmt.Sprintf(format, args...))
}

func (p printer) warn(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", yellow("○"), fmt.Sprintf(format, args...))
}

func (p printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, "  %s\n", fmt.Sprintf(format, args...))
}
