// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

// Package commandline contains convenience UI tools for the command line: stage banners,
// status lines, tables and progress bars.
package commandline

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BannerWidth is the width of the "=" rulers printed around banners.
var BannerWidth = 55

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Banner prints a title between two rulers.
func Banner(w io.Writer, title string) {
	ruler := strings.Repeat("=", BannerWidth)
	_, _ = fmt.Fprintf(w, "%s\n %s\n%s\n", ruler, titleStyle.Render(title), ruler)
}

// Stage prints the banner of a numbered stage, preceded by an empty line.
func Stage(w io.Writer, step int, title string) {
	_, _ = fmt.Fprintln(w)
	Banner(w, fmt.Sprintf("STEP %d: %s", step, title))
}

// Ok prints a success status line.
func Ok(w io.Writer, format string, args ...any) {
	status(w, okStyle.Render("[ok]"), format, args...)
}

// Warn prints a warning status line.
func Warn(w io.Writer, format string, args ...any) {
	status(w, warnStyle.Render("[!!]"), format, args...)
}

// Fail prints a failure status line.
func Fail(w io.Writer, format string, args ...any) {
	status(w, failStyle.Render("[xx]"), format, args...)
}

// Info prints an indented plain line.
func Info(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

func status(w io.Writer, mark, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "  %s %s\n", mark, fmt.Sprintf(format, args...))
}
