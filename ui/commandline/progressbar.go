// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// ProgressbarStyle to use. Defaults to the ASCII version.
// Consider "progressbar.ThemeUnicode" for a prettier version.
// But it requires some of the graphical symbols to be supported.
var ProgressbarStyle = progressbar.ThemeASCII

// NewProgressBar returns a progress bar over numItems items, written to w.
// The unit is used in the items-per-second display, e.g. "images".
func NewProgressBar(w io.Writer, numItems int, description, unit string) *progressbar.ProgressBar {
	return progressbar.NewOptions(numItems,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString(unit),
		progressbar.OptionSetTheme(ProgressbarStyle),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(w, "\n") }),
	)
}
