// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

// Package verify is the final sanity check on the written splits: every split must have images.
//
// It only counts files. Image and label counts are reported side by side, but a mismatch does not
// make a split fail, and the files themselves are not inspected.
package verify

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/leafscan/spinachprep/pkg/dataset"
	"github.com/leafscan/spinachprep/pkg/split"
	"github.com/leafscan/spinachprep/pkg/support/fsutil"
	"github.com/leafscan/spinachprep/ui/commandline"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// SplitCount is the number of files found in one split.
type SplitCount struct {
	Split          string
	Images, Labels int
}

// OK returns whether the split has at least one image.
func (c SplitCount) OK() bool { return c.Images > 0 }

// Report of the verification of all splits.
type Report struct {
	Splits []SplitCount
}

// Ready returns whether every split is OK.
func (r *Report) Ready() bool {
	for _, c := range r.Splits {
		if !c.OK() {
			return false
		}
	}
	return len(r.Splits) > 0
}

// hasExtension accepts "*.*" style names.
func hasExtension(name string) bool { return strings.Contains(name, ".") }

func isLabel(name string) bool { return strings.HasSuffix(name, dataset.LabelExt) }

// Check counts the images and labels of every split under splitsDir. Missing directories count as empty.
func Check(fs afero.Fs, splitsDir string) (*Report, error) {
	report := &Report{Splits: make([]SplitCount, 0, len(split.Names))}
	for _, splitName := range split.Names {
		images, err := fsutil.CountFiles(fs, dataset.ImagesDir(splitsDir, splitName), hasExtension)
		if err != nil {
			return nil, errors.WithMessagef(err, "verifying %s split", splitName)
		}
		labels, err := fsutil.CountFiles(fs, dataset.LabelsDir(splitsDir, splitName), isLabel)
		if err != nil {
			return nil, errors.WithMessagef(err, "verifying %s split", splitName)
		}
		report.Splits = append(report.Splits, SplitCount{Split: splitName, Images: images, Labels: labels})
	}
	return report, nil
}

// Render prints the report as a table.
func (r *Report) Render(w io.Writer) {
	table := commandline.NewTable([]string{"", "Split", "Images", "Labels"}, 2, 3)
	for _, c := range r.Splits {
		status := "ok"
		if !c.OK() {
			status = "EMPTY"
		}
		table.Row(status, c.Split, humanize.Comma(int64(c.Images)), humanize.Comma(int64(c.Labels)))
	}
	_, _ = fmt.Fprintln(w, table.Render())
}
