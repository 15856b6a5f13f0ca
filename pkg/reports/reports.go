// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

// Package reports writes summaries of a prepared dataset into the reports directory:
// a CSV with the number of images per class and split, and a bar chart of the same, both as a
// PNG and as an interactive Plotly page.
package reports

import (
	"github.com/leafscan/spinachprep/pkg/dataset"
	"github.com/leafscan/spinachprep/pkg/split"
	"github.com/leafscan/spinachprep/pkg/taxonomy"
)

const (
	SummaryFileName = "split_summary.csv"
	ChartFileName   = "class_distribution.png"
	HTMLFileName    = "class_distribution.html"
)

// Distribution is the number of images per class (columns) for each split (rows).
type Distribution struct {
	Classes []string
	Splits  []string
	Counts  [][]int // Counts[splitIdx][classIdx]
}

// Tally counts the images of each class in each split.
func Tally(splits split.Splits[dataset.Pair]) *Distribution {
	d := &Distribution{
		Classes: taxonomy.Names,
		Splits:  split.Names,
	}
	for _, named := range splits.Named() {
		counts := make([]int, len(d.Classes))
		for _, pair := range named.Items {
			counts[pair.Class]++
		}
		d.Counts = append(d.Counts, counts)
	}
	return d
}

// ClassTotals returns the number of images of each class over all splits.
func (d *Distribution) ClassTotals() []int {
	totals := make([]int, len(d.Classes))
	for _, counts := range d.Counts {
		for classIdx, count := range counts {
			totals[classIdx] += count
		}
	}
	return totals
}
