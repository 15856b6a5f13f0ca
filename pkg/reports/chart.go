// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

package reports

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Chart returns a grouped bar chart of the distribution: one group per class, one bar per split.
func (d *Distribution) Chart() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Images per class"
	p.Y.Label.Text = "images"
	p.Legend.Top = true

	barWidth := vg.Points(10)
	for splitIdx, splitName := range d.Splits {
		values := make(plotter.Values, len(d.Classes))
		for classIdx, count := range d.Counts[splitIdx] {
			values[classIdx] = float64(count)
		}
		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to chart %s split", splitName)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(splitIdx)
		// Center the group of bars on the class tick.
		bars.Offset = barWidth * vg.Length(2*splitIdx-len(d.Splits)+1) / 2
		p.Add(bars)
		p.Legend.Add(splitName, bars)
	}
	p.NominalX(d.Classes...)
	return p, nil
}

// WriteChart renders the distribution chart as PNG to reportsDir/ChartFileName.
func WriteChart(fs afero.Fs, reportsDir string, d *Distribution) error {
	p, err := d.Chart()
	if err != nil {
		return err
	}
	writerTo, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return errors.Wrap(err, "failed to render class distribution chart")
	}
	filePath := filepath.Join(reportsDir, ChartFileName)
	f, err := fs.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", filePath)
	}
	if _, err = writerTo.WriteTo(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to write %q", filePath)
	}
	return errors.Wrapf(f.Close(), "failed to close %q", filePath)
}
