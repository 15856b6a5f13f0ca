// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

package reports

import (
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// DataFrame returns the distribution with one row per class and one column per split, plus a "total" column.
func (d *Distribution) DataFrame() dataframe.DataFrame {
	columns := make([]series.Series, 0, len(d.Splits)+2)
	columns = append(columns, series.New(d.Classes, series.String, "class"))
	for splitIdx, splitName := range d.Splits {
		columns = append(columns, series.New(d.Counts[splitIdx], series.Int, splitName))
	}
	columns = append(columns, series.New(d.ClassTotals(), series.Int, "total"))
	return dataframe.New(columns...)
}

// WriteSummary writes the distribution as CSV to reportsDir/SummaryFileName.
func WriteSummary(fs afero.Fs, reportsDir string, d *Distribution) error {
	df := d.DataFrame()
	if df.Err != nil {
		return errors.Wrap(df.Err, "failed to build split summary")
	}
	filePath := filepath.Join(reportsDir, SummaryFileName)
	f, err := fs.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", filePath)
	}
	if err = df.WriteCSV(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to write %q", filePath)
	}
	return errors.Wrapf(f.Close(), "failed to close %q", filePath)
}
