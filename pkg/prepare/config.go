// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

package prepare

import (
	"io"
	"os"
	"path/filepath"

	"github.com/leafscan/spinachprep/pkg/manifest"
	"github.com/leafscan/spinachprep/pkg/split"
	"github.com/leafscan/spinachprep/pkg/taxonomy"
)

// Config of a dataset preparation run. Use DefaultConfig and change what is needed.
type Config struct {
	// BaseDir is the project root. All other paths are derived from it by DefaultConfig.
	BaseDir string

	// RawDir holds the source datasets, one folder per condition, at any depth.
	RawDir string

	// SplitsDir receives {train,val,test}/{images,labels}.
	SplitsDir string

	// RunsDir and ReportsDir are created for the training and analysis steps that follow.
	RunsDir, ReportsDir string

	// ManifestPath where dataset.yaml is written.
	ManifestPath string

	// Seed of the train/val/test split.
	Seed int64

	// Mapper from source folder names to classes.
	Mapper *taxonomy.Mapper

	// Validate decodes every image before splitting, and skips those that can't be decoded.
	Validate bool

	// Workers is the number of images decoded in parallel by Validate. If < 1, runtime.NumCPU() is used.
	Workers int

	// MaxUnmappedFraction is the largest fraction of scanned images that may be skipped for being in
	// unmapped folders. Above it the run is aborted with ErrTooManyUnmapped before anything is copied.
	// 1.0 never aborts.
	MaxUnmappedFraction float64

	// Reports enables writing the split summary and class distribution chart into ReportsDir.
	Reports bool

	// Out receives the human-readable progress. Progress bars are only shown if ShowProgress is set.
	Out          io.Writer
	ShowProgress bool
}

// DefaultConfig returns the configuration for a project rooted at baseDir:
//
//	<baseDir>/data/raw       input
//	<baseDir>/data/splits    output splits
//	<baseDir>/runs, reports  created empty
//	<baseDir>/dataset.yaml   manifest
func DefaultConfig(baseDir string) *Config {
	return &Config{
		BaseDir:             baseDir,
		RawDir:              filepath.Join(baseDir, "data", "raw"),
		SplitsDir:           filepath.Join(baseDir, "data", "splits"),
		RunsDir:             filepath.Join(baseDir, "runs"),
		ReportsDir:          filepath.Join(baseDir, "reports"),
		ManifestPath:        filepath.Join(baseDir, manifest.FileName),
		Seed:                split.DefaultSeed,
		Mapper:              taxonomy.DefaultMapper(),
		MaxUnmappedFraction: 1.0,
		Reports:             true,
		Out:                 os.Stdout,
		ShowProgress:        true,
	}
}
