// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

// spinachprep prepares the spinach defect detection dataset: it maps the raw image folders to classes,
// splits them 70/15/15 into train/val/test with a label per image, and writes the dataset.yaml manifest.
//
// Run it from the project root, or point -base to it:
//
//	spinachprep -base=~/spinach -validate
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/must"
	"github.com/leafscan/spinachprep/pkg/prepare"
	"github.com/leafscan/spinachprep/pkg/split"
	"github.com/leafscan/spinachprep/pkg/support/fsutil"
	"github.com/leafscan/spinachprep/pkg/taxonomy"
	"github.com/muesli/termenv"
	"github.com/spf13/afero"
	"k8s.io/klog/v2"
)

var (
	flagBase  = flag.String("base", ".", "Project root: images are read from <base>/data/raw and splits written to <base>/data/splits.")
	flagSeed  = flag.Int64("seed", split.DefaultSeed, "Seed of the train/val/test split. The same seed and input give the same split.")
	flagRules = flag.String("rules", "", "YAML file with folder name to class rules. "+
		"If empty the built-in rules are used. Set \"extend: true\" in the file to try the built-in rules after it.")
	flagValidate    = flag.Bool("validate", false, "Decode every image before splitting, and skip those that fail.")
	flagWorkers     = flag.Int("workers", 0, "Number of images decoded in parallel by -validate. 0 uses the number of CPUs.")
	flagMaxUnmapped = flag.Float64("max_unmapped", 1.0,
		"Largest fraction of images that can be in unmapped folders before aborting. 1.0 never aborts.")
	flagReports  = flag.Bool("reports", true, "Write the split summary CSV and class distribution chart to <base>/reports.")
	flagProgress = flag.Bool("progress", true, "Show progress bars while copying.")
	flagNoColor  = flag.Bool("no_color", false, "Disable colors and styles in the output.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()
	if flag.NArg() > 0 {
		klog.Errorf("Unexpected arguments %q. See 'spinachprep -help'.", flag.Args())
		exit(1)
	}
	if *flagNoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	baseDir := must.M1(filepath.Abs(must.M1(fsutil.ReplaceTildeInDir(*flagBase))))
	fs := afero.NewOsFs()
	cfg := prepare.DefaultConfig(baseDir)
	cfg.Seed = *flagSeed
	cfg.Validate = *flagValidate
	cfg.Workers = *flagWorkers
	cfg.MaxUnmappedFraction = *flagMaxUnmapped
	cfg.Reports = *flagReports
	cfg.ShowProgress = *flagProgress
	if *flagRules != "" {
		rulesPath := must.M1(fsutil.ReplaceTildeInDir(*flagRules))
		mapper, err := taxonomy.LoadRules(fs, rulesPath)
		if err != nil {
			klog.Errorf("%+v", err)
			exit(1)
		}
		cfg.Mapper = mapper
	}

	result, err := prepare.Run(fs, cfg)
	if err != nil {
		klog.Errorf("Dataset preparation failed: %v", err)
		klog.V(1).Infof("%+v", err)
		exit(1)
	}
	klog.Infof("prepared %d images in %s", result.Splits.Len(), result.Elapsed)
}

// exit flushes the logs before exiting, since os.Exit skips deferred calls.
func exit(code int) {
	klog.Flush()
	os.Exit(code)
}
