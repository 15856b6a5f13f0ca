// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

// Package prepare runs the whole dataset preparation, one stage after the other:
//
//  1. Scan the raw images and report how their folders map to classes.
//  2. Create the output folder structure.
//  3. Classify, split 70/15/15, copy the images and write their labels.
//  4. Write the dataset.yaml manifest.
//  5. Verify that every split has images.
//
// Each stage either succeeds or aborts the run. Nothing is retried or rolled back, so a failed run
// may leave copied files behind, and a new run over existing output adds to it: clear data/splits
// first.
package prepare

import (
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/leafscan/spinachprep/pkg/dataset"
	"github.com/leafscan/spinachprep/pkg/manifest"
	"github.com/leafscan/spinachprep/pkg/reports"
	"github.com/leafscan/spinachprep/pkg/scan"
	"github.com/leafscan/spinachprep/pkg/split"
	"github.com/leafscan/spinachprep/pkg/taxonomy"
	"github.com/leafscan/spinachprep/pkg/verify"
	"github.com/leafscan/spinachprep/ui/commandline"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"k8s.io/klog/v2"
)

var (
	// ErrNoImages is returned when the scan finds no images. Nothing is written in that case.
	ErrNoImages = errors.New("no images found")

	// ErrTooManyUnmapped is returned when the fraction of images in unmapped folders exceeds
	// Config.MaxUnmappedFraction.
	ErrTooManyUnmapped = errors.New("too many images in unmapped folders")

	// ErrNotReady is returned when the verification finds an empty split.
	ErrNotReady = errors.New("dataset not ready: some splits have no images")
)

// Result of a run. Fields are filled as the stages progress, so on error it holds what was
// done until then.
type Result struct {
	Scanned int
	Folders []scan.FolderSummary

	Skipped int // Images in unmapped folders.
	Invalid int // Images that failed to decode, only if Config.Validate.

	Splits      split.Splits[dataset.Pair]
	Records     map[string][]dataset.Record
	BytesCopied int64

	Manifest     *manifest.Manifest
	Verification *verify.Report
	Elapsed      time.Duration
}

// run holds the state of one Run call.
type run struct {
	fs     afero.Fs
	cfg    *Config
	out    io.Writer
	result *Result
	images []string
}

// Run prepares the dataset as configured by cfg, on the filesystem fs.
func Run(fs afero.Fs, cfg *Config) (*Result, error) {
	r := &run{fs: fs, cfg: cfg, out: cfg.Out, result: &Result{}}
	if r.out == nil {
		r.out = io.Discard
	}
	if cfg.Mapper == nil {
		cfg.Mapper = taxonomy.DefaultMapper()
	}
	if err := cfg.Mapper.Validate(); err != nil {
		return r.result, errors.WithMessage(err, "invalid class mapping")
	}
	start := time.Now()
	defer func() { r.result.Elapsed = time.Since(start) }()

	_, _ = io.WriteString(r.out, "\n")
	commandline.Banner(r.out, "SPINACH DEFECT DETECTION - Dataset Preparation")
	commandline.Info(r.out, "Running from: %s", cfg.BaseDir)
	klog.Infof("preparing dataset: raw=%q splits=%q seed=%d", cfg.RawDir, cfg.SplitsDir, cfg.Seed)

	stages := []func() error{r.scanRaw, r.createFolders, r.convertAndSplit, r.writeManifest, r.verifySplits}
	for _, stage := range stages {
		if err := stage(); err != nil {
			_, _ = io.WriteString(r.out, "\n")
			return r.result, err
		}
	}
	commandline.Info(r.out, "Done in %s.", commandline.FormatDuration(time.Since(start)))
	_, _ = io.WriteString(r.out, "\n")
	return r.result, nil
}

func (r *run) scanRaw() error {
	commandline.Stage(r.out, 1, "Scanning raw data")
	images, err := scan.Images(r.fs, r.cfg.RawDir)
	if err != nil {
		return err
	}
	r.images = images
	r.result.Scanned = len(images)
	if len(images) == 0 {
		commandline.Fail(r.out, "No images found under %s", r.cfg.RawDir)
		commandline.Info(r.out, "No images found. Check your data/raw/ folder.")
		return errors.Wrapf(ErrNoImages, "under %q", r.cfg.RawDir)
	}
	commandline.Ok(r.out, "Found %s images total", humanize.Comma(int64(len(images))))
	r.result.Folders = scan.Summarize(images, r.cfg.Mapper)
	scan.Report(r.out, r.result.Folders)
	return nil
}

func (r *run) createFolders() error {
	commandline.Stage(r.out, 2, "Creating folder structure")
	if err := dataset.CreateLayout(r.fs, r.cfg.SplitsDir); err != nil {
		return err
	}
	for _, dir := range []string{r.cfg.RunsDir, r.cfg.ReportsDir} {
		if err := r.fs.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create %q", dir)
		}
	}
	commandline.Ok(r.out, "Base    : %s", r.cfg.BaseDir)
	commandline.Ok(r.out, "Raw     : %s", r.cfg.RawDir)
	commandline.Ok(r.out, "Splits  : %s", r.cfg.SplitsDir)
	return nil
}

func (r *run) convertAndSplit() error {
	commandline.Stage(r.out, 3, "Converting + Splitting 70/15/15")
	valid, skipped := dataset.Classify(r.images, r.cfg.Mapper)
	r.result.Skipped = skipped
	if skipped > 0 {
		commandline.Warn(r.out, "Skipped %s images (unmapped folders)", humanize.Comma(int64(skipped)))
		for _, folder := range r.result.Folders {
			if folder.Class == taxonomy.Unmapped {
				klog.Warningf("folder %q (%d images) does not map to any class, its images are skipped",
					folder.Folder, folder.Count)
			}
		}
		fraction := float64(skipped) / float64(len(r.images))
		if fraction > r.cfg.MaxUnmappedFraction {
			commandline.Fail(r.out, "%.1f%% of the images are unmapped, the limit is %.1f%%",
				100*fraction, 100*r.cfg.MaxUnmappedFraction)
			return errors.Wrapf(ErrTooManyUnmapped, "%d of %d images", skipped, len(r.images))
		}
	}
	if r.cfg.Validate && len(valid) > 0 {
		var invalid []dataset.Pair
		valid, invalid = dataset.FilterDecodable(r.fs, valid, r.cfg.Workers)
		r.result.Invalid = len(invalid)
		if len(invalid) > 0 {
			commandline.Warn(r.out, "Skipped %s images (unreadable)", humanize.Comma(int64(len(invalid))))
		}
	}
	commandline.Ok(r.out, "Using %s images", humanize.Comma(int64(len(valid))))
	if len(valid) == 0 {
		commandline.Fail(r.out, "Nothing to process.")
		return dataset.ErrNoValidImages
	}

	splits := split.Partition(valid, r.cfg.Seed)
	r.result.Splits = splits
	commandline.Info(r.out, "Train : %s", humanize.Comma(int64(len(splits.Train))))
	commandline.Info(r.out, "Val   : %s", humanize.Comma(int64(len(splits.Val))))
	commandline.Info(r.out, "Test  : %s", humanize.Comma(int64(len(splits.Test))))

	writer := dataset.NewWriter(r.fs, r.cfg.SplitsDir)
	if r.cfg.ShowProgress {
		writer.WithProgress(r.out)
	}
	records, err := writer.CopySplits(splits)
	r.result.Records = records
	r.result.BytesCopied = writer.BytesCopied()
	if err != nil {
		return err
	}
	commandline.Ok(r.out, "Split complete! %s images (%s) copied",
		humanize.Comma(int64(writer.NumCopied())), humanize.Bytes(uint64(writer.BytesCopied())))

	if r.cfg.Reports {
		r.writeReports(splits)
	}
	return nil
}

// writeReports is best effort: failures are logged and the run continues.
func (r *run) writeReports(splits split.Splits[dataset.Pair]) {
	distribution := reports.Tally(splits)
	if err := reports.WriteSummary(r.fs, r.cfg.ReportsDir, distribution); err != nil {
		klog.Errorf("split summary not written: %+v", err)
	}
	if err := reports.WriteChart(r.fs, r.cfg.ReportsDir, distribution); err != nil {
		klog.Errorf("class distribution chart not written: %+v", err)
	}
	if err := reports.WriteHTML(r.fs, r.cfg.ReportsDir, distribution); err != nil {
		klog.Errorf("class distribution page not written: %+v", err)
	}
	commandline.Ok(r.out, "Reports : %s", r.cfg.ReportsDir)
}

func (r *run) writeManifest() error {
	commandline.Stage(r.out, 4, "Generating "+manifest.FileName)
	m := manifest.New(r.cfg.SplitsDir, taxonomy.Names)
	if err := manifest.Write(r.fs, r.cfg.ManifestPath, m); err != nil {
		return err
	}
	r.result.Manifest = m
	commandline.Ok(r.out, "Saved: %s", r.cfg.ManifestPath)
	return nil
}

func (r *run) verifySplits() error {
	commandline.Stage(r.out, 5, "Verification")
	report, err := verify.Check(r.fs, r.cfg.SplitsDir)
	if err != nil {
		return err
	}
	r.result.Verification = report
	report.Render(r.out)
	if !report.Ready() {
		commandline.Warn(r.out, "Check messages above.")
		return ErrNotReady
	}
	commandline.Ok(r.out, "Ready! dataset.yaml : %s", r.cfg.ManifestPath)
	return nil
}
