// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/leafscan/spinachprep/pkg/scan"
	"github.com/leafscan/spinachprep/pkg/split"
	"github.com/leafscan/spinachprep/pkg/support/fsutil"
	"github.com/leafscan/spinachprep/pkg/support/sets"
	"github.com/leafscan/spinachprep/ui/commandline"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"k8s.io/klog/v2"
)

const (
	ImagesSubdir = "images"
	LabelsSubdir = "labels"
	LabelExt     = ".txt"
)

// ImagesDir returns the images directory of the split.
func ImagesDir(splitsDir, splitName string) string {
	return filepath.Join(splitsDir, splitName, ImagesSubdir)
}

// LabelsDir returns the labels directory of the split.
func LabelsDir(splitsDir, splitName string) string {
	return filepath.Join(splitsDir, splitName, LabelsSubdir)
}

// CreateLayout creates the images and labels directories of every split under splitsDir.
// Existing directories are left as they are.
func CreateLayout(fs afero.Fs, splitsDir string) error {
	for _, splitName := range split.Names {
		for _, dir := range []string{ImagesDir(splitsDir, splitName), LabelsDir(splitsDir, splitName)} {
			if err := fs.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, "failed to create %q", dir)
			}
		}
	}
	return nil
}

// Record is one image written into a split.
type Record struct {
	Split  string
	Source string
	Image  string // Path of the copied image.
	Label  string // Path of the label file.
	Pair
}

// Writer copies classified images into the split layout and writes their labels.
//
// Output file names are "<CLASS>_<name>": if that is already taken (ignoring case) during the lifetime
// of the Writer, in any split, "<CLASS>_<folder>_<name>" is used, and if that is also taken a counter
// is appended before the extension.
// So files are never overwritten by the same Writer. Files left over from previous runs are not
// considered.
type Writer struct {
	fs        afero.Fs
	splitsDir string
	used      sets.Set[string]
	progress  io.Writer

	numCopied   int
	bytesCopied int64
}

// NewWriter returns a Writer into splitsDir. The layout is expected to exist, see CreateLayout.
func NewWriter(fs afero.Fs, splitsDir string) *Writer {
	return &Writer{
		fs:        fs,
		splitsDir: splitsDir,
		used:      sets.Make[string](),
	}
}

// WithProgress makes CopySplit display a progress bar on w. Use nil to disable it.
//
// Returns itself, to allow chain of method calls.
func (w *Writer) WithProgress(progress io.Writer) *Writer {
	w.progress = progress
	return w
}

// NumCopied returns the number of images copied so far.
func (w *Writer) NumCopied() int { return w.numCopied }

// BytesCopied returns the number of image bytes copied so far.
func (w *Writer) BytesCopied() int64 { return w.bytesCopied }

// UniqueName returns the output file name for the image, and reserves it.
//
// Uniqueness is on the name without extension, since that is what the label file is named
// after: "a.jpg" and "a.png" from the same folder must not share a label. It is also
// case-insensitive, so names don't collide on case-insensitive filesystems (macOS, Windows).
// The returned name keeps the original case.
func (w *Writer) UniqueName(pair Pair) string {
	className := pair.Class.String()
	baseName := filepath.Base(pair.Path)
	ext := filepath.Ext(baseName)
	stem := fmt.Sprintf("%s_%s", className, strings.TrimSuffix(baseName, ext))
	if w.claim(stem) {
		return stem + ext
	}
	stem = fmt.Sprintf("%s_%s_%s", className, scan.SourceFolder(pair.Path), strings.TrimSuffix(baseName, ext))
	if w.claim(stem) {
		return stem + ext
	}
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d", stem, counter)
		if w.claim(candidate) {
			return candidate + ext
		}
	}
}

func (w *Writer) claim(stem string) bool {
	return w.used.Claim(strings.ToLower(stem))
}

// CopySplit copies the images of pairs into the split, each with its label file.
// It stops at the first I/O error.
func (w *Writer) CopySplit(splitName string, pairs []Pair) ([]Record, error) {
	imagesDir := ImagesDir(w.splitsDir, splitName)
	labelsDir := LabelsDir(w.splitsDir, splitName)
	var bar *progressbar.ProgressBar
	if w.progress != nil && len(pairs) > 0 {
		bar = commandline.NewProgressBar(w.progress, len(pairs), fmt.Sprintf("%-6s", splitName), "images")
	}

	records := make([]Record, 0, len(pairs))
	for _, pair := range pairs {
		name := w.UniqueName(pair)
		record := Record{
			Split:  splitName,
			Source: pair.Path,
			Image:  filepath.Join(imagesDir, name),
			Label:  filepath.Join(labelsDir, strings.TrimSuffix(name, filepath.Ext(name))+LabelExt),
			Pair:   pair,
		}
		n, err := fsutil.CopyFile(w.fs, record.Source, record.Image)
		if err != nil {
			return records, err
		}
		if err = afero.WriteFile(w.fs, record.Label, []byte(LabelLine(pair.Class)), 0644); err != nil {
			return records, errors.Wrapf(err, "failed to write label %q", record.Label)
		}
		klog.V(1).Infof("%s: %s -> %s", splitName, record.Source, record.Image)
		w.numCopied++
		w.bytesCopied += n
		records = append(records, record)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return records, nil
}

// CopySplits copies all three splits, in the order train, val, test.
func (w *Writer) CopySplits(splits split.Splits[Pair]) (map[string][]Record, error) {
	all := make(map[string][]Record, len(split.Names))
	for _, named := range splits.Named() {
		records, err := w.CopySplit(named.Name, named.Items)
		all[named.Name] = records
		if err != nil {
			return all, errors.WithMessagef(err, "copying %s split", named.Name)
		}
	}
	return all, nil
}
