// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

// Package scan discovers the raw images of the dataset and reports how their folders map
// to the class taxonomy.
package scan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/leafscan/spinachprep/pkg/support/fsutil"
	"github.com/leafscan/spinachprep/pkg/support/sets"
	"github.com/leafscan/spinachprep/pkg/taxonomy"
	"github.com/leafscan/spinachprep/ui/commandline"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"k8s.io/klog/v2"
)

// ImageExtensions accepted by Images, in lower case. Matching is case-insensitive.
var ImageExtensions = sets.MakeWith(".jpg", ".jpeg", ".png")

// IsImage returns whether the file name has one of the ImageExtensions.
func IsImage(name string) bool {
	return ImageExtensions.Has(strings.ToLower(filepath.Ext(name)))
}

// Images walks rawDir recursively and returns the paths of all image files found, sorted.
//
// A missing rawDir is not an error: it yields no images, and the caller decides what to do.
func Images(fs afero.Fs, rawDir string) ([]string, error) {
	exists, err := fsutil.FileExists(fs, rawDir)
	if err != nil {
		return nil, err
	}
	if !exists {
		klog.Warningf("raw data directory %q does not exist", rawDir)
		return nil, nil
	}

	var images []string
	err = afero.Walk(fs, rawDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable entries are skipped, the rest of the tree is still scanned.
			klog.Warningf("skipping %q: %v", path, err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !IsImage(info.Name()) {
			return nil
		}
		images = append(images, path)
		return nil
	})
	if err != nil && !errors.Is(err, filepath.SkipDir) {
		return nil, errors.Wrapf(err, "failed scanning %q", rawDir)
	}
	sort.Strings(images)
	klog.V(1).Infof("found %d images under %q", len(images), rawDir)
	return images, nil
}

// SourceFolder returns the name of the immediate parent folder of an image, which is what gets classified.
func SourceFolder(imagePath string) string {
	return filepath.Base(filepath.Dir(imagePath))
}

// FolderSummary is the number of images found directly in folders with the same name, and the class
// the folder name maps to.
type FolderSummary struct {
	Folder string
	Count  int
	Class  taxonomy.ClassID
}

// Mapping describes the class of the folder, as in "[2] GOOD", or that it is skipped.
func (f FolderSummary) Mapping() string {
	if f.Class == taxonomy.Unmapped {
		return "SKIPPED (unmapped)"
	}
	return fmt.Sprintf("[%d] %s", int(f.Class), f.Class)
}

// Summarize groups the image paths by their source folder name, sorted by folder name.
// Folders with the same name in different places are counted together.
func Summarize(images []string, mapper *taxonomy.Mapper) []FolderSummary {
	counts := make(map[string]int)
	folders := sets.Make[string]()
	for _, imagePath := range images {
		folder := SourceFolder(imagePath)
		folders.Insert(folder)
		counts[folder]++
	}
	summaries := make([]FolderSummary, 0, len(folders))
	for _, folder := range sets.Sorted(folders) {
		summaries = append(summaries, FolderSummary{
			Folder: folder,
			Count:  counts[folder],
			Class:  mapper.Classify(folder),
		})
	}
	return summaries
}

// Report prints the folder summaries as a table.
func Report(w io.Writer, summaries []FolderSummary) {
	table := commandline.NewTable([]string{"Source folder", "Count", "Maps to"}, 1)
	for _, summary := range summaries {
		table.Row(summary.Folder, humanize.Comma(int64(summary.Count)), summary.Mapping())
	}
	_, _ = fmt.Fprintln(w, table.Render())
}
