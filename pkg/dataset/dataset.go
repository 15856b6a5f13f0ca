// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

// Package dataset classifies raw images and writes them, with their labels, into the
// split directory layout expected by YOLO-style detection trainers:
//
//	<splitsDir>/{train,val,test}/images/<CLASS>_<name>.<ext>
//	<splitsDir>/{train,val,test}/labels/<CLASS>_<name>.txt
//
// The raw datasets are classification datasets, so every label is a single box covering the whole image.
package dataset

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/leafscan/spinachprep/internal/workerspool"
	"github.com/leafscan/spinachprep/pkg/scan"
	"github.com/leafscan/spinachprep/pkg/taxonomy"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"k8s.io/klog/v2"
)

// ErrNoValidImages is returned when none of the images could be classified.
var ErrNoValidImages = errors.New("no images could be mapped to a class")

// Pair is a raw image and the class inferred from its source folder.
type Pair struct {
	Path  string
	Class taxonomy.ClassID
}

// Classify maps each image to the class of its source folder. Images in unmapped folders are
// dropped and counted in skipped: that is not an error.
func Classify(images []string, mapper *taxonomy.Mapper) (valid []Pair, skipped int) {
	valid = make([]Pair, 0, len(images))
	for _, imagePath := range images {
		class := mapper.Classify(scan.SourceFolder(imagePath))
		if class == taxonomy.Unmapped {
			skipped++
			continue
		}
		valid = append(valid, Pair{Path: imagePath, Class: class})
	}
	return
}

// FilterDecodable tries to decode every image and drops those that fail, returning them in invalid.
// Decoding is slow for large datasets, so this is optional. Images are decoded by up to workers
// goroutines (runtime.NumCPU() if workers < 1), and the order of pairs is preserved in both results.
func FilterDecodable(fs afero.Fs, pairs []Pair, workers int) (valid []Pair, invalid []Pair) {
	decodeErrs := make([]error, len(pairs))
	workerspool.New(workers).ForEach(len(pairs), func(i int) {
		_, decodeErrs[i] = DecodeImage(fs, pairs[i].Path)
	})
	valid = make([]Pair, 0, len(pairs))
	for i, pair := range pairs {
		if decodeErrs[i] != nil {
			klog.Warningf("skipping unreadable image: %v", decodeErrs[i])
			invalid = append(invalid, pair)
			continue
		}
		valid = append(valid, pair)
	}
	return
}

// DecodeImage reads and decodes the image at imagePath.
func DecodeImage(fs afero.Fs, imagePath string) (image.Image, error) {
	f, err := fs.Open(imagePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open image %q", imagePath)
	}
	defer func() { _ = f.Close() }()
	img, err := imaging.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode image %q", imagePath)
	}
	return img, nil
}

// LabelLine returns the label record for an image of the given class: a box centered in the image
// and covering all of it, in normalized "class cx cy w h" format.
func LabelLine(class taxonomy.ClassID) string {
	return fmt.Sprintf("%d 0.5 0.5 1.0 1.0\n", int(class))
}
