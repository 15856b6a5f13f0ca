// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

// Package manifest writes and reads the dataset.yaml file that describes the split layout and
// the class names to the detection trainer.
package manifest

import (
	"bytes"
	"fmt"
	"io"
	"path"

	"github.com/leafscan/spinachprep/pkg/dataset"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	// FileName of the manifest, written at the project root.
	FileName = "dataset.yaml"

	// Title is written as a comment in the first line of the manifest.
	Title = "Spinach Defect Detection"
)

// Manifest is the content of dataset.yaml. Split paths are relative to Path.
type Manifest struct {
	Path       string         `yaml:"path"`
	Train      string         `yaml:"train"`
	Val        string         `yaml:"val"`
	Test       string         `yaml:"test"`
	NumClasses int            `yaml:"nc"`
	Names      map[int]string `yaml:"names"`
}

// New returns the manifest for a dataset split under splitsDir, with the given class names
// indexed by class id.
func New(splitsDir string, classNames []string) *Manifest {
	names := make(map[int]string, len(classNames))
	for ii, name := range classNames {
		names[ii] = name
	}
	return &Manifest{
		Path:       splitsDir,
		Train:      path.Join("train", dataset.ImagesSubdir),
		Val:        path.Join("val", dataset.ImagesSubdir),
		Test:       path.Join("test", dataset.ImagesSubdir),
		NumClasses: len(classNames),
		Names:      names,
	}
}

// ClassNames returns the class names ordered by class id.
// It fails if the ids are not exactly 0 to NumClasses-1.
func (m *Manifest) ClassNames() ([]string, error) {
	if len(m.Names) != m.NumClasses {
		return nil, errors.Errorf("manifest declares nc=%d but has %d names", m.NumClasses, len(m.Names))
	}
	names := make([]string, m.NumClasses)
	for ii := range names {
		name, found := m.Names[ii]
		if !found {
			return nil, errors.Errorf("manifest has no name for class id %d", ii)
		}
		names[ii] = name
	}
	return names, nil
}

// Encode writes the manifest as YAML, preceded by the Title comment.
func (m *Manifest) Encode(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# %s\n", Title); err != nil {
		return errors.Wrap(err, "failed to write manifest")
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return errors.Wrap(err, "failed to encode manifest")
	}
	return errors.Wrap(enc.Close(), "failed to encode manifest")
}

// Write saves the manifest to filePath.
func Write(fs afero.Fs, filePath string, m *Manifest) error {
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		return err
	}
	if err := afero.WriteFile(fs, filePath, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "failed to write manifest %q", filePath)
	}
	return nil
}

// Load reads the manifest at filePath.
func Load(fs afero.Fs, filePath string) (*Manifest, error) {
	contents, err := afero.ReadFile(fs, filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %q", filePath)
	}
	m := &Manifest{}
	if err = yaml.Unmarshal(contents, m); err != nil {
		return nil, errors.Wrapf(err, "failed to parse manifest %q", filePath)
	}
	return m, nil
}
