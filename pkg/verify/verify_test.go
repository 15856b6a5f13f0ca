// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

package verify

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, file := range []string{
		"/splits/train/images/GOOD_1.jpg",
		"/splits/train/images/GOOD_2.jpg",
		"/splits/train/images/README",
		"/splits/train/labels/GOOD_1.txt",
		"/splits/train/labels/GOOD_2.txt",
		"/splits/val/images/HOLE_1.png",
		"/splits/val/labels/HOLE_1.txt",
		"/splits/val/labels/notes.md",
	} {
		require.NoError(t, afero.WriteFile(fs, file, nil, 0644))
	}
	require.NoError(t, fs.MkdirAll("/splits/test/images", 0755))

	report, err := Check(fs, "/splits")
	require.NoError(t, err)
	assert.Equal(t, []SplitCount{
		{Split: "train", Images: 2, Labels: 2},
		{Split: "val", Images: 1, Labels: 1},
		{Split: "test", Images: 0, Labels: 0},
	}, report.Splits)
	assert.False(t, report.Ready())

	require.NoError(t, afero.WriteFile(fs, "/splits/test/images/FSPOT_9.jpg", nil, 0644))
	report, err = Check(fs, "/splits")
	require.NoError(t, err)
	// Labels are missing for test, but only images matter.
	assert.True(t, report.Ready())

	var buf bytes.Buffer
	report.Render(&buf)
	assert.Contains(t, buf.String(), "train")
	assert.Contains(t, buf.String(), "test")
}

func TestEmptyReportNotReady(t *testing.T) {
	assert.False(t, (&Report{}).Ready())
}
