// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

package fsutil

import (
	"os/user"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a/b.jpg", []byte("x"), 0644))
	for path, want := range map[string]bool{"/a/b.jpg": true, "/a": true, "/a/c.jpg": false} {
		exists, err := FileExists(fs, path)
		require.NoError(t, err)
		assert.Equal(t, want, exists, path)
	}
}

func TestReplaceTildeInDir(t *testing.T) {
	got, err := ReplaceTildeInDir("data/raw")
	require.NoError(t, err)
	assert.Equal(t, "data/raw", got)

	usr, err := user.Current()
	if err != nil {
		t.Skipf("no current user: %v", err)
	}
	got, err = ReplaceTildeInDir("~/spinach")
	require.NoError(t, err)
	assert.Equal(t, path.Join(usr.HomeDir, "spinach"), got)
}

func TestCopyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/leaf.jpg", []byte("leaf bytes"), 0644))
	modTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, fs.Chtimes("/src/leaf.jpg", modTime, modTime))
	require.NoError(t, fs.MkdirAll("/dst", 0755))

	n, err := CopyFile(fs, "/src/leaf.jpg", "/dst/GOOD_leaf.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(len("leaf bytes")), n)

	contents, err := afero.ReadFile(fs, "/dst/GOOD_leaf.jpg")
	require.NoError(t, err)
	assert.Equal(t, "leaf bytes", string(contents))
	info, err := fs.Stat("/dst/GOOD_leaf.jpg")
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(modTime))

	_, err = CopyFile(fs, "/src/missing.jpg", "/dst/x.jpg")
	assert.Error(t, err)
}

func TestCountFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, name := range []string{"a.txt", "b.txt", "c.jpg", ".hidden.txt", "sub/d.txt"} {
		require.NoError(t, afero.WriteFile(fs, path.Join("/labels", name), nil, 0644))
	}
	n, err := CountFiles(fs, "/labels", func(name string) bool { return strings.HasSuffix(name, ".txt") })
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = CountFiles(fs, "/labels", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = CountFiles(fs, "/missing", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
