// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

// Package fsutil contains utilities for working with the file system.
//
// All functions that touch files take an afero.Fs, so the same code runs on the
// real disk (afero.NewOsFs) and on an in-memory filesystem in tests.
package fsutil

import (
	"io"
	"os"
	"os/user"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// FileExists returns whether the file or directory exists or an error if something went wrong in the filesystem.
func FileExists(fs afero.Fs, path string) (bool, error) {
	_, err := fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, "failed to FileExists(%q)", path)
}

// ReplaceTildeInDir by the user's home directory. Returns dir if it doesn't start with "~".
//
// It returns an error if `dir` has an unknown user or some other filesystem error (e.g: `~unknown/...`)
func ReplaceTildeInDir(dir string) (string, error) {
	if len(dir) == 0 || dir[0] != '~' {
		return dir, nil
	}
	var userName string
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		sepIdx := strings.IndexRune(dir, '/')
		if sepIdx == -1 {
			userName = dir[1:]
		} else {
			userName = dir[1:sepIdx]
		}
	}
	var usr *user.User
	var err error
	if userName == "" {
		usr, err = user.Current()
	} else {
		usr, err = user.Lookup(userName)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to lookup home directory for user in path %q", dir)
	}
	return path.Join(usr.HomeDir, dir[1+len(userName):]), nil
}

// CopyFile copies the contents of src to dst, creating or truncating dst, and carries over
// the modification time of src. It returns the number of bytes copied.
func CopyFile(fs afero.Fs, src, dst string) (n int64, err error) {
	in, err := fs.Open(src)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open %q for copying", src)
	}
	defer func() { _ = in.Close() }()
	info, err := in.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "failed to stat %q", src)
	}

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()|0200)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to create %q", dst)
	}
	n, err = io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return n, errors.Wrapf(err, "failed copying %q to %q", src, dst)
	}
	if err = out.Close(); err != nil {
		return n, errors.Wrapf(err, "failed to close %q", dst)
	}
	if err = fs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return n, errors.Wrapf(err, "failed to set modification time of %q", dst)
	}
	return n, nil
}

// CountFiles returns the number of regular files directly under dir whose name is accepted by match.
// Hidden files (starting with ".") are never counted. A missing dir counts as 0 files.
func CountFiles(fs afero.Fs, dir string, match func(name string) bool) (int, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, errors.Wrapf(err, "failed to list %q", dir)
	}
	count := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if match == nil || match(name) {
			count++
		}
	}
	return count, nil
}
