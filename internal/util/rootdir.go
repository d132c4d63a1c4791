// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
)

// ParseRootDir resolves a project root argument to an absolute directory. An
// empty argument means the working directory. It returns an error if the fs
// entry does not exist or is not a directory.
func ParseRootDir(rootDir string) (string, error) {
	if rootDir == "" {
		rootDir = "."
	}

	dir, err := filepath.Abs(rootDir)
	if err != nil {
		return "", err
	}

	if r, err := os.Stat(dir); err != nil {
		return "", err
	} else if !r.IsDir() {
		return "", &os.PathError{Op: "rootdir", Path: dir, Err: os.ErrInvalid}
	}

	return dir, nil
}

// ResolveIn joins a possibly relative path onto root. Absolute paths are
// returned cleaned and unchanged otherwise.
func ResolveIn(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
