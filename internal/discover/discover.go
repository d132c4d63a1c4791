// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sidiropulos/dmpsetup/internal/log"
)

// Marker is the file that makes a directory an importable package.
const Marker = "__init__.py"

// Options narrows the discovered set. Patterns are globs over dotted package
// names, so "tests" and "tests.*" together drop a test tree.
type Options struct {
	Include []string
	Exclude []string
}

// FindPackages walks root and returns the dotted names of every package
// directory beneath it, in lexical order. A directory that is not a package
// is not descended into, and directory names containing a dot are skipped
// since they cannot be imported.
func FindPackages(root string, opts Options) ([]string, error) {
	include := opts.Include
	if len(include) == 0 {
		include = []string{"*"}
	}
	for _, p := range append(append([]string{}, include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid package pattern %q", p)
		}
	}

	var packages []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() || path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := strings.ReplaceAll(filepath.ToSlash(rel), "/", ".")

		if strings.Contains(d.Name(), ".") || !isPackage(path) {
			log.Tracef("not a package: %s", rel)
			return filepath.SkipDir
		}

		if matchAny(include, name) && !matchAny(opts.Exclude, name) {
			packages = append(packages, name)
		} else {
			log.Debugf("package filtered: name=%s", name)
		}

		// Nothing beneath name can be kept.
		if slices.Contains(opts.Exclude, name+".*") || slices.Contains(opts.Exclude, name+"*") {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover packages under %s: %w", root, err)
	}

	sort.Strings(packages)
	log.Debugf("packages discovered: root=%s count=%d", root, len(packages))
	return packages, nil
}

// ModuleFiles returns the .py files directly inside each package, as paths
// relative to root with forward slashes, sorted.
func ModuleFiles(root string, packages []string) ([]string, error) {
	var files []string
	for _, pkg := range packages {
		dir := filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(pkg, ".", "/")))
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list package %s: %w", pkg, err)
		}
		for _, e := range entries {
			if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".py") {
				rel, err := filepath.Rel(root, filepath.Join(dir, e.Name()))
				if err != nil {
					return nil, err
				}
				files = append(files, filepath.ToSlash(rel))
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// TopLevel returns the distinct first segments of the dotted package names.
func TopLevel(packages []string) []string {
	seen := map[string]bool{}
	var top []string
	for _, pkg := range packages {
		head, _, _ := strings.Cut(pkg, ".")
		if !seen[head] {
			seen[head] = true
			top = append(top, head)
		}
	}
	sort.Strings(top)
	return top
}

func isPackage(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, Marker))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.WithError(err).Warnf("cannot stat package marker in %s", dir)
		}
		return false
	}
	return !info.IsDir()
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
