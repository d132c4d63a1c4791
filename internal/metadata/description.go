// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadLongDescription returns the contents of path with leading and trailing
// whitespace removed. The text in between is returned as is.
func LoadLongDescription(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read long description: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// ContentType guesses the long description content type from the file
// extension.
func ContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return "text/markdown"
	case ".rst":
		return "text/x-rst"
	default:
		return "text/plain"
	}
}
