// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"regexp"
	"strings"
)

// Record describes one distributable package.
type Record struct {
	Name                       string   `json:"name" yaml:"name"`
	Version                    string   `json:"version" yaml:"version"`
	Description                string   `json:"description" yaml:"description"`
	LongDescription            string   `json:"long_description" yaml:"long_description"`
	LongDescriptionContentType string   `json:"long_description_content_type" yaml:"long_description_content_type"`
	Classifiers                []string `json:"classifiers" yaml:"classifiers"`
	Keywords                   string   `json:"keywords" yaml:"keywords"`
	Author                     string   `json:"author" yaml:"author"`
	AuthorEmail                string   `json:"author_email" yaml:"author_email"`
	URL                        string   `json:"url" yaml:"url"`
	License                    string   `json:"license" yaml:"license"`
	InstallRequires            []string `json:"install_requires" yaml:"install_requires"`
	Packages                   []string `json:"packages" yaml:"packages"`
	ZipSafe                    bool     `json:"zip_safe" yaml:"zip_safe"`
}

var nameSeparators = regexp.MustCompile(`[-_.]+`)

// NormalizedName is the name as used in archive file names: lower case with
// every run of -, _ and . collapsed to a single underscore.
func (r *Record) NormalizedName() string {
	return nameSeparators.ReplaceAllString(strings.ToLower(r.Name), "_")
}

// DistName is the <name>-<version> stem shared by artifact file names and
// the sdist top-level directory.
func (r *Record) DistName() string {
	return r.NormalizedName() + "-" + r.Version
}
