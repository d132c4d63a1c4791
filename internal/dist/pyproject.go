// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package dist

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/sidiropulos/dmpsetup/internal/metadata"
)

// Build backend named in the sdist's pyproject.toml. Version 61 is the
// first setuptools release that reads the [project] table.
const (
	buildBackend  = "setuptools.build_meta"
	buildRequires = "setuptools>=61"
)

type pyproject struct {
	BuildSystem buildSystem `toml:"build-system"`
	Project     project     `toml:"project"`
	Tool        tool        `toml:"tool"`
}

type buildSystem struct {
	Requires     []string `toml:"requires"`
	BuildBackend string   `toml:"build-backend"`
}

type project struct {
	Name         string            `toml:"name"`
	Version      string            `toml:"version"`
	Description  string            `toml:"description,omitempty"`
	Keywords     []string          `toml:"keywords,omitempty"`
	Classifiers  []string          `toml:"classifiers,omitempty"`
	Dependencies []string          `toml:"dependencies"`
	Readme       *readme           `toml:"readme,omitempty"`
	License      *license          `toml:"license,omitempty"`
	Authors      []author          `toml:"authors,omitempty"`
	URLs         map[string]string `toml:"urls,omitempty"`
}

type readme struct {
	Text        string `toml:"text"`
	ContentType string `toml:"content-type"`
}

type license struct {
	Text string `toml:"text"`
}

type author struct {
	Name  string `toml:"name,omitempty"`
	Email string `toml:"email,omitempty"`
}

type tool struct {
	Setuptools setuptools `toml:"setuptools"`
}

type setuptools struct {
	Packages []string `toml:"packages"`
	ZipSafe  bool     `toml:"zip-safe"`
}

// pyprojectTOML renders a pyproject.toml that lets pip build the sdist with
// setuptools. All metadata is static and taken from rec.
func pyprojectTOML(rec *metadata.Record) ([]byte, error) {
	doc := pyproject{
		BuildSystem: buildSystem{
			Requires:     []string{buildRequires},
			BuildBackend: buildBackend,
		},
		Project: project{
			Name:         rec.Name,
			Version:      rec.Version,
			Description:  rec.Description,
			Keywords:     strings.FieldsFunc(rec.Keywords, func(r rune) bool { return r == ',' || r == ' ' }),
			Classifiers:  rec.Classifiers,
			Dependencies: append([]string{}, rec.InstallRequires...),
		},
		Tool: tool{Setuptools: setuptools{
			Packages: append([]string{}, rec.Packages...),
			ZipSafe:  rec.ZipSafe,
		}},
	}

	if rec.LongDescription != "" {
		doc.Project.Readme = &readme{Text: rec.LongDescription, ContentType: rec.LongDescriptionContentType}
		if doc.Project.Readme.ContentType == "" {
			doc.Project.Readme.ContentType = "text/plain"
		}
	}
	if rec.License != "" {
		doc.Project.License = &license{Text: rec.License}
	}
	if rec.Author != "" || rec.AuthorEmail != "" {
		doc.Project.Authors = []author{{Name: rec.Author, Email: rec.AuthorEmail}}
	}
	if rec.URL != "" {
		doc.Project.URLs = map[string]string{"Homepage": rec.URL}
	}

	b, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render pyproject.toml: %w", err)
	}
	return b, nil
}
