// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"github.com/sidiropulos/dmpsetup/internal/config"
	"github.com/sidiropulos/dmpsetup/internal/discover"
	"github.com/sidiropulos/dmpsetup/internal/log"
	"github.com/sidiropulos/dmpsetup/internal/requirements"
)

// Inputs names everything a record is built from besides the literal
// constants.
type Inputs struct {
	// Root is the project directory searched for packages.
	Root string
	// Manifest is the requirements manifest path.
	Manifest string
	// Readme is the long description path.
	Readme    string
	Discover  discover.Options
	Overrides Overrides
}

// Assemble builds the record for in. The manifest is read first, then the
// long description, then the package tree; the first failure is returned and
// no record is produced.
func Assemble(in Inputs) (*Record, error) {
	deps, err := requirements.ParseFile(in.Manifest)
	if err != nil {
		return nil, err
	}
	log.Debugf("requirements parsed: count=%d", len(deps))

	long, err := LoadLongDescription(in.Readme)
	if err != nil {
		return nil, err
	}

	packages, err := discover.FindPackages(in.Root, in.Discover)
	if err != nil {
		return nil, err
	}
	if packages == nil {
		packages = []string{}
	}

	rec := Defaults()
	in.Overrides.Apply(rec)
	rec.LongDescription = long
	rec.LongDescriptionContentType = ContentType(in.Readme)
	rec.InstallRequires = deps
	rec.Packages = packages

	log.Infof("record assembled: name=%s version=%s requires=%d packages=%d",
		rec.Name, rec.Version, len(rec.InstallRequires), len(rec.Packages))
	return rec, nil
}

// Overrides replaces individual literal fields. Nil fields keep the default.
type Overrides struct {
	Name        *string
	Version     *string
	Description *string
	Keywords    *string
	Author      *string
	AuthorEmail *string
	URL         *string
	License     *string
	Classifiers []string
	ZipSafe     *bool
}

// Apply writes every set override into r.
func (o Overrides) Apply(r *Record) {
	for _, f := range []struct {
		src *string
		dst *string
	}{
		{o.Name, &r.Name},
		{o.Version, &r.Version},
		{o.Description, &r.Description},
		{o.Keywords, &r.Keywords},
		{o.Author, &r.Author},
		{o.AuthorEmail, &r.AuthorEmail},
		{o.URL, &r.URL},
		{o.License, &r.License},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	if o.Classifiers != nil {
		r.Classifiers = append([]string(nil), o.Classifiers...)
	}
	if o.ZipSafe != nil {
		r.ZipSafe = *o.ZipSafe
	}
}

// OverridesFromConfig reads the metadata: section of the loaded config.
// Missing keys leave the matching override unset.
func OverridesFromConfig() Overrides {
	str := func(key string) *string {
		if v, err := config.GetString("metadata." + key); err == nil {
			return &v
		}
		return nil
	}

	o := Overrides{
		Name:        str("name"),
		Version:     str("version"),
		Description: str("description"),
		Keywords:    str("keywords"),
		Author:      str("author"),
		AuthorEmail: str("author_email"),
		URL:         str("url"),
		License:     str("license"),
	}
	if v, err := config.GetStringSlice("metadata.classifiers"); err == nil {
		o.Classifiers = v
	}
	if v, err := config.GetBool("metadata.zip_safe"); err == nil {
		o.ZipSafe = &v
	}
	return o
}
