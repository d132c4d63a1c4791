// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"fmt"
	"strings"
)

// MetadataVersion is the core metadata version PKGInfo writes.
const MetadataVersion = "2.1"

// PKGInfo renders the record as core metadata, the PKG-INFO file of an sdist
// and the METADATA file of a wheel. The long description is the message
// body.
func (r *Record) PKGInfo() []byte {
	var b strings.Builder

	header := func(key, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s: %s\n", key, oneLine(value))
	}

	header("Metadata-Version", MetadataVersion)
	header("Name", r.Name)
	header("Version", r.Version)
	header("Summary", r.Description)
	header("Home-page", r.URL)
	header("Author", r.Author)
	header("Author-email", r.AuthorEmail)
	header("License", r.License)
	header("Keywords", r.Keywords)
	for _, c := range r.Classifiers {
		header("Classifier", c)
	}
	header("Description-Content-Type", r.LongDescriptionContentType)
	for _, dep := range r.InstallRequires {
		header("Requires-Dist", dep)
	}

	if r.LongDescription != "" {
		b.WriteString("\n")
		b.WriteString(r.LongDescription)
		b.WriteString("\n")
	}

	return []byte(b.String())
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
