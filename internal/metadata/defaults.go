// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package metadata

// Literal metadata of the diff-match-patch distribution.
const (
	DefaultName        = "diff-match-patch"
	DefaultVersion     = "0.1"
	DefaultDescription = "diff-match-patch"
	DefaultKeywords    = "diff-match-patch"
	DefaultAuthor      = "Sidiropulo Eduard"
	DefaultAuthorEmail = "e.sidiropulo@aviata.me"
	DefaultURL         = "https://github.com/sidiropulos/diff-match-patch.git"
	DefaultLicense     = "Other/Proprietary License"
)

// DefaultClassifiers are the trove classifiers of the distribution.
var DefaultClassifiers = []string{
	"Development Status :: 5 - Production/Stable",
	"Environment :: Plugins",
	"Intended Audience :: Developers",
	"License :: Other/Proprietary License",
	"Operating System :: OS Independent",
	"Programming Language :: Python",
	"Topic :: Software Development :: Libraries :: Python Modules",
}

// Defaults returns a record holding only the literal constants. The
// dependency list, package list and long description are left empty.
func Defaults() *Record {
	return &Record{
		Name:            DefaultName,
		Version:         DefaultVersion,
		Description:     DefaultDescription,
		Classifiers:     append([]string(nil), DefaultClassifiers...),
		Keywords:        DefaultKeywords,
		Author:          DefaultAuthor,
		AuthorEmail:     DefaultAuthorEmail,
		URL:             DefaultURL,
		License:         DefaultLicense,
		InstallRequires: []string{},
		Packages:        []string{},
		ZipSafe:         false,
	}
}
