// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sidiropulos/dmpsetup/internal/requirements"
)

// ErrInvalidRecord is wrapped by every error Validate returns.
var ErrInvalidRecord = errors.New("invalid metadata record")

// Validate checks the record the way a packaging tool does before writing an
// artifact. All problems are reported together.
func (r *Record) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidRecord}, args...)...))
	}

	switch {
	case r.Name == "":
		fail("missing required field name")
	case !requirements.ValidName(r.Name):
		fail("name %q is not a valid distribution name", r.Name)
	}

	switch {
	case r.Version == "":
		fail("missing required field version")
	case !requirements.ValidVersion(r.Version):
		fail("version %q is not a valid PEP 440 version", r.Version)
	}

	if strings.ContainsAny(r.Description, "\r\n") {
		fail("description must be a single line")
	}

	for _, dep := range r.InstallRequires {
		if _, err := requirements.Parse(dep); err != nil {
			fail("install_requires entry %q: %v", dep, err)
		}
	}

	return errors.Join(errs...)
}

// Trove classifier roots accepted by the package index.
var classifierRoots = []string{
	"Development Status",
	"Environment",
	"Framework",
	"Intended Audience",
	"License",
	"Natural Language",
	"Operating System",
	"Private",
	"Programming Language",
	"Topic",
	"Typing",
}

var developmentStatuses = []string{
	"1 - Planning",
	"2 - Pre-Alpha",
	"3 - Alpha",
	"4 - Beta",
	"5 - Production/Stable",
	"6 - Mature",
	"7 - Inactive",
}

// Lint returns warnings about metadata that a packaging tool accepts but a
// package index would reject or misfile.
func (r *Record) Lint() []string {
	var warnings []string

	for _, c := range r.Classifiers {
		parts := strings.Split(c, " :: ")
		if len(parts) < 2 || !slices.Contains(classifierRoots, parts[0]) {
			warnings = append(warnings, fmt.Sprintf("classifier %q is not in a known trove category", c))
			continue
		}
		if parts[0] == "Development Status" && !slices.Contains(developmentStatuses, parts[1]) {
			warnings = append(warnings, fmt.Sprintf("classifier %q is not a standard development status", c))
		}
	}

	if r.LongDescription == "" {
		warnings = append(warnings, "long description is empty")
	}
	if len(r.Packages) == 0 {
		warnings = append(warnings, "no packages discovered")
	}

	return warnings
}
