// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package requirements

import (
	"regexp"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

// releasePattern accepts only an optional epoch and release segments, the
// part of a version that may precede a .* wildcard.
var releasePattern = regexp.MustCompile(`(?i)^v?(?:[0-9]+!)?[0-9]+(?:\.[0-9]+)*$`)

// ValidVersion reports whether v is a valid PEP 440 version string. The
// version ends up in file names, so surrounding whitespace is rejected.
func ValidVersion(v string) bool {
	if v == "" || strings.TrimSpace(v) != v {
		return false
	}
	_, err := pep440.Parse(v)
	return err == nil
}

// validOperand checks a version operand against the rules of its operator.
func validOperand(op, v string) (ok bool, reason string) {
	switch op {
	case "===":
		return strings.TrimSpace(v) != "", "arbitrary equality needs a value"
	case "==", "!=":
		if base, found := strings.CutSuffix(v, ".*"); found {
			return releasePattern.MatchString(base), "wildcard allowed only after release segments"
		}
		return ValidVersion(v), "invalid version"
	case "~=":
		if !ValidVersion(v) {
			return false, "invalid version"
		}
		release := strings.SplitN(strings.TrimLeft(v, "vV"), "!", 2)
		return strings.Contains(release[len(release)-1], "."), "compatible release needs at least two segments"
	default:
		return ValidVersion(v), "invalid version"
	}
}
