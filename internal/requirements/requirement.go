// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package requirements

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Requirement is a parsed PEP 508 dependency specifier.
type Requirement struct {
	Name       string
	Extras     []string
	Specifiers []Specifier
	URL        string
	Marker     string
	// Text is the specifier as written, trimmed.
	Text string
}

// Specifier is a single version clause such as >=2.0.
type Specifier struct {
	Operator string
	Version  string
}

func (s Specifier) String() string {
	return s.Operator + s.Version
}

var (
	namePattern      = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?`)
	fullNamePattern  = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?$`)
	specifierPattern = regexp.MustCompile(`^(~=|===|==|!=|<=|>=|<|>)\s*([^<>=!~\s]\S*)$`)
)

// ValidName reports whether name is a valid distribution name.
func ValidName(name string) bool {
	return fullNamePattern.MatchString(name)
}

// Parse parses one dependency specifier, for example
// `requests[security] >= 2.0, < 3; python_version >= "3.8"`.
func Parse(s string) (Requirement, error) {
	var req Requirement

	rest := strings.TrimSpace(s)
	if rest == "" {
		return req, errors.New("empty requirement")
	}
	req.Text = rest

	req.Name = namePattern.FindString(rest)
	if req.Name == "" {
		return req, errors.New("expected package name at start of requirement")
	}
	rest = strings.TrimSpace(rest[len(req.Name):])

	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return req, errors.New("unclosed extras bracket")
		}
		for _, extra := range strings.Split(rest[1:end], ",") {
			extra = strings.TrimSpace(extra)
			if extra == "" {
				continue
			}
			if !ValidName(extra) {
				return req, fmt.Errorf("invalid extra name %q", extra)
			}
			req.Extras = append(req.Extras, extra)
		}
		rest = strings.TrimSpace(rest[end+1:])
	}

	if after, found := strings.CutPrefix(rest, "@"); found {
		url, tail := splitURL(strings.TrimSpace(after))
		if url == "" {
			return req, errors.New("expected URL after @")
		}
		if !strings.Contains(url, "://") && !strings.HasPrefix(url, "file:") {
			return req, fmt.Errorf("invalid URL %q", url)
		}
		req.URL = url
		rest = tail
	} else {
		versionPart, tail, hasMarker := strings.Cut(rest, ";")
		specs, err := parseSpecifiers(versionPart)
		if err != nil {
			return req, err
		}
		req.Specifiers = specs
		rest = ""
		if hasMarker {
			rest = ";" + tail
		}
	}

	if rest != "" {
		marker, found := strings.CutPrefix(rest, ";")
		if !found {
			return req, fmt.Errorf("unexpected text %q", rest)
		}
		marker = strings.Join(strings.Fields(marker), " ")
		if marker == "" {
			return req, errors.New("empty environment marker after ;")
		}
		req.Marker = marker
	}

	return req, nil
}

// splitURL returns the URL token and whatever follows it, trimmed. A marker
// after a URL must be separated from it by whitespace.
func splitURL(s string) (string, string) {
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx:])
}

// parseSpecifiers parses a comma-separated version clause list, optionally
// wrapped in parentheses.
func parseSpecifiers(s string) ([]Specifier, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") {
		if !strings.HasSuffix(s, ")") {
			return nil, errors.New("unclosed version parenthesis")
		}
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return nil, nil
	}

	var specs []Specifier
	for _, clause := range strings.Split(s, ",") {
		clause = strings.TrimSpace(clause)
		m := specifierPattern.FindStringSubmatch(clause)
		if m == nil {
			return nil, fmt.Errorf("invalid version specifier %q", clause)
		}
		if ok, reason := validOperand(m[1], m[2]); !ok {
			return nil, fmt.Errorf("%s in %q", reason, clause)
		}
		specs = append(specs, Specifier{Operator: m[1], Version: m[2]})
	}
	return specs, nil
}

// String renders the canonical form. Extras and version clauses are sorted,
// clauses are joined without spaces, and a URL form keeps a space on both
// sides of the marker separator.
func (r Requirement) String() string {
	var b strings.Builder
	b.WriteString(r.Name)

	if len(r.Extras) > 0 {
		extras := append([]string(nil), r.Extras...)
		sort.Strings(extras)
		b.WriteString("[" + strings.Join(extras, ",") + "]")
	}

	if len(r.Specifiers) > 0 {
		clauses := make([]string, len(r.Specifiers))
		for i, s := range r.Specifiers {
			clauses[i] = s.String()
		}
		sort.Strings(clauses)
		b.WriteString(strings.Join(clauses, ","))
	}

	if r.URL != "" {
		b.WriteString(" @ " + r.URL)
		if r.Marker != "" {
			b.WriteString(" ")
		}
	}

	if r.Marker != "" {
		b.WriteString("; " + r.Marker)
	}

	return b.String()
}
