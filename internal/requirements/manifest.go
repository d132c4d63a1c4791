// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package requirements

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sidiropulos/dmpsetup/internal/log"
)

// ParseError reports a manifest line that could not be turned into a
// requirement. Err carries an underlying cause, such as a missing include.
type ParseError struct {
	File   string
	Line   int
	Text   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
	if e.Text != "" {
		msg += fmt.Sprintf(": %q", e.Text)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	commentPattern = regexp.MustCompile(`(^|\s+)#.*$`)
	envVarPattern  = regexp.MustCompile(`\$\{([A-Z0-9_]+)\}`)
)

// Global pip options. A line carrying one of these is a manifest directive,
// not a dependency.
var globalOptions = map[string]bool{
	"-i":                true,
	"--index-url":       true,
	"--extra-index-url": true,
	"--no-index":        true,
	"-f":                true,
	"--find-links":      true,
	"--no-binary":       true,
	"--only-binary":     true,
	"--pre":             true,
	"--prefer-binary":   true,
	"--trusted-host":    true,
	"--require-hashes":  true,
	"--use-feature":     true,
}

// Options pip accepts after a requirement on the same line.
var perRequirementOptions = map[string]bool{
	"--hash":            true,
	"--global-option":   true,
	"--install-option":  true,
	"--config-settings": true,
}

// ParseFile reads the manifest at path and returns its dependency specifiers
// in canonical form, in file order.
func ParseFile(path string) ([]string, error) {
	reqs, err := ParseManifest(path)
	if err != nil {
		return nil, err
	}

	specs := make([]string, 0, len(reqs))
	for _, r := range reqs {
		specs = append(specs, r.String())
	}
	return specs, nil
}

// ParseManifest reads the manifest at path and returns the parsed
// requirements in file order, includes expanded in place.
func ParseManifest(path string) ([]Requirement, error) {
	p := &manifestParser{
		lookupEnv: os.LookupEnv,
		active:    map[string]bool{},
	}
	return p.parse(path)
}

type manifestParser struct {
	lookupEnv func(string) (string, bool)
	// active holds the files currently being parsed, for cycle detection.
	active map[string]bool
}

// logicalLine is a manifest line after continuation joining.
type logicalLine struct {
	number int
	text   string
}

func (p *manifestParser) parse(path string) ([]Requirement, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	lines, err := readLogicalLines(abs)
	if err != nil {
		return nil, err
	}
	log.Debugf("manifest read: path=%s lines=%d", abs, len(lines))

	p.active[abs] = true
	defer delete(p.active, abs)

	var reqs []Requirement
	for _, ll := range lines {
		line := commentPattern.ReplaceAllString(ll.text, "")
		line = p.expandEnv(strings.TrimSpace(line))
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "-") {
			included, err := p.directive(abs, ll.number, line)
			if err != nil {
				return nil, err
			}
			reqs = append(reqs, included...)
			continue
		}

		req, err := p.requirement(abs, ll.number, line)
		if err != nil {
			return nil, err
		}
		log.Tracef("requirement: file=%s line=%d req=%s", abs, ll.number, req)
		reqs = append(reqs, req)
	}

	return reqs, nil
}

// readLogicalLines reads path, joining lines that end in a backslash with the
// line that follows.
func readLogicalLines(path string) ([]logicalLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open requirements manifest: %w", err)
	}
	defer f.Close()

	var (
		lines   []logicalLine
		pending strings.Builder
		start   int
		number  int
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		number++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if pending.Len() == 0 {
			start = number
		}

		if cont, ok := strings.CutSuffix(text, `\`); ok {
			pending.WriteString(cont)
			continue
		}

		pending.WriteString(text)
		lines = append(lines, logicalLine{number: start, text: pending.String()})
		pending.Reset()
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requirements manifest %s: %w", path, err)
	}
	if pending.Len() > 0 {
		lines = append(lines, logicalLine{number: start, text: pending.String()})
	}

	return lines, nil
}

// directive handles an option line. Only -r/--requirement yields
// requirements.
func (p *manifestParser) directive(file string, number int, line string) ([]Requirement, error) {
	opt, value := splitOption(line)

	switch {
	case opt == "-r" || opt == "--requirement":
		if value == "" {
			return nil, &ParseError{File: file, Line: number, Text: line, Reason: "missing include path"}
		}
		if strings.Contains(value, "://") {
			return nil, &ParseError{File: file, Line: number, Text: line, Reason: "remote includes are not supported"}
		}
		target := value
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(file), target)
		}
		target = filepath.Clean(target)
		if p.active[target] {
			return nil, &ParseError{File: file, Line: number, Text: line, Reason: "include cycle"}
		}
		log.Debugf("manifest include: from=%s path=%s", file, target)
		reqs, err := p.parse(target)
		if err != nil {
			if _, ok := err.(*ParseError); ok {
				return nil, err
			}
			return nil, &ParseError{File: file, Line: number, Text: line, Reason: "include failed", Err: err}
		}
		return reqs, nil

	case opt == "-c" || opt == "--constraint":
		log.Debugf("constraint file skipped: file=%s line=%d", file, number)
		return nil, nil

	case opt == "-e" || opt == "--editable":
		return nil, &ParseError{File: file, Line: number, Text: line, Reason: "editable requirements cannot be dependencies"}

	case globalOptions[opt]:
		log.Debugf("global option ignored: file=%s line=%d opt=%s", file, number, opt)
		return nil, nil
	}

	return nil, &ParseError{File: file, Line: number, Text: line, Reason: "unknown option"}
}

// splitOption splits "-r file", "-rfile" and "--requirement=file" into the
// option name and its value.
func splitOption(line string) (string, string) {
	if strings.HasPrefix(line, "--") {
		idx := strings.IndexAny(line, " \t=")
		if idx < 0 {
			return line, ""
		}
		return line[:idx], strings.TrimSpace(line[idx+1:])
	}

	if len(line) > 2 && line[2] != ' ' && line[2] != '\t' {
		return line[:2], strings.TrimSpace(line[2:])
	}
	name, value, _ := strings.Cut(line, " ")
	return strings.TrimSpace(name), strings.TrimSpace(value)
}

// requirement parses a requirement line, dropping any trailing
// per-requirement options.
func (p *manifestParser) requirement(file string, number int, line string) (Requirement, error) {
	tokens := strings.Split(line, " ")
	args := tokens
	for i, tok := range tokens {
		if strings.HasPrefix(tok, "-") {
			args = tokens[:i]
			for _, opt := range tokens[i:] {
				if !strings.HasPrefix(opt, "-") {
					continue
				}
				name, _, _ := strings.Cut(opt, "=")
				if !perRequirementOptions[name] {
					return Requirement{}, &ParseError{File: file, Line: number, Text: line, Reason: "unknown requirement option " + name}
				}
			}
			break
		}
	}

	req, err := Parse(strings.Join(args, " "))
	if err != nil {
		return Requirement{}, &ParseError{File: file, Line: number, Text: line, Reason: "invalid requirement", Err: err}
	}
	return req, nil
}

// expandEnv replaces ${VAR} references with environment values. Unknown
// variables are left as written.
func (p *manifestParser) expandEnv(line string) string {
	return envVarPattern.ReplaceAllStringFunc(line, func(ref string) string {
		name := ref[2 : len(ref)-1]
		if v, ok := p.lookupEnv(name); ok {
			return v
		}
		return ref
	})
}
