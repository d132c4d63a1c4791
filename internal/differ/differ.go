// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/sidiropulos/dmpsetup/internal/metadata"
)

// Identical is printed when there is no delta.
const Identical = "The records are identical."

// Options controls the comparison.
type Options struct {
	// Ignore lists top-level keys left out of both sides.
	Ignore []string
	Color  bool
}

// LoadSnapshot reads a snapshot written by `show --output json`.
func LoadSnapshot(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return b, nil
}

// Diff compares snapshot with rec, writes the delta or Identical to w, and
// reports whether anything changed.
func Diff(w io.Writer, snapshot []byte, rec *metadata.Record, opts Options) (bool, error) {
	current, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("failed to marshal record: %w", err)
	}
	return Compare(w, snapshot, current, opts)
}

// Compare diffs two JSON documents. The left side is the older one.
func Compare(w io.Writer, left, right []byte, opts Options) (bool, error) {
	if w == nil {
		w = os.Stdout
	}

	ldoc, err := decode(left, opts.Ignore)
	if err != nil {
		return false, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	rdoc, err := decode(right, opts.Ignore)
	if err != nil {
		return false, fmt.Errorf("failed to parse record: %w", err)
	}
	log.Debugf("diff: %d keys vs %d keys", len(ldoc), len(rdoc))

	delta := gojsondiff.New().CompareObjects(ldoc, rdoc)
	if !delta.Modified() {
		fmt.Fprintln(w, Identical)
		return false, nil
	}

	f := formatter.NewAsciiFormatter(ldoc, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       opts.Color,
	})
	s, err := f.Format(delta)
	if err != nil {
		return true, fmt.Errorf("failed to format delta: %w", err)
	}
	fmt.Fprint(w, s)
	return true, nil
}

func decode(b []byte, ignore []string) (map[string]interface{}, error) {
	var doc map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("not a JSON object")
	}
	for _, key := range ignore {
		delete(doc, key)
	}
	return doc, nil
}
