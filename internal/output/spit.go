// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"

	"github.com/sidiropulos/dmpsetup/internal/config"
	"github.com/sidiropulos/dmpsetup/internal/metadata"
)

// Formats are the accepted values of --output.
var Formats = []string{"text", "json", "yaml", "raw"}

// Options controls rendering.
type Options struct {
	Format  string
	Field   string
	Color   bool
	Titles  bool
	Padding int
}

// Record writes rec to w. With a Field, only that gjson path of the JSON form
// is written.
func Record(w io.Writer, rec *metadata.Record, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	raw, err := compact(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if opts.Field != "" {
		return field(w, raw, opts)
	}

	switch opts.Format {
	case "raw":
		_, err = fmt.Fprintln(w, string(raw))
		return err
	case "json":
		return writeJSON(w, rec)
	case "yaml":
		return writeYAML(w, rec)
	case "", "text":
		var rows [][]string
		gjson.ParseBytes(raw).ForEach(func(key, value gjson.Result) bool {
			rows = append(rows, []string{key.String(), cell(key.String(), value)})
			return true
		})
		TableWriter(w, []string{"FIELD", "VALUE"}, rows, opts)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// List writes items to w, one per line in text and raw form.
func List(w io.Writer, items []string, opts Options) error {
	if w == nil {
		w = os.Stdout
	}
	if items == nil {
		items = []string{}
	}

	switch opts.Format {
	case "", "text", "raw":
		for _, item := range items {
			if _, err := fmt.Fprintln(w, item); err != nil {
				return err
			}
		}
		return nil
	case "json":
		return writeJSON(w, items)
	case "yaml":
		return writeYAML(w, items)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

func field(w io.Writer, raw []byte, opts Options) error {
	res := gjson.GetBytes(raw, opts.Field)
	if !res.Exists() {
		return fmt.Errorf("no field %q in record", opts.Field)
	}

	switch opts.Format {
	case "json", "raw":
		_, err := fmt.Fprintln(w, res.Raw)
		return err
	case "yaml":
		return writeYAML(w, res.Value())
	default:
		if res.IsArray() {
			for _, item := range res.Array() {
				fmt.Fprintln(w, item.String())
			}
			return nil
		}
		_, err := fmt.Fprintln(w, res.String())
		return err
	}
}

// compact marshals v without escaping <, > and &, which appear in version
// specifiers.
func compact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// cell flattens one record value for the text table. Lists become one line
// per item and the long description is summarized.
func cell(key string, value gjson.Result) string {
	switch {
	case value.IsArray():
		var items []string
		for _, item := range value.Array() {
			items = append(items, item.String())
		}
		if len(items) == 0 {
			return "-"
		}
		return strings.Join(items, "\n")
	case key == "long_description":
		text := value.String()
		if text == "" {
			return "-"
		}
		first, _, _ := strings.Cut(text, "\n")
		return fmt.Sprintf("%s (%s)", first, humanize.Bytes(uint64(len(text))))
	case value.String() == "":
		return "-"
	default:
		return value.String()
	}
}

// TableWriter renders rows as a borderless table. Headers are shown when
// opts.Titles is set.
func TableWriter(w io.Writer, headers []string, rows [][]string, opts Options) {
	if w == nil {
		w = os.Stdout
	}
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")
		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	pad := opts.Padding
	if pad <= 0 {
		pad = 2
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}
			if col > 0 {
				style = style.PaddingLeft(pad)
			}
			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// getColors picks table colors from the config, falling back to defaults
// suited to the terminal background.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		if c, err := config.GetString(key); err == nil {
			return lipgloss.Color(c)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")
	return
}

// Encode writes v in a structured format: json, yaml or raw.
func Encode(w io.Writer, v any, format string) error {
	if w == nil {
		w = os.Stdout
	}
	switch format {
	case "json":
		return writeJSON(w, v)
	case "yaml":
		return writeYAML(w, v)
	case "raw":
		b, err := compact(v)
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
