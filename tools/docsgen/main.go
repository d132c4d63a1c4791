// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

// Command docsgen writes markdown and man pages for every dmpsetup
// subcommand, read from the live command tree. Examples come from an
// optional <docs>/examples.yaml keyed by subcommand name.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/sidiropulos/dmpsetup/internal/command"
)

type Subcommand struct {
	ID       string
	Short    string
	Usage    string
	Flags    []Flag
	Examples []Example
	Date     string
	Version  string
	IDUpper  string
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type Outputs struct {
	Template *template.Template
	Folder   string
	Prefix   string
	Suffix   string
}

var mdTemplate = template.Must(template.New("md").Parse(`# dmpsetup {{.ID}}

{{.Short}}

## Usage

    {{.Usage}}

## Flags
{{range .Flags}}
- ` + "`{{.Syntax}}`" + ` {{.Description}}{{if .Default}} (default: ` + "`{{.Default}}`" + `){{end}}{{end}}
{{- if .Examples}}

## Examples
{{range .Examples}}
{{.Description}}

    {{.Command}}
{{end}}{{end}}
`))

var manTemplate = template.Must(template.New("man").Parse(`.TH DMPSETUP-{{.IDUpper}} 1 "{{.Date}}" "dmpsetup {{.Version}}"
.SH NAME
dmpsetup-{{.ID}} \- {{.Short}}
.SH SYNOPSIS
{{.Usage}}
.SH OPTIONS
{{range .Flags}}.TP
\fB{{.Syntax}}\fR
{{.Description}}
{{end}}`))

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(1)
	}
	if err := generate(os.Args[1], getVersion(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// generate renders every subcommand into docs.
func generate(docs, version string, progress io.Writer) error {
	app, err := command.InitApp(context.Background(), []string{"dmpsetup"})
	if err != nil {
		return err
	}

	examples, err := loadExamples(filepath.Join(docs, "examples.yaml"))
	if err != nil {
		return err
	}

	types := []Outputs{
		{Template: mdTemplate, Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: manTemplate, Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "dmpsetup-", Suffix: ".1"},
	}

	for _, cmd := range app.Commands {
		sub := describe(cmd)
		sub.Examples = examples[sub.ID]
		sub.Date = time.Now().Format("January 2, 2006")
		sub.Version = version

		for _, t := range types {
			if err := os.MkdirAll(t.Folder, 0o755); err != nil {
				return err
			}
			path := filepath.Join(t.Folder, t.Prefix+sub.ID+t.Suffix)
			fmt.Fprintln(progress, "Generating", path)
			if err := render(path, t.Template, sub); err != nil {
				return err
			}
		}
	}
	return nil
}

// describe extracts the documented parts of cmd.
func describe(cmd *cli.Command) Subcommand {
	sub := Subcommand{
		ID:      cmd.Name,
		Short:   cmd.Usage,
		Usage:   cmd.UsageText,
		IDUpper: strings.ToUpper(cmd.Name),
	}
	if sub.Usage == "" {
		sub.Usage = "dmpsetup " + cmd.Name
	}

	for _, f := range cmd.Flags {
		names := f.Names()
		syntax := make([]string, len(names))
		for i, n := range names {
			if len(n) == 1 {
				syntax[i] = "-" + n
			} else {
				syntax[i] = "--" + n
			}
		}

		flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
		if df, ok := f.(cli.DocGenerationFlag); ok {
			flag.Description = df.GetUsage()
			if df.TakesValue() {
				flag.Default = df.GetValue()
			}
		}
		sub.Flags = append(sub.Flags, flag)
	}
	sort.Slice(sub.Flags, func(i, j int) bool {
		return sub.Flags[i].ID < sub.Flags[j].ID
	})
	return sub
}

func loadExamples(path string) (map[string][]Example, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var examples map[string][]Example
	if err := yaml.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return examples, nil
}

func render(path string, tmpl *template.Template, sub Subcommand) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(file, sub); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
