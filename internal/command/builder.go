// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/sidiropulos/dmpsetup/internal/meta"
)

// CommandBuilder constructs the project subcommands with a consistent set of
// flags. Project flags locate the inputs; output flags control rendering.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
	// Project adds --manifest, --readme, --include and --exclude.
	Project bool
	// Output adds --output, --color and --titles. Field adds --field too.
	Output bool
	Field  bool
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	path := cb.Meta.Config.Source

	flags := append([]cli.Flag{}, cb.Flags...)
	if cb.Project {
		flags = append(flags, NewProjectFlags(cb.Name, path)...)
	}
	if cb.Output {
		flags = append(flags, NewOutputFlags(cb.Name, path, cb.Field)...)
	}

	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags:  flags,
		Action: cb.Action,
	}
}
