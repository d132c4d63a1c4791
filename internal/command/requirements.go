// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/sidiropulos/dmpsetup/internal/log"
	"github.com/sidiropulos/dmpsetup/internal/meta"
	"github.com/sidiropulos/dmpsetup/internal/output"
	"github.com/sidiropulos/dmpsetup/internal/requirements"
	"github.com/sidiropulos/dmpsetup/internal/util"
)

// requirementsCommandAction prints the dependency specifiers of the manifest,
// in canonical form or as written.
func requirementsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	path := util.ResolveIn(m.RootDir, cmd.String("manifest"))

	var specs []string
	if cmd.Bool("as-written") {
		reqs, err := requirements.ParseManifest(path)
		if err != nil {
			return err
		}
		for _, r := range reqs {
			specs = append(specs, r.Text)
		}
	} else {
		var err error
		if specs, err = requirements.ParseFile(path); err != nil {
			return err
		}
	}

	return output.List(stdout(cmd), specs, OutputOptions(cmd))
}

// requirementsCommandBuilder constructs the cli.Command for "requirements".
func requirementsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "requirements",
		Usage:     "list the install requirements",
		UsageText: "dmpsetup requirements [RootDir] [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "as-written",
				Aliases: []string{"w"},
				Usage:   "print specifiers as written in the manifest",
			},
		},
		Action:  requirementsCommandAction,
		Meta:    meta,
		Project: true,
		Output:  true,
	}).Build()
}
