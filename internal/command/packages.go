// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/sidiropulos/dmpsetup/internal/discover"
	"github.com/sidiropulos/dmpsetup/internal/log"
	"github.com/sidiropulos/dmpsetup/internal/meta"
	"github.com/sidiropulos/dmpsetup/internal/output"
)

// packagesCommandAction prints the discovered packages, or their module
// files with --modules.
func packagesCommandAction(ctx context.Context, cmd *cli.Command) error {
	in := ProjectInputs(cmd)
	log.Debugf("Executing action for %v", GetMeta(cmd).Args[1:])

	packages, err := discover.FindPackages(in.Root, in.Discover)
	if err != nil {
		return err
	}

	items := packages
	if cmd.Bool("modules") {
		if items, err = discover.ModuleFiles(in.Root, packages); err != nil {
			return err
		}
	}
	return output.List(stdout(cmd), items, OutputOptions(cmd))
}

// packagesCommandBuilder constructs the cli.Command for "packages".
func packagesCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "packages",
		Usage:     "list the importable packages under the project root",
		UsageText: "dmpsetup packages [RootDir] [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "modules",
				Usage: "list the module files of each package instead",
			},
		},
		Action:  packagesCommandAction,
		Meta:    meta,
		Project: true,
		Output:  true,
	}).Build()
}
