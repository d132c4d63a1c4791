// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/sidiropulos/dmpsetup/internal/log"
	"github.com/sidiropulos/dmpsetup/internal/meta"
	"github.com/sidiropulos/dmpsetup/internal/metadata"
)

// ErrLint is returned by check --strict when the record has warnings.
var ErrLint = errors.New("record has lint warnings")

// checkCommandAction validates the record the way the packagers will and
// reports lint warnings.
func checkCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", GetMeta(cmd).Args[1:])

	in := ProjectInputs(cmd)
	rec, err := metadata.Assemble(in)
	if err != nil {
		return err
	}

	if err := rec.Validate(); err != nil {
		return err
	}

	w := stdout(cmd)
	warnings := rec.Lint()
	for _, msg := range warnings {
		log.Warnf("lint: %s", msg)
		fmt.Fprintf(w, "warning: %s\n", msg)
	}

	if len(warnings) > 0 && cmd.Bool("strict") {
		return fmt.Errorf("%w: %d", ErrLint, len(warnings))
	}

	fmt.Fprintf(w, "%s %s: ok\n", rec.Name, rec.Version)
	return nil
}

// checkCommandBuilder constructs the cli.Command for "check".
func checkCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "check",
		Usage:     "validate the package metadata record",
		UsageText: "dmpsetup check [RootDir] [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "fail on lint warnings",
			},
		},
		Action:  checkCommandAction,
		Meta:    meta,
		Project: true,
	}).Build()
}
