// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/sidiropulos/dmpsetup/internal/differ"
	"github.com/sidiropulos/dmpsetup/internal/log"
	"github.com/sidiropulos/dmpsetup/internal/meta"
	"github.com/sidiropulos/dmpsetup/internal/util"
)

// ErrRecordsDiffer is returned by diff --exit-code when there is a delta.
var ErrRecordsDiffer = errors.New("records differ")

// diffCommandAction compares the assembled record with a snapshot taken by
// `show --output json`.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	operands := Operands(cmd)
	if len(operands) != 1 {
		return fmt.Errorf("expected one snapshot file, got %d", len(operands))
	}

	snapshot, err := differ.LoadSnapshot(util.ResolveIn(m.StartingDir, operands[0]))
	if err != nil {
		return err
	}

	rec, _, err := AssembleRecord(cmd)
	if err != nil {
		return err
	}

	changed, err := differ.Diff(stdout(cmd), snapshot, rec, differ.Options{
		Ignore: stringSlice(cmd, "ignore"),
		Color:  cmd.Bool("color"),
	})
	if err != nil {
		return err
	}
	if changed && cmd.Bool("exit-code") {
		return ErrRecordsDiffer
	}
	return nil
}

// diffCommandBuilder constructs the cli.Command for "diff".
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "diff",
		Usage:     "compare the record with a saved snapshot",
		UsageText: "dmpsetup diff [RootDir] SNAPSHOT [options]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "ignore",
				Aliases: []string{"i"},
				Usage:   "top-level record keys left out of the comparison",
			},
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "color the delta",
			},
			&cli.BoolFlag{
				Name:  "exit-code",
				Usage: "fail when the records differ",
			},
		},
		Action:  diffCommandAction,
		Meta:    meta,
		Project: true,
	}).Build()
}
