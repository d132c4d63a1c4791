// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/sidiropulos/dmpsetup/internal/log"
	"github.com/sidiropulos/dmpsetup/internal/meta"
	"github.com/sidiropulos/dmpsetup/internal/output"
)

// showCommandAction prints the assembled record.
func showCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", GetMeta(cmd).Args[1:])

	rec, _, err := AssembleRecord(cmd)
	if err != nil {
		return err
	}
	return output.Record(stdout(cmd), rec, OutputOptions(cmd))
}

// showCommandBuilder constructs the cli.Command for "show".
func showCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "show",
		Usage:     "print the package metadata record",
		UsageText: "dmpsetup show [RootDir] [options]",
		Action:    showCommandAction,
		Meta:      meta,
		Project:   true,
		Output:    true,
		Field:     true,
	}).Build()
}
