// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/sidiropulos/dmpsetup/internal/dist"
	"github.com/sidiropulos/dmpsetup/internal/log"
	"github.com/sidiropulos/dmpsetup/internal/meta"
	"github.com/sidiropulos/dmpsetup/internal/output"
)

// buildCommandAction assembles the record and writes the artifacts.
func buildCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", GetMeta(cmd).Args[1:])

	_, artifacts, err := BuildArtifacts(ctx, cmd)
	if err != nil {
		return err
	}
	return emitArtifacts(cmd, artifacts)
}

// emitArtifacts prints one row per artifact in text form, or the artifact
// list in json/yaml.
func emitArtifacts(cmd *cli.Command, artifacts []*dist.Artifact) error {
	opts := OutputOptions(cmd)
	if opts.Format != "text" {
		return output.Encode(stdout(cmd), artifacts, opts.Format)
	}

	rows := make([][]string, 0, len(artifacts))
	for _, a := range artifacts {
		rows = append(rows, []string{a.Format, a.Path, humanize.Bytes(uint64(a.Size)), a.SHA256})
	}
	output.TableWriter(stdout(cmd), []string{"FORMAT", "PATH", "SIZE", "SHA256"}, rows, opts)
	return nil
}

// buildCommandBuilder constructs the cli.Command for "build".
func buildCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "build",
		Usage:     "build the sdist and wheel",
		UsageText: "dmpsetup build [RootDir] [options]",
		Flags:     NewDistFlags("build", meta.Config.Source),
		Action:    buildCommandAction,
		Meta:      meta,
		Project:   true,
		Output:    true,
	}).Build()
}

