// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/sidiropulos/dmpsetup/internal/config"
	"github.com/sidiropulos/dmpsetup/internal/discover"
	"github.com/sidiropulos/dmpsetup/internal/dist"
	"github.com/sidiropulos/dmpsetup/internal/meta"
	"github.com/sidiropulos/dmpsetup/internal/metadata"
	"github.com/sidiropulos/dmpsetup/internal/output"
	"github.com/sidiropulos/dmpsetup/internal/util"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// Operands returns the positional arguments after the project root, if the
// root was given on the command line.
func Operands(cmd *cli.Command) []string {
	args := cmd.Args().Slice()
	if GetMeta(cmd).RootFromArgs && len(args) > 0 {
		return args[1:]
	}
	return args
}

// stdout is where command results go. Tests swap the root Writer.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// stringSlice returns the flag value, falling back to a config list when the
// flag was not given.
func stringSlice(cmd *cli.Command, name string) []string {
	if cmd.IsSet(name) {
		return cmd.StringSlice(name)
	}
	if v, err := config.GetStringSlice(name); err == nil {
		return v
	}
	return cmd.StringSlice(name)
}

// ProjectInputs resolves the project flags against the root directory.
func ProjectInputs(cmd *cli.Command) metadata.Inputs {
	root := GetMeta(cmd).RootDir
	return metadata.Inputs{
		Root:     root,
		Manifest: util.ResolveIn(root, cmd.String("manifest")),
		Readme:   util.ResolveIn(root, cmd.String("readme")),
		Discover: discover.Options{
			Include: stringSlice(cmd, "include"),
			Exclude: stringSlice(cmd, "exclude"),
		},
		Overrides: metadata.OverridesFromConfig(),
	}
}

// OutputOptions collects the rendering flags.
func OutputOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Format: cmd.String("output"),
		Field:  cmd.String("field"),
		Color:  cmd.Bool("color"),
		Titles: cmd.Bool("titles"),
	}
}

// AssembleRecord builds the record for the command's project.
func AssembleRecord(cmd *cli.Command) (*metadata.Record, metadata.Inputs, error) {
	in := ProjectInputs(cmd)
	log.Debugf("inputs: root=%s manifest=%s readme=%s", in.Root, in.Manifest, in.Readme)

	rec, err := metadata.Assemble(in)
	if err != nil {
		return nil, in, err
	}
	for _, w := range rec.Lint() {
		log.Warnf("lint: %s", w)
	}
	return rec, in, nil
}

// SourceFor lists the files that go into the artifacts of rec.
func SourceFor(in metadata.Inputs, rec *metadata.Record) (dist.Source, error) {
	modules, err := discover.ModuleFiles(in.Root, rec.Packages)
	if err != nil {
		return dist.Source{}, err
	}

	modTime, err := dist.ModTimeFromEnv()
	if err != nil {
		return dist.Source{}, err
	}

	src := dist.Source{Root: in.Root, Modules: modules, ModTime: modTime}
	for _, p := range []string{in.Manifest, in.Readme} {
		if rel, ok := within(in.Root, p); ok {
			src.Extra = append(src.Extra, rel)
		}
	}
	return src, nil
}

// within returns p relative to root in slash form when p lies under root.
func within(root, p string) (string, bool) {
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// BuildArtifacts assembles the record and runs the packagers chosen by the
// dist flags.
func BuildArtifacts(ctx context.Context, cmd *cli.Command) (*metadata.Record, []*dist.Artifact, error) {
	rec, in, err := AssembleRecord(cmd)
	if err != nil {
		return nil, nil, err
	}

	outDir := util.ResolveIn(in.Root, cmd.String("dist-dir"))
	packagers, err := dist.NewPackagers(stringSlice(cmd, "format"), outDir)
	if err != nil {
		return nil, nil, err
	}

	src, err := SourceFor(in, rec)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create dist dir: %w", err)
	}

	artifacts, err := dist.Submit(ctx, rec, src, packagers...)
	return rec, artifacts, err
}
