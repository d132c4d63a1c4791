// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/sidiropulos/dmpsetup/internal/config"
	"github.com/sidiropulos/dmpsetup/internal/log"
	"github.com/sidiropulos/dmpsetup/internal/meta"
	"github.com/sidiropulos/dmpsetup/internal/util"
)

// InitApp builds the command tree for args. args[1] is the subcommand and
// doubles as the config namespace; args[2], when it is not a flag, is the
// project root.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()
	defer func() {
		if err := os.Chdir(sd); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to restore directory: %v\n", err)
		}
	}()

	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, err := config.Load(ns)
	if err != nil {
		log.Debugf("no config loaded: %v", err)
	}

	m := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
		RootDir:     sd,
	}

	if ns != "completion" && len(args) > 2 && !strings.HasPrefix(args[2], "-") {
		wd, err := util.ParseRootDir(args[2])
		switch {
		case err == nil:
			m.RootDir = wd
			m.RootFromArgs = true
		case ns == "diff":
			// A lone operand that is not a directory is the snapshot.
		default:
			return nil, fmt.Errorf("failed to parse rootDir (%s): %w", args[2], err)
		}
	}

	app := &cli.Command{
		Name:  "dmpsetup",
		Usage: "build and publish the diff-match-patch distribution",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "dmpsetup version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		buildCommandBuilder(m),
		checkCommandBuilder(m),
		diffCommandBuilder(m),
		packagesCommandBuilder(m),
		publishCommandBuilder(m),
		requirementsCommandBuilder(m),
		showCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
