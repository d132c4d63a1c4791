// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sidiropulos/dmpsetup/internal/command"
	"github.com/sidiropulos/dmpsetup/internal/log"
	"github.com/sidiropulos/dmpsetup/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain(os.Args, os.Stdout, os.Stderr))
}

// handleVersion checks for --version/-v before the command name and reports
// whether it was handled.
func handleVersion(args []string, w io.Writer) bool {
	if len(args) > 1 && (args[1] == "--version" || args[1] == "-v") {
		fmt.Fprintln(w, version.Version)
		return true
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string, stdout, stderr io.Writer) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}
	app.Writer = stdout
	app.ErrWriter = stderr

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain(args []string, stdout, stderr io.Writer) int {
	log.InitLogger()
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args, stdout) {
		return 0
	}

	return initAndRunApp(handleNakedCommand(args), stdout, stderr)
}
