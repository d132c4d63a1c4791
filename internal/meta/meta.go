// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/sidiropulos/dmpsetup/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, the project root directory, and the starting
// working directory.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	RootDir     string
	StartingDir string
	// RootFromArgs is set when RootDir came from the first positional
	// argument rather than the working directory.
	RootFromArgs bool
}
