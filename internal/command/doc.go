// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for dmpsetup. It wires flags,
// validators, actions, and shell completion for subcommands.
package command
