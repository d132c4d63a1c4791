// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package metadata assembles the package metadata record of the project: the
// literal constants of the distribution, its long description, its
// dependency list and its discovered packages. A record is built fresh on
// every run and is never persisted.
package metadata
