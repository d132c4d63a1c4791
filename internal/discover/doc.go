// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package discover finds the importable Python packages of a project tree,
// the way setuptools' find_packages does.
package discover
