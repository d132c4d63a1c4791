// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package dist turns a metadata record into distribution artifacts. Each
// artifact format is a Packager; Submit validates the record once and runs
// the packagers in order, stopping at the first failure. Artifacts are
// written to a temporary file and renamed into place, so a failed build
// leaves nothing behind.
package dist
