// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package requirements reads pip-style requirements manifests and parses each
// entry as a PEP 508 dependency specifier.
//
// A manifest holds one specifier per line. Blank lines and # comments are
// ignored, -r/--requirement includes are followed relative to the including
// file, constraint files and global pip options contribute nothing, and
// per-requirement options such as --hash are dropped. The result is the
// ordered list of specifiers in file order, duplicates included.
package requirements
