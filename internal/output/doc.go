// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders package metadata records and string lists as a
// text table, JSON, YAML, or raw JSON. A single field may be selected with a
// gjson path.
package output
