// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for dmpsetup's
// configuration. The configuration is a YAML document found, in order, at
// $DMPSETUP_CFG_FILE, ./dmpsetup.yaml, or the user configuration directory
// (os.UserConfigDir()/dmpsetup.yaml).
//
// The metadata: section overrides fields of the package metadata record. Other
// top-level keys, optionally namespaced by command (build.format), supply flag
// defaults.
package config
