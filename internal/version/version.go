// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other dmpsetup packages to avoid import cycles.

package version

import "runtime/debug"

// Version is the dmpsetup build version, taken from the module build info.
var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}()
