// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ compares an assembled metadata record with a JSON snapshot
// of an earlier one and renders the delta.
package differ
