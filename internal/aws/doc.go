// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads AWS SDK v2 configuration and builds the S3 client that
// publish uploads distribution artifacts through. S3-compatible stores are
// reached by setting an endpoint, which also switches to path-style
// addressing.
package aws
