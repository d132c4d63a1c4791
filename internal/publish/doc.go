// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package publish uploads built distribution artifacts to an S3 bucket. Objects
// land under <prefix>/<name>/<version>/<file> and carry the artifact's sha256
// as object metadata.
package publish
