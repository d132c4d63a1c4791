// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package dist

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/sidiropulos/dmpsetup/internal/discover"
	"github.com/sidiropulos/dmpsetup/internal/metadata"
	"github.com/sidiropulos/dmpsetup/internal/version"
)

// WheelTag is the compatibility tag of a pure Python wheel.
const WheelTag = "py3-none-any"

// Wheel writes a pure Python wheel.
type Wheel struct {
	OutDir string
}

func (wh *Wheel) Format() string {
	return "wheel"
}

// FileName is the artifact file name for rec.
func (wh *Wheel) FileName(rec *metadata.Record) string {
	return rec.DistName() + "-" + WheelTag + ".whl"
}

type wheelEntry struct {
	name string
	body []byte
}

func (wh *Wheel) Package(ctx context.Context, rec *metadata.Record, src Source) (*Artifact, error) {
	distInfo := rec.DistName() + ".dist-info/"

	var entries []wheelEntry
	for _, rel := range src.Modules {
		b, err := readSource(src.Root, rel)
		if err != nil {
			return nil, err
		}
		entries = append(entries, wheelEntry{rel, b})
	}

	entries = append(entries,
		wheelEntry{distInfo + "METADATA", rec.PKGInfo()},
		wheelEntry{distInfo + "WHEEL", wheelFile()},
		wheelEntry{distInfo + "top_level.txt", lines(discover.TopLevel(rec.Packages))},
	)
	entries = append(entries, wheelEntry{distInfo + "RECORD", recordFile(entries, distInfo+"RECORD")})

	modTime := src.ModTime
	if modTime.Before(zipEpoch) {
		modTime = zipEpoch
	}

	return writeArtifact(wh.OutDir, wh.FileName(rec), wh.Format(), func(w io.Writer) error {
		zw := zip.NewWriter(w)
		for _, e := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			hdr := &zip.FileHeader{
				Name:     e.name,
				Method:   zip.Deflate,
				Modified: modTime,
			}
			hdr.SetMode(0o644) //nolint:mnd
			fw, err := zw.CreateHeader(hdr)
			if err != nil {
				return fmt.Errorf("failed to add %s to wheel: %w", e.name, err)
			}
			if _, err := fw.Write(e.body); err != nil {
				return fmt.Errorf("failed to write %s: %w", e.name, err)
			}
		}
		return zw.Close()
	})
}

// zipEpoch is the earliest time a zip entry can record.
var zipEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

func wheelFile() []byte {
	return []byte(strings.Join([]string{
		"Wheel-Version: 1.0",
		"Generator: dmpsetup (" + version.Version + ")",
		"Root-Is-Purelib: true",
		"Tag: " + WheelTag,
	}, "\n") + "\n")
}

// recordFile lists every entry with its urlsafe unpadded sha256 digest and
// size. The RECORD file itself is listed without either.
func recordFile(entries []wheelEntry, self string) []byte {
	var b strings.Builder
	for _, e := range entries {
		sum := sha256.Sum256(e.body)
		fmt.Fprintf(&b, "%s,sha256=%s,%d\n", e.name, base64.RawURLEncoding.EncodeToString(sum[:]), len(e.body))
	}
	fmt.Fprintf(&b, "%s,,\n", self)
	return []byte(b.String())
}
