// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package dist

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/sidiropulos/dmpsetup/internal/discover"
	"github.com/sidiropulos/dmpsetup/internal/metadata"
	"github.com/sidiropulos/dmpsetup/internal/requirements"
)

// Sdist writes a gzipped source tarball with a pyproject.toml naming the
// setuptools backend, plus the egg-info directory setuptools itself writes.
type Sdist struct {
	OutDir string
}

func (s *Sdist) Format() string {
	return "sdist"
}

// FileName is the artifact file name for rec.
func (s *Sdist) FileName(rec *metadata.Record) string {
	return rec.DistName() + ".tar.gz"
}

func (s *Sdist) Package(ctx context.Context, rec *metadata.Record, src Source) (*Artifact, error) {
	prefix := rec.DistName() + "/"
	eggInfo := rec.NormalizedName() + ".egg-info/"

	files := map[string][]byte{}
	for _, rel := range append(append([]string{}, src.Extra...), src.Modules...) {
		b, err := readSource(src.Root, rel)
		if err != nil {
			return nil, err
		}
		files[rel] = b
	}

	pyproj, err := pyprojectTOML(rec)
	if err != nil {
		return nil, err
	}
	files["pyproject.toml"] = pyproj

	pkgInfo := rec.PKGInfo()
	files["PKG-INFO"] = pkgInfo
	files[eggInfo+"PKG-INFO"] = pkgInfo
	files[eggInfo+"dependency_links.txt"] = []byte("\n")
	files[eggInfo+"top_level.txt"] = lines(discover.TopLevel(rec.Packages))
	if len(rec.InstallRequires) > 0 {
		files[eggInfo+"requires.txt"] = requiresTxt(rec.InstallRequires)
	}
	if !rec.ZipSafe {
		files[eggInfo+"not-zip-safe"] = []byte("\n")
	}

	names := make([]string, 0, len(files)+1)
	for name := range files {
		names = append(names, name)
	}
	names = append(names, eggInfo+"SOURCES.txt")
	sort.Strings(names)
	files[eggInfo+"SOURCES.txt"] = lines(names)

	return writeArtifact(s.OutDir, s.FileName(rec), s.Format(), func(w io.Writer) error {
		gz, err := gzip.NewWriterLevel(w, gzip.BestCompression)
		if err != nil {
			return err
		}
		gz.ModTime = src.ModTime
		gz.Name = strings.TrimSuffix(s.FileName(rec), ".gz")

		tw := tar.NewWriter(gz)
		for _, name := range names {
			if err := ctx.Err(); err != nil {
				return err
			}
			body := files[name]
			hdr := &tar.Header{
				Name:     prefix + name,
				Mode:     0o644, //nolint:mnd
				Size:     int64(len(body)),
				ModTime:  src.ModTime,
				Typeflag: tar.TypeReg,
				Format:   tar.FormatPAX,
			}
			if err := tw.WriteHeader(hdr); err != nil {
				return fmt.Errorf("failed to write tar header for %s: %w", name, err)
			}
			if _, err := tw.Write(body); err != nil {
				return fmt.Errorf("failed to write %s: %w", name, err)
			}
		}
		if err := tw.Close(); err != nil {
			return err
		}
		return gz.Close()
	})
}

// requiresTxt renders install_requires in egg-info form: unconditional
// requirements first, then one [:marker] section per environment marker.
func requiresTxt(deps []string) []byte {
	var plain []string
	sections := map[string][]string{}
	var markers []string

	for _, dep := range deps {
		req, err := requirements.Parse(dep)
		if err != nil || req.Marker == "" {
			plain = append(plain, dep)
			continue
		}
		marker := req.Marker
		req.Marker = ""
		if _, ok := sections[marker]; !ok {
			markers = append(markers, marker)
		}
		sections[marker] = append(sections[marker], req.String())
	}

	var b strings.Builder
	b.Write(lines(plain))
	for _, m := range markers {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[:%s]\n", m)
		b.Write(lines(sections[m]))
	}
	return []byte(b.String())
}

// lines joins items one per line with a trailing newline.
func lines(items []string) []byte {
	if len(items) == 0 {
		return nil
	}
	return []byte(strings.Join(items, "\n") + "\n")
}
