// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package dist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sidiropulos/dmpsetup/internal/log"
	"github.com/sidiropulos/dmpsetup/internal/metadata"
)

// Source names the project files a packager copies into an artifact. Paths
// are relative to Root and use forward slashes.
type Source struct {
	Root string
	// Modules are the Python files of the discovered packages.
	Modules []string
	// Extra files ship in the sdist only, e.g. the manifest and the readme.
	Extra   []string
	ModTime time.Time
}

// Artifact is a written distribution file.
type Artifact struct {
	Path   string `json:"path" yaml:"path"`
	Format string `json:"format" yaml:"format"`
	Size   int64  `json:"size" yaml:"size"`
	SHA256 string `json:"sha256" yaml:"sha256"`
}

// Packager writes one artifact format.
type Packager interface {
	Format() string
	Package(ctx context.Context, rec *metadata.Record, src Source) (*Artifact, error)
}

// Formats lists the packager names NewPackagers accepts.
var Formats = []string{"sdist", "wheel"}

// NewPackagers returns a packager per format name, writing into outDir.
func NewPackagers(formats []string, outDir string) ([]Packager, error) {
	var packagers []Packager
	for _, f := range formats {
		switch strings.TrimSpace(f) {
		case "sdist":
			packagers = append(packagers, &Sdist{OutDir: outDir})
		case "wheel":
			packagers = append(packagers, &Wheel{OutDir: outDir})
		default:
			return nil, fmt.Errorf("unknown distribution format %q, must be one of %v", f, Formats)
		}
	}
	if len(packagers) == 0 {
		return nil, fmt.Errorf("no distribution format selected")
	}
	return packagers, nil
}

// Submit validates rec and hands it to each packager in turn. The first
// error is returned as is, together with the artifacts written before it.
func Submit(ctx context.Context, rec *metadata.Record, src Source, packagers ...Packager) ([]*Artifact, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	var artifacts []*Artifact
	for _, p := range packagers {
		if err := ctx.Err(); err != nil {
			return artifacts, err
		}

		log.Debugf("packaging: format=%s name=%s version=%s", p.Format(), rec.Name, rec.Version)
		a, err := p.Package(ctx, rec, src)
		if err != nil {
			log.WithError(err).Errorf("packaging failed: format=%s", p.Format())
			return artifacts, err
		}

		log.WithField("size", humanize.Bytes(uint64(a.Size))).Infof("wrote %s", a.Path)
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}

// ModTimeFromEnv returns the SOURCE_DATE_EPOCH time when set, else now.
func ModTimeFromEnv() (time.Time, error) {
	epoch := os.Getenv("SOURCE_DATE_EPOCH")
	if epoch == "" {
		return time.Now().UTC().Truncate(time.Second), nil
	}
	secs, err := strconv.ParseInt(epoch, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid SOURCE_DATE_EPOCH %q: %w", epoch, err)
	}
	return time.Unix(secs, 0).UTC(), nil
}

// countingWriter tracks the number of bytes written through it.
type countingWriter struct {
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}

// writeArtifact streams fill into outDir/name by way of a temp file and
// renames it into place only when fill succeeds.
func writeArtifact(outDir, name, format string, fill func(w io.Writer) error) (*Artifact, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil { //nolint:mnd
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(outDir, "."+name+".*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp artifact: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	h := sha256.New()
	counter := &countingWriter{}
	if err := fill(io.MultiWriter(tmp, h, counter)); err != nil {
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close artifact: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil { //nolint:mnd
		return nil, fmt.Errorf("failed to set artifact mode: %w", err)
	}

	dest := filepath.Join(outDir, name)
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return nil, fmt.Errorf("failed to move artifact into place: %w", err)
	}
	committed = true

	return &Artifact{
		Path:   dest,
		Format: format,
		Size:   counter.n,
		SHA256: hex.EncodeToString(h.Sum(nil)),
	}, nil
}

// readSource loads a project file named relative to root.
func readSource(root, rel string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	return b, nil
}
