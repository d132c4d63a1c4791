// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidiropulos/dmpsetup/internal/metadata"
)

func snapshot(t *testing.T, rec *metadata.Record) []byte {
	t.Helper()
	b, err := json.Marshal(rec)
	require.NoError(t, err)
	return b
}

func TestDiff_Identical(t *testing.T) {
	rec := metadata.Defaults()
	var buf bytes.Buffer

	changed, err := Diff(&buf, snapshot(t, rec), rec, Options{})

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, Identical+"\n", buf.String())
}

func TestDiff_Changed(t *testing.T) {
	old := metadata.Defaults()
	rec := metadata.Defaults()
	rec.Version = "0.2"
	rec.InstallRequires = []string{"requests>=2.0"}
	var buf bytes.Buffer

	changed, err := Diff(&buf, snapshot(t, old), rec, Options{})

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, buf.String(), `"0.1"`)
	assert.Contains(t, buf.String(), `"0.2"`)
	assert.Contains(t, buf.String(), "requests")
	assert.NotContains(t, buf.String(), Identical)
}

func TestDiff_Ignore(t *testing.T) {
	old := metadata.Defaults()
	rec := metadata.Defaults()
	rec.LongDescription = "changed"
	var buf bytes.Buffer

	changed, err := Diff(&buf, snapshot(t, old), rec, Options{Ignore: []string{"long_description"}})

	require.NoError(t, err)
	assert.False(t, changed)
}

func TestCompare_BadInput(t *testing.T) {
	var buf bytes.Buffer

	_, err := Compare(&buf, []byte("not json"), []byte(`{}`), Options{})
	assert.ErrorContains(t, err, "failed to parse snapshot")

	_, err = Compare(&buf, []byte(`{}`), []byte(`null`), Options{})
	assert.ErrorContains(t, err, "failed to parse record")
}

func TestLoadSnapshot(t *testing.T) {
	p := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"name":"x"}`), 0o600))

	b, err := LoadSnapshot(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x"}`, string(b))

	_, err = LoadSnapshot(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
