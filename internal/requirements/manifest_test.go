// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package requirements

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeManifest writes content to name inside dir and returns the path.
func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestParseFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "comment and blank line excluded",
			content: "requests>=2.0\n# comment\n\nflask==1.1\n",
			want:    []string{"requests>=2.0", "flask==1.1"},
		},
		{
			name:    "empty file",
			content: "",
			want:    []string{},
		},
		{
			name:    "only comments",
			content: "# one\n   # two\n\n\t\n",
			want:    []string{},
		},
		{
			name:    "duplicates kept in order",
			content: "six\nrequests\nsix\n",
			want:    []string{"six", "requests", "six"},
		},
		{
			name:    "inline comment",
			content: "requests>=2.0  # http\n",
			want:    []string{"requests>=2.0"},
		},
		{
			name:    "crlf line endings",
			content: "requests>=2.0\r\nflask==1.1\r\n",
			want:    []string{"requests>=2.0", "flask==1.1"},
		},
		{
			name:    "no trailing newline",
			content: "requests>=2.0",
			want:    []string{"requests>=2.0"},
		},
		{
			name:    "hash options dropped",
			content: "requests==2.31.0 --hash=sha256:abc --hash=sha256:def\n",
			want:    []string{"requests==2.31.0"},
		},
		{
			name:    "continuation",
			content: "requests==2.31.0 \\\n    --hash=sha256:abc\nflask\n",
			want:    []string{"requests==2.31.0", "flask"},
		},
		{
			name:    "global options ignored",
			content: "--index-url https://pypi.example/simple\n-i https://x\n--pre\n-f ./wheels\nsix\n",
			want:    []string{"six"},
		},
		{
			name:    "url fragment is not a comment",
			content: "pkg @ https://example.com/pkg.zip#sha1=abc\n",
			want:    []string{"pkg @ https://example.com/pkg.zip#sha1=abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeManifest(t, t.TempDir(), "requirements.txt", tt.content)

			got, err := ParseFile(p)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFile_CountMatchesSpecifierLines(t *testing.T) {
	content := "a\n\n# x\nb>=1\nc[d]\n\n#e\nf; os_name == \"nt\"\n"
	p := writeManifest(t, t.TempDir(), "requirements.txt", content)

	got, err := ParseFile(p)

	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.Equal(t, []string{"a", "b>=1", "c[d]", `f; os_name == "nt"`}, got)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "requirements.txt"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFile_InvalidLine(t *testing.T) {
	p := writeManifest(t, t.TempDir(), "requirements.txt", "six\n\nflask==abc\n")

	_, err := ParseFile(p)

	var perr *ParseError
	require.True(t, errors.As(err, &perr), "want *ParseError, got %v", err)
	assert.Equal(t, 3, perr.Line)
	assert.Equal(t, "flask==abc", perr.Text)
	assert.Equal(t, p, perr.File)
	assert.Contains(t, err.Error(), "invalid version")
}

func TestParseFile_Includes(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "reqs/base.txt", "six\n-r nested/more.txt\n")
	writeManifest(t, dir, "reqs/nested/more.txt", "attrs>=21\n")
	writeManifest(t, dir, "constraints.txt", "six==1.16\n")
	p := writeManifest(t, dir, "requirements.txt",
		"requests\n-r reqs/base.txt\n--requirement=reqs/nested/more.txt\n-c constraints.txt\nflask\n")

	got, err := ParseFile(p)

	require.NoError(t, err)
	assert.Equal(t, []string{"requests", "six", "attrs>=21", "attrs>=21", "flask"}, got)
}

func TestParseFile_IncludeMissing(t *testing.T) {
	p := writeManifest(t, t.TempDir(), "requirements.txt", "six\n-r other.txt\n")

	_, err := ParseFile(p)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Line)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFile_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "b.txt", "six\n-r a.txt\n")
	p := writeManifest(t, dir, "a.txt", "requests\n-r b.txt\n")

	_, err := ParseFile(p)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "include cycle")
}

func TestParseFile_RejectedDirectives(t *testing.T) {
	tests := []struct {
		name    string
		content string
		reason  string
	}{
		{"editable", "-e .\n", "editable"},
		{"editable long", "--editable git+https://x/y#egg=y\n", "editable"},
		{"unknown option", "--frobnicate\n", "unknown option"},
		{"unknown requirement option", "six --frobnicate\n", "unknown requirement option"},
		{"remote include", "-r https://example.com/reqs.txt\n", "remote includes"},
		{"empty include", "-r\n", "missing include path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeManifest(t, t.TempDir(), "requirements.txt", tt.content)
			_, err := ParseFile(p)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestParseFile_EnvExpansion(t *testing.T) {
	t.Setenv("DMP_REQUESTS_PIN", "2.31.0")
	p := writeManifest(t, t.TempDir(), "requirements.txt",
		"requests==${DMP_REQUESTS_PIN}\nfoo @ https://${DMP_UNSET_HOST_X}/foo.zip\n")

	got, err := ParseFile(p)

	require.NoError(t, err)
	assert.Equal(t, []string{"requests==2.31.0", "foo @ https://${DMP_UNSET_HOST_X}/foo.zip"}, got)
}

func TestSplitOption(t *testing.T) {
	tests := []struct {
		in, name, value string
	}{
		{"-r base.txt", "-r", "base.txt"},
		{"-rbase.txt", "-r", "base.txt"},
		{"--requirement base.txt", "--requirement", "base.txt"},
		{"--requirement=base.txt", "--requirement", "base.txt"},
		{"--pre", "--pre", ""},
		{"-e .", "-e", "."},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, value := splitOption(tt.in)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.value, value)
		})
	}
}
