// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/sidiropulos/dmpsetup/internal/aws"
	"github.com/sidiropulos/dmpsetup/internal/config"
	"github.com/sidiropulos/dmpsetup/internal/dist"
	"github.com/sidiropulos/dmpsetup/internal/metadata"
	"github.com/sidiropulos/dmpsetup/internal/publish"
)

// project writes a small project tree and a config file, and points the
// config layer at it. It returns the project root.
func project(t *testing.T, cfg string) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"requirements.txt":   "requests>=2.0\n# comment\n\nflask==1.1\n",
		"README.md":          "  Hello world  \n\n",
		"pkg_a/__init__.py":  "",
		"pkg_a/core.py":      "x = 1\n",
		"pkg_b/__init__.py":  "",
		"tests/test_core.py": "",
	}
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}

	cfgPath := filepath.Join(t.TempDir(), "dmpsetup.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	t.Setenv("DMPSETUP_CFG_FILE", cfgPath)
	t.Setenv("SOURCE_DATE_EPOCH", "1704164645")
	config.Config = config.Type{}

	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	args = append([]string{"dmpsetup"}, args...)

	app, err := InitApp(context.Background(), args)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	app.Writer = &buf
	app.ErrWriter = &bytes.Buffer{}

	err = app.Run(context.Background(), args)
	return buf.String(), err
}

func TestRequirementsCommand(t *testing.T) {
	root := project(t, "{}\n")

	out, err := run(t, "requirements", root)

	require.NoError(t, err)
	assert.Equal(t, "requests>=2.0\nflask==1.1\n", out)
}

func TestRequirementsCommand_AsWritten(t *testing.T) {
	root := project(t, "{}\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, "alt.txt"), []byte("Requests [b,a] >= 2.0, < 3  --hash=sha256:abc\n"), 0o600))

	canonical, err := run(t, "requirements", root, "--manifest", "alt.txt", "--output", "json")
	require.NoError(t, err)
	written, err := run(t, "requirements", root, "--manifest", "alt.txt", "--as-written", "--output", "json")
	require.NoError(t, err)

	var got []string
	require.NoError(t, json.Unmarshal([]byte(canonical), &got))
	assert.Equal(t, []string{"Requests[a,b]<3,>=2.0"}, got)

	require.NoError(t, json.Unmarshal([]byte(written), &got))
	assert.Equal(t, []string{"Requests [b,a] >= 2.0, < 3"}, got)
	assert.NotEqual(t, canonical, written)
}

func TestPackagesCommand(t *testing.T) {
	root := project(t, "{}\n")

	out, err := run(t, "packages", root)
	require.NoError(t, err)
	assert.Equal(t, "pkg_a\npkg_b\n", out)

	out, err = run(t, "packages", root, "--exclude", "pkg_b")
	require.NoError(t, err)
	assert.Equal(t, "pkg_a\n", out)

	out, err = run(t, "packages", root, "--modules")
	require.NoError(t, err)
	assert.Equal(t, "pkg_a/__init__.py\npkg_a/core.py\npkg_b/__init__.py\n", out)
}

func TestShowCommand(t *testing.T) {
	root := project(t, "{}\n")

	out, err := run(t, "show", root, "--output", "json")
	require.NoError(t, err)

	var rec metadata.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "diff-match-patch", rec.Name)
	assert.Equal(t, "Hello world", rec.LongDescription)
	assert.Equal(t, []string{"requests>=2.0", "flask==1.1"}, rec.InstallRequires)
	assert.Equal(t, []string{"pkg_a", "pkg_b"}, rec.Packages)
	assert.False(t, rec.ZipSafe)

	out, err = run(t, "show", root, "--field", "long_description")
	require.NoError(t, err)
	assert.Equal(t, "Hello world\n", out)
}

func TestShowCommand_ConfigSources(t *testing.T) {
	root := project(t, "show:\n  readme: NOTES.md\nmetadata:\n  version: 0.2\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, "NOTES.md"), []byte("notes\n"), 0o600))

	out, err := run(t, "show", root, "--output", "json")

	require.NoError(t, err)
	var rec metadata.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "notes", rec.LongDescription)
	assert.Equal(t, "0.2", rec.Version)
}

func TestShowCommand_EnvBeatsConfig(t *testing.T) {
	root := project(t, "show:\n  readme: NOTES.md\n")
	t.Setenv("DMPSETUP_README", "README.md")

	out, err := run(t, "show", root, "--field", "long_description")

	require.NoError(t, err)
	assert.Equal(t, "Hello world\n", out)
}

func TestBuildCommand(t *testing.T) {
	root := project(t, "{}\n")

	out, err := run(t, "build", root, "--format", "sdist", "--output", "json")

	require.NoError(t, err)
	var artifacts []dist.Artifact
	require.NoError(t, json.Unmarshal([]byte(out), &artifacts))
	require.Len(t, artifacts, 1)
	assert.Equal(t, filepath.Join(root, "dist", "diff_match_patch-0.1.tar.gz"), artifacts[0].Path)
	assert.FileExists(t, artifacts[0].Path)
}

func TestBuildCommand_MissingManifest(t *testing.T) {
	root := project(t, "{}\n")
	require.NoError(t, os.Remove(filepath.Join(root, "requirements.txt")))

	_, err := run(t, "build", root)

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoDirExists(t, filepath.Join(root, "dist"))
}

func TestBuildCommand_BadFormat(t *testing.T) {
	root := project(t, "{}\n")

	_, err := run(t, "build", root, "--format", "egg")

	assert.Error(t, err)
	assert.NoDirExists(t, filepath.Join(root, "dist"))
}

func TestCheckCommand(t *testing.T) {
	root := project(t, "{}\n")

	out, err := run(t, "check", root)

	require.NoError(t, err)
	assert.Equal(t, "diff-match-patch 0.1: ok\n", out)
}

func TestCheckCommand_Invalid(t *testing.T) {
	root := project(t, "metadata:\n  version: not a version\n")

	_, err := run(t, "check", root)

	assert.ErrorIs(t, err, metadata.ErrInvalidRecord)
}

func TestCheckCommand_Strict(t *testing.T) {
	root := project(t, "metadata:\n  classifiers:\n    - \"Development Status :: 0.1 - Stable\"\n")

	out, err := run(t, "check", root)
	require.NoError(t, err)
	assert.Contains(t, out, "warning: classifier")

	_, err = run(t, "check", root, "--strict")
	assert.ErrorIs(t, err, ErrLint)
}

func TestDiffCommand(t *testing.T) {
	root := project(t, "{}\n")

	snap, err := run(t, "show", root, "--output", "json")
	require.NoError(t, err)
	snapPath := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, os.WriteFile(snapPath, []byte(snap), 0o600))

	out, err := run(t, "diff", root, snapPath)
	require.NoError(t, err)
	assert.Equal(t, "The records are identical.\n", out)

	require.NoError(t, os.WriteFile(filepath.Join(root, "requirements.txt"), []byte("requests>=2.1\n"), 0o600))

	out, err = run(t, "diff", root, snapPath)
	require.NoError(t, err)
	assert.Contains(t, out, "requests")

	_, err = run(t, "diff", root, snapPath, "--exit-code")
	assert.ErrorIs(t, err, ErrRecordsDiffer)

	out, err = run(t, "diff", root, snapPath, "--ignore", "install_requires", "--exit-code")
	require.NoError(t, err)
	assert.Equal(t, "The records are identical.\n", out)
}

func TestDiffCommand_MissingSnapshot(t *testing.T) {
	root := project(t, "{}\n")

	_, err := run(t, "diff", root)
	assert.ErrorContains(t, err, "expected one snapshot file")

	_, err = run(t, "diff", root, filepath.Join(root, "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type recordingS3 struct {
	keys []string
}

func (r *recordingS3) PutObject(_ context.Context, in *s3v2.PutObjectInput, _ ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error) {
	r.keys = append(r.keys, *in.Bucket+"/"+*in.Key)
	return &s3v2.PutObjectOutput{}, nil
}

func TestPublishCommand(t *testing.T) {
	root := project(t, "publish:\n  prefix: releases\n")
	fake := &recordingS3{}
	orig := newPutClient
	newPutClient = func(context.Context, ...aws.Option) (publish.PutObjectAPI, error) { return fake, nil }
	t.Cleanup(func() { newPutClient = orig })

	out, err := run(t, "publish", root, "--bucket", "dists")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"dists/releases/diff-match-patch/0.1/diff_match_patch-0.1.tar.gz",
		"dists/releases/diff-match-patch/0.1/diff_match_patch-0.1-py3-none-any.whl",
	}, fake.keys)
	assert.Contains(t, out, "s3://dists/releases/diff-match-patch/0.1/diff_match_patch-0.1.tar.gz")
}

func TestPublishCommand_NoBucket(t *testing.T) {
	root := project(t, "{}\n")
	t.Setenv("DMPSETUP_BUCKET", "")

	_, err := run(t, "publish", root)

	assert.ErrorContains(t, err, "--bucket is required")
	assert.NoDirExists(t, filepath.Join(root, "dist"))
}

func TestPublishCommand_ClientError(t *testing.T) {
	root := project(t, "{}\n")
	orig := newPutClient
	newPutClient = func(context.Context, ...aws.Option) (publish.PutObjectAPI, error) {
		return nil, errors.New("no credentials")
	}
	t.Cleanup(func() { newPutClient = orig })

	_, err := run(t, "publish", root, "--bucket", "dists")

	assert.ErrorContains(t, err, "no credentials")
}

func TestCompletionCommand(t *testing.T) {
	project(t, "{}\n")

	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _dmpsetup dmpsetup")

	out, err = run(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef dmpsetup")

	t.Setenv("SHELL", "/bin/fish")
	_, err = run(t, "completion")
	assert.ErrorContains(t, err, "usage: dmpsetup completion")
}

func TestInitApp_BadRoot(t *testing.T) {
	project(t, "{}\n")

	_, err := run(t, "show", filepath.Join(t.TempDir(), "missing"))

	assert.ErrorContains(t, err, "failed to parse rootDir")
}

func TestOperands(t *testing.T) {
	root := project(t, "{}\n")
	args := []string{"dmpsetup", "diff", root, "snap.json"}
	app, err := InitApp(context.Background(), args)
	require.NoError(t, err)

	var got []string
	for _, c := range app.Commands {
		if c.Name == "diff" {
			c.Action = func(_ context.Context, cmd *cli.Command) error {
				got = Operands(cmd)
				return nil
			}
		}
	}
	require.NoError(t, app.Run(context.Background(), args))
	assert.Equal(t, []string{"snap.json"}, got)
}

func TestWithin(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"/p/requirements.txt", "requirements.txt", true},
		{"/p/docs/README.md", "docs/README.md", true},
		{"/elsewhere/README.md", "", false},
		{"/p/../README.md", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := within("/p", filepath.FromSlash(tt.path))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidators(t *testing.T) {
	assert.NoError(t, FlagValidators("json", OutputValidator))
	assert.Error(t, FlagValidators("xml", OutputValidator))
	assert.NoError(t, FlagValidators("wheel", FormatValidator))
	assert.ErrorContains(t, FlagValidators("egg", FormatValidator), "must be one of")
}
