// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package requirements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Canonical(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already canonical", "requests>=2.0", "requests>=2.0"},
		{"pinned", "flask==1.1", "flask==1.1"},
		{"bare name", "six", "six"},
		{"spaces removed", "requests >= 2.0", "requests>=2.0"},
		{"clauses sorted", "Django >=3.2, <4", "Django<4,>=3.2"},
		{"extras sorted", "requests[socks,security]>=2.0", "requests[security,socks]>=2.0"},
		{"parenthesized", "numpy (>=1.20)", "numpy>=1.20"},
		{"marker", `six; python_version<"3"`, `six; python_version<"3"`},
		{"marker whitespace", `six ;  python_version  <  "3"`, `six; python_version < "3"`},
		{"url", "pip @ https://example.com/pip-22.0.zip", "pip @ https://example.com/pip-22.0.zip"},
		{"url with marker", `pip @ https://example.com/pip.zip ; os_name == "posix"`, `pip @ https://example.com/pip.zip ; os_name == "posix"`},
		{"wildcard", "attrs==21.*", "attrs==21.*"},
		{"compatible release", "idna~=3.4", "idna~=3.4"},
		{"arbitrary equality", "legacy===foobar", "legacy===foobar"},
		{"post and dev", "pkg>=1.0.post1,!=1.1.dev3", "pkg!=1.1.dev3,>=1.0.post1"},
		{"epoch and local", "pkg==1!2.0+local.7", "pkg==1!2.0+local.7"},
		{"pre-release", "pkg>=2.0rc1", "pkg>=2.0rc1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.String())
		})
	}
}

func TestParse_Fields(t *testing.T) {
	req, err := Parse(`requests[security] >= 2.0, < 3; python_version >= "3.8"`)
	require.NoError(t, err)

	assert.Equal(t, "requests", req.Name)
	assert.Equal(t, []string{"security"}, req.Extras)
	assert.Equal(t, []Specifier{{">=", "2.0"}, {"<", "3"}}, req.Specifiers)
	assert.Empty(t, req.URL)
	assert.Equal(t, `python_version >= "3.8"`, req.Marker)
	assert.Equal(t, `requests[security] >= 2.0, < 3; python_version >= "3.8"`, req.Text)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		reason string
	}{
		{"empty", "   ", "empty requirement"},
		{"no name", ">=1.0", "expected package name"},
		{"bad operator", "requests>>2", "invalid version"},
		{"missing operand", "requests>=", "invalid version specifier"},
		{"missing operand before clause", "requests>=,<3", "invalid version specifier"},
		{"operator as operand", "requests<=>2", "invalid version specifier"},
		{"bad version", "flask==abc", "invalid version"},
		{"one segment compatible", "idna~=3", "at least two segments"},
		{"wildcard misplaced", "attrs>=21.*", "invalid version"},
		{"unclosed extras", "requests[security>=2", "unclosed extras"},
		{"bad extra", "requests[-x]", "invalid extra"},
		{"unclosed paren", "numpy (>=1.20", "unclosed version parenthesis"},
		{"empty marker", "six;", "empty environment marker"},
		{"url without scheme", "pip @ pip.zip", "invalid URL"},
		{"missing url", "pip @", "expected URL"},
		{"trailing junk after url", "pip @ https://x/y.zip junk", "unexpected text"},
		{"local path", "./vendor/pkg", "expected package name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("diff-match-patch"))
	assert.True(t, ValidName("zope.interface"))
	assert.True(t, ValidName("a"))
	assert.False(t, ValidName("-leading"))
	assert.False(t, ValidName("trailing_"))
	assert.False(t, ValidName("has space"))
	assert.False(t, ValidName(""))
}

func TestValidVersion(t *testing.T) {
	for _, v := range []string{"0.1", "1.0.0", "v2.1", "1!1.0", "1.0a1", "1.0.b2", "1.0rc3", "1.0-1", "1.0.post2", "1.0.dev0", "1.0+abc.5"} {
		assert.True(t, ValidVersion(v), v)
	}
	for _, v := range []string{"", "abc", "1.0.x", "1..0", "1.0+", "0.1 - Stable", "0.1 ", " 0.1", "0.1\n"} {
		assert.False(t, ValidVersion(v), v)
	}
}
