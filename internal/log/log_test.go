// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestCustomHandler_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		msg   string
		want  string
	}{
		{"debug", log.DebugLevel, "hello", " D hello"},
		{"info", log.InfoLevel, "hello", " I hello"},
		{"warn", log.WarnLevel, "hello", " W hello"},
		{"error", log.ErrorLevel, "hello", " E hello"},
		{"trace prefix", log.DebugLevel, "TRACE: deep", " T deep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &CustomHandler{Writer: &buf}
			err := h.HandleLog(&log.Entry{Level: tt.level, Message: tt.msg, Fields: log.Fields{}})
			assert.NoError(t, err)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestCustomHandler_Fields(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{Writer: &buf}

	err := h.HandleLog(&log.Entry{
		Level:   log.InfoLevel,
		Message: "built",
		Fields:  log.Fields{"size": "1.2 kB", "format": "sdist"},
	})

	assert.NoError(t, err)
	// Names() sorts keys.
	assert.Contains(t, buf.String(), "I built format=sdist size=1.2 kB\n")
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		env   string
		level log.Level
		trace bool
	}{
		{"", log.ErrorLevel, false},
		{"bogus", log.ErrorLevel, false},
		{"INFO", log.InfoLevel, false},
		{"warn", log.WarnLevel, false},
		{"trace", log.DebugLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("DMPSETUP_LOG", tt.env)
			InitLogger()
			assert.Equal(t, tt.trace, traceEnabled)
			if l, ok := log.Log.(*log.Logger); ok {
				assert.Equal(t, tt.level, l.Level)
			}
		})
	}
}
