// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewFansOut(t *testing.T) {
	var stderr bytes.Buffer
	file := filepath.Join(t.TempDir(), "settree.log")

	logger, closeLog, err := New(Options{Level: "debug", Stderr: &stderr, File: file})
	require.NoError(t, err)
	logger.Debug("node created", "path", "GLOBAL/A")
	require.NoError(t, closeLog())

	assert.Contains(t, stderr.String(), "node created")
	assert.Contains(t, stderr.String(), "path=GLOBAL/A")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &record))
	assert.Equal(t, "node created", record["msg"])
	assert.Equal(t, "GLOBAL/A", record["path"])
}

func TestNewRespectsLevel(t *testing.T) {
	var stderr bytes.Buffer
	logger, closeLog, err := New(Options{Level: "warn", Stderr: &stderr})
	require.NoError(t, err)
	defer closeLog()

	logger.Info("quiet")
	logger.Warn("loud")
	assert.NotContains(t, stderr.String(), "quiet")
	assert.Contains(t, stderr.String(), "loud")
}

func TestNewWithoutSinks(t *testing.T) {
	logger, closeLog, err := New(Options{})
	require.NoError(t, err)
	defer closeLog()
	logger.Info("discarded")
}
