package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"jobmatch-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ExportThenValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registry.json")
	var out bytes.Buffer

	require.NoError(t, run([]string{"export", "-path", path}, &out))
	assert.Contains(t, out.String(), "Exported 4 activities")

	out.Reset()
	require.NoError(t, run([]string{"validate", "-path", path}, &out))
	assert.Contains(t, out.String(), "Found 4 activities")
}

func TestRun_Update(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, run([]string{"export", "-path", path}, &bytes.Buffer{}))

	require.NoError(t, run([]string{"update", "-path", path, "-taskType", registry.TaskSendMatchDigest, "-field", "retries", "-value", "5"}, &bytes.Buffer{}))

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	a, ok := reg.Find(registry.TaskSendMatchDigest)
	require.True(t, ok)
	assert.Equal(t, 5, a.Retries)

	err = run([]string{"update", "-path", path, "-taskType", registry.TaskSendMatchDigest, "-field", "timeout", "-value", "soon"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "invalid timeout")

	err = run([]string{"update", "-path", path, "-taskType", registry.TaskSendMatchDigest, "-field", "status", "-value", "done"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, `invalid status "done"`)

	require.NoError(t, run([]string{"update", "-path", path, "-taskType", registry.TaskSendMatchDigest, "-field", "status", "-value", registry.StatusDeprecated}, &bytes.Buffer{}))

	err = run([]string{"update", "-path", path, "-taskType", "unknown-task", "-field", "status", "-value", "done"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "not found")
}

func TestRun_ValidateRejectsBrokenRegistry(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "empty",
			content: `{"version":"1.0.0","activities":[]}`,
			wantErr: "no activities",
		},
		{
			name:    "bad timeout",
			content: `{"activities":[{"id":"a","taskType":"match-jobs-for-persona","timeout":"later"}]}`,
			wantErr: "invalid timeout",
		},
		{
			name:    "missing builtin task",
			content: `{"activities":[{"id":"a","taskType":"match-jobs-for-persona","timeout":"30s"}]}`,
			wantErr: "calculate-match-score is missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			err := run([]string{"validate", "-path", path}, &bytes.Buffer{})
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"publish"}, &out)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "Usage: registry-updater")
}
