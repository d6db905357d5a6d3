package main

import (
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"jobmatch-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistry(t *testing.T, activities ...registry.Activity) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.json")
	reg := &registry.ActivityRegistry{Version: "1.0.0", Activities: activities}
	require.NoError(t, reg.Save(path))
	return path
}

func parseGenerated(t *testing.T, dir string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	for name := range templates {
		src, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		_, err = parser.ParseFile(token.NewFileSet(), name, src, parser.AllErrors)
		require.NoError(t, err, "generated %s does not parse:\n%s", name, src)
		files[name] = string(src)
	}
	return files
}

func TestRun_GeneratesWorkerFromRegistry(t *testing.T) {
	path := writeRegistry(t, registry.Activity{
		ID:          "archive-persona",
		DisplayName: "Archive Persona",
		Description: "Archives a persona and its match history",
		Category:    "matching",
		TaskType:    "archive-persona",
		Timeout:     "1500ms",
		InputSchema: map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"userId", "personaId"},
			"properties": map[string]interface{}{
				"userId":    map[string]interface{}{"type": "string"},
				"personaId": map[string]interface{}{"type": "string"},
				"reasons":   map[string]interface{}{"type": []interface{}{"array", "null"}, "items": map[string]interface{}{"type": "string"}},
				"force":     map[string]interface{}{"type": "boolean"},
			},
		},
		OutputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"archived": map[string]interface{}{"type": "integer"},
			},
		},
	})
	out := t.TempDir()
	var stdout bytes.Buffer

	require.NoError(t, run([]string{"-taskType", "archive-persona", "-registry", path, "-output", out}, &stdout))

	dir := filepath.Join(out, "matching", "archive-persona")
	files := parseGenerated(t, dir)
	assert.Contains(t, stdout.String(), "Worker scaffold for archive-persona")

	assert.Contains(t, files["config.go"], "Timeout: 1500 * time.Millisecond")
	assert.Contains(t, files["models.go"], "PersonaID string `json:\"personaId\"`")
	assert.Contains(t, files["models.go"], "Reasons []string `json:\"reasons,omitempty\"`")
	assert.Contains(t, files["models.go"], "Force bool `json:\"force,omitempty\"`")
	assert.Contains(t, files["models.go"], "Archived int `json:\"archived\"`")
	assert.Contains(t, files["handler.go"], `TaskType = "archive-persona"`)
	assert.Contains(t, files["handler.go"], `"userId is required"`)
	assert.Contains(t, files["handler_test.go"], "TestHandler_Execute_MissingFields")
}

func TestRun_GeneratesBuiltinWorker(t *testing.T) {
	out := t.TempDir()

	require.NoError(t, run([]string{"-taskType", "calculate-match-score", "-output", out}, &bytes.Buffer{}))

	files := parseGenerated(t, filepath.Join(out, "matching", "calculate-match-score"))
	assert.Contains(t, files["handler.go"], "package calculatematchscore")
	assert.NotContains(t, files["handler_test.go"], "MissingFields")
}

func TestRun_RefusesToOverwrite(t *testing.T) {
	out := t.TempDir()
	args := []string{"-taskType", "apply-relevance-ranking", "-output", out}

	require.NoError(t, run(args, &bytes.Buffer{}))

	err := run(args, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, run(append(args, "-force"), &bytes.Buffer{}))
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing task type", args: nil, want: "taskType is required"},
		{name: "unknown task type", args: []string{"-taskType", "nope"}, want: `"nope" not found`},
		{name: "missing registry", args: []string{"-taskType", "x", "-registry", filepath.Join(t.TempDir(), "none.json")}, want: "load registry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGoName(t *testing.T) {
	assert.Equal(t, "PersonaID", goName("personaId"))
	assert.Equal(t, "MinScore", goName("minScore"))
	assert.Equal(t, "", goName(""))
}
