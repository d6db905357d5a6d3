package validation

import (
	"testing"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator(registry.Builtin())
	require.NoError(t, err)
	return v
}

func TestValidator_MatchJobsForPersona(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name      string
		variables string
		valid     bool
		fields    []string
	}{
		{
			name:      "valid minimal input",
			variables: `{"userId":"u-1","personaId":"p-1"}`,
			valid:     true,
		},
		{
			name:      "extra process variables are allowed",
			variables: `{"userId":"u-1","personaId":"p-1","limit":10,"offset":0,"minScore":40,"traceId":"abc"}`,
			valid:     true,
		},
		{
			name:      "fractional minScore",
			variables: `{"userId":"u-1","personaId":"p-1","minScore":72.5}`,
			valid:     true,
		},
		{
			name:      "missing persona",
			variables: `{"userId":"u-1"}`,
			valid:     false,
			fields:    []string{"(root)"},
		},
		{
			name:      "minScore out of range",
			variables: `{"userId":"u-1","personaId":"p-1","minScore":150}`,
			valid:     false,
			fields:    []string{"minScore"},
		},
		{
			name:      "negative offset and string limit",
			variables: `{"userId":"u-1","personaId":"p-1","offset":-1,"limit":"ten"}`,
			valid:     false,
			fields:    []string{"limit", "offset"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.Validate(registry.TaskMatchJobsForPersona, tt.variables)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)

			var fields []string
			for _, e := range result.Errors {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestValidator_ValidateVariables(t *testing.T) {
	v := newTestValidator(t)

	err := v.ValidateVariables(registry.TaskCalculateMatchScore, `{"preferences":{}}`)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInputValidationFailed))

	err = v.ValidateVariables(registry.TaskCalculateMatchScore, `{"job":{"id":"j-1","salaryMin":null},"preferences":{"remotePreference":"remote"}}`)
	assert.NoError(t, err)

	err = v.ValidateVariables(registry.TaskCalculateMatchScore, `not json`)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInputValidationFailed))

	assert.NoError(t, v.ValidateVariables("unregistered-task", `{}`))
}

func TestValidator_SendMatchDigestPhonePattern(t *testing.T) {
	v := newTestValidator(t)

	result, err := v.Validate(registry.TaskSendMatchDigest, `{"userId":"u","personaId":"p","matches":[],"recipientPhone":"555-1234"}`)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Summary(), "recipientPhone")
}

func TestValidateInput(t *testing.T) {
	schema := map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"jobId"},
	}
	result, err := ValidateInput(map[string]interface{}{"matchScore": 10}, schema)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 1)
}
