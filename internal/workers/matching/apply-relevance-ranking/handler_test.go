package applyrelevanceranking

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{
		Timeout:      3 * time.Second,
		DefaultLimit: 2,
	}
}

func result(id string, score int, posted *time.Time) models.MatchResult {
	r := models.MatchResult{JobID: id, MatchScore: score, Explanation: "fit"}
	if posted != nil {
		r.PostedDate = models.NewDate(*posted)
	}
	return r
}

func jobIDs(results []models.MatchResult) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.JobID
	}
	return ids
}

func TestHandler_Execute(t *testing.T) {
	older := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	results := []models.MatchResult{
		result("job-c", 70, nil),
		result("job-a", 90, &older),
		result("job-b", 90, &newer),
		result("job-d", 40, nil),
		result("job-e", 70, nil),
	}

	tests := []struct {
		name           string
		input          *Input
		expectedCode   errors.ErrorCode
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:  "default limit from config",
			input: &Input{Results: results},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, []string{"job-b", "job-a"}, jobIDs(output.RankedResults))
				assert.Equal(t, 2, output.Count)
				assert.Equal(t, 5, output.Total)
			},
		},
		{
			name:  "ties on undated results fall back to job id",
			input: &Input{Results: results, Limit: 10, Offset: 2},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, []string{"job-c", "job-e", "job-d"}, jobIDs(output.RankedResults))
			},
		},
		{
			name:  "min score counts toward total",
			input: &Input{Results: results, MinScore: 70, Limit: 10},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 4, output.Total)
				assert.Equal(t, 4, output.Count)
				for _, r := range output.RankedResults {
					assert.GreaterOrEqual(t, r.MatchScore, 70)
				}
			},
		},
		{
			name:  "fractional min score keeps integer scores at or above it",
			input: &Input{Results: results, MinScore: 69.5, Limit: 10},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 4, output.Total)
				assert.Equal(t, []string{"job-b", "job-a", "job-c", "job-e"}, jobIDs(output.RankedResults))
			},
		},
		{
			name:         "limit above maximum",
			input:        &Input{Results: results, Limit: 501},
			expectedCode: errors.ErrCodeInvalidMatchOptions,
		},
		{
			name:  "offset past the end",
			input: &Input{Results: results, Offset: 10},
			validateOutput: func(t *testing.T, output *Output) {
				assert.NotNil(t, output.RankedResults)
				assert.Empty(t, output.RankedResults)
				assert.Equal(t, 5, output.Total)
			},
		},
		{
			name:  "no results",
			input: &Input{},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 0, output.Count)
				assert.NotNil(t, output.RankedResults)
			},
		},
		{
			name:         "result without job id",
			input:        &Input{Results: []models.MatchResult{result("", 10, nil)}},
			expectedCode: errors.ErrCodeInputValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(createTestConfig(), nil, logger.NewTestLogger(t))

			output, err := handler.Execute(context.Background(), tt.input)

			if tt.expectedCode != "" {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, tt.expectedCode))
				return
			}
			require.NoError(t, err)
			tt.validateOutput(t, output)
		})
	}
}

func TestHandler_ExecuteDoesNotReorderInput(t *testing.T) {
	input := &Input{Results: []models.MatchResult{result("job-2", 10, nil), result("job-1", 90, nil)}}
	handler := NewHandler(createTestConfig(), nil, logger.NewNoOpLogger())

	_, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "job-2", input.Results[0].JobID)
}

func TestHandler_ExecuteDecodesDateOnlyPostedDates(t *testing.T) {
	variables := `{
		"results": [
			{"jobId": "job-undated", "matchScore": 80, "explanation": "fit"},
			{"jobId": "job-old", "matchScore": 80, "explanation": "fit", "postedDate": "2026-09-01"},
			{"jobId": "job-new", "matchScore": 80, "explanation": "fit", "postedDate": "2026-10-01T12:00:00Z"}
		],
		"minScore": 50.5
	}`

	var input Input
	require.NoError(t, json.Unmarshal([]byte(variables), &input))

	handler := NewHandler(createTestConfig(), nil, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), &Input{Results: input.Results, MinScore: input.MinScore, Limit: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{"job-new", "job-old", "job-undated"}, jobIDs(output.RankedResults))
	assert.Equal(t, 2026, output.RankedResults[1].PostedDate.Year())
	assert.Equal(t, time.September, output.RankedResults[1].PostedDate.Month())
}
