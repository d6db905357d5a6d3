package calculatematchscore

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
		Timeout: 3 * time.Second,
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func createTestJob() *models.NormalizedJobRecord {
	remote := models.RemoteTypeRemote
	return &models.NormalizedJobRecord{
		ID:         "job-1",
		Title:      "Senior Backend Engineer",
		Company:    "Initech",
		RemoteType: &remote,
		SalaryMin:  intPtr(120000),
		SalaryMax:  intPtr(150000),
		Keywords:   []string{"go", "postgresql", "kafka"},
		IsActive:   true,
	}
}

func createTestPreferences() *models.PersonaPreferences {
	return &models.PersonaPreferences{
		RequiredSkills:   []string{"Go", "PostgreSQL"},
		JobTitleKeywords: []string{"backend"},
		MinSalary:        intPtr(110000),
		MaxSalary:        intPtr(160000),
		RemotePreference: models.RemoteTypeRemote,
	}
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		config         *Config
		input          *Input
		expectedCode   errors.ErrorCode
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:   "perfect fit",
			config: createTestConfig(),
			input:  &Input{Job: createTestJob(), Preferences: createTestPreferences()},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, "job-1", output.JobID)
				assert.Equal(t, 100, output.MatchScore)
				assert.False(t, output.Excluded)
				assert.Contains(t, output.Explanation, "Strong match")
			},
		},
		{
			name:   "explicit weights override defaults",
			config: createTestConfig(),
			input: func() *Input {
				job := createTestJob()
				job.RemoteType = nil
				return &Input{Job: job, Preferences: createTestPreferences(), Weights: &models.FactorWeights{Remote: 1}}
			}(),
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 50, output.MatchScore)
				assert.Equal(t, 50, output.MatchFactors.RemoteScore)
			},
		},
		{
			name:   "configured default weights",
			config: &Config{Timeout: time.Second, DefaultWeights: &models.FactorWeights{Title: 1}},
			input: func() *Input {
				job := createTestJob()
				job.Title = "Data Scientist"
				return &Input{Job: job, Preferences: createTestPreferences()}
			}(),
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 0, output.MatchScore)
				assert.Equal(t, 100, output.MatchFactors.SkillScore)
			},
		},
		{
			name:   "excluded company is flagged",
			config: createTestConfig(),
			input: func() *Input {
				prefs := createTestPreferences()
				prefs.ExcludedCompanies = []string{"initech"}
				return &Input{Job: createTestJob(), Preferences: prefs}
			}(),
			validateOutput: func(t *testing.T, output *Output) {
				assert.True(t, output.Excluded)
			},
		},
		{
			name:   "sparse job uses neutral scores",
			config: createTestConfig(),
			input: &Input{
				Job:         &models.NormalizedJobRecord{ID: "job-2", Company: "Hooli", IsActive: true, Description: strPtr("")},
				Preferences: createTestPreferences(),
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, models.MatchFactors{
					SkillScore:    50,
					TitleScore:    50,
					SalaryScore:   50,
					RemoteScore:   50,
					LocationScore: 100,
					IndustryScore: 100,
				}, output.MatchFactors)
			},
		},
		{
			name:         "missing job",
			config:       createTestConfig(),
			input:        &Input{Preferences: createTestPreferences()},
			expectedCode: errors.ErrCodeInputValidationFailed,
		},
		{
			name:         "blank job id",
			config:       createTestConfig(),
			input:        &Input{Job: &models.NormalizedJobRecord{ID: " "}, Preferences: createTestPreferences()},
			expectedCode: errors.ErrCodeInputValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(tt.config, nil, logger.NewTestLogger(t))

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

func TestOutput_FlattensMatchResult(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, logger.NewNoOpLogger())
	output, err := handler.Execute(context.Background(), &Input{Job: createTestJob(), Preferences: createTestPreferences()})
	require.NoError(t, err)

	data, err := json.Marshal(output)
	require.NoError(t, err)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &vars))
	assert.Equal(t, "job-1", vars["jobId"])
	assert.Contains(t, vars, "matchScore")
	assert.Contains(t, vars, "matchFactors")
	assert.Contains(t, vars, "excluded")
}

func TestHandler_ExecuteAcceptsDateOnlyPostedDate(t *testing.T) {
	variables := `{
		"job": {"id": "job-1", "title": "Go Developer", "company": "Initech", "keywords": ["go"],
			"isActive": true, "postedDate": "2026-10-01"},
		"preferences": {"requiredSkills": ["Go"]}
	}`

	var input Input
	require.NoError(t, json.Unmarshal([]byte(variables), &input))

	handler := NewHandler(createTestConfig(), nil, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), &input)
	require.NoError(t, err)

	require.True(t, output.PostedDate.Known())
	assert.True(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC).Equal(output.PostedDate.Time))
	assert.Equal(t, 100, output.MatchFactors.SkillScore)
}
