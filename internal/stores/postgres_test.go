package stores

import (
	"context"
	"database/sql"
	stderrors "errors"
	"testing"
	"time"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var personaColumns = []string{
	"id", "user_id", "name",
	"required_skills", "nice_to_have_skills", "job_title_keywords",
	"min_salary", "max_salary", "remote_preference",
	"locations", "industries", "excluded_companies",
}

var jobColumns = []string{
	"id", "title", "company", "location", "remote_type",
	"salary_min", "salary_max", "keywords", "description", "industry",
	"is_active", "posted_date",
}

func TestPostgresPersonaStore_GetPersonaWithPreferences(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(mock sqlmock.Sqlmock)
		expectedCode   errors.ErrorCode
		validateOutput func(t *testing.T, prefs *models.PersonaPreferences)
	}{
		{
			name: "persona with preferences",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(personaColumns).AddRow(
					"persona-1", "user-1", "Backend",
					[]byte(`["Go","PostgreSQL"]`), []byte(`["Kubernetes"]`), []byte(`["backend"]`),
					int64(120000), nil, "remote",
					[]byte(`["Berlin"]`), nil, []byte(`["Globex"]`),
				)
				mock.ExpectQuery(`FROM personas p\s+LEFT JOIN persona_preferences pp`).
					WithArgs("persona-1", "user-1").
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, prefs *models.PersonaPreferences) {
				assert.Equal(t, "persona-1", prefs.PersonaID)
				assert.Equal(t, "user-1", prefs.UserID)
				assert.Equal(t, "Backend", prefs.Name)
				assert.Equal(t, []string{"Go", "PostgreSQL"}, prefs.RequiredSkills)
				assert.Equal(t, []string{"Kubernetes"}, prefs.NiceToHaveSkills)
				require.NotNil(t, prefs.MinSalary)
				assert.Equal(t, 120000, *prefs.MinSalary)
				assert.Nil(t, prefs.MaxSalary)
				assert.Equal(t, models.RemoteTypeRemote, prefs.RemotePreference)
				assert.Equal(t, []string{}, prefs.Industries)
				assert.Equal(t, []string{"Globex"}, prefs.ExcludedCompanies)
			},
		},
		{
			name: "persona without a preference row",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(personaColumns).AddRow(
					"persona-1", "user-1", nil,
					nil, nil, nil, nil, nil, nil, nil, nil, nil,
				)
				mock.ExpectQuery(`FROM personas p`).WithArgs("persona-1", "user-1").WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, prefs *models.PersonaPreferences) {
				assert.Empty(t, prefs.RequiredSkills)
				assert.Empty(t, prefs.Locations)
				assert.Equal(t, models.RemoteType(""), prefs.RemotePreference)
			},
		},
		{
			name: "unknown persona",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM personas p`).WithArgs("persona-1", "user-1").WillReturnError(sql.ErrNoRows)
			},
			expectedCode: errors.ErrCodePersonaNotFound,
		},
		{
			name: "database failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM personas p`).WithArgs("persona-1", "user-1").WillReturnError(stderrors.New("connection reset"))
			},
			expectedCode: errors.ErrCodePersonaStoreFailed,
		},
		{
			name: "corrupt JSONB column",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(personaColumns).AddRow(
					"persona-1", "user-1", "x",
					[]byte(`{"not":"an array"}`), nil, nil, nil, nil, nil, nil, nil, nil,
				)
				mock.ExpectQuery(`FROM personas p`).WithArgs("persona-1", "user-1").WillReturnRows(rows)
			},
			expectedCode: errors.ErrCodePersonaStoreFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setupMock(mock)

			prefs, err := NewPostgresPersonaStore(db).GetPersonaWithPreferences(context.Background(), "user-1", "persona-1")

			if tt.expectedCode != "" {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, tt.expectedCode), "got %v", err)
				assert.Nil(t, prefs)
			} else {
				require.NoError(t, err)
				tt.validateOutput(t, prefs)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresJobStore_GetActiveCandidateJobs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	posted := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(jobColumns).
		AddRow("job-1", "Backend Engineer", "Initech", "Berlin", "remote",
			int64(100000), int64(140000), []byte(`["go","postgres"]`), "Build APIs", "fintech",
			true, posted).
		AddRow("job-2", "Designer", "Globex", nil, nil,
			nil, nil, nil, nil, nil,
			true, nil)

	mock.ExpectQuery(`FROM jobs\s+WHERE is_active = true\s+ORDER BY posted_date DESC NULLS LAST, id ASC\s+LIMIT \$1`).
		WithArgs(250).
		WillReturnRows(rows)

	jobs, err := NewPostgresJobStore(db).GetActiveCandidateJobs(context.Background(), models.CandidateFilter{Limit: 250})
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	first := jobs[0]
	assert.Equal(t, "job-1", first.ID)
	assert.Equal(t, "Berlin", *first.Location)
	assert.Equal(t, models.RemoteTypeRemote, *first.RemoteType)
	assert.Equal(t, 100000, *first.SalaryMin)
	assert.Equal(t, []string{"go", "postgres"}, first.Keywords)
	assert.True(t, first.IsActive)
	assert.True(t, posted.Equal(first.PostedDate.Time))

	second := jobs[1]
	assert.Nil(t, second.Location)
	assert.Nil(t, second.RemoteType)
	assert.Nil(t, second.SalaryMax)
	assert.Nil(t, second.PostedDate)
	assert.Equal(t, []string{}, second.Keywords)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresJobStore_DefaultLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, limit := range []int{0, -3} {
		mock.ExpectQuery(`FROM jobs`).
			WithArgs(defaultCandidateLimit).
			WillReturnRows(sqlmock.NewRows(jobColumns).AddRow("job-1", "Backend Engineer", "Initech", nil, nil,
				nil, nil, nil, nil, nil, true, nil))

		jobs, err := NewPostgresJobStore(db).GetActiveCandidateJobs(context.Background(), models.CandidateFilter{Limit: limit})
		require.NoError(t, err)
		assert.Len(t, jobs, 1)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresJobStore_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM jobs`).WithArgs(10).WillReturnError(stderrors.New("too many connections"))

	jobs, err := NewPostgresJobStore(db).GetActiveCandidateJobs(context.Background(), models.CandidateFilter{Limit: 10})
	assert.Nil(t, jobs)
	assert.True(t, errors.HasCode(err, errors.ErrCodeJobStoreFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresWeightStore_GetTunerWeights(t *testing.T) {
	columns := []string{"skill_weight", "title_weight", "salary_weight", "remote_weight", "location_weight", "industry_weight"}

	t.Run("stored weights", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM tuner_weights\s+WHERE user_id = \$1 AND \(persona_id = \$2 OR persona_id IS NULL\)`).
			WithArgs("user-1", "persona-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(0.5, 0.1, 0.1, 0.1, 0.1, 0.1))

		w, err := NewPostgresWeightStore(db).GetTunerWeights(context.Background(), "user-1", "persona-1")
		require.NoError(t, err)
		assert.Equal(t, &models.FactorWeights{Skill: 0.5, Title: 0.1, Salary: 0.1, Remote: 0.1, Location: 0.1, Industry: 0.1}, w)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no weights", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM tuner_weights`).WithArgs("user-1", "persona-1").WillReturnRows(sqlmock.NewRows(columns))

		w, err := NewPostgresWeightStore(db).GetTunerWeights(context.Background(), "user-1", "persona-1")
		assert.NoError(t, err)
		assert.Nil(t, w)
	})

	t.Run("database failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM tuner_weights`).WithArgs("user-1", "persona-1").WillReturnError(stderrors.New("boom"))

		w, err := NewPostgresWeightStore(db).GetTunerWeights(context.Background(), "user-1", "persona-1")
		assert.Nil(t, w)
		assert.True(t, errors.HasCode(err, errors.ErrCodeWeightStoreFailed))
	})
}
