// internal/stores/job_store.go
package stores

import (
	"context"
	"database/sql"
	"fmt"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/models"
)

const candidateJobsQuery = `
		SELECT id, title, company, location, remote_type,
		       salary_min, salary_max, keywords, description, industry,
		       is_active, posted_date
		FROM jobs
		WHERE is_active = true
		ORDER BY posted_date DESC NULLS LAST, id ASC
		LIMIT $1`

// PostgresJobStore reads candidate jobs from the jobs table.
type PostgresJobStore struct {
	db *sql.DB
}

func NewPostgresJobStore(db *sql.DB) *PostgresJobStore {
	return &PostgresJobStore{db: db}
}

// GetActiveCandidateJobs returns up to filter.Limit active jobs, newest first.
// A non-positive limit falls back to defaultCandidateLimit.
func (s *PostgresJobStore) GetActiveCandidateJobs(ctx context.Context, filter models.CandidateFilter) ([]models.NormalizedJobRecord, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultCandidateLimit
	}
	rows, err := s.db.QueryContext(ctx, candidateJobsQuery, limit)
	if err != nil {
		return nil, errors.NewJobStoreFailedError(err)
	}
	defer rows.Close()

	jobs := make([]models.NormalizedJobRecord, 0)
	for rows.Next() {
		var (
			job                              models.NormalizedJobRecord
			location, remote, desc, industry sql.NullString
			salaryMin, salaryMax             sql.NullInt64
			keywords                         []byte
			posted                           sql.NullTime
		)
		if err := rows.Scan(
			&job.ID, &job.Title, &job.Company, &location, &remote,
			&salaryMin, &salaryMax, &keywords, &desc, &industry,
			&job.IsActive, &posted,
		); err != nil {
			return nil, errors.NewJobStoreFailedError(err)
		}

		job.Location = nullStringPtr(location)
		job.Description = nullStringPtr(desc)
		job.Industry = nullStringPtr(industry)
		job.SalaryMin = nullIntPtr(salaryMin)
		job.SalaryMax = nullIntPtr(salaryMax)
		if remote.Valid {
			rt := models.RemoteType(remote.String)
			job.RemoteType = &rt
		}
		if posted.Valid {
			job.PostedDate = models.NewDate(posted.Time)
		}
		if err := decodeStringArray(keywords, &job.Keywords); err != nil {
			return nil, errors.NewJobStoreFailedError(fmt.Errorf("decode keywords for job %s: %w", job.ID, err))
		}

		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewJobStoreFailedError(err)
	}
	return jobs, nil
}
