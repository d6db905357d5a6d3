// internal/stores/persona_store.go
package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/models"
)

const personaQuery = `
		SELECT p.id, p.user_id, p.name,
		       pp.required_skills, pp.nice_to_have_skills, pp.job_title_keywords,
		       pp.min_salary, pp.max_salary, pp.remote_preference,
		       pp.locations, pp.industries, pp.excluded_companies
		FROM personas p
		LEFT JOIN persona_preferences pp ON pp.persona_id = p.id
		WHERE p.id = $1 AND p.user_id = $2`

// PostgresPersonaStore reads personas and their preference rows.
type PostgresPersonaStore struct {
	db *sql.DB
}

func NewPostgresPersonaStore(db *sql.DB) *PostgresPersonaStore {
	return &PostgresPersonaStore{db: db}
}

// GetPersonaWithPreferences loads personaID only if it belongs to userID. A persona
// without a preference row yields empty preferences.
func (s *PostgresPersonaStore) GetPersonaWithPreferences(ctx context.Context, userID, personaID string) (*models.PersonaPreferences, error) {
	var (
		prefs                             models.PersonaPreferences
		name, remote                      sql.NullString
		minSalary, maxSalary              sql.NullInt64
		required, nice, titles            []byte
		locations, industries, exclusions []byte
	)

	err := s.db.QueryRowContext(ctx, personaQuery, personaID, userID).Scan(
		&prefs.PersonaID, &prefs.UserID, &name,
		&required, &nice, &titles,
		&minSalary, &maxSalary, &remote,
		&locations, &industries, &exclusions,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewPersonaNotFoundError(userID, personaID)
	}
	if err != nil {
		return nil, errors.NewPersonaStoreFailedError(err)
	}

	prefs.Name = name.String
	prefs.RemotePreference = models.RemoteType(remote.String)
	prefs.MinSalary = nullIntPtr(minSalary)
	prefs.MaxSalary = nullIntPtr(maxSalary)

	lists := []struct {
		column string
		raw    []byte
		dst    *[]string
	}{
		{"required_skills", required, &prefs.RequiredSkills},
		{"nice_to_have_skills", nice, &prefs.NiceToHaveSkills},
		{"job_title_keywords", titles, &prefs.JobTitleKeywords},
		{"locations", locations, &prefs.Locations},
		{"industries", industries, &prefs.Industries},
		{"excluded_companies", exclusions, &prefs.ExcludedCompanies},
	}
	for _, l := range lists {
		if err := decodeStringArray(l.raw, l.dst); err != nil {
			return nil, errors.NewPersonaStoreFailedError(fmt.Errorf("decode %s: %w", l.column, err))
		}
	}

	return &prefs, nil
}

// decodeStringArray unmarshals a JSONB array. NULL leaves dst empty.
func decodeStringArray(raw []byte, dst *[]string) error {
	*dst = []string{}
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
