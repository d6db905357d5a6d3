// internal/stores/weight_store.go
package stores

import (
	"context"
	"database/sql"
	stderrors "errors"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/models"
)

// A persona-specific row sorts before the user-wide row (persona_id IS NULL).
const tunerWeightsQuery = `
		SELECT skill_weight, title_weight, salary_weight,
		       remote_weight, location_weight, industry_weight
		FROM tuner_weights
		WHERE user_id = $1 AND (persona_id = $2 OR persona_id IS NULL)
		ORDER BY persona_id NULLS LAST
		LIMIT 1`

// PostgresWeightStore reads weights produced by the relevance tuner.
type PostgresWeightStore struct {
	db *sql.DB
}

func NewPostgresWeightStore(db *sql.DB) *PostgresWeightStore {
	return &PostgresWeightStore{db: db}
}

// GetTunerWeights returns nil, nil when no weights are stored for the user.
func (s *PostgresWeightStore) GetTunerWeights(ctx context.Context, userID, personaID string) (*models.FactorWeights, error) {
	var w models.FactorWeights
	err := s.db.QueryRowContext(ctx, tunerWeightsQuery, userID, personaID).Scan(
		&w.Skill, &w.Title, &w.Salary, &w.Remote, &w.Location, &w.Industry,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewWeightStoreFailedError(err)
	}
	return &w, nil
}
