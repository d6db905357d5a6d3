// internal/workers/matching/calculate-match-score/models.go
package calculatematchscore

import "jobmatch-workers/internal/models"

type Input struct {
	Job         *models.NormalizedJobRecord `json:"job"`
	Preferences *models.PersonaPreferences  `json:"preferences"`
	Weights     *models.FactorWeights       `json:"weights,omitempty"`
}

type Output struct {
	models.MatchResult
	Excluded bool `json:"excluded"`
}
