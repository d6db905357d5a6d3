// internal/workers/matching/match-jobs-for-persona/models.go
package matchjobsforpersona

import "jobmatch-workers/internal/models"

type Input struct {
	UserID    string  `json:"userId"`
	PersonaID string  `json:"personaId"`
	MinScore  float64 `json:"minScore"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
}

type Output struct {
	UserID    string               `json:"userId"`
	PersonaID string               `json:"personaId"`
	Matches   []models.MatchResult `json:"matches"`
	Count     int                  `json:"count"`
}
