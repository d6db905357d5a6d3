// internal/workers/matching/apply-relevance-ranking/models.go
package applyrelevanceranking

import "jobmatch-workers/internal/models"

type Input struct {
	Results  []models.MatchResult `json:"results"`
	MinScore float64              `json:"minScore,omitempty"`
	Limit    int                  `json:"limit,omitempty"`
	Offset   int                  `json:"offset,omitempty"`
}

type Output struct {
	RankedResults []models.MatchResult `json:"rankedResults"`
	Count         int                  `json:"count"`
	// Total is the number of results at or above minScore before pagination.
	Total int `json:"total"`
}
