package matching

import (
	"strings"

	"jobmatch-workers/internal/models"
)

// ExclusionStats counts why jobs were dropped before scoring.
type ExclusionStats struct {
	Inactive int `json:"inactive"`
	Company  int `json:"company"`
}

// Total returns the number of excluded jobs.
func (s ExclusionStats) Total() int {
	return s.Inactive + s.Company
}

// FilterExcluded drops inactive jobs and jobs whose company matches an excluded
// company (case-insensitive, exact or substring). The input slice is not modified.
func FilterExcluded(jobs []models.NormalizedJobRecord, prefs *models.PersonaPreferences) ([]models.NormalizedJobRecord, ExclusionStats) {
	var excluded []term
	if prefs != nil {
		excluded = newTerms(prefs.ExcludedCompanies)
	}

	var stats ExclusionStats
	kept := make([]models.NormalizedJobRecord, 0, len(jobs))
	for _, job := range jobs {
		if !job.IsActive {
			stats.Inactive++
			continue
		}
		if companyExcluded(job.Company, excluded) {
			stats.Company++
			continue
		}
		kept = append(kept, job)
	}
	return kept, stats
}

func companyExcluded(company string, excluded []term) bool {
	if len(excluded) == 0 {
		return false
	}
	name := normalizeTerm(company)
	if name == "" {
		return false
	}
	for _, ex := range excluded {
		if strings.Contains(name, ex.key) {
			return true
		}
	}
	return false
}
