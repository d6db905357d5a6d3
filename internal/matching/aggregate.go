package matching

import (
	"math"

	"jobmatch-workers/internal/models"
)

// Aggregate combines factor scores under resolved weights into a 0-100 match score.
func Aggregate(f models.MatchFactors, w models.FactorWeights) int {
	total := w.Skill*float64(f.SkillScore) +
		w.Title*float64(f.TitleScore) +
		w.Salary*float64(f.SalaryScore) +
		w.Remote*float64(f.RemoteScore) +
		w.Location*float64(f.LocationScore) +
		w.Industry*float64(f.IndustryScore)

	score := int(math.Round(total))
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	}
	return score
}
