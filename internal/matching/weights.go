package matching

import (
	"math"

	"jobmatch-workers/internal/models"
)

// DefaultWeights is used when no weights are supplied or the supplied set sums to zero.
var DefaultWeights = models.FactorWeights{
	Skill:    0.30,
	Title:    0.10,
	Salary:   0.20,
	Remote:   0.15,
	Location: 0.15,
	Industry: 0.10,
}

// ResolveWeights returns a weight set that sums to 1.0. Negative, NaN and infinite
// entries count as zero. A nil or all-zero input resolves to DefaultWeights.
func ResolveWeights(w *models.FactorWeights) models.FactorWeights {
	return resolveWeights(w, DefaultWeights)
}

func resolveWeights(w *models.FactorWeights, fallback models.FactorWeights) models.FactorWeights {
	if w == nil {
		return normalizeWeights(fallback, DefaultWeights)
	}
	return normalizeWeights(*w, fallback)
}

func normalizeWeights(w, fallback models.FactorWeights) models.FactorWeights {
	clean := models.FactorWeights{
		Skill:    sanitizeWeight(w.Skill),
		Title:    sanitizeWeight(w.Title),
		Salary:   sanitizeWeight(w.Salary),
		Remote:   sanitizeWeight(w.Remote),
		Location: sanitizeWeight(w.Location),
		Industry: sanitizeWeight(w.Industry),
	}
	sum := clean.Sum()
	if math.IsInf(sum, 1) {
		// Finite weights near MaxFloat64 overflow the sum; rescale by the largest first.
		clean = scaleWeights(clean, maxWeight(clean))
		sum = clean.Sum()
	}
	if sum <= 0 {
		if fallback == DefaultWeights {
			return DefaultWeights
		}
		return normalizeWeights(fallback, DefaultWeights)
	}
	return scaleWeights(clean, sum)
}

func scaleWeights(w models.FactorWeights, by float64) models.FactorWeights {
	return models.FactorWeights{
		Skill:    w.Skill / by,
		Title:    w.Title / by,
		Salary:   w.Salary / by,
		Remote:   w.Remote / by,
		Location: w.Location / by,
		Industry: w.Industry / by,
	}
}

func maxWeight(w models.FactorWeights) float64 {
	return math.Max(
		math.Max(math.Max(w.Skill, w.Title), math.Max(w.Salary, w.Remote)),
		math.Max(w.Location, w.Industry),
	)
}

func sanitizeWeight(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
