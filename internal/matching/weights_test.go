package matching

import (
	"math"
	"testing"

	"jobmatch-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveWeights(t *testing.T) {
	tests := []struct {
		name     string
		input    *models.FactorWeights
		expected models.FactorWeights
	}{
		{
			name:     "nil uses defaults",
			input:    nil,
			expected: DefaultWeights,
		},
		{
			name:     "all zero uses defaults",
			input:    &models.FactorWeights{},
			expected: DefaultWeights,
		},
		{
			name:     "single factor",
			input:    &models.FactorWeights{Skill: 2},
			expected: models.FactorWeights{Skill: 1},
		},
		{
			name:     "scaled defaults",
			input:    &models.FactorWeights{Skill: 3, Title: 1, Salary: 2, Remote: 1.5, Location: 1.5, Industry: 1},
			expected: DefaultWeights,
		},
		{
			name:     "negative and NaN count as zero",
			input:    &models.FactorWeights{Skill: 1, Title: -4, Salary: math.NaN(), Remote: 1, Location: math.Inf(1)},
			expected: models.FactorWeights{Skill: 0.5, Remote: 0.5},
		},
		{
			name:     "huge finite weights do not overflow",
			input:    &models.FactorWeights{Skill: math.MaxFloat64, Title: math.MaxFloat64},
			expected: models.FactorWeights{Skill: 0.5, Title: 0.5},
		},
		{
			name:     "huge weight dwarfs the rest",
			input:    &models.FactorWeights{Skill: math.MaxFloat64, Title: math.MaxFloat64 / 2, Industry: 1},
			expected: models.FactorWeights{Skill: 2.0 / 3, Title: 1.0 / 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveWeights(tt.input)
			assert.InDelta(t, tt.expected.Skill, got.Skill, 1e-9)
			assert.InDelta(t, tt.expected.Title, got.Title, 1e-9)
			assert.InDelta(t, tt.expected.Salary, got.Salary, 1e-9)
			assert.InDelta(t, tt.expected.Remote, got.Remote, 1e-9)
			assert.InDelta(t, tt.expected.Location, got.Location, 1e-9)
			assert.InDelta(t, tt.expected.Industry, got.Industry, 1e-9)
			assert.InDelta(t, 1.0, got.Sum(), 1e-9)
		})
	}
}

func TestResolveWeights_CustomFallback(t *testing.T) {
	fallback := models.FactorWeights{Salary: 1, Remote: 1}

	got := resolveWeights(&models.FactorWeights{}, fallback)
	assert.InDelta(t, 0.5, got.Salary, 1e-9)
	assert.InDelta(t, 0.5, got.Remote, 1e-9)

	got = resolveWeights(nil, fallback)
	assert.InDelta(t, 0.5, got.Salary, 1e-9)
}

func TestAggregate(t *testing.T) {
	uniform := func(v int) models.MatchFactors {
		return models.MatchFactors{SkillScore: v, TitleScore: v, SalaryScore: v, RemoteScore: v, LocationScore: v, IndustryScore: v}
	}

	assert.Equal(t, 100, Aggregate(uniform(100), DefaultWeights))
	assert.Equal(t, 0, Aggregate(uniform(0), DefaultWeights))
	assert.Equal(t, 50, Aggregate(uniform(50), DefaultWeights))
	assert.Equal(t, 30, Aggregate(models.MatchFactors{SkillScore: 100}, DefaultWeights))

	// 0.3*70 + 0.1*50 + 0.2*58 + 0.15*60 + 0.15*100 + 0.1*0 = 61.6
	assert.Equal(t, 62, Aggregate(models.MatchFactors{
		SkillScore: 70, TitleScore: 50, SalaryScore: 58, RemoteScore: 60, LocationScore: 100,
	}, DefaultWeights))
}

func TestAggregate_ScaledWeightsGiveSameScore(t *testing.T) {
	f := models.MatchFactors{SkillScore: 84, TitleScore: 12, SalaryScore: 47, RemoteScore: 60, LocationScore: 0, IndustryScore: 100}
	scaled := models.FactorWeights{Skill: 30, Title: 10, Salary: 20, Remote: 15, Location: 15, Industry: 10}

	assert.Equal(t, Aggregate(f, DefaultWeights), Aggregate(f, ResolveWeights(&scaled)))
}
