package matching

import "jobmatch-workers/internal/models"

// ScoreJob runs the six factor scorers, the aggregator and the explanation generator
// for a single job. Exclusion is not applied.
func ScoreJob(job *models.NormalizedJobRecord, prefs *models.PersonaPreferences, weights *models.FactorWeights) models.MatchResult {
	return scoreJob(job, newPersona(prefs), ResolveWeights(weights))
}

func scoreJob(job *models.NormalizedJobRecord, p *persona, w models.FactorWeights) models.MatchResult {
	outcomes := map[Factor]outcome{
		FactorSkill:    scoreSkills(skillIndex(job), p),
		FactorTitle:    scoreTitle(job, p),
		FactorSalary:   scoreSalary(job, p),
		FactorRemote:   scoreRemote(job, p),
		FactorLocation: scoreLocation(job, p),
		FactorIndustry: scoreIndustry(job, p),
	}
	factors := models.MatchFactors{
		SkillScore:    outcomes[FactorSkill].score,
		TitleScore:    outcomes[FactorTitle].score,
		SalaryScore:   outcomes[FactorSalary].score,
		RemoteScore:   outcomes[FactorRemote].score,
		LocationScore: outcomes[FactorLocation].score,
		IndustryScore: outcomes[FactorIndustry].score,
	}
	score := Aggregate(factors, w)

	return models.MatchResult{
		JobID:        job.ID,
		MatchScore:   score,
		MatchFactors: factors,
		Explanation:  explain(score, outcomes, w),
		PostedDate:   job.PostedDate,
	}
}

// Match runs exclusion, scoring and ranking over an already-loaded batch on the
// calling goroutine.
func Match(prefs *models.PersonaPreferences, jobs []models.NormalizedJobRecord, weights *models.FactorWeights, opts models.MatchOptions) []models.MatchResult {
	eligible, _ := FilterExcluded(jobs, prefs)
	p := newPersona(prefs)
	w := ResolveWeights(weights)

	results := make([]models.MatchResult, len(eligible))
	for i := range eligible {
		results[i] = scoreJob(&eligible[i], p, w)
	}
	return Rank(results, opts)
}
