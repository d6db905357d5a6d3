package matching

import (
	"math"
	"strings"

	"jobmatch-workers/internal/models"
)

// NeutralScore is returned by every scorer when the data needed to compare is missing.
const NeutralScore = 50

const (
	requiredSkillPoints = 70.0
	niceSkillPoints     = 30.0

	salaryOverlapFloor  = 30.0
	salaryDisjointCeil  = 30.0
	salaryGapScaleRatio = 0.10

	remoteAdjacentScore = 60
	remoteOppositeScore = 20
)

// outcome is a factor score plus the evidence the explanation generator renders.
type outcome struct {
	score   int
	reason  reason
	matched []string
	detail  string
}

type reason int

const (
	reasonNoPreference reason = iota
	reasonUnknown
	reasonFull
	reasonPartial
	reasonNone
	reasonBelow
	reasonAbove
	reasonRemoteAnywhere
)

// ScoreSkills scores job keywords and description against required and
// nice-to-have skills.
func ScoreSkills(job *models.NormalizedJobRecord, prefs *models.PersonaPreferences) int {
	return scoreSkills(skillIndex(job), newPersona(prefs)).score
}

// ScoreTitle scores how many title keywords appear in the job title.
func ScoreTitle(job *models.NormalizedJobRecord, prefs *models.PersonaPreferences) int {
	return scoreTitle(job, newPersona(prefs)).score
}

// ScoreSalary scores the overlap between the job and persona salary bands.
func ScoreSalary(job *models.NormalizedJobRecord, prefs *models.PersonaPreferences) int {
	return scoreSalary(job, newPersona(prefs)).score
}

// ScoreRemote scores the job's work arrangement against the remote preference.
func ScoreRemote(job *models.NormalizedJobRecord, prefs *models.PersonaPreferences) int {
	return scoreRemote(job, newPersona(prefs)).score
}

// ScoreLocation scores the job location against the persona's locations.
func ScoreLocation(job *models.NormalizedJobRecord, prefs *models.PersonaPreferences) int {
	return scoreLocation(job, newPersona(prefs)).score
}

// ScoreIndustry scores how many preferred industries the job mentions.
func ScoreIndustry(job *models.NormalizedJobRecord, prefs *models.PersonaPreferences) int {
	return scoreIndustry(job, newPersona(prefs)).score
}

func scoreSkills(idx textIndex, p *persona) outcome {
	if len(p.required) == 0 && len(p.niceToHave) == 0 {
		return outcome{score: 100, reason: reasonNoPreference}
	}
	if idx.empty {
		return outcome{score: NeutralScore, reason: reasonUnknown}
	}

	matchedRequired := matchTerms(idx, p.required)
	matchedNice := matchTerms(idx, p.niceToHave)

	// An empty list is "no preference" and earns its full share.
	requiredPart := requiredSkillPoints
	if len(p.required) > 0 {
		requiredPart = requiredSkillPoints * float64(len(matchedRequired)) / float64(len(p.required))
	}
	nicePart := niceSkillPoints
	if len(p.niceToHave) > 0 {
		nicePart = niceSkillPoints * float64(len(matchedNice)) / float64(len(p.niceToHave))
	}
	score := clampScore(requiredPart + nicePart)

	out := outcome{score: score}
	switch {
	case len(p.required) > 0 && len(matchedRequired) == len(p.required):
		out.reason = reasonFull
		out.matched = labels(matchedRequired)
	case len(matchedRequired) > 0:
		out.reason = reasonPartial
		out.matched = labels(matchedRequired)
		out.detail = "required skills"
	case len(matchedNice) > 0:
		out.reason = reasonPartial
		out.matched = labels(matchedNice)
		out.detail = "nice-to-have skills"
	default:
		out.reason = reasonNone
	}
	return out
}

func matchTerms(idx textIndex, terms []term) []term {
	var matched []term
	for _, t := range terms {
		if idx.contains(t.key) {
			matched = append(matched, t)
		}
	}
	return matched
}

func scoreTitle(job *models.NormalizedJobRecord, p *persona) outcome {
	if len(p.titleKeywords) == 0 {
		return outcome{score: NeutralScore, reason: reasonNoPreference}
	}
	title := normalizeTerm(job.Title)
	if title == "" {
		return outcome{score: NeutralScore, reason: reasonUnknown}
	}

	var matched []term
	for _, kw := range p.titleKeywords {
		if strings.Contains(title, kw.key) {
			matched = append(matched, kw)
		}
	}
	out := outcome{
		score:   clampScore(100 * float64(len(matched)) / float64(len(p.titleKeywords))),
		matched: labels(matched),
	}
	switch {
	case len(matched) == len(p.titleKeywords):
		out.reason = reasonFull
	case len(matched) > 0:
		out.reason = reasonPartial
	default:
		out.reason = reasonNone
	}
	return out
}

// scoreSalary compares [jmin,jmax] against [pmin,pmax]. A single job bound is treated
// as a point band; a missing persona bound is open-ended.
func scoreSalary(job *models.NormalizedJobRecord, p *persona) outcome {
	if job.SalaryMin == nil && job.SalaryMax == nil {
		return outcome{score: NeutralScore, reason: reasonUnknown}
	}
	if p.minSalary == nil && p.maxSalary == nil {
		return outcome{score: NeutralScore, reason: reasonNoPreference}
	}

	jmin, jmax := salaryBand(job.SalaryMin, job.SalaryMax)
	pmin, pmax := 0.0, math.Inf(1)
	if p.minSalary != nil {
		pmin = float64(*p.minSalary)
	}
	if p.maxSalary != nil {
		pmax = float64(*p.maxSalary)
	}
	if pmin > pmax {
		pmin, pmax = pmax, pmin
	}

	if jmin >= pmin && jmax <= pmax {
		return outcome{score: 100, reason: reasonFull}
	}

	if jmax < pmin {
		return outcome{score: disjointSalaryScore(pmin-jmax, pmin), reason: reasonBelow}
	}
	if jmin > pmax {
		return outcome{score: disjointSalaryScore(jmin-pmax, pmax), reason: reasonAbove}
	}

	overlap := math.Min(jmax, pmax) - math.Max(jmin, pmin)
	width := pmax - pmin
	if math.IsInf(pmax, 1) || p.minSalary == nil {
		width = jmax - jmin
	}
	ratio := 1.0
	if width > 0 {
		ratio = math.Min(1, overlap/width)
	}
	out := outcome{
		score:  clampScore(salaryOverlapFloor + (100-salaryOverlapFloor)*ratio),
		reason: reasonPartial,
	}
	if out.score == 100 {
		out.reason = reasonFull
	}
	return out
}

func salaryBand(min, max *int) (float64, float64) {
	switch {
	case min == nil:
		return float64(*max), float64(*max)
	case max == nil:
		return float64(*min), float64(*min)
	}
	lo, hi := float64(*min), float64(*max)
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// disjointSalaryScore decays towards 0 as the gap grows, relative to the persona bound.
func disjointSalaryScore(gap, reference float64) int {
	scale := math.Max(math.Abs(reference)*salaryGapScaleRatio, 1)
	return clampScore(salaryDisjointCeil / (1 + gap/scale))
}

func scoreRemote(job *models.NormalizedJobRecord, p *persona) outcome {
	if p.remote == models.RemoteTypeAny {
		return outcome{score: 100, reason: reasonNoPreference}
	}
	if job.RemoteType == nil {
		return outcome{score: NeutralScore, reason: reasonUnknown}
	}
	jobType, ok := models.ParseRemoteType(string(*job.RemoteType))
	if !ok || jobType == models.RemoteTypeAny {
		return outcome{score: NeutralScore, reason: reasonUnknown}
	}

	out := outcome{detail: string(jobType)}
	switch {
	case jobType == p.remote:
		out.score, out.reason = 100, reasonFull
	case jobType == models.RemoteTypeHybrid || p.remote == models.RemoteTypeHybrid:
		out.score, out.reason = remoteAdjacentScore, reasonPartial
	default:
		out.score, out.reason = remoteOppositeScore, reasonNone
	}
	return out
}

func scoreLocation(job *models.NormalizedJobRecord, p *persona) outcome {
	if len(p.locations) == 0 {
		return outcome{score: 100, reason: reasonNoPreference}
	}
	if job.RemoteType != nil {
		if rt, ok := models.ParseRemoteType(string(*job.RemoteType)); ok && rt == models.RemoteTypeRemote {
			return outcome{score: 100, reason: reasonRemoteAnywhere}
		}
	}
	location := normalizeTerm(deref(job.Location))
	if location == "" {
		return outcome{score: NeutralScore, reason: reasonUnknown}
	}
	for _, loc := range p.locations {
		if strings.Contains(location, loc.key) {
			return outcome{score: 100, reason: reasonFull, detail: strings.TrimSpace(*job.Location)}
		}
	}
	return outcome{score: 0, reason: reasonNone}
}

func scoreIndustry(job *models.NormalizedJobRecord, p *persona) outcome {
	if len(p.industries) == 0 {
		return outcome{score: 100, reason: reasonNoPreference}
	}
	// The company name counts as a hint ("Acme Fintech").
	if strings.TrimSpace(deref(job.Description)) == "" &&
		strings.TrimSpace(deref(job.Industry)) == "" &&
		strings.TrimSpace(job.Company) == "" {
		return outcome{score: NeutralScore, reason: reasonUnknown}
	}

	idx := newTextIndex(deref(job.Description), job.Company, deref(job.Industry))
	matched := matchTerms(idx, p.industries)
	out := outcome{
		score:   clampScore(100 * float64(len(matched)) / float64(len(p.industries))),
		matched: labels(matched),
	}
	switch {
	case len(matched) == len(p.industries):
		out.reason = reasonFull
	case len(matched) > 0:
		out.reason = reasonPartial
	default:
		out.reason = reasonNone
	}
	return out
}

func clampScore(v float64) int {
	if math.IsNaN(v) {
		return NeutralScore
	}
	r := int(math.Round(v))
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return r
}
