package matching

import (
	"fmt"
	"sort"
	"strings"

	"jobmatch-workers/internal/models"
)

type Factor string

const (
	FactorSkill    Factor = "skill"
	FactorTitle    Factor = "title"
	FactorSalary   Factor = "salary"
	FactorRemote   Factor = "remote"
	FactorLocation Factor = "location"
	FactorIndustry Factor = "industry"
)

// factorOrder also breaks ties between equal contributions.
var factorOrder = []Factor{FactorSkill, FactorTitle, FactorSalary, FactorRemote, FactorLocation, FactorIndustry}

const maxListedTerms = 3

// phrases is the factor -> reason rule table. "%s" receives the matched terms or detail.
var phrases = map[Factor]map[reason]string{
	FactorSkill: {
		reasonNoPreference: "no specific skills are required",
		reasonUnknown:      "skill fit could not be assessed from the posting",
		reasonFull:         "all required skills match (%s)",
		reasonPartial:      "matches %s",
		reasonNone:         "none of the listed skills appear in the posting",
	},
	FactorTitle: {
		reasonNoPreference: "no title keywords are set",
		reasonUnknown:      "the posting has no title",
		reasonFull:         "title matches %s",
		reasonPartial:      "title partially matches (%s)",
		reasonNone:         "title does not match the target roles",
	},
	FactorSalary: {
		reasonNoPreference: "no salary range is set",
		reasonUnknown:      "salary is not listed",
		reasonFull:         "salary falls within the requested range",
		reasonPartial:      "salary partially overlaps the requested range",
		reasonBelow:        "salary is below the requested range",
		reasonAbove:        "salary is above the requested range",
	},
	FactorRemote: {
		reasonNoPreference: "open to any work arrangement",
		reasonUnknown:      "work arrangement is not specified",
		reasonFull:         "%s work arrangement matches",
		reasonPartial:      "%s arrangement partially fits the work preference",
		reasonNone:         "%s arrangement conflicts with the work preference",
	},
	FactorLocation: {
		reasonNoPreference:   "no location preference",
		reasonUnknown:        "location is not listed",
		reasonFull:           "located in %s",
		reasonNone:           "location is outside the preferred areas",
		reasonRemoteAnywhere: "remote role works from any location",
	},
	FactorIndustry: {
		reasonNoPreference: "no industry preference",
		reasonUnknown:      "industry could not be determined",
		reasonFull:         "matches preferred industries %s",
		reasonPartial:      "touches on %s",
		reasonNone:         "none of the preferred industries are mentioned",
	},
}

type contribution struct {
	factor  Factor
	value   float64
	outcome outcome
}

// explain renders a deterministic sentence from the two or three strongest factors.
// It never returns an empty string.
func explain(score int, outcomes map[Factor]outcome, w models.FactorWeights) string {
	contribs := make([]contribution, 0, len(factorOrder))
	for _, f := range factorOrder {
		o := outcomes[f]
		contribs = append(contribs, contribution{factor: f, value: weightOf(w, f) * float64(o.score), outcome: o})
	}
	sort.SliceStable(contribs, func(i, j int) bool {
		return contribs[i].value > contribs[j].value
	})

	selected := make([]string, 0, 3)
	for i, c := range contribs {
		if i >= 3 || c.value <= 0 {
			break
		}
		// A weak third factor adds noise.
		if i == 2 && c.value < contribs[1].value/2 {
			break
		}
		if p := renderPhrase(c.factor, c.outcome); p != "" {
			selected = append(selected, p)
		}
	}

	prefix := fitLevel(score) + " match"
	if len(selected) == 0 {
		return prefix + ": none of the weighted factors align with this persona."
	}
	return prefix + ": " + joinPhrases(selected) + "."
}

func renderPhrase(f Factor, o outcome) string {
	tmpl, ok := phrases[f][o.reason]
	if !ok {
		return ""
	}
	if !strings.Contains(tmpl, "%s") {
		return tmpl
	}
	arg := o.detail
	if len(o.matched) > 0 {
		arg = listTerms(o.matched)
		if o.detail != "" {
			arg = o.detail + " " + arg
		}
	}
	if arg == "" {
		return ""
	}
	return fmt.Sprintf(tmpl, arg)
}

func listTerms(terms []string) string {
	if len(terms) <= maxListedTerms {
		return strings.Join(terms, ", ")
	}
	return fmt.Sprintf("%s +%d more", strings.Join(terms[:maxListedTerms], ", "), len(terms)-maxListedTerms)
}

func joinPhrases(parts []string) string {
	switch len(parts) {
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

func fitLevel(score int) string {
	switch {
	case score >= 80:
		return "Strong"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Partial"
	}
	return "Weak"
}

func weightOf(w models.FactorWeights, f Factor) float64 {
	switch f {
	case FactorSkill:
		return w.Skill
	case FactorTitle:
		return w.Title
	case FactorSalary:
		return w.Salary
	case FactorRemote:
		return w.Remote
	case FactorLocation:
		return w.Location
	case FactorIndustry:
		return w.Industry
	}
	return 0
}
