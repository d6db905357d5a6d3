// internal/models/match.go
package models

// FactorWeights holds the relative importance of each scoring factor.
type FactorWeights struct {
	Skill    float64 `json:"skill"`
	Title    float64 `json:"title"`
	Salary   float64 `json:"salary"`
	Remote   float64 `json:"remote"`
	Location float64 `json:"location"`
	Industry float64 `json:"industry"`
}

// Sum returns the total of all six weights.
func (w FactorWeights) Sum() float64 {
	return w.Skill + w.Title + w.Salary + w.Remote + w.Location + w.Industry
}

type MatchFactors struct {
	SkillScore    int `json:"skillScore"`
	TitleScore    int `json:"titleScore"`
	SalaryScore   int `json:"salaryScore"`
	RemoteScore   int `json:"remoteScore"`
	LocationScore int `json:"locationScore"`
	IndustryScore int `json:"industryScore"`
}

type MatchResult struct {
	JobID        string       `json:"jobId"`
	MatchScore   int          `json:"matchScore"`
	MatchFactors MatchFactors `json:"matchFactors"`
	Explanation  string       `json:"explanation"`
	// PostedDate is carried so results can be re-ranked with the same tie-break.
	PostedDate   *Date        `json:"postedDate,omitempty"`
}

// MatchOptions controls filtering and pagination of a ranked result set.
type MatchOptions struct {
	MinScore float64 `json:"minScore"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
}
