// internal/models/job.go
package models

// NormalizedJobRecord is a job posting in canonical form. Every pointer field may be
// nil; absence is treated as missing data, never as an error.
type NormalizedJobRecord struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Company     string      `json:"company"`
	Location    *string     `json:"location,omitempty"`
	RemoteType  *RemoteType `json:"remoteType,omitempty"`
	SalaryMin   *int        `json:"salaryMin,omitempty"`
	SalaryMax   *int        `json:"salaryMax,omitempty"`
	Keywords    []string    `json:"keywords"`
	Description *string     `json:"description,omitempty"`
	Industry    *string     `json:"industry,omitempty"`
	IsActive    bool        `json:"isActive"`
	PostedDate  *Date       `json:"postedDate,omitempty"`
}

// CandidateFilter narrows the candidate batch loaded from a job store.
type CandidateFilter struct {
	UserID        string   `json:"userId"`
	PersonaID     string   `json:"personaId"`
	Skills        []string `json:"skills,omitempty"`
	TitleKeywords []string `json:"titleKeywords,omitempty"`
	Limit         int      `json:"limit"`
}
