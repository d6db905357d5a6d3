// internal/models/persona.go
package models

import "strings"

type RemoteType string

const (
	RemoteTypeRemote RemoteType = "remote"
	RemoteTypeHybrid RemoteType = "hybrid"
	RemoteTypeOnsite RemoteType = "onsite"
	RemoteTypeAny    RemoteType = "any"
)

// ParseRemoteType maps free-form values ("On-site", "REMOTE ") onto a RemoteType.
// The second return value is false for anything unrecognised.
func ParseRemoteType(value string) (RemoteType, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "remote":
		return RemoteTypeRemote, true
	case "hybrid":
		return RemoteTypeHybrid, true
	case "onsite", "on-site", "on_site", "office":
		return RemoteTypeOnsite, true
	case "any", "":
		return RemoteTypeAny, true
	default:
		return "", false
	}
}

// PersonaPreferences is a persona's hiring preference profile. Empty slices mean
// "no preference" for that dimension.
type PersonaPreferences struct {
	PersonaID         string     `json:"personaId"`
	UserID            string     `json:"userId"`
	Name              string     `json:"name,omitempty"`
	RequiredSkills    []string   `json:"requiredSkills"`
	NiceToHaveSkills  []string   `json:"niceToHaveSkills"`
	JobTitleKeywords  []string   `json:"jobTitleKeywords"`
	MinSalary         *int       `json:"minSalary,omitempty"`
	MaxSalary         *int       `json:"maxSalary,omitempty"`
	RemotePreference  RemoteType `json:"remotePreference,omitempty"`
	Locations         []string   `json:"locations"`
	Industries        []string   `json:"industries"`
	ExcludedCompanies []string   `json:"excludedCompanies"`
}
