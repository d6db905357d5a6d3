package matching

import "jobmatch-workers/internal/models"

// persona is a normalised, read-only view of PersonaPreferences built once per request.
type persona struct {
	required      []term
	niceToHave    []term
	titleKeywords []term
	locations     []term
	industries    []term
	minSalary     *int
	maxSalary     *int
	remote        models.RemoteType
}

func newPersona(prefs *models.PersonaPreferences) *persona {
	if prefs == nil {
		return &persona{remote: models.RemoteTypeAny}
	}
	remote, ok := models.ParseRemoteType(string(prefs.RemotePreference))
	if !ok {
		remote = models.RemoteTypeAny
	}
	return &persona{
		required:      newTerms(prefs.RequiredSkills),
		niceToHave:    newTerms(prefs.NiceToHaveSkills),
		titleKeywords: newTerms(prefs.JobTitleKeywords),
		locations:     newTerms(prefs.Locations),
		industries:    newTerms(prefs.Industries),
		minSalary:     prefs.MinSalary,
		maxSalary:     prefs.MaxSalary,
		remote:        remote,
	}
}
