// pkg/registry/activities.go
package registry

const (
	TaskMatchJobsForPersona   = "match-jobs-for-persona"
	TaskCalculateMatchScore   = "calculate-match-score"
	TaskApplyRelevanceRanking = "apply-relevance-ranking"
	TaskSendMatchDigest       = "send-match-digest"
)

// nullableStringArray accepts null for slices that were never set.
func nullableStringArray() map[string]interface{} {
	return map[string]interface{}{"type": []interface{}{"array", "null"}, "items": map[string]interface{}{"type": "string"}}
}

func nullableInteger() map[string]interface{} {
	return map[string]interface{}{"type": []interface{}{"integer", "null"}}
}

func nullableString() map[string]interface{} {
	return map[string]interface{}{"type": []interface{}{"string", "null"}}
}

func paginationProperties() map[string]interface{} {
	return map[string]interface{}{
		"minScore": map[string]interface{}{"type": "number", "minimum": 0, "maximum": 100},
		"limit":    map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 500},
		"offset":   map[string]interface{}{"type": "integer", "minimum": 0},
	}
}

func preferencesSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"requiredSkills":    nullableStringArray(),
			"niceToHaveSkills":  nullableStringArray(),
			"jobTitleKeywords":  nullableStringArray(),
			"minSalary":         nullableInteger(),
			"maxSalary":         nullableInteger(),
			"remotePreference":  map[string]interface{}{"type": "string", "enum": []interface{}{"remote", "hybrid", "onsite", "any", ""}},
			"locations":         nullableStringArray(),
			"industries":        nullableStringArray(),
			"excludedCompanies": nullableStringArray(),
		},
	}
}

func jobSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"id"},
		"properties": map[string]interface{}{
			"id":          map[string]interface{}{"type": "string", "minLength": 1},
			"title":       map[string]interface{}{"type": "string"},
			"company":     map[string]interface{}{"type": "string"},
			"location":    nullableString(),
			"remoteType":  nullableString(),
			"salaryMin":   nullableInteger(),
			"salaryMax":   nullableInteger(),
			"keywords":    nullableStringArray(),
			"description": nullableString(),
			"industry":    nullableString(),
			"isActive":    map[string]interface{}{"type": "boolean"},
			"postedDate":  nullableString(),
		},
	}
}

func weightsSchema() map[string]interface{} {
	weight := map[string]interface{}{"type": "number", "minimum": 0}
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"skill": weight, "title": weight, "salary": weight,
			"remote": weight, "location": weight, "industry": weight,
		},
	}
}

func matchResultSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"jobId", "matchScore"},
		"properties": map[string]interface{}{
			"jobId":       map[string]interface{}{"type": "string", "minLength": 1},
			"matchScore":  map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 100},
			"explanation": map[string]interface{}{"type": "string"},
			"postedDate":  nullableString(),
		},
	}
}

func withProperties(base map[string]interface{}, required []interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"required":   required,
		"properties": base,
	}
}

// Builtin returns the registry describing every task type this service handles.
func Builtin() *ActivityRegistry {
	matchProps := paginationProperties()
	matchProps["userId"] = map[string]interface{}{"type": "string", "minLength": 1}
	matchProps["personaId"] = map[string]interface{}{"type": "string", "minLength": 1}

	rankProps := paginationProperties()
	rankProps["results"] = map[string]interface{}{"type": "array", "items": matchResultSchema()}

	return &ActivityRegistry{
		Version:     "1.0.0",
		LastUpdated: "2026-10-01",
		Activities: []Activity{
			{
				ID:                   "match-jobs-for-persona",
				DisplayName:          "Match Jobs For Persona",
				Description:          "Loads a persona and its candidate jobs, then scores, ranks and paginates them",
				Category:             "matching",
				Version:              "1.0.0",
				TaskType:             TaskMatchJobsForPersona,
				ImplementationStatus: StatusCompleted,
				InputSchema:          withProperties(matchProps, []interface{}{"userId", "personaId"}),
				ErrorCodes:           []string{"PERSONA_NOT_FOUND", "PERSONA_STORE_FAILED", "JOB_STORE_FAILED", "INPUT_VALIDATION_FAILED"},
				Timeout:              "30s",
				Retries:              3,
				Workflows:            []string{"job-discovery"},
				Tags:                 []string{"matching", "ranking"},
			},
			{
				ID:                   "calculate-match-score",
				DisplayName:          "Calculate Match Score",
				Description:          "Scores a single job against inline persona preferences",
				Category:             "matching",
				Version:              "1.0.0",
				TaskType:             TaskCalculateMatchScore,
				ImplementationStatus: StatusCompleted,
				InputSchema: withProperties(map[string]interface{}{
					"job":         jobSchema(),
					"preferences": preferencesSchema(),
					"weights":     weightsSchema(),
				}, []interface{}{"job", "preferences"}),
				ErrorCodes: []string{"INPUT_VALIDATION_FAILED"},
				Timeout:    "10s",
				Retries:    0,
				Workflows:  []string{"job-discovery"},
				Tags:       []string{"matching", "scoring"},
			},
			{
				ID:                   "apply-relevance-ranking",
				DisplayName:          "Apply Relevance Ranking",
				Description:          "Filters, orders and paginates previously scored match results",
				Category:             "matching",
				Version:              "1.0.0",
				TaskType:             TaskApplyRelevanceRanking,
				ImplementationStatus: StatusCompleted,
				InputSchema:          withProperties(rankProps, []interface{}{"results"}),
				ErrorCodes:           []string{"INPUT_VALIDATION_FAILED"},
				Timeout:              "10s",
				Retries:              0,
				Workflows:            []string{"job-discovery"},
				Tags:                 []string{"matching", "ranking"},
			},
			{
				ID:                   "send-match-digest",
				DisplayName:          "Send Match Digest",
				Description:          "Sends the top matches above a threshold by email and SMS",
				Category:             "notification",
				Version:              "1.0.0",
				TaskType:             TaskSendMatchDigest,
				ImplementationStatus: StatusCompleted,
				InputSchema: withProperties(map[string]interface{}{
					"userId":         map[string]interface{}{"type": "string", "minLength": 1},
					"personaId":      map[string]interface{}{"type": "string", "minLength": 1},
					"recipientEmail": map[string]interface{}{"type": "string", "format": "email"},
					"recipientPhone": map[string]interface{}{"type": "string", "pattern": "^\\+[1-9][0-9]{6,14}$"},
					"threshold":      map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 100},
					"matches":        map[string]interface{}{"type": "array", "items": matchResultSchema()},
				}, []interface{}{"userId", "personaId", "matches"}),
				ErrorCodes: []string{"NOTIFICATION_SEND_FAILED", "INPUT_VALIDATION_FAILED"},
				Timeout:    "30s",
				Retries:    3,
				Workflows:  []string{"job-discovery"},
				Tags:       []string{"notification", "email", "sms"},
			},
		},
	}
}
