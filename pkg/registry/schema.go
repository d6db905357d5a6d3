// pkg/registry/schema.go
package registry

// Implementation states an activity moves through.
const (
	StatusPlanned    = "planned"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusDeprecated = "deprecated"
)

// ValidStatus reports whether s is a known implementation status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusDeprecated:
		return true
	}
	return false
}

// ActivityRegistry is the catalogue of task types the workers serve, persisted
// as configs/activity-registry.json.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one task type. InputSchema is a JSON Schema document that
// job variables are validated against before a handler runs.
type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema,omitempty"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows,omitempty"`
	Tags                 []string               `json:"tags,omitempty"`
}
