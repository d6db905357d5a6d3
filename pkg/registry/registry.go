// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// Save writes the registry as indented JSON.
func (r *ActivityRegistry) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Find returns the activity registered for taskType.
func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// Validate checks structural consistency: unique ids and task types, parseable
// timeouts, known statuses and object input schemas.
func (r *ActivityRegistry) Validate() []error {
	var errs []error
	ids := make(map[string]bool)
	taskTypes := make(map[string]bool)

	for _, a := range r.Activities {
		if a.ID == "" || a.TaskType == "" {
			errs = append(errs, fmt.Errorf("activity %q: id and taskType are required", a.DisplayName))
			continue
		}
		if ids[a.ID] {
			errs = append(errs, fmt.Errorf("activity %s: duplicate id", a.ID))
		}
		if taskTypes[a.TaskType] {
			errs = append(errs, fmt.Errorf("activity %s: duplicate taskType %s", a.ID, a.TaskType))
		}
		ids[a.ID] = true
		taskTypes[a.TaskType] = true

		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				errs = append(errs, fmt.Errorf("activity %s: invalid timeout %q", a.ID, a.Timeout))
			}
		}
		if a.ImplementationStatus != "" && !ValidStatus(a.ImplementationStatus) {
			errs = append(errs, fmt.Errorf("activity %s: unknown implementation status %q", a.ID, a.ImplementationStatus))
		}
		if len(a.InputSchema) > 0 && a.InputSchema["type"] != "object" {
			errs = append(errs, fmt.Errorf("activity %s: inputSchema must be an object schema", a.ID))
		}
	}
	return errs
}
