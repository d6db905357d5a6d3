package validation

import (
	"fmt"
	"sort"
	"strings"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/pkg/registry"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validator checks job variables against the input schemas of registered activities.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewValidator compiles the input schema of every activity in reg.
func NewValidator(reg *registry.ActivityRegistry) (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(reg.Activities))}
	for _, a := range reg.Activities {
		if len(a.InputSchema) == 0 {
			continue
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(a.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("compile input schema for %s: %w", a.TaskType, err)
		}
		v.schemas[a.TaskType] = schema
	}
	return v, nil
}

// Validate checks raw JSON variables for taskType. Task types without a schema pass.
func (v *Validator) Validate(taskType, variables string) (*ValidationResult, error) {
	schema, ok := v.schemas[taskType]
	if !ok {
		return &ValidationResult{Valid: true}, nil
	}
	result, err := schema.Validate(gojsonschema.NewStringLoader(variables))
	if err != nil {
		return nil, fmt.Errorf("validate %s input: %w", taskType, err)
	}
	return toValidationResult(result), nil
}

// ValidateVariables is Validate folded into a single error suitable for failing a job.
func (v *Validator) ValidateVariables(taskType, variables string) error {
	result, err := v.Validate(taskType, variables)
	if err != nil {
		return errors.NewInputValidationError(err.Error())
	}
	if !result.Valid {
		return errors.NewInputValidationError(result.Summary())
	}
	return nil
}

// ValidateInput validates an arbitrary Go value against a JSON schema document.
func ValidateInput(input interface{}, schema map[string]interface{}) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(input))
	if err != nil {
		return nil, err
	}
	return toValidationResult(result), nil
}

func toValidationResult(result *gojsonschema.Result) *ValidationResult {
	out := &ValidationResult{Valid: result.Valid()}
	for _, e := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
			Code:    strings.ToUpper(e.Type()),
		})
	}
	sort.Slice(out.Errors, func(i, j int) bool {
		if out.Errors[i].Field != out.Errors[j].Field {
			return out.Errors[i].Field < out.Errors[j].Field
		}
		return out.Errors[i].Code < out.Errors[j].Code
	})
	return out
}

// Summary renders the errors as "field: message; ...".
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}
