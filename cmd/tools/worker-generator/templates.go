package main

var templates = map[string]string{
	"config.go":       configTemplate,
	"models.go":       modelsTemplate,
	"handler.go":      handlerTemplate,
	"handler_test.go": testTemplate,
}

const configTemplate = `package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: {{ .Timeout }},
	}
}
`

const modelsTemplate = `package {{ .PackageName }}

type Input struct {
{{- range .InputFields }}
	{{ .GoName }} {{ .GoType }} ` + "`json:\"{{ .JSONName }}{{ if .Optional }},omitempty{{ end }}\"`" + `
{{- end }}
}

type Output struct {
{{- range .OutputFields }}
	{{ .GoName }} {{ .GoType }} ` + "`json:\"{{ .JSONName }}\"`" + `
{{- end }}
}
`

const handlerTemplate = `package {{ .PackageName }}

import (
	"context"
	"encoding/json"
	"fmt"
{{- if .Required }}
	"strings"
{{- end }}
	"time"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/metrics"
	"jobmatch-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "{{ .TaskType }}"
)

// Handler runs {{ .Name }}: {{ .Description }}
type Handler struct {
	config       *Config
	validator    *validation.Validator
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, validator *validation.Validator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		validator:    validator,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	if h.validator != nil {
		if err := h.validator.ValidateVariables(TaskType, job.Variables); err != nil {
			h.failJob(ctx, client, job, err, start)
			return
		}
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, errors.NewInputValidationError(fmt.Sprintf("parse input: %v", err)), start)
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err, start)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.ObserveJob(TaskType, "", time.Since(start).Seconds())
}

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInputValidationError("input is required")
	}
{{- range .Required }}
	if strings.TrimSpace(input.{{ .GoName }}) == "" {
		return nil, errors.NewInputValidationError("{{ .JSONName }} is required")
	}
{{- end }}

	return &Output{}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}

	h.logger.Info("job completed", map[string]interface{}{
		"jobKey": job.Key,
	})
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, start time.Time) {
	bpmnErr := h.errorHandler.HandleJobError(ctx, client, job, err)
	metrics.ObserveJob(TaskType, bpmnErr.Code, time.Since(start).Seconds())
}
`

const testTemplate = `package {{ .PackageName }}

import (
	"context"
	"testing"
	"time"

{{ if .Required }}	"jobmatch-workers/internal/common/errors"
{{ end }}	"jobmatch-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}

func TestHandler_Execute(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
{{- range .Required }}
		{{ .GoName }}: "value",
{{- end }}
	})
	require.NoError(t, err)
	assert.NotNil(t, output)
}
{{- if .Required }}

func TestHandler_Execute_MissingFields(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInputValidationFailed))
}
{{- end }}
`
