// internal/workers/matching/match-jobs-for-persona/handler.go
package matchjobsforpersona

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/metrics"
	"jobmatch-workers/internal/common/validation"
	"jobmatch-workers/internal/matching"
	"jobmatch-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "match-jobs-for-persona"
)

// Matcher is satisfied by *matching.Engine.
type Matcher interface {
	MatchJobsForPersona(ctx context.Context, userID, personaID string, opts models.MatchOptions) ([]models.MatchResult, error)
}

type Handler struct {
	config       *Config
	matcher      Matcher
	validator    *validation.Validator
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, matcher Matcher, validator *validation.Validator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		matcher:      matcher,
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

// Execute matches jobs for the persona. A missing persona surfaces as
// PERSONA_NOT_FOUND so the workflow can branch on it.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	opts := models.MatchOptions{
		MinScore: input.MinScore,
		Limit:    input.Limit,
		Offset:   input.Offset,
	}
	if err := matching.ValidateOptions(opts); err != nil {
		return nil, err
	}

	matches, err := h.matcher.MatchJobsForPersona(ctx, input.UserID, input.PersonaID, opts)
	if err != nil {
		return nil, err
	}

	return &Output{
		UserID:    input.UserID,
		PersonaID: input.PersonaID,
		Matches:   matches,
		Count:     len(matches),
	}, nil
}

func validateInput(input *Input) error {
	if input == nil {
		return errors.NewInputValidationError("input cannot be nil")
	}
	if strings.TrimSpace(input.UserID) == "" {
		return errors.NewInputValidationError("userId is required")
	}
	if strings.TrimSpace(input.PersonaID) == "" {
		return errors.NewInputValidationError("personaId is required")
	}
	return nil
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
		"jobKey":    job.Key,
		"personaId": output.PersonaID,
		"count":     output.Count,
	})
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, start time.Time) {
	bpmnErr := h.errorHandler.HandleJobError(ctx, client, job, err)
	metrics.ObserveJob(TaskType, bpmnErr.Code, time.Since(start).Seconds())
}
