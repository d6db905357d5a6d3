// internal/workers/matching/calculate-match-score/handler.go
package calculatematchscore

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
	TaskType = "calculate-match-score"
)

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

// Execute scores one job against inline preferences. A job the persona would
// never see (inactive or excluded company) is still scored but flagged.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil || input.Job == nil || input.Preferences == nil {
		return nil, errors.NewInputValidationError("job and preferences are required")
	}
	if strings.TrimSpace(input.Job.ID) == "" {
		return nil, errors.NewInputValidationError("job.id is required")
	}

	weights := input.Weights
	if weights == nil {
		weights = h.config.DefaultWeights
	}

	result := matching.ScoreJob(input.Job, input.Preferences, weights)
	eligible, _ := matching.FilterExcluded([]models.NormalizedJobRecord{*input.Job}, input.Preferences)

	return &Output{MatchResult: result, Excluded: len(eligible) == 0}, nil
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
		"jobKey":     job.Key,
		"jobId":      output.JobID,
		"matchScore": output.MatchScore,
	})
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, start time.Time) {
	bpmnErr := h.errorHandler.HandleJobError(ctx, client, job, err)
	metrics.ObserveJob(TaskType, bpmnErr.Code, time.Since(start).Seconds())
}
