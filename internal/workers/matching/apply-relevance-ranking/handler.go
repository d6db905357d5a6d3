// internal/workers/matching/apply-relevance-ranking/handler.go
package applyrelevanceranking

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
	TaskType = "apply-relevance-ranking"
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

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInputValidationError("input is required")
	}
	for i, r := range input.Results {
		if strings.TrimSpace(r.JobID) == "" {
			return nil, errors.NewInputValidationError(fmt.Sprintf("results[%d].jobId is required", i))
		}
	}

	opts := models.MatchOptions{
		MinScore: input.MinScore,
		Limit:    input.Limit,
		Offset:   input.Offset,
	}
	if err := matching.ValidateOptions(opts); err != nil {
		return nil, err
	}
	opts = matching.NormalizeOptions(opts, h.config.DefaultLimit)

	total := 0
	for _, r := range input.Results {
		if float64(r.MatchScore) >= opts.MinScore {
			total++
		}
	}

	ranked := matching.Rank(input.Results, opts)
	return &Output{
		RankedResults: ranked,
		Count:         len(ranked),
		Total:         total,
	}, nil
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
		"count":  output.Count,
		"total":  output.Total,
	})
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, start time.Time) {
	bpmnErr := h.errorHandler.HandleJobError(ctx, client, job, err)
	metrics.ObserveJob(TaskType, bpmnErr.Code, time.Since(start).Seconds())
}
