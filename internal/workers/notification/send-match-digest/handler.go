// internal/workers/notification/send-match-digest/handler.go
package sendmatchdigest

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

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-match-digest"
)

// EmailSender is satisfied by *aws.Mailer.
type EmailSender interface {
	Send(ctx context.Context, to, subject, textBody, htmlBody string) (string, error)
}

// SMSSender is satisfied by *aws.SMSSender.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config       *Config
	email        EmailSender
	sms          SMSSender
	validator    *validation.Validator
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler wires the digest worker. Either sender may be nil to disable its channel.
func NewHandler(config *Config, email EmailSender, sms SMSSender, validator *validation.Validator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		email:        email,
		sms:          sms,
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

// Execute renders the digest and sends it on every enabled channel that has a
// recipient. It fails only when every attempted channel fails.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := h.validateInput(input); err != nil {
		return nil, err
	}

	threshold := h.config.DefaultThreshold
	if input.Threshold != nil {
		threshold = *input.Threshold
	}

	d := buildDigest(input, threshold, h.config.MaxItems)
	output := &Output{
		DigestID: uuid.New().String(),
		Status:   StatusSkipped,
		Included: len(d.Items),
	}

	sendEmail := h.config.EmailEnabled && h.email != nil && input.RecipientEmail != ""
	sendSMS := h.config.SMSEnabled && h.sms != nil && input.RecipientPhone != ""

	if len(d.Items) == 0 || (!sendEmail && !sendSMS) {
		h.logger.Info("digest skipped", map[string]interface{}{
			"digestId":  output.DigestID,
			"personaId": input.PersonaID,
			"included":  len(d.Items),
			"threshold": threshold,
		})
		return output, nil
	}

	var (
		attempted int
		failed    []string
		lastErr   error
	)

	if sendEmail {
		attempted++
		id, err := h.sendEmail(ctx, input.RecipientEmail, d)
		if err != nil {
			failed = append(failed, "email")
			lastErr = err
		} else {
			output.EmailSent, output.EmailMessageID = true, id
		}
	}

	if sendSMS {
		attempted++
		id, err := h.sms.Send(ctx, input.RecipientPhone, d.sms())
		h.recordSend("sms", err)
		if err != nil {
			h.logger.Warn("digest sms failed", map[string]interface{}{
				"digestId": output.DigestID,
				"error":    err,
			})
			failed = append(failed, "sms")
			lastErr = err
		} else {
			output.SMSSent, output.SMSMessageID = true, id
		}
	}

	switch len(failed) {
	case 0:
		output.Status = StatusSent
	case attempted:
		return nil, errors.NewNotificationSendFailedError(strings.Join(failed, ","), lastErr)
	default:
		output.Status = StatusPartial
	}

	h.logger.Info("digest sent", map[string]interface{}{
		"digestId":  output.DigestID,
		"personaId": input.PersonaID,
		"status":    output.Status,
		"included":  output.Included,
	})
	return output, nil
}

func (h *Handler) sendEmail(ctx context.Context, to string, d digest) (string, error) {
	body, err := d.html()
	if err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	id, err := h.email.Send(ctx, to, d.subject(), d.text(), body)
	h.recordSend("email", err)
	if err != nil {
		h.logger.Warn("digest email failed", map[string]interface{}{
			"error": err,
		})
	}
	return id, err
}

func (h *Handler) recordSend(channel string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	metrics.NotificationsSent.WithLabelValues(channel, result).Inc()
}

func (h *Handler) validateInput(input *Input) error {
	if input == nil {
		return errors.NewInputValidationError("input is required")
	}
	if strings.TrimSpace(input.UserID) == "" || strings.TrimSpace(input.PersonaID) == "" {
		return errors.NewInputValidationError("userId and personaId are required")
	}
	if input.Threshold != nil && (*input.Threshold < 0 || *input.Threshold > 100) {
		return errors.NewInputValidationError("threshold must be between 0 and 100")
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
		"jobKey":   job.Key,
		"digestId": output.DigestID,
		"status":   output.Status,
	})
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, start time.Time) {
	bpmnErr := h.errorHandler.HandleJobError(ctx, client, job, err)
	metrics.ObserveJob(TaskType, bpmnErr.Code, time.Since(start).Seconds())
}
