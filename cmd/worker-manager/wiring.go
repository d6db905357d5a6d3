// cmd/worker-manager/wiring.go
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"jobmatch-workers/internal/common/aws"
	"jobmatch-workers/internal/common/camunda"
	"jobmatch-workers/internal/common/config"
	"jobmatch-workers/internal/common/database"
	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/validation"
	"jobmatch-workers/internal/matching"
	"jobmatch-workers/internal/models"
	"jobmatch-workers/internal/stores"

	arr "jobmatch-workers/internal/workers/matching/apply-relevance-ranking"
	cms "jobmatch-workers/internal/workers/matching/calculate-match-score"
	mjp "jobmatch-workers/internal/workers/matching/match-jobs-for-persona"
	smd "jobmatch-workers/internal/workers/notification/send-match-digest"
)

// dependencies holds the connections opened at startup. search, redis, mailer and
// sms stay nil when their feature is not configured.
type dependencies struct {
	postgres *database.PostgresClient
	search   *database.ElasticsearchClient
	redis    *database.RedisClient
	mailer   *aws.Mailer
	sms      *aws.SMSSender
}

func (d *dependencies) initNotifications(ctx context.Context, ncfg config.NotificationConfig) error {
	awsCfg, err := aws.LoadConfig(ctx, ncfg.AWS.Region)
	if err != nil {
		return err
	}
	if ncfg.Email.Enabled {
		if ncfg.Email.FromEmail == "" {
			return fmt.Errorf("notifications.email.from_email is required when email is enabled")
		}
		d.mailer = aws.NewSESMailer(awsCfg, ncfg.Email.FromEmail)
	}
	if ncfg.SMS.Enabled {
		d.sms = aws.NewSNSSender(awsCfg, ncfg.SMS.SenderID)
	}
	return nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

type namedCheck struct {
	name string
	pinger
}

// ready checks every open dependency.
func (d *dependencies) ready(ctx context.Context, zeebe *camunda.Client) error {
	if zeebe != nil {
		if err := zeebe.HealthCheck(ctx); err != nil {
			return fmt.Errorf("zeebe: %w", err)
		}
	}
	var checks []namedCheck
	if d.postgres != nil {
		checks = append(checks, namedCheck{"postgres", d.postgres})
	}
	if d.search != nil {
		checks = append(checks, namedCheck{"elasticsearch", d.search})
	}
	if d.redis != nil {
		checks = append(checks, namedCheck{"redis", d.redis})
	}
	for _, c := range checks {
		if err := c.Ping(ctx); err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
	}
	return nil
}

func defaultWeights(w config.WeightsConfig) *models.FactorWeights {
	weights := &models.FactorWeights{
		Skill:    w.Skill,
		Title:    w.Title,
		Salary:   w.Salary,
		Remote:   w.Remote,
		Location: w.Location,
		Industry: w.Industry,
	}
	if weights.Sum() <= 0 {
		return nil
	}
	return weights
}

// buildEngine selects the job source and wraps the persona and weight stores in the
// Redis cache when a TTL is configured.
func buildEngine(cfg *config.Config, deps *dependencies, log logger.Logger) *matching.Engine {
	db := deps.postgres.DB

	var personas matching.PersonaStore = stores.NewPostgresPersonaStore(db)
	var weights matching.WeightStore = stores.NewPostgresWeightStore(db)

	var jobs matching.JobStore = stores.NewPostgresJobStore(db)
	if cfg.Matching.JobSource == config.JobSourceElasticsearch && deps.search != nil {
		jobs = stores.NewElasticsearchJobStore(deps.search.Client, deps.search.JobsIndex)
	}

	if ttl := config.GetDuration(cfg.Matching.CacheTTL); ttl > 0 && deps.redis != nil {
		personas = stores.NewCachedPersonaStore(personas, deps.redis.Client, ttl, log)
		weights = stores.NewCachedWeightStore(weights, deps.redis.Client, ttl, log)
	}

	return matching.NewEngine(matching.Config{
		DefaultLimit:      cfg.Matching.DefaultLimit,
		MaxCandidates:     cfg.Matching.MaxCandidates,
		Parallelism:       cfg.Matching.Parallelism,
		ParallelThreshold: cfg.Matching.ParallelThreshold,
		DefaultWeights:    defaultWeights(cfg.Matching.DefaultWeights),
	}, personas, jobs, weights, log)
}

type registeredHandler struct {
	taskType string
	handler  camunda.JobHandler
}

func workerTimeout(cfg *config.Config, taskType string) time.Duration {
	return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
}

func buildHandlers(cfg *config.Config, engine *matching.Engine, deps *dependencies, validator *validation.Validator, log logger.Logger) []registeredHandler {
	matchCfg := mjp.LoadConfig()
	matchCfg.Timeout = workerTimeout(cfg, mjp.TaskType)

	scoreCfg := cms.LoadConfig()
	scoreCfg.Timeout = workerTimeout(cfg, cms.TaskType)
	scoreCfg.DefaultWeights = defaultWeights(cfg.Matching.DefaultWeights)

	rankCfg := arr.LoadConfig()
	rankCfg.Timeout = workerTimeout(cfg, arr.TaskType)
	rankCfg.DefaultLimit = cfg.Matching.DefaultLimit

	digestCfg := smd.LoadConfig(cfg.Notifications)
	digestCfg.Timeout = workerTimeout(cfg, smd.TaskType)

	// Typed nil pointers must not reach the sender interfaces.
	var email smd.EmailSender
	if deps.mailer != nil {
		email = deps.mailer
	}
	var sms smd.SMSSender
	if deps.sms != nil {
		sms = deps.sms
	}

	return []registeredHandler{
		{mjp.TaskType, mjp.NewHandler(matchCfg, engine, validator, log)},
		{cms.TaskType, cms.NewHandler(scoreCfg, validator, log)},
		{arr.TaskType, arr.NewHandler(rankCfg, validator, log)},
		{smd.TaskType, smd.NewHandler(digestCfg, email, sms, validator, log)},
	}
}

// JobRecorder is satisfied by *observability.Observability.
type JobRecorder interface {
	RecordJobProcessed(ctx context.Context, taskType, status string)
	RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string)
}

// instrumentedHandler records every handled job on the OpenTelemetry meters.
type instrumentedHandler struct {
	next     camunda.JobHandler
	taskType string
	obs      JobRecorder
}

func (h *instrumentedHandler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.next.Handle(client, job)

	ctx := context.Background()
	h.obs.RecordJobProcessed(ctx, h.taskType, "handled")
	h.obs.RecordJobDuration(ctx, h.taskType, time.Since(start), "handled")
}
