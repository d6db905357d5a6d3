package matching

import (
	"context"
	"time"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/metrics"
	"jobmatch-workers/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "jobmatch-workers/internal/matching"

// PersonaStore loads a persona scoped to its owner. A missing or foreign persona
// must be reported as a PERSONA_NOT_FOUND StandardError.
type PersonaStore interface {
	GetPersonaWithPreferences(ctx context.Context, userID, personaID string) (*models.PersonaPreferences, error)
}

// JobStore returns active candidate jobs for a persona.
type JobStore interface {
	GetActiveCandidateJobs(ctx context.Context, filter models.CandidateFilter) ([]models.NormalizedJobRecord, error)
}

// WeightStore returns tuned factor weights, or nil when none are stored.
type WeightStore interface {
	GetTunerWeights(ctx context.Context, userID, personaID string) (*models.FactorWeights, error)
}

type Config struct {
	DefaultLimit      int
	MaxCandidates     int
	Parallelism       int
	ParallelThreshold int
	// DefaultWeights replaces the built-in defaults when the weight store has nothing.
	DefaultWeights *models.FactorWeights
}

// Engine loads personas and candidate jobs and runs them through the match pipeline.
type Engine struct {
	config   Config
	personas PersonaStore
	jobs     JobStore
	weights  WeightStore
	logger   logger.Logger
}

// NewEngine wires the engine to its stores. weights may be nil.
func NewEngine(cfg Config, personas PersonaStore, jobs JobStore, weights WeightStore, log logger.Logger) *Engine {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultLimit
	}
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = 1000
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}
	return &Engine{
		config:   cfg,
		personas: personas,
		jobs:     jobs,
		weights:  weights,
		logger:   log.WithFields(map[string]interface{}{"component": "match-engine"}),
	}
}

// MatchJobsForPersona returns the ranked page of matches for a persona owned by userID.
// A missing persona fails with PERSONA_NOT_FOUND rather than an empty result.
func (e *Engine) MatchJobsForPersona(ctx context.Context, userID, personaID string, opts models.MatchOptions) (results []models.MatchResult, err error) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "matching.MatchJobsForPersona",
		trace.WithAttributes(attribute.String("persona.id", personaID)))
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
			if errors.HasCode(err, errors.ErrCodePersonaNotFound) {
				status = "not_found"
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		metrics.MatchRequests.WithLabelValues(status).Inc()
		metrics.MatchDuration.Observe(time.Since(start).Seconds())
		span.End()
	}()

	opts = NormalizeOptions(opts, e.config.DefaultLimit)

	prefs, err := e.personas.GetPersonaWithPreferences(ctx, userID, personaID)
	if err != nil {
		if _, ok := errors.AsStandardError(err); ok {
			return nil, err
		}
		return nil, errors.NewPersonaStoreFailedError(err)
	}
	if prefs == nil {
		return nil, errors.NewPersonaNotFoundError(userID, personaID)
	}

	jobs, err := e.jobs.GetActiveCandidateJobs(ctx, models.CandidateFilter{
		UserID:        userID,
		PersonaID:     personaID,
		Skills:        append(append([]string{}, prefs.RequiredSkills...), prefs.NiceToHaveSkills...),
		TitleKeywords: prefs.JobTitleKeywords,
		Limit:         e.config.MaxCandidates,
	})
	if err != nil {
		if _, ok := errors.AsStandardError(err); ok {
			return nil, err
		}
		return nil, errors.NewJobStoreFailedError(err)
	}

	weights := e.resolveWeights(ctx, userID, personaID)

	eligible, stats := FilterExcluded(jobs, prefs)
	metrics.MatchJobsExcluded.WithLabelValues("inactive").Add(float64(stats.Inactive))
	metrics.MatchJobsExcluded.WithLabelValues("company").Add(float64(stats.Company))

	scored, err := e.scoreJobs(ctx, eligible, newPersona(prefs), weights)
	if err != nil {
		return nil, err
	}
	results = Rank(scored, opts)

	e.logger.Info("persona matched", map[string]interface{}{
		"traceId":    span.SpanContext().TraceID().String(),
		"userId":     userID,
		"personaId":  personaID,
		"candidates": len(jobs),
		"excluded":   stats.Total(),
		"scored":     len(scored),
		"returned":   len(results),
		"durationMs": time.Since(start).Milliseconds(),
	})
	return results, nil
}

func (e *Engine) resolveWeights(ctx context.Context, userID, personaID string) models.FactorWeights {
	fallback := ResolveWeights(e.config.DefaultWeights)
	if e.weights == nil {
		return fallback
	}

	tuned, err := e.weights.GetTunerWeights(ctx, userID, personaID)
	if err != nil {
		e.logger.Warn("weight lookup failed, using defaults", map[string]interface{}{
			"userId":    userID,
			"personaId": personaID,
			"error":     err,
		})
		return fallback
	}
	if tuned == nil {
		return fallback
	}
	return resolveWeights(tuned, fallback)
}

// scoreJobs scores jobs in input order. Batches above the parallel threshold are
// split across Parallelism goroutines, each writing only its own indices. Scoring
// does not observe ctx, so the batch size never changes the outcome.
func (e *Engine) scoreJobs(ctx context.Context, jobs []models.NormalizedJobRecord, p *persona, w models.FactorWeights) ([]models.MatchResult, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "matching.score",
		trace.WithAttributes(attribute.Int("jobs.count", len(jobs))))
	defer span.End()

	results := make([]models.MatchResult, len(jobs))

	if e.config.ParallelThreshold <= 0 || len(jobs) <= e.config.ParallelThreshold || e.config.Parallelism == 1 {
		for i := range jobs {
			results[i] = scoreJob(&jobs[i], p, w)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(e.config.Parallelism)

		chunk := (len(jobs) + e.config.Parallelism - 1) / e.config.Parallelism
		for lo := 0; lo < len(jobs); lo += chunk {
			lo, hi := lo, lo+chunk
			if hi > len(jobs) {
				hi = len(jobs)
			}
			g.Go(func() error {
				for i := lo; i < hi; i++ {
					results[i] = scoreJob(&jobs[i], p, w)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, errors.NewInternalError(err)
		}
	}

	metrics.MatchJobsScored.Add(float64(len(results)))
	for _, r := range results {
		metrics.MatchScores.Observe(float64(r.MatchScore))
	}
	return results, nil
}
