// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"jobmatch-workers/internal/common/config"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// JobHandler is implemented by every task worker.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// Worker is an open job subscription for one task type.
type Worker struct {
	worker   worker.JobWorker
	logger   *zap.Logger
	taskType string
}

// StartWorker opens a job worker for taskType, or returns nil when wcfg disables it.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler JobHandler, log *zap.Logger) *Worker {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)

	return &Worker{worker: jobWorker, logger: log, taskType: taskType}
}

func (w *Worker) TaskType() string {
	return w.taskType
}

// Stop closes the subscription and waits for in-flight jobs.
func (w *Worker) Stop() {
	w.logger.Info("stopping worker", zap.String("taskType", w.taskType))
	w.worker.Close()
	w.worker.AwaitClose()
}
