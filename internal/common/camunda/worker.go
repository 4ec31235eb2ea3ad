// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"job-application-form/internal/common/errors"
	"job-application-form/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler completes or fails the job itself.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// WorkerOptions are the per task type activation settings.
type WorkerOptions struct {
	MaxJobsActive int
	Timeout       time.Duration
}

type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// NewWorker opens a job worker for taskType. A panicking handler fails the
// job through the ErrorHandler instead of killing the poller goroutine.
func NewWorker(client zbc.Client, taskType string, opts WorkerOptions, handler JobHandler, log logger.Logger) *CamundaWorker {
	log = log.WithFields(map[string]interface{}{"taskType": taskType})
	errHandler := errors.NewErrorHandler(log)

	step := client.NewJobWorker().
		JobType(taskType).
		Handler(recoverHandler(handler, errHandler, log)).
		MaxJobsActive(opts.MaxJobsActive)
	if opts.Timeout > 0 {
		step = step.Timeout(opts.Timeout)
	}

	return &CamundaWorker{
		worker:   step.Open(),
		logger:   log,
		taskType: taskType,
	}
}

func recoverHandler(handler JobHandler, errHandler *errors.ErrorHandler, log logger.Logger) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("handler panicked", map[string]interface{}{
					"jobKey": job.GetKey(),
					"panic":  fmt.Sprint(r),
				})
				errHandler.HandleJobError(context.Background(), client, job,
					errors.NewBusinessRuleError("Job handler panicked", fmt.Sprint(r)))
			}
		}()
		handler.Handle(client, job)
	}
}

func (w *CamundaWorker) TaskType() string {
	return w.taskType
}

// Stop closes the job worker and waits for in-flight jobs. The client is
// owned by the caller.
func (w *CamundaWorker) Stop(ctx context.Context) {
	w.logger.Info("stopping worker", nil)

	done := make(chan struct{})
	go func() {
		w.worker.Close()
		w.worker.AwaitClose()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		w.logger.Warn("worker did not stop before deadline", map[string]interface{}{
			"error": ctx.Err().Error(),
		})
	}
}
