// internal/workers/application/validate-job-application/handler.go
package validatejobapplication

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"job-application-form/internal/common/errors"
	"job-application-form/internal/common/logger"
	"job-application-form/internal/common/metrics"
	"job-application-form/internal/common/observability"
	"job-application-form/internal/common/validation"
	"job-application-form/internal/form"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const TaskType = "validate-job-application"

type Handler struct {
	config       *Config
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
	obs          *observability.Observability
	tracer       trace.Tracer
}

// NewHandler builds a handler. obs may be nil.
func NewHandler(config *Config, log logger.Logger, obs *observability.Observability) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:       config,
		logger:       log,
		errorHandler: errors.NewErrorHandler(log),
		obs:          obs,
		tracer:       otel.Tracer("job-application-form/workers/" + TaskType),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	input, err := h.parseInput(job.GetVariables())
	if err != nil {
		h.failJob(ctx, client, job, err, startTime)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err, startTime)
		return
	}

	h.completeJob(ctx, client, job, output, startTime)
}

// Execute replays the recorded events through a fresh Store. When the events
// do not end in a submit, a final submit is attempted. A blocked final submit
// returns an APPLICATION_VALIDATION_FAILED error carrying the field errors.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, span := h.tracer.Start(ctx, TaskType, trace.WithAttributes(
		attribute.String("application.id", input.ApplicationID),
		attribute.Int("application.events", len(input.Events)),
	))
	defer span.End()

	log := h.logger.WithFields(map[string]interface{}{"applicationId": input.ApplicationID})
	store := form.NewStore(
		form.WithLogger(log),
		form.WithExemptInapplicableFields(h.config.ExemptInapplicableFields),
	)

	result, err := form.Replay(ctx, store, input.Events)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "replay failed")
		return nil, err
	}
	h.obs.RecordEventsReplayed(ctx, result.EventsApplied)

	if !endsWithSubmit(input.Events) {
		record, err := store.HandleSubmit()
		if err != nil {
			result.BlockedSubmits++
			result.LastBlock = errors.Normalize(err)
			result.Record = nil
		} else {
			result.Record = record
			result.LastBlock = nil
		}
		result.Errors = store.Errors()
	}

	fieldErrors := nonEmptyErrors(result)

	if !result.Accepted() {
		metadata := map[string]interface{}{
			"applicationId":  input.ApplicationID,
			"fieldErrors":    fieldErrors,
			"blockedSubmits": result.BlockedSubmits,
		}
		details := errors.SubmissionBlockedMessage
		if result.LastBlock != nil {
			details = result.LastBlock.Details
			if empty, ok := result.LastBlock.Metadata["emptyFields"]; ok {
				metadata["emptyFields"] = empty
			}
		}

		log.Info("application rejected", map[string]interface{}{
			"errorCount":     len(fieldErrors),
			"blockedSubmits": result.BlockedSubmits,
		})
		span.SetStatus(codes.Error, "submission blocked")
		return nil, errors.NewApplicationValidationFailedError(details, metadata)
	}

	log.Info("application accepted", map[string]interface{}{
		"submissionId":   result.Record.SubmissionID,
		"blockedSubmits": result.BlockedSubmits,
	})
	span.SetAttributes(attribute.String("application.submission_id", result.Record.SubmissionID))

	return &Output{
		Accepted:       true,
		SubmissionID:   result.Record.SubmissionID,
		Record:         result.Record,
		Summary:        form.Summary(result.Record),
		FieldErrors:    fieldErrors,
		BlockedSubmits: result.BlockedSubmits,
	}, nil
}

func (h *Handler) parseInput(variables string) (*Input, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &raw); err != nil {
		return nil, errors.NewParseError(err)
	}

	res, err := validation.ValidateJobInput(raw)
	if err != nil {
		return nil, errors.NewParseError(err)
	}
	if !res.Valid {
		return nil, errors.NewInvalidFormEventError(
			fmt.Sprintf("job input failed validation: %s", strings.Join(res.GetErrorMessages(), "; ")),
		)
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewParseError(err)
	}
	return &input, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output, startTime time.Time) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		h.failJob(ctx, client, job, errors.NewParseError(err), startTime)
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	elapsed := time.Since(startTime)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(elapsed.Seconds())
	h.obs.RecordJobProcessed(ctx, "completed")
	h.obs.RecordJobDuration(ctx, elapsed, "completed")

	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":       job.GetKey(),
		"submissionId": output.SubmissionID,
	})
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, startTime time.Time) {
	stdErr := errors.Normalize(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.obs.RecordJobProcessed(ctx, "failed")
	h.obs.RecordJobDuration(ctx, time.Since(startTime), "failed")

	h.errorHandler.HandleJobError(ctx, client, job, stdErr)
}

func endsWithSubmit(events []form.Event) bool {
	return len(events) > 0 && events[len(events)-1].Kind == form.EventSubmit
}

func nonEmptyErrors(result *form.ReplayResult) map[string]string {
	out := map[string]string{}
	for field, msg := range result.Errors {
		if msg != "" {
			out[string(field)] = msg
		}
	}
	return out
}
