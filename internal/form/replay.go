package form

import (
	"context"
	"errors"
	"fmt"

	apperrors "job-application-form/internal/common/errors"
	"job-application-form/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "job-application-form/form"

// ReplayResult is the state of a store after a replay.
type ReplayResult struct {
	Values         models.FieldValues      `json:"values"`
	Errors         models.ErrorMap         `json:"errors"`
	Record         *models.SubmittedRecord `json:"record,omitempty"`
	BlockedSubmits int                     `json:"blockedSubmits"`
	EventsApplied  int                     `json:"eventsApplied"`

	// LastBlock is the error returned by the most recent blocked submit, nil
	// when the last submit was accepted or no submit was replayed.
	LastBlock *apperrors.StandardError `json:"-"`
}

// Accepted reports whether the final submit of the replay produced a record.
func (r *ReplayResult) Accepted() bool {
	return r.Record != nil && r.LastBlock == nil
}

// Replay applies events to store in order. A rejected change stops the replay
// and is returned; a blocked submit is counted and replay continues.
func Replay(ctx context.Context, store *Store, events []Event) (*ReplayResult, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "form.Replay")
	defer span.End()
	span.SetAttributes(attribute.Int("form.events", len(events)))

	result := &ReplayResult{}

	for i, ev := range events {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "replay cancelled")
			return nil, err
		}

		switch ev.Kind {
		case EventChange:
			if err := store.HandleChange(ev.Change()); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "change rejected")
				return nil, fmt.Errorf("event %d: %w", i, err)
			}
		case EventSubmit:
			record, err := store.HandleSubmit()
			if err != nil {
				var stdErr *apperrors.StandardError
				if !errors.As(err, &stdErr) || stdErr.Code != apperrors.ErrCodeSubmissionBlocked {
					return nil, fmt.Errorf("event %d: %w", i, err)
				}
				result.BlockedSubmits++
				result.LastBlock = stdErr
				break
			}
			result.Record = record
			result.LastBlock = nil
		default:
			err := apperrors.NewInvalidFormEventError(fmt.Sprintf("unknown event kind %q", ev.Kind))
			span.RecordError(err)
			span.SetStatus(codes.Error, "unknown event kind")
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		result.EventsApplied++
	}

	result.Values = store.Values()
	result.Errors = store.Errors()
	if result.Record == nil {
		result.Record = store.Submitted()
	}

	span.SetAttributes(
		attribute.Int("form.blocked_submits", result.BlockedSubmits),
		attribute.Bool("form.accepted", result.Accepted()),
	)
	return result, nil
}
