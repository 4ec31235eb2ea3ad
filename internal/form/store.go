package form

import (
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "job-application-form/internal/common/errors"
	"job-application-form/internal/common/logger"
	"job-application-form/internal/common/metrics"
	"job-application-form/internal/models"

	"github.com/google/uuid"
)

// Store owns the values and error map of one form instance. Every call runs
// to completion before returning; a Store must not be shared between
// goroutines.
type Store struct {
	values    models.FieldValues
	errors    models.ErrorMap
	submitted *models.SubmittedRecord

	exemptInapplicable bool
	logger             logger.Logger
	now                func() time.Time
	newID              func() string
}

type Option func(*Store)

func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithExemptInapplicableFields makes HandleSubmit skip conditional fields that
// do not apply to the selected position, both for the empty check and for
// stale error entries.
func WithExemptInapplicableFields(exempt bool) Option {
	return func(s *Store) { s.exemptInapplicable = exempt }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// NewStore returns a store in the mount state.
func NewStore(opts ...Option) *Store {
	s := &Store{
		values: models.NewFieldValues(),
		errors: models.ErrorMap{},
		logger: logger.NewNoOpLogger(),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleChange applies ev and validates the changed field against the updated
// snapshot. Checkbox events on additionalSkills merge one skill into the skill
// map; all other events overwrite a string field. A rejected event leaves the
// store untouched and returns an INVALID_FORM_EVENT error.
func (s *Store) HandleChange(ev ChangeEvent) error {
	field := models.FieldName(ev.Name)
	if !field.Known() {
		return s.reject(ev, fmt.Sprintf("unknown field %q", ev.Name))
	}

	var value string
	if ev.Type == InputCheckbox {
		if field != models.FieldAdditionalSkills {
			return s.reject(ev, fmt.Sprintf("checkbox input is only supported for %s", models.FieldAdditionalSkills))
		}
		skill := models.Skill(ev.Value)
		if !skill.Valid() {
			return s.reject(ev, fmt.Sprintf("unknown skill %q", ev.Value))
		}
		s.values.SetSkill(skill, ev.Checked)
	} else {
		if field == models.FieldAdditionalSkills {
			return s.reject(ev, fmt.Sprintf("%s only accepts checkbox input", models.FieldAdditionalSkills))
		}
		if field == models.FieldPosition && !models.Position(ev.Value).Valid() {
			return s.reject(ev, fmt.Sprintf("unknown position %q", ev.Value))
		}
		s.values.SetString(field, ev.Value)
		value = ev.Value
	}

	msg := Validate(field, value, s.values)
	s.errors[field] = msg

	metrics.FieldValidations.WithLabelValues(string(field), metrics.ValidationResult(msg)).Inc()
	s.logger.Debug("field validated", map[string]interface{}{
		"field": string(field),
		"valid": msg == "",
	})

	return nil
}

func (s *Store) reject(ev ChangeEvent, details string) error {
	metrics.RejectedEvents.Inc()
	s.logger.Warn("change event rejected", map[string]interface{}{
		"field":   ev.Name,
		"type":    string(ev.Type),
		"details": details,
	})
	return apperrors.NewInvalidFormEventError(details)
}

// HandleSubmit promotes the current values to a SubmittedRecord when no field
// carries an error message and no string field is empty. Otherwise it returns
// a SUBMISSION_BLOCKED error and leaves every piece of state as it was.
func (s *Store) HandleSubmit() (*models.SubmittedRecord, error) {
	fieldErrors := s.blockingErrors()
	emptyFields := s.emptyFields()

	if len(fieldErrors) > 0 || len(emptyFields) > 0 {
		metrics.Submissions.WithLabelValues(metrics.OutcomeBlocked).Inc()
		s.logger.Info("submission blocked", map[string]interface{}{
			"errorCount": len(fieldErrors),
			"emptyCount": len(emptyFields),
		})

		return nil, apperrors.NewSubmissionBlockedError(
			blockedDetails(fieldErrors, emptyFields),
			map[string]interface{}{
				"fieldErrors": fieldErrors,
				"emptyFields": emptyFields,
			},
		)
	}

	record := &models.SubmittedRecord{
		SubmissionID: s.newID(),
		AcceptedAt:   s.now().UTC().Format(time.RFC3339),
		Values:       s.values.Clone(),
	}
	s.submitted = record

	metrics.Submissions.WithLabelValues(metrics.OutcomeAccepted).Inc()
	s.logger.Info("submission accepted", map[string]interface{}{
		"submissionId": record.SubmissionID,
		"position":     string(record.Values.Position),
	})

	return record.Clone(), nil
}

// blockingErrors returns the non-empty messages that stop a submit.
func (s *Store) blockingErrors() map[string]string {
	out := map[string]string{}
	for field, msg := range s.errors {
		if msg == "" {
			continue
		}
		if s.exemptInapplicable && !IsApplicable(field, s.values) {
			continue
		}
		out[string(field)] = msg
	}
	return out
}

// emptyFields returns the string fields holding "". The skill map is never a
// string and so never counts as empty.
func (s *Store) emptyFields() []string {
	var out []string
	for _, field := range models.FormFields {
		value, ok := s.values.String(field)
		if !ok || value != "" {
			continue
		}
		if s.exemptInapplicable && !IsApplicable(field, s.values) {
			continue
		}
		out = append(out, string(field))
	}
	return out
}

func blockedDetails(fieldErrors map[string]string, emptyFields []string) string {
	parts := make([]string, 0, 2)
	if len(fieldErrors) > 0 {
		names := make([]string, 0, len(fieldErrors))
		for name := range fieldErrors {
			names = append(names, name)
		}
		sort.Strings(names)
		parts = append(parts, "invalid: "+strings.Join(names, ", "))
	}
	if len(emptyFields) > 0 {
		parts = append(parts, "empty: "+strings.Join(emptyFields, ", "))
	}
	return strings.Join(parts, "; ")
}

// Reset returns the values and errors to the mount state. The last
// SubmittedRecord is kept for display.
func (s *Store) Reset() {
	s.values = models.NewFieldValues()
	s.errors = models.ErrorMap{}
}

// Values returns a deep copy of the current values.
func (s *Store) Values() models.FieldValues {
	return s.values.Clone()
}

// Errors returns a copy of the error map.
func (s *Store) Errors() models.ErrorMap {
	return s.errors.Clone()
}

// FieldError returns the current message for field ("" when valid or untouched).
func (s *Store) FieldError(field models.FieldName) string {
	return s.errors[field]
}

// Submitted returns the last accepted record, or nil.
func (s *Store) Submitted() *models.SubmittedRecord {
	return s.submitted.Clone()
}

// VisibleFields returns the fields applicable to the current position.
func (s *Store) VisibleFields() []models.FieldName {
	return VisibleFields(s.values)
}
