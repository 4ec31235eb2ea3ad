// internal/workers/application/validate-job-application/models.go
package validatejobapplication

import (
	"job-application-form/internal/form"
	"job-application-form/internal/models"
)

type Input struct {
	ApplicationID string       `json:"applicationId"`
	Events        []form.Event `json:"events"`
}

type Output struct {
	Accepted       bool                    `json:"accepted"`
	SubmissionID   string                  `json:"submissionId"`
	Record         *models.SubmittedRecord `json:"record"`
	Summary        []form.SummaryLine      `json:"summary"`
	FieldErrors    map[string]string       `json:"fieldErrors"`
	BlockedSubmits int                     `json:"blockedSubmits"`
}
