package form

import (
	"fmt"
	"io"
	"strings"

	"job-application-form/internal/models"
)

// SummaryLine is one row of the read-only submission display.
type SummaryLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summary returns the display lines for record. Conditional fields appear only
// when they apply to the recorded position.
func Summary(record *models.SubmittedRecord) []SummaryLine {
	if record == nil {
		return nil
	}
	v := record.Values

	lines := []SummaryLine{
		{Label: models.FieldFullName.Label(), Value: v.FullName},
		{Label: models.FieldEmail.Label(), Value: v.Email},
		{Label: models.FieldPhoneNumber.Label(), Value: v.PhoneNumber},
		{Label: models.FieldPosition.Label(), Value: string(v.Position)},
	}

	if IsApplicable(models.FieldRelevantExperience, v) {
		lines = append(lines, SummaryLine{
			Label: models.FieldRelevantExperience.Label(),
			Value: v.RelevantExperience + " years",
		})
	}
	if IsApplicable(models.FieldPortfolioURL, v) {
		lines = append(lines, SummaryLine{Label: models.FieldPortfolioURL.Label(), Value: v.PortfolioURL})
	}
	if IsApplicable(models.FieldManagementExperience, v) {
		lines = append(lines, SummaryLine{Label: models.FieldManagementExperience.Label(), Value: v.ManagementExperience})
	}

	skills := v.SelectedSkills()
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = string(s)
	}

	return append(lines,
		SummaryLine{Label: models.FieldAdditionalSkills.Label(), Value: strings.Join(names, ", ")},
		SummaryLine{Label: models.FieldPreferredInterviewTime.Label(), Value: v.PreferredInterviewTime},
	)
}

// RenderSummary writes one "Label: Value" line per summary row.
func RenderSummary(w io.Writer, record *models.SubmittedRecord) error {
	for _, line := range Summary(record) {
		if _, err := fmt.Fprintf(w, "%s: %s\n", line.Label, line.Value); err != nil {
			return err
		}
	}
	return nil
}
