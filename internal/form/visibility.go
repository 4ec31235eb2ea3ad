package form

import "job-application-form/internal/models"

// IsApplicable reports whether field is rendered and enforced for the current
// snapshot. Only the position-dependent fields can be inapplicable.
func IsApplicable(field models.FieldName, values models.FieldValues) bool {
	rule, ok := rulesByField[field]
	if !ok || rule.AppliesWhen == nil {
		return field.Known()
	}
	return rule.AppliesWhen(values)
}

// VisibleFields returns the fields a view layer should render, in form order.
func VisibleFields(values models.FieldValues) []models.FieldName {
	out := make([]models.FieldName, 0, len(models.FormFields))
	for _, f := range models.FormFields {
		if IsApplicable(f, values) {
			out = append(out, f)
		}
	}
	return out
}
