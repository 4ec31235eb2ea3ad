package form

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"job-application-form/internal/models"
)

const (
	MsgFullNameRequired           = "Full Name is required"
	MsgEmailInvalid               = "Valid email is required"
	MsgPhoneInvalid               = "Valid phone number is required"
	MsgRelevantExperienceRequired = "Relevant experience is required"
	MsgPortfolioURLInvalid        = "Valid portfolio URL is required"
	MsgManagementExperienceReq    = "Management experience is required"
	MsgSkillsRequired             = "At least one skill must be selected"
	MsgInterviewTimeRequired      = "Preferred interview time is required"
)

// RE2's \s is ASCII only. Browsers treat every Unicode space separator,
// vertical tab, the line/paragraph separators and BOM as whitespace too.
const (
	whitespace     = `\t\n\x0B\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}`
	lineTerminator = `\n\r\x{2028}\x{2029}`
	nonSpace       = `[^` + whitespace + `]`
)

var (
	emailRegex        = regexp.MustCompile(nonSpace + `+@` + nonSpace + `+\.` + nonSpace + `+`)
	phoneRegex        = regexp.MustCompile(`^\d+$`)
	portfolioURLRegex = regexp.MustCompile(`^(https?|ftp)://[^` + whitespace + `/$.?#][^` + lineTerminator + `]` + nonSpace + `*$`)
)

// Rule is one row of the validation table. AppliesWhen nil means the rule is
// always enforced. Check reports whether value is acceptable; it receives the
// whole snapshot for group fields such as additionalSkills.
type Rule struct {
	Field       models.FieldName
	AppliesWhen func(values models.FieldValues) bool
	Check       func(value string, values models.FieldValues) bool
	Message     string
}

var rules = []Rule{
	{
		Field:   models.FieldFullName,
		Check:   notEmpty,
		Message: MsgFullNameRequired,
	},
	{
		Field:   models.FieldEmail,
		Check:   matches(emailRegex),
		Message: MsgEmailInvalid,
	},
	{
		Field:   models.FieldPhoneNumber,
		Check:   matches(phoneRegex),
		Message: MsgPhoneInvalid,
	},
	{
		Field:       models.FieldRelevantExperience,
		AppliesWhen: positionIn(models.PositionDeveloper, models.PositionDesigner),
		Check:       positiveNumber,
		Message:     MsgRelevantExperienceRequired,
	},
	{
		Field:       models.FieldPortfolioURL,
		AppliesWhen: positionIn(models.PositionDesigner),
		Check:       matches(portfolioURLRegex),
		Message:     MsgPortfolioURLInvalid,
	},
	{
		Field:       models.FieldManagementExperience,
		AppliesWhen: positionIn(models.PositionManager),
		Check:       notEmpty,
		Message:     MsgManagementExperienceReq,
	},
	{
		Field:   models.FieldAdditionalSkills,
		Check:   anySkillSelected,
		Message: MsgSkillsRequired,
	},
	{
		Field:   models.FieldPreferredInterviewTime,
		Check:   notEmpty,
		Message: MsgInterviewTimeRequired,
	},
}

var rulesByField = func() map[models.FieldName]Rule {
	m := make(map[models.FieldName]Rule, len(rules))
	for _, r := range rules {
		m[r.Field] = r
	}
	return m
}()

// Rules returns a copy of the validation table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Validate returns the error message for field given its new value and the
// current snapshot, or "" when the value is acceptable or the field's rule
// does not apply. Fields without a rule (position) always validate.
func Validate(field models.FieldName, value string, values models.FieldValues) string {
	rule, ok := rulesByField[field]
	if !ok {
		return ""
	}
	if rule.AppliesWhen != nil && !rule.AppliesWhen(values) {
		return ""
	}
	if rule.Check(value, values) {
		return ""
	}
	return rule.Message
}

// ValidateField validates field using its value from the snapshot.
func ValidateField(field models.FieldName, values models.FieldValues) string {
	value, _ := values.String(field)
	return Validate(field, value, values)
}

func notEmpty(value string, _ models.FieldValues) bool {
	return value != ""
}

func matches(re *regexp.Regexp) func(string, models.FieldValues) bool {
	return func(value string, _ models.FieldValues) bool {
		return value != "" && re.MatchString(value)
	}
}

// positiveNumber accepts finite numbers greater than zero. Surrounding
// whitespace is ignored the way a number input coerces it.
func positiveNumber(value string, _ models.FieldValues) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return false
	}
	return n > 0
}

func anySkillSelected(_ string, values models.FieldValues) bool {
	for _, selected := range values.AdditionalSkills {
		if selected {
			return true
		}
	}
	return false
}

func positionIn(positions ...models.Position) func(models.FieldValues) bool {
	return func(values models.FieldValues) bool {
		for _, p := range positions {
			if values.Position == p {
				return true
			}
		}
		return false
	}
}
