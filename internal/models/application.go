// internal/models/application.go
package models

// FieldName identifies one input of the job application form.
type FieldName string

const (
	FieldFullName               FieldName = "fullName"
	FieldEmail                  FieldName = "email"
	FieldPhoneNumber            FieldName = "phoneNumber"
	FieldPosition               FieldName = "position"
	FieldRelevantExperience     FieldName = "relevantExperience"
	FieldPortfolioURL           FieldName = "portfolioURL"
	FieldManagementExperience   FieldName = "managementExperience"
	FieldAdditionalSkills       FieldName = "additionalSkills"
	FieldPreferredInterviewTime FieldName = "preferredInterviewTime"
)

// FormFields lists every field in form order.
var FormFields = []FieldName{
	FieldFullName,
	FieldEmail,
	FieldPhoneNumber,
	FieldPosition,
	FieldRelevantExperience,
	FieldPortfolioURL,
	FieldManagementExperience,
	FieldAdditionalSkills,
	FieldPreferredInterviewTime,
}

var fieldLabels = map[FieldName]string{
	FieldFullName:               "Full Name",
	FieldEmail:                  "Email",
	FieldPhoneNumber:            "Phone Number",
	FieldPosition:               "Position",
	FieldRelevantExperience:     "Relevant Experience",
	FieldPortfolioURL:           "Portfolio URL",
	FieldManagementExperience:   "Management Experience",
	FieldAdditionalSkills:       "Additional Skills",
	FieldPreferredInterviewTime: "Preferred Interview Time",
}

// Label returns the display label, or the raw name for unknown fields.
func (f FieldName) Label() string {
	if l, ok := fieldLabels[f]; ok {
		return l
	}
	return string(f)
}

// Known reports whether f is one of the form's fields.
func (f FieldName) Known() bool {
	_, ok := fieldLabels[f]
	return ok
}

type Position string

const (
	PositionNone      Position = ""
	PositionDeveloper Position = "Developer"
	PositionDesigner  Position = "Designer"
	PositionManager   Position = "Manager"
)

// Valid reports whether p is one of the selectable options, including the
// empty "Select Position" option.
func (p Position) Valid() bool {
	switch p {
	case PositionNone, PositionDeveloper, PositionDesigner, PositionManager:
		return true
	}
	return false
}

type Skill string

const (
	SkillJavaScript Skill = "JavaScript"
	SkillCSS        Skill = "CSS"
	SkillPython     Skill = "Python"
)

// Skills is the fixed skill set in display order.
var Skills = []Skill{SkillJavaScript, SkillCSS, SkillPython}

func (s Skill) Valid() bool {
	for _, known := range Skills {
		if s == known {
			return true
		}
	}
	return false
}

// FieldValues holds the current value of every form field. AdditionalSkills
// only contains skills that have been toggled at least once.
type FieldValues struct {
	FullName               string         `json:"fullName"`
	Email                  string         `json:"email"`
	PhoneNumber            string         `json:"phoneNumber"`
	Position               Position       `json:"position"`
	RelevantExperience     string         `json:"relevantExperience"`
	PortfolioURL           string         `json:"portfolioURL"`
	ManagementExperience   string         `json:"managementExperience"`
	AdditionalSkills       map[Skill]bool `json:"additionalSkills"`
	PreferredInterviewTime string         `json:"preferredInterviewTime"`
}

// NewFieldValues returns the mount state: every string empty, no skills.
func NewFieldValues() FieldValues {
	return FieldValues{AdditionalSkills: map[Skill]bool{}}
}

// Clone returns a deep copy; the skill map is never shared.
func (v FieldValues) Clone() FieldValues {
	out := v
	out.AdditionalSkills = make(map[Skill]bool, len(v.AdditionalSkills))
	for k, sel := range v.AdditionalSkills {
		out.AdditionalSkills[k] = sel
	}
	return out
}

// String returns the value of a string-valued field. ok is false for
// additionalSkills and unknown names.
func (v FieldValues) String(name FieldName) (value string, ok bool) {
	switch name {
	case FieldFullName:
		return v.FullName, true
	case FieldEmail:
		return v.Email, true
	case FieldPhoneNumber:
		return v.PhoneNumber, true
	case FieldPosition:
		return string(v.Position), true
	case FieldRelevantExperience:
		return v.RelevantExperience, true
	case FieldPortfolioURL:
		return v.PortfolioURL, true
	case FieldManagementExperience:
		return v.ManagementExperience, true
	case FieldPreferredInterviewTime:
		return v.PreferredInterviewTime, true
	}
	return "", false
}

// SetString overwrites a string-valued field. It reports false when name is
// not a string-valued field.
func (v *FieldValues) SetString(name FieldName, value string) bool {
	switch name {
	case FieldFullName:
		v.FullName = value
	case FieldEmail:
		v.Email = value
	case FieldPhoneNumber:
		v.PhoneNumber = value
	case FieldPosition:
		v.Position = Position(value)
	case FieldRelevantExperience:
		v.RelevantExperience = value
	case FieldPortfolioURL:
		v.PortfolioURL = value
	case FieldManagementExperience:
		v.ManagementExperience = value
	case FieldPreferredInterviewTime:
		v.PreferredInterviewTime = value
	default:
		return false
	}
	return true
}

// SetSkill merges one checkbox state into the skill map.
func (v *FieldValues) SetSkill(skill Skill, checked bool) {
	if v.AdditionalSkills == nil {
		v.AdditionalSkills = map[Skill]bool{}
	}
	v.AdditionalSkills[skill] = checked
}

// SelectedSkills returns the true-valued skills in display order.
func (v FieldValues) SelectedSkills() []Skill {
	var out []Skill
	for _, s := range Skills {
		if v.AdditionalSkills[s] {
			out = append(out, s)
		}
	}
	return out
}

// ErrorMap maps a field to its current message; "" means no error.
type ErrorMap map[FieldName]string

func (e ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// SubmittedRecord is the read-only snapshot accepted by a successful submit.
type SubmittedRecord struct {
	SubmissionID string      `json:"submissionId"`
	AcceptedAt   string      `json:"acceptedAt"` // RFC 3339, UTC
	Values       FieldValues `json:"values"`
}

func (r *SubmittedRecord) Clone() *SubmittedRecord {
	if r == nil {
		return nil
	}
	out := *r
	out.Values = r.Values.Clone()
	return &out
}
