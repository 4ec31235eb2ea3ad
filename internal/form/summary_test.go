package form

import (
	"bytes"
	"errors"
	"testing"

	"job-application-form/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordFor(position models.Position, skills ...models.Skill) *models.SubmittedRecord {
	v := models.NewFieldValues()
	v.FullName = "Jane Doe"
	v.Email = "jane@x.com"
	v.PhoneNumber = "5551234"
	v.Position = position
	v.RelevantExperience = "3"
	v.PortfolioURL = "https://jane.design"
	v.ManagementExperience = "Led a team"
	v.PreferredInterviewTime = "2024-01-01T10:00"
	for _, s := range skills {
		v.SetSkill(s, true)
	}
	return &models.SubmittedRecord{SubmissionID: "id", AcceptedAt: "2024-01-01T00:00:00Z", Values: v}
}

func labelsOf(lines []SummaryLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Label
	}
	return out
}

func TestSummary_ConditionalLines(t *testing.T) {
	tests := []struct {
		position models.Position
		want     []string
	}{
		{models.PositionDeveloper, []string{
			"Full Name", "Email", "Phone Number", "Position", "Relevant Experience",
			"Additional Skills", "Preferred Interview Time",
		}},
		{models.PositionDesigner, []string{
			"Full Name", "Email", "Phone Number", "Position", "Relevant Experience", "Portfolio URL",
			"Additional Skills", "Preferred Interview Time",
		}},
		{models.PositionManager, []string{
			"Full Name", "Email", "Phone Number", "Position", "Management Experience",
			"Additional Skills", "Preferred Interview Time",
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.position), func(t *testing.T) {
			got := Summary(recordFor(tt.position, models.SkillCSS))
			assert.Equal(t, tt.want, labelsOf(got))
		})
	}
}

func TestSummary_SkillsJoinedInDisplayOrder(t *testing.T) {
	record := recordFor(models.PositionManager, models.SkillPython, models.SkillJavaScript)
	record.Values.SetSkill(models.SkillCSS, false)

	var skills string
	for _, l := range Summary(record) {
		if l.Label == "Additional Skills" {
			skills = l.Value
		}
	}
	assert.Equal(t, "JavaScript, Python", skills)
}

func TestSummary_NilRecord(t *testing.T) {
	assert.Nil(t, Summary(nil))
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, recordFor(models.PositionDesigner, models.SkillCSS)))

	want := "Full Name: Jane Doe\n" +
		"Email: jane@x.com\n" +
		"Phone Number: 5551234\n" +
		"Position: Designer\n" +
		"Relevant Experience: 3 years\n" +
		"Portfolio URL: https://jane.design\n" +
		"Additional Skills: CSS\n" +
		"Preferred Interview Time: 2024-01-01T10:00\n"
	assert.Equal(t, want, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRenderSummary_PropagatesWriteError(t *testing.T) {
	err := RenderSummary(failingWriter{}, recordFor(models.PositionDeveloper))
	assert.EqualError(t, err, "closed")
}
