package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const eventKeywords = `
	"type": "object",
	"properties": {
		"kind":    {"type": "string", "enum": ["change", "submit"]},
		"name":    {"type": "string", "minLength": 1},
		"value":   {"type": "string"},
		"type":    {"type": "string", "enum": ["text", "email", "number", "select", "checkbox", "datetime-local"]},
		"checked": {"type": "boolean"}
	},
	"required": ["kind"],
	"additionalProperties": false,
	"if":   {"properties": {"kind": {"const": "change"}}},
	"then": {"required": ["name", "type"]}`

// EventSchema describes one recorded change or submit event.
const EventSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",` + eventKeywords + `
}`

// JobInputSchema describes the variables of a validate-job-application job.
const JobInputSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"applicationId": {"type": "string", "minLength": 1},
		"events": {
			"type": "array",
			"minItems": 1,
			"items": {` + eventKeywords + `}
		}
	},
	"required": ["applicationId", "events"]
}`

var (
	eventSchema    = mustSchema(EventSchema)
	jobInputSchema = mustSchema(JobInputSchema)
)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("validation: invalid schema: %v", err))
	}
	return s
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateEvent checks a single decoded event document.
func ValidateEvent(doc interface{}) (*ValidationResult, error) {
	return validate(eventSchema, gojsonschema.NewGoLoader(doc))
}

// ValidateJobInput checks decoded job variables.
func ValidateJobInput(vars map[string]interface{}) (*ValidationResult, error) {
	return validate(jobInputSchema, gojsonschema.NewGoLoader(vars))
}

// ValidateJSON checks a raw JSON document against one of the schemas above.
func ValidateJSON(schema *gojsonschema.Schema, raw []byte) (*ValidationResult, error) {
	return validate(schema, gojsonschema.NewBytesLoader(raw))
}

// JobInput returns the compiled job input schema.
func JobInput() *gojsonschema.Schema { return jobInputSchema }

// Event returns the compiled event schema.
func Event() *gojsonschema.Schema { return eventSchema }

func validate(schema *gojsonschema.Schema, doc gojsonschema.JSONLoader) (*ValidationResult, error) {
	res, err := schema.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	out := &ValidationResult{Valid: res.Valid()}
	for _, e := range res.Errors() {
		field := e.Field()
		// missing properties are reported against their parent
		if e.Type() == "required" {
			if prop, ok := e.Details()["property"].(string); ok && !strings.HasSuffix(field, prop) {
				field = joinField(field, prop)
			}
		}
		out.Errors = append(out.Errors, ValidationError{
			Field:   field,
			Message: e.Description(),
			Code:    strings.ToUpper(e.Type()),
		})
	}
	return out, nil
}

func joinField(parent, child string) string {
	if parent == "" || parent == "(root)" {
		return child
	}
	return parent + "." + child
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}
