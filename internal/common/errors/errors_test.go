package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardError_IsMatchesByCode(t *testing.T) {
	err := NewSubmissionBlockedError("empty: email", nil)
	wrapped := fmt.Errorf("event 3: %w", err)

	assert.True(t, stderrors.Is(wrapped, ErrSubmissionBlocked))
	assert.False(t, stderrors.Is(wrapped, ErrInvalidFormEvent))
	assert.Equal(t, SubmissionBlockedMessage, err.Message)
}

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantCode    string
		wantRetries int
	}{
		{"blocked submit", NewSubmissionBlockedError("", nil), "APPLICATION_VALIDATION_FAILED", 0},
		{"validation failed", NewApplicationValidationFailedError("", nil), "APPLICATION_VALIDATION_FAILED", 0},
		{"invalid event", NewInvalidFormEventError("unknown field"), "INVALID_FORM_EVENT", 0},
		{"parse", NewParseError(stderrors.New("eof")), "PARSE_ERROR", 0},
		{"external", NewExternalServiceError("zeebe", stderrors.New("down")), "EXTERNAL_SERVICE_ERROR", 3},
		{"timeout", NewTimeoutError("zeebe", stderrors.New("slow")), "TIMEOUT_ERROR", 2},
		{"unmapped", NewAuthenticationError("denied"), "AUTHENTICATION_ERROR", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.wantCode, bpmn.Code)
			assert.Equal(t, tt.wantRetries, bpmn.Retries)
			assert.Equal(t, string(tt.err.Code), bpmn.ErrorVariables["originalErrorCode"])
		})
	}
}

func TestConvertToBPMNError_MergesMetadata(t *testing.T) {
	err := NewApplicationValidationFailedError("invalid: email", map[string]interface{}{
		"fieldErrors": map[string]string{"email": "Valid email is required"},
	})
	err.Timestamp = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	vars := ConvertToBPMNError(err).ToErrorVariables()

	assert.Equal(t, "APPLICATION_VALIDATION_FAILED", vars["errorCode"])
	assert.Equal(t, "invalid: email", vars["errorDetails"])
	assert.Equal(t, "2024-01-01T00:00:00Z", vars["timestamp"])
	assert.Equal(t, map[string]string{"email": "Valid email is required"}, vars["fieldErrors"])
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeSubmissionBlocked))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeApplicationValidationFailed))
	assert.Equal(t, "INPUT", GetErrorCategory(ErrCodeInvalidFormEvent))
	assert.Equal(t, "INPUT", GetErrorCategory(ErrCodeParseError))
	assert.Equal(t, "INFRASTRUCTURE", GetErrorCategory(ErrCodeTimeout))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeExternalService))
	assert.False(t, IsRetryableErrorCode(ErrCodeSubmissionBlocked))
}

func TestNormalize(t *testing.T) {
	orig := NewInvalidFormEventError("bad")
	assert.Same(t, orig, Normalize(fmt.Errorf("wrap: %w", orig)))

	plain := Normalize(stderrors.New("boom"))
	require.NotNil(t, plain)
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "boom", plain.Details)
}
