package camunda

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"job-application-form/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func testClient(maxRetries int) *Client {
	return &Client{config: &ClientConfig{
		ConnectionTimeout: time.Second,
		RetryConfig: &RetryConfig{
			MaxRetries: maxRetries,
			BaseDelay:  time.Millisecond,
			MaxDelay:   2 * time.Millisecond,
		},
	}}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unavailable", status.Error(codes.Unavailable, "connection refused"), true},
		{"gateway deadline", status.Error(codes.DeadlineExceeded, "slow"), true},
		{"local deadline", fmt.Errorf("send: %w", context.DeadlineExceeded), true},
		{"backpressure", status.Error(codes.ResourceExhausted, "busy"), true},
		{"wrapped unavailable", fmt.Errorf("topology: %w", status.Error(codes.Unavailable, "down")), true},
		{"not found", status.Error(codes.NotFound, "job not found"), false},
		{"invalid argument", status.Error(codes.InvalidArgument, "bad"), false},
		{"plain error", stderrors.New("unavailable"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransient(tt.err))
		})
	}
}

func TestMapZeebeError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      errors.ErrorCode
		retryable bool
	}{
		{"unavailable", status.Error(codes.Unavailable, "down"), errors.ErrCodeExternalService, true},
		{"deadline", status.Error(codes.DeadlineExceeded, "slow"), errors.ErrCodeTimeout, true},
		{"cancelled", context.Canceled, errors.ErrCodeTimeout, true},
		{"not found", status.Error(codes.NotFound, "job 42 not found"), errors.ErrCodeResourceNotFound, false},
		{"failed precondition", status.Error(codes.FailedPrecondition, "job not activated"), errors.ErrCodeBusinessRule, false},
		{"already exists", status.Error(codes.AlreadyExists, "instance exists"), errors.ErrCodeBusinessRule, false},
		{"permission denied", status.Error(codes.PermissionDenied, "no"), errors.ErrCodeAuthentication, false},
		{"unauthenticated", status.Error(codes.Unauthenticated, "token"), errors.ErrCodeAuthentication, false},
		{"unknown", stderrors.New("something odd"), errors.ErrCodeExternalService, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdErr := errors.Normalize(mapZeebeError(tt.err, "complete", 1))
			assert.Equal(t, tt.code, stdErr.Code)
			assert.Equal(t, tt.retryable, stdErr.Retryable)
			assert.Contains(t, stdErr.Details, "zeebe complete failed after 1 attempt(s)")
		})
	}
}

func TestWithRetry_RetriesTransientErrors(t *testing.T) {
	c := testClient(3)
	calls := 0

	err := c.withRetry(context.Background(), "topology", func(context.Context) error {
		calls++
		if calls < 3 {
			return status.Error(codes.Unavailable, "connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_StopsOnPermanentError(t *testing.T) {
	c := testClient(3)
	calls := 0

	err := c.withRetry(context.Background(), "complete", func(context.Context) error {
		calls++
		return status.Error(codes.NotFound, "job not found")
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, errors.ErrCodeResourceNotFound, errors.Normalize(err).Code)
}

func TestWithRetry_GivesUp(t *testing.T) {
	c := testClient(2)
	calls := 0

	err := c.withRetry(context.Background(), "topology", func(context.Context) error {
		calls++
		return status.Error(codes.DeadlineExceeded, "slow")
	})

	assert.Equal(t, 3, calls)
	assert.Equal(t, errors.ErrCodeTimeout, errors.Normalize(err).Code)
}

func TestWithRetry_StopsWhenContextEnds(t *testing.T) {
	c := testClient(5)
	c.config.RetryConfig.BaseDelay = time.Hour
	c.config.RetryConfig.MaxDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := c.withRetry(ctx, "topology", func(context.Context) error {
		calls++
		cancel()
		return status.Error(codes.Unavailable, "down")
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, errors.ErrCodeTimeout, errors.Normalize(err).Code)
}
