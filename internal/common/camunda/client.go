// internal/common/camunda/client.go
package camunda

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"job-application-form/internal/common/errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Client owns the gateway connection used by the form worker.
type Client struct {
	zeebe  zbc.Client
	config *ClientConfig
}

type ClientConfig struct {
	GatewayAddress         string
	UsePlaintextConnection bool
	// ConnectionTimeout bounds a single topology request.
	ConnectionTimeout time.Duration
	RetryConfig       *RetryConfig
}

// RetryConfig controls the exponential backoff of the startup topology check.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func defaultRetryConfig() *RetryConfig {
	return &RetryConfig{MaxRetries: 3, BaseDelay: time.Second, MaxDelay: 10 * time.Second}
}

// NewClientWithConfig dials the gateway and blocks until it answers a topology
// request, backing off on transient failures.
func NewClientWithConfig(cfg *ClientConfig) (*Client, error) {
	if cfg.RetryConfig == nil {
		cfg.RetryConfig = defaultRetryConfig()
	}
	if cfg.ConnectionTimeout <= 0 {
		cfg.ConnectionTimeout = 10 * time.Second
	}

	zeebe, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.GatewayAddress,
		UsePlaintextConnection: cfg.UsePlaintextConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("create zeebe client: %w", err)
	}

	c := &Client{zeebe: zeebe, config: cfg}

	budget := (cfg.ConnectionTimeout + cfg.RetryConfig.MaxDelay) * time.Duration(cfg.RetryConfig.MaxRetries+1)
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	if err := c.withRetry(ctx, "topology", c.HealthCheck); err != nil {
		_ = zeebe.Close()
		return nil, fmt.Errorf("connect to zeebe at %s: %w", cfg.GatewayAddress, err)
	}
	return c, nil
}

// GetClient exposes the raw client for job workers and deployments.
func (c *Client) GetClient() zbc.Client {
	return c.zeebe
}

func (c *Client) Close() error {
	return c.zeebe.Close()
}

// HealthCheck sends one topology request bounded by ConnectionTimeout.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.ConnectionTimeout)
	defer cancel()

	if _, err := c.zeebe.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check: %w", err)
	}
	return nil
}

// withRetry runs fn until it succeeds, fails permanently or the retries run
// out. The returned error is always a *errors.StandardError.
func (c *Client) withRetry(ctx context.Context, operation string, fn func(context.Context) error) error {
	rc := c.config.RetryConfig
	delay := rc.BaseDelay

	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !isTransient(err) || attempt > rc.MaxRetries {
			return mapZeebeError(err, operation, attempt)
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return mapZeebeError(ctx.Err(), operation, attempt)
		}
		if delay *= 2; delay > rc.MaxDelay {
			delay = rc.MaxDelay
		}
	}
}

// grpcCode extracts the gateway status code. Context errors raised locally
// never reach the gateway, so they are mapped by hand.
func grpcCode(err error) codes.Code {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case stderrors.Is(err, context.Canceled):
		return codes.Canceled
	}
	if s, ok := status.FromError(err); ok {
		return s.Code()
	}
	return codes.Unknown
}

func isTransient(err error) bool {
	switch grpcCode(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return true
	}
	return false
}

func mapZeebeError(err error, operation string, attempts int) error {
	cause := fmt.Errorf("zeebe %s failed after %d attempt(s): %w", operation, attempts, err)

	switch grpcCode(err) {
	case codes.DeadlineExceeded, codes.Canceled:
		return errors.NewTimeoutError("zeebe", cause)
	case codes.NotFound:
		return errors.NewResourceNotFoundError("zeebe", cause.Error())
	case codes.AlreadyExists, codes.FailedPrecondition:
		return errors.NewBusinessRuleError("Zeebe rejected "+operation, cause.Error())
	case codes.PermissionDenied, codes.Unauthenticated:
		return errors.NewAuthenticationError(cause.Error())
	default:
		return errors.NewExternalServiceError("zeebe", cause)
	}
}
