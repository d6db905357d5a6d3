// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobmatch-workers/internal/common/errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Client wraps the Zeebe gRPC client with connection checks and retry.
type Client struct {
	client zbc.Client
	config *ClientConfig
}

type ClientConfig struct {
	GatewayAddress         string
	UsePlaintextConnection bool
	ConnectionTimeout      time.Duration
	RetryConfig            *RetryConfig
}

type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultRetryConfig = &RetryConfig{
	MaxRetries: 3,
	BaseDelay:  1 * time.Second,
	MaxDelay:   10 * time.Second,
}

// NewClient connects to address over plaintext with default timeouts.
func NewClient(address string) (*Client, error) {
	return NewClientWithConfig(&ClientConfig{
		GatewayAddress:         address,
		UsePlaintextConnection: true,
		ConnectionTimeout:      10 * time.Second,
		RetryConfig:            DefaultRetryConfig,
	})
}

// NewClientWithConfig creates the client and verifies the broker answers a topology request.
func NewClientWithConfig(config *ClientConfig) (*Client, error) {
	if config.RetryConfig == nil {
		config.RetryConfig = DefaultRetryConfig
	}
	if config.ConnectionTimeout <= 0 {
		config.ConnectionTimeout = 10 * time.Second
	}

	zeebeClient, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         config.GatewayAddress,
		UsePlaintextConnection: config.UsePlaintextConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	c := &Client{client: zeebeClient, config: config}
	if err := c.HealthCheck(context.Background()); err != nil {
		zeebeClient.Close()
		return nil, fmt.Errorf("failed to connect to Zeebe broker at %s: %w", config.GatewayAddress, err)
	}
	return c, nil
}

func (c *Client) GetClient() zbc.Client {
	return c.client
}

func (c *Client) Close() error {
	return c.client.Close()
}

// HealthCheck sends a topology request bounded by the connection timeout.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.ConnectionTimeout)
	defer cancel()

	if _, err := c.client.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}

// ExecuteWithRetry runs command with exponential backoff. Only transport failures are retried.
func (c *Client) ExecuteWithRetry(ctx context.Context, command func(context.Context) error, operationName string) error {
	return executeWithRetry(ctx, c.config.RetryConfig, command, operationName)
}

func executeWithRetry(ctx context.Context, rc *RetryConfig, command func(context.Context) error, operationName string) error {
	for attempt := 0; ; attempt++ {
		err := command(ctx)
		if err == nil {
			return nil
		}

		if !isRetryableZeebeError(err) || attempt >= rc.MaxRetries {
			return mapZeebeError(err, operationName, attempt)
		}

		delay := rc.BaseDelay * time.Duration(1<<attempt)
		if delay > rc.MaxDelay {
			delay = rc.MaxDelay
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return errors.NewTimeoutError("zeebe", fmt.Errorf("operation %s cancelled after %d attempts: %w", operationName, attempt+1, ctx.Err()))
		}
	}
}

var retryablePhrases = []string{
	"connection refused",
	"connection reset",
	"timeout",
	"deadline exceeded",
	"unavailable",
	"unreachable",
	"broken pipe",
}

func isRetryableZeebeError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, phrase := range retryablePhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

// mapZeebeError converts broker errors into application errors.
func mapZeebeError(err error, operation string, attempt int) error {
	lowerMsg := strings.ToLower(err.Error())

	wrapped := fmt.Errorf("zeebe operation '%s' failed: %w", operation, err)
	if attempt > 0 {
		wrapped = fmt.Errorf("zeebe operation '%s' failed after %d attempts: %w", operation, attempt+1, err)
	}

	switch {
	case strings.Contains(lowerMsg, "timeout") || strings.Contains(lowerMsg, "deadline exceeded"):
		return errors.NewTimeoutError("zeebe", wrapped)
	case isRetryableZeebeError(err):
		return errors.NewExternalServiceError("zeebe", wrapped)
	default:
		return errors.NewInternalError(wrapped)
	}
}
