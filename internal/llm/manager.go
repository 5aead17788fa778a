package llm

import (
	"context"
	"time"

	"github.com/kyleking/dwh-analyst/internal/errors"
	"github.com/kyleking/dwh-analyst/internal/logging"
)

// Manager wraps a Service with a per-call timeout and a single immediate
// retry on transient network failure. On exhaustion it returns the typed
// error unchanged so the mode controller can decide on a downgrade; the
// manager itself never falls back.
type Manager struct {
	service Service
	timeout time.Duration
	logger  *logging.Logger
}

// NewManager wraps a service. A zero timeout disables the deadline.
func NewManager(service Service, timeout time.Duration) *Manager {
	return &Manager{
		service: service,
		timeout: timeout,
		logger:  logging.GetLogger().WithField("component", "llm"),
	}
}

// Configure forwards configuration to the wrapped service.
func (m *Manager) Configure(config Config) error {
	return m.service.Configure(config)
}

// Generate calls the wrapped service, retrying once on a retryable failure.
func (m *Manager) Generate(ctx context.Context, prompt string) (string, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)

		defer cancel()
	}

	response, err := m.service.Generate(ctx, prompt)
	if err == nil {
		return response, nil
	}

	if ctx.Err() != nil || !errors.IsRetryable(err) {
		return "", err
	}

	m.logger.WithError(err).Warn("language model call failed, retrying once")

	response, retryErr := m.service.Generate(ctx, prompt)
	if retryErr != nil {
		// Keep the retry failure's own type: a quota error after a network
		// blip is still a quota error to the mode controller.
		return "", errors.Wrap(retryErr, errors.GetType(retryErr),
			"language model failed after retry")
	}

	return response, nil
}
