// Package mode holds the operating-mode state machine. All other components
// are mode-agnostic: they receive a resolved executor or language model and
// never branch on mode themselves.
package mode

import (
	"context"
	"sync"

	"github.com/kyleking/dwh-analyst/internal/logging"
	"github.com/kyleking/dwh-analyst/internal/types"
)

// Collaborator identifies which external dependency failed, for demotion.
type Collaborator string

const (
	CollaboratorModel     Collaborator = "model"
	CollaboratorWarehouse Collaborator = "warehouse"
)

// Probes answer whether each collaborator is usable. WarehouseReady is
// expected to both check credentials and ping the connection.
type Probes struct {
	ModelConfigured func() bool
	WarehouseReady  func(ctx context.Context) bool
}

// Controller resolves the session's operating mode once and only moves it
// downward afterwards. An explicit Retry is the single path back up.
type Controller struct {
	mu       sync.Mutex
	probes   Probes
	current  types.Mode
	resolved bool
	logger   *logging.Logger
}

// NewController creates a controller; the mode is not probed until Resolve.
func NewController(probes Probes) *Controller {
	return &Controller{
		probes: probes,
		logger: logging.GetLogger().WithField("component", "mode"),
	}
}

// Resolve evaluates collaborator availability on first call and caches the
// result for the session. Later calls return the cached (possibly demoted)
// mode without re-probing.
func (c *Controller) Resolve(ctx context.Context) types.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.resolved {
		return c.current
	}

	c.current = c.evaluate(ctx)
	c.resolved = true
	c.logger.WithField("mode", string(c.current)).Info("operating mode resolved")

	return c.current
}

// Current returns the mode without probing; demo until first Resolve.
func (c *Controller) Current() types.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.resolved {
		return types.ModeDemo
	}

	return c.current
}

// Demote downgrades the session after a collaborator failed mid-request.
// The transition is one-directional and never aborts the in-flight request:
// the caller re-dispatches against the demoted mode's executor instead.
func (c *Controller) Demote(failed Collaborator, reason string) types.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.current

	switch failed {
	case CollaboratorWarehouse:
		switch c.current {
		case types.ModeProduction:
			c.current = types.ModeAIOnly
		case types.ModeDBOnly:
			c.current = types.ModeDemo
		}
	case CollaboratorModel:
		switch c.current {
		case types.ModeProduction:
			c.current = types.ModeDBOnly
		case types.ModeAIOnly:
			c.current = types.ModeDemo
		}
	}

	if c.current != prev {
		c.logger.WithFields(map[string]any{
			"from": string(prev), "to": string(c.current), "reason": reason,
		}).Warn("operating mode demoted")
	}

	return c.current
}

// Retry re-probes both collaborators at the user's request and replaces the
// cached mode with the fresh evaluation.
func (c *Controller) Retry(ctx context.Context) types.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = c.evaluate(ctx)
	c.resolved = true
	c.logger.WithField("mode", string(c.current)).Info("operating mode re-evaluated")

	return c.current
}

func (c *Controller) evaluate(ctx context.Context) types.Mode {
	modelOK := c.probes.ModelConfigured != nil && c.probes.ModelConfigured()
	warehouseOK := c.probes.WarehouseReady != nil && c.probes.WarehouseReady(ctx)

	switch {
	case modelOK && warehouseOK:
		return types.ModeProduction
	case modelOK:
		return types.ModeAIOnly
	case warehouseOK:
		return types.ModeDBOnly
	default:
		return types.ModeDemo
	}
}
