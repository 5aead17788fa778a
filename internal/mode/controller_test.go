package mode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kyleking/dwh-analyst/internal/types"
)

func probesFor(model, warehouse bool) Probes {
	return Probes{
		ModelConfigured: func() bool { return model },
		WarehouseReady:  func(context.Context) bool { return warehouse },
	}
}

func TestResolve_ModeMatrix(t *testing.T) {
	tests := []struct {
		name      string
		model     bool
		warehouse bool
		want      types.Mode
	}{
		{"both available", true, true, types.ModeProduction},
		{"model only", true, false, types.ModeAIOnly},
		{"warehouse only", false, true, types.ModeDBOnly},
		{"neither", false, false, types.ModeDemo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(probesFor(tt.model, tt.warehouse))

			assert.Equal(t, tt.want, c.Resolve(context.Background()))
			assert.Equal(t, tt.want, c.Current())
		})
	}
}

func TestResolve_ProbesOnceAndCaches(t *testing.T) {
	probeCalls := 0
	c := NewController(Probes{
		ModelConfigured: func() bool { return true },
		WarehouseReady: func(context.Context) bool {
			probeCalls++

			return true
		},
	})

	for i := 0; i < 3; i++ {
		assert.Equal(t, types.ModeProduction, c.Resolve(context.Background()))
	}

	assert.Equal(t, 1, probeCalls, "resolve must probe exactly once per session")
}

func TestCurrent_DemoBeforeResolve(t *testing.T) {
	c := NewController(probesFor(true, true))

	assert.Equal(t, types.ModeDemo, c.Current())
}

func TestDemote_Transitions(t *testing.T) {
	tests := []struct {
		name   string
		from   types.Mode
		failed Collaborator
		want   types.Mode
	}{
		{"production loses warehouse", types.ModeProduction, CollaboratorWarehouse, types.ModeAIOnly},
		{"production loses model", types.ModeProduction, CollaboratorModel, types.ModeDBOnly},
		{"ai_only loses model", types.ModeAIOnly, CollaboratorModel, types.ModeDemo},
		{"db_only loses warehouse", types.ModeDBOnly, CollaboratorWarehouse, types.ModeDemo},
		{"ai_only shrugs off warehouse failure", types.ModeAIOnly, CollaboratorWarehouse, types.ModeAIOnly},
		{"db_only shrugs off model failure", types.ModeDBOnly, CollaboratorModel, types.ModeDBOnly},
		{"demo cannot demote further", types.ModeDemo, CollaboratorModel, types.ModeDemo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(probesFor(
				tt.from == types.ModeProduction || tt.from == types.ModeAIOnly,
				tt.from == types.ModeProduction || tt.from == types.ModeDBOnly))
			c.Resolve(context.Background())

			assert.Equal(t, tt.want, c.Demote(tt.failed, "test"))
			assert.Equal(t, tt.want, c.Current())
		})
	}
}

func TestDemote_NeverPromotes(t *testing.T) {
	c := NewController(probesFor(true, true))
	c.Resolve(context.Background())

	c.Demote(CollaboratorWarehouse, "lost connection")
	c.Demote(CollaboratorModel, "quota")

	assert.Equal(t, types.ModeDemo, c.Current())

	// Further failures are a no-op from the floor.
	c.Demote(CollaboratorWarehouse, "still down")
	assert.Equal(t, types.ModeDemo, c.Current())
}

func TestRetry_ReprobesAndCanPromote(t *testing.T) {
	warehouseUp := false
	c := NewController(Probes{
		ModelConfigured: func() bool { return true },
		WarehouseReady:  func(context.Context) bool { return warehouseUp },
	})

	assert.Equal(t, types.ModeAIOnly, c.Resolve(context.Background()))

	warehouseUp = true

	assert.Equal(t, types.ModeProduction, c.Retry(context.Background()))
	assert.Equal(t, types.ModeProduction, c.Current())
}

func TestNilProbesMeanUnavailable(t *testing.T) {
	c := NewController(Probes{})

	assert.Equal(t, types.ModeDemo, c.Resolve(context.Background()))
}
