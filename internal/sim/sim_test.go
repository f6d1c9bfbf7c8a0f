package sim

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/TheBitDrifter/depot"
)

const testScenario = `
log:
  level: debug
passes: 3
spawn:
  - count: 4
    components: [position, velocity, tag]
    position: {x: 1, y: 1}
    velocity: {x: 2, y: -1}
  - count: 3
    components: [position, health]
    health: 2
  - count: 2
    components: [health, velocity]
    health: 5
processors:
  - name: decay
    priority: 1
  - name: movement
    priority: 10
`

func TestLoadScenario(t *testing.T) {
	scenario, err := LoadScenario(strings.NewReader(testScenario))
	require.NoError(t, err)

	assert.Equal(t, "debug", scenario.Log.Level)
	assert.Equal(t, 3, scenario.Passes)
	require.Len(t, scenario.Spawn, 3)
	assert.Equal(t, []string{"position", "velocity", "tag"}, scenario.Spawn[0].Components)
	assert.Equal(t, Vec{X: 2, Y: -1}, scenario.Spawn[0].Velocity)
	assert.Equal(t, []ProcessorConfig{{"decay", 1}, {"movement", 10}}, scenario.Processors)
}

func TestLoadScenarioErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown component", "spawn:\n  - count: 1\n    components: [mass]\n"},
		{"duplicate component", "spawn:\n  - count: 1\n    components: [tag, tag]\n"},
		{"negative count", "spawn:\n  - count: -1\n"},
		{"negative passes", "passes: -2\n"},
		{"unknown processor", "processors:\n  - name: gravity\n"},
		{"unknown field", "tick_rate: 60\n"},
		{"malformed", "spawn: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestSimulationRun(t *testing.T) {
	scenario, err := LoadScenario(strings.NewReader(testScenario))
	require.NoError(t, err)

	simulation, err := New(scenario, zaptest.NewLogger(t))
	require.NoError(t, err)
	world := simulation.World()
	assert.Equal(t, 9, world.EntityCount())

	records := world.Processors()
	require.Len(t, records, 2)
	assert.IsType(t, &Movement{}, records[0].Processor())
	assert.IsType(t, &Decay{}, records[1].Processor())

	report, err := simulation.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Passes)
	assert.NotEqual(t, uuid.Nil, report.RunID)

	// The health-2 group decays away on the second pass
	assert.Equal(t, 6, report.Entities)

	tags := make(map[uuid.UUID]bool)
	for rec := range world.Filter(depot.Factory.NewQuery().And(position, velocity)) {
		pos, ok := position.Get(rec)
		require.True(t, ok)
		vel, _ := velocity.Get(rec)
		if tg, ok := tag.Get(rec); ok {
			assert.Equal(t, Position{X: 7, Y: -2}, *pos)
			tags[tg.ID] = true
		} else {
			t.Fatalf("entity %d has position and velocity but no tag: %+v", rec.ID(), vel)
		}
	}
	assert.Len(t, tags, 4)

	for rec := range world.Filter(depot.Factory.NewQuery().And(health)) {
		hp, _ := health.Get(rec)
		assert.Equal(t, 2, hp.Current)
		assert.Equal(t, 5, hp.Max)
	}
}

func TestSimulationRunCancelled(t *testing.T) {
	scenario, err := LoadScenario(strings.NewReader(testScenario))
	require.NoError(t, err)
	simulation, err := New(scenario, zaptest.NewLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := simulation.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, report.Passes)
	assert.Equal(t, 9, report.Entities)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))

	_, err = NewLogger(LogConfig{Level: "loud"})
	assert.Error(t, err)

	logger, err = NewLogger(LogConfig{Development: true})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
