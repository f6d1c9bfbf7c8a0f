package depot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	id         EntityID
	components []any
}

// recorder remembers every Process call it receives.
type recorder struct {
	world World
	calls []call
}

func newRecorder(world World) Processor {
	return &recorder{world: world}
}

func (r *recorder) Process(id EntityID, components ...any) error {
	r.calls = append(r.calls, call{id: id, components: components})
	return nil
}

type labelled struct {
	label string
}

func (l *labelled) Process(EntityID, ...any) error {
	return nil
}

func newLabelled(label string) ProcessorConstructor {
	return func(World) Processor {
		return &labelled{label: label}
	}
}

func TestRegisterProcessorPriorityOrder(t *testing.T) {
	world := newTestWorld(t, posComp)

	registrations := []struct {
		label    string
		priority int
	}{
		{"five-first", 5},
		{"one", 1},
		{"five-second", 5},
		{"three", 3},
	}
	for _, r := range registrations {
		_, err := world.RegisterProcessor(newLabelled(r.label), r.priority, posComp)
		require.NoError(t, err)
	}

	var labels []string
	var priorities []int
	for _, rec := range world.Processors() {
		labels = append(labels, rec.Processor().(*labelled).label)
		priorities = append(priorities, rec.Priority())
	}
	assert.Equal(t, []int{5, 5, 3, 1}, priorities)
	assert.Equal(t, []string{"five-first", "five-second", "three", "one"}, labels)
}

func TestRegisterProcessorRecord(t *testing.T) {
	world := newTestWorld(t, posComp, velComp, healthComp)

	processor, err := world.RegisterProcessor(newRecorder, 0, healthComp, posComp)
	require.NoError(t, err)
	assert.Same(t, world, processor.(*recorder).world)

	records := world.Processors()
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, BitsOf(0b101), rec.Bits())
	assert.Equal(t, []Bits{BitAt(2), BitAt(0)}, rec.Order())
	assert.Equal(t, 0, rec.Priority())

	// Order is a copy
	rec.Order()[0] = BitAt(1)
	assert.Equal(t, []Bits{BitAt(2), BitAt(0)}, world.Processors()[0].Order())
}

func TestRegisterProcessorErrors(t *testing.T) {
	world := newTestWorld(t, posComp)

	_, err := world.RegisterProcessor(newRecorder, 0, posComp, nameComp)
	var unknown UnknownComponentTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "RegisterProcessor", unknown.Op)
	assert.Contains(t, err.Error(), "depot.Name")

	_, err = world.RegisterProcessor(newRecorder, 0)
	assert.ErrorAs(t, err, &EmptyMaskError{})

	_, err = world.RegisterProcessor(func(World) Processor { return nil }, 0, posComp)
	assert.Error(t, err)

	assert.Empty(t, world.Processors())
}

func TestUnregisterProcessor(t *testing.T) {
	world := newTestWorld(t, posComp)
	for _, priority := range []int{1, 2, 2} {
		_, err := world.RegisterProcessor(newRecorder, priority, posComp)
		require.NoError(t, err)
	}
	_, err := world.RegisterProcessor(newLabelled("keep"), 2, posComp)
	require.NoError(t, err)

	removed, err := world.UnregisterProcessorWithPriority(ProcessorType[*recorder](), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Len(t, world.Processors(), 2)

	removed, err = world.UnregisterProcessor(ProcessorType[*recorder]())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	records := world.Processors()
	require.Len(t, records, 1)
	assert.Equal(t, "keep", records[0].Processor().(*labelled).label)
}

func TestProcessDispatchesInOrder(t *testing.T) {
	world := newTestWorld(t, posComp, velComp, healthComp)

	moving, err := world.CreateEntity(Position{X: 1}, Velocity{X: 2})
	require.NoError(t, err)
	_, err = world.CreateEntity(Position{X: 3})
	require.NoError(t, err)
	both, err := world.CreateEntity(Velocity{X: 4}, Health{Current: 1}, Position{X: 5})
	require.NoError(t, err)

	processor, err := world.RegisterProcessor(newRecorder, 0, velComp, posComp)
	require.NoError(t, err)

	require.NoError(t, world.Process())

	calls := processor.(*recorder).calls
	assert.Equal(t, []call{
		{id: moving, components: []any{Velocity{X: 2}, Position{X: 1}}},
		{id: both, components: []any{Velocity{X: 4}, Position{X: 5}}},
	}, calls)
	assert.False(t, world.Locked())
}

type sequenced struct {
	name string
	log  *[]string
}

func (s *sequenced) Process(EntityID, ...any) error {
	*s.log = append(*s.log, s.name)
	return nil
}

func TestProcessRespectsPriority(t *testing.T) {
	world := newTestWorld(t, posComp)
	_, err := world.CreateEntity(Position{})
	require.NoError(t, err)

	var log []string
	for _, p := range []struct {
		name     string
		priority int
	}{{"low", 1}, {"high", 9}, {"mid", 5}} {
		name := p.name
		_, err := world.RegisterProcessor(func(World) Processor {
			return &sequenced{name: name, log: &log}
		}, p.priority, posComp)
		require.NoError(t, err)
	}

	require.NoError(t, world.Process())
	assert.Equal(t, []string{"high", "mid", "low"}, log)
}

type failing struct{}

var errBoom = errors.New("boom")

func (failing) Process(EntityID, ...any) error {
	return errBoom
}

func TestProcessError(t *testing.T) {
	world := newTestWorld(t, posComp)
	id, err := world.CreateEntity(Position{})
	require.NoError(t, err)
	_, err = world.RegisterProcessor(func(World) Processor { return failing{} }, 0, posComp)
	require.NoError(t, err)

	err = world.Process()
	var processErr ProcessError
	require.ErrorAs(t, err, &processErr)
	assert.Equal(t, id, processErr.Entity)
	assert.Equal(t, ProcessorType[failing](), processErr.Processor)
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, world.Locked())
}

type panicking struct{}

func (panicking) Process(EntityID, ...any) error {
	panic("processor blew up")
}

func TestProcessPanicReleasesLock(t *testing.T) {
	world := newTestWorld(t, posComp)
	_, err := world.CreateEntity(Position{})
	require.NoError(t, err)
	_, err = world.RegisterProcessor(func(World) Processor { return panicking{} }, 0, posComp)
	require.NoError(t, err)

	assert.PanicsWithValue(t, "processor blew up", func() { _ = world.Process() })
	assert.False(t, world.Locked())

	_, err = world.CreateEntity(Position{})
	assert.NoError(t, err)
}

// despawner removes every entity it visits.
type despawner struct {
	world World
}

func (d *despawner) Process(id EntityID, _ ...any) error {
	return d.world.EnqueueRemoveEntity(id)
}

func TestProcessDefersMutations(t *testing.T) {
	world := newTestWorld(t, posComp)
	for i := 0; i < 4; i++ {
		_, err := world.CreateEntity(Position{})
		require.NoError(t, err)
	}
	_, err := world.RegisterProcessor(func(w World) Processor { return &despawner{world: w} }, 0, posComp)
	require.NoError(t, err)

	require.NoError(t, world.Process())
	assert.Equal(t, 0, world.EntityCount())
	assertCacheConsistent(t, world)
}
