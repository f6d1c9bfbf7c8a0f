package depot

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"

	"go.uber.org/zap"
)

var _ World = &world{}

type world struct {
	logger     *zap.Logger
	lockDepth  int
	components *componentRegistry
	entities   map[EntityID]*EntityRecord
	cache      *entityCache
	processors processorRegistry
	opQueue    opQueue
	nextID     EntityID
	// generation changes on every reset so sequences from before a Clear stop yielding
	generation uint64
}

func newWorld() World {
	w := &world{
		logger: Config.Logger().Named("depot"),
	}
	w.reset()
	return w
}

func (w *world) reset() {
	w.components = newComponentRegistry()
	w.entities = make(map[EntityID]*EntityRecord)
	w.cache = newEntityCache()
	w.processors = processorRegistry{}
	w.opQueue = newOpQueue()
	w.nextID = 0
	w.generation++
}

func (w *world) RegisterComponent(ct ComponentType) (Bits, error) {
	if w.Locked() {
		return Bits{}, LockedWorldError{}
	}
	if ct == nil || ct.Type() == nil {
		return Bits{}, NilComponentError{Op: "RegisterComponent"}
	}
	if w.processors.len() > 0 {
		return Bits{}, ComponentOrderError{Type: ct.Type()}
	}
	bit, err := w.components.register(ct)
	if err != nil {
		return Bits{}, err
	}
	w.cache.track(bit)
	w.logger.Debug("registered component",
		zap.String("component", ct.Name()),
		zap.Stringer("bit", bit),
	)
	return bit, nil
}

func (w *world) ComponentBits(types ...ComponentType) (Bits, error) {
	var bits Bits
	for _, ct := range types {
		bit, err := w.bitForType(ct, "ComponentBits")
		if err != nil {
			return Bits{}, err
		}
		bits = bits.Or(bit)
	}
	return bits, nil
}

func (w *world) bitForType(ct ComponentType, op string) (Bits, error) {
	if ct == nil {
		return Bits{}, NilComponentError{Op: op}
	}
	return w.components.bitFor(ct.Type(), op)
}

func (w *world) RegisterProcessor(ctor ProcessorConstructor, priority int, types ...ComponentType) (Processor, error) {
	if w.Locked() {
		return nil, LockedWorldError{}
	}
	if len(types) == 0 {
		return nil, EmptyMaskError{Op: "RegisterProcessor"}
	}
	var bits Bits
	order := make([]Bits, len(types))
	for i, ct := range types {
		bit, err := w.bitForType(ct, "RegisterProcessor")
		if err != nil {
			return nil, err
		}
		order[i] = bit
		bits = bits.Or(bit)
	}

	processor := ctor(w)
	if processor == nil {
		return nil, fmt.Errorf("RegisterProcessor: constructor returned a nil processor")
	}
	w.processors.insert(ProcessorRecord{
		processor: processor,
		bits:      bits,
		order:     order,
		priority:  priority,
	})
	w.logger.Debug("registered processor",
		zap.Stringer("processor", reflect.TypeOf(processor)),
		zap.Int("priority", priority),
		zap.Stringer("bits", bits),
	)
	return processor, nil
}

func (w *world) UnregisterProcessor(processorType reflect.Type) (int, error) {
	return w.unregister(processorType, func(ProcessorRecord) bool { return true })
}

func (w *world) UnregisterProcessorWithPriority(processorType reflect.Type, priority int) (int, error) {
	return w.unregister(processorType, func(rec ProcessorRecord) bool {
		return rec.priority == priority
	})
}

func (w *world) unregister(processorType reflect.Type, match func(ProcessorRecord) bool) (int, error) {
	if w.Locked() {
		return 0, LockedWorldError{}
	}
	removed := w.processors.removeWhere(processorType, match)
	w.logger.Debug("unregistered processors",
		zap.String("processor", typeName(processorType)),
		zap.Int("removed", removed),
	)
	return removed, nil
}

func (w *world) Processors() []ProcessorRecord {
	return w.processors.snapshot()
}

// Process runs every registered processor once, highest priority first, over the entities
// matching its components. The world stays locked for the pass; mutations enqueued by
// processors are applied when it ends.
func (w *world) Process() (err error) {
	w.Lock()
	defer func() {
		if unlockErr := w.Unlock(); unlockErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to apply deferred operations: %w", unlockErr))
		}
	}()
	return w.process()
}

func (w *world) process() error {
	for _, rec := range w.processors.snapshot() {
		ids, err := w.cache.lookup(rec.bits)
		if err != nil {
			return fmt.Errorf("failed to look up entities for %s: %w", typeName(rec.processorType()), err)
		}
		for _, id := range ids {
			entity, ok := w.entities[id]
			if !ok {
				continue
			}
			components := make([]any, len(rec.order))
			for i, bit := range rec.order {
				components[i], _ = entity.Component(bit)
			}
			if err := rec.processor.Process(id, components...); err != nil {
				return ProcessError{Processor: rec.processorType(), Entity: id, Err: err}
			}
		}
	}
	return nil
}

func (w *world) resolver(op string) bitResolver {
	return func(t reflect.Type) (Bits, error) {
		return w.components.bitFor(t, op)
	}
}

func (w *world) CreateEntity(components ...any) (EntityID, error) {
	if w.Locked() {
		return 0, LockedWorldError{}
	}
	id := w.nextID
	rec, err := newEntityRecord(id, w.resolver("CreateEntity"), components...)
	if err != nil {
		return 0, err
	}
	w.entities[id] = rec
	for bit := range rec.bits.Bits() {
		w.cache.record(bit, id)
	}
	w.nextID++
	w.logger.Debug("created entity",
		zap.Uint64("entity", uint64(id)),
		zap.Stringer("bits", rec.bits),
	)
	return id, nil
}

func (w *world) RemoveEntity(id EntityID) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	rec, ok := w.entities[id]
	if !ok {
		return EntityNotFoundError{ID: id, Op: "RemoveEntity"}
	}
	for bit := range rec.bits.Bits() {
		w.cache.forget(bit, id)
	}
	delete(w.entities, id)
	rec.clear()
	w.logger.Debug("removed entity", zap.Uint64("entity", uint64(id)))
	return nil
}

func (w *world) AddComponents(id EntityID, components ...any) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	rec, ok := w.entities[id]
	if !ok {
		return EntityNotFoundError{ID: id, Op: "AddComponents"}
	}

	// Validate everything first so a failure leaves the entity untouched
	var pending Bits
	for _, component := range components {
		bit, err := w.components.bitOf(component, "AddComponents")
		if err != nil {
			return err
		}
		if rec.Has(bit) || pending.Contains(bit) {
			return ComponentExistsError{Entity: id, Type: reflect.TypeOf(component)}
		}
		pending = pending.Or(bit)
	}

	for _, component := range components {
		bit, err := rec.add(component)
		if err != nil {
			return fmt.Errorf("failed to add component: %w", err)
		}
		w.cache.record(bit, id)
	}
	return nil
}

func (w *world) RemoveComponents(id EntityID, types ...ComponentType) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	rec, ok := w.entities[id]
	if !ok {
		return EntityNotFoundError{ID: id, Op: "RemoveComponents"}
	}

	bits := make([]Bits, len(types))
	var pending Bits
	for i, ct := range types {
		bit, err := w.bitForType(ct, "RemoveComponents")
		if err != nil {
			return err
		}
		if !rec.Has(bit) || pending.Contains(bit) {
			return ComponentNotFoundError{Entity: id, Type: ct.Type()}
		}
		pending = pending.Or(bit)
		bits[i] = bit
	}

	for _, bit := range bits {
		rec.remove(bit)
		w.cache.forget(bit, id)
	}
	return nil
}

func (w *world) GetComponents(id EntityID, types ...ComponentType) ([]any, error) {
	rec, ok := w.entities[id]
	if !ok {
		return nil, EntityNotFoundError{ID: id, Op: "GetComponents"}
	}
	components := make([]any, len(types))
	for i, ct := range types {
		bit, err := w.bitForType(ct, "GetComponents")
		if err != nil {
			return nil, err
		}
		component, ok := rec.Component(bit)
		if !ok {
			return nil, ComponentNotFoundError{Entity: id, Type: ct.Type()}
		}
		components[i] = component
	}
	return components, nil
}

func (w *world) Entity(id EntityID) (*EntityRecord, bool) {
	rec, ok := w.entities[id]
	return rec, ok
}

func (w *world) EntityCount() int {
	return len(w.entities)
}

// Lookup returns the ids of every entity holding all bits of bitmask, ascending.
func (w *world) Lookup(bitmask Bits) ([]EntityID, error) {
	return w.cache.lookup(bitmask)
}

// Query resolves bitmask against the cache now and yields the matching records lazily.
// Entities removed after the call are skipped. Once the world is cleared the sequence yields
// nothing, since ids are reused from zero.
func (w *world) Query(bitmask Bits) (iter.Seq[*EntityRecord], error) {
	ids, err := w.cache.lookup(bitmask)
	if err != nil {
		return nil, err
	}
	generation := w.generation
	return func(yield func(*EntityRecord) bool) {
		for _, id := range ids {
			if w.generation != generation {
				return
			}
			rec, ok := w.entities[id]
			if !ok {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}, nil
}

// Filter scans every entity in ascending id order and yields those the query node accepts.
func (w *world) Filter(node QueryNode) iter.Seq[*EntityRecord] {
	return func(yield func(*EntityRecord) bool) {
		for _, id := range slices.Sorted(maps.Keys(w.entities)) {
			rec, ok := w.entities[id]
			if !ok || !node.Evaluate(rec, w) {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

func (w *world) Locked() bool {
	return w.lockDepth > 0
}

func (w *world) Lock() {
	w.lockDepth++
}

// Unlock releases one Lock. Releasing the outermost lock applies the deferred operations.
func (w *world) Unlock() error {
	if w.lockDepth == 0 {
		return nil
	}
	w.lockDepth--
	if w.lockDepth > 0 {
		return nil
	}
	return w.processOperationQueue()
}

func (w *world) Clear() error {
	if w.Locked() {
		return LockedWorldError{}
	}
	w.reset()
	w.logger.Debug("cleared world")
	return nil
}
