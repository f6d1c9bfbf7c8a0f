package depot

import (
	"iter"
	"reflect"

	"github.com/TheBitDrifter/mask"
)

// EntityID is an opaque entity handle. Ids increase monotonically from 0 and are never reused
// within a World until Clear.
type EntityID uint64

type World interface {
	RegisterComponent(ComponentType) (Bits, error)
	ComponentBits(...ComponentType) (Bits, error)

	RegisterProcessor(ctor ProcessorConstructor, priority int, types ...ComponentType) (Processor, error)
	UnregisterProcessor(processorType reflect.Type) (int, error)
	UnregisterProcessorWithPriority(processorType reflect.Type, priority int) (int, error)
	Processors() []ProcessorRecord
	Process() error

	CreateEntity(...any) (EntityID, error)
	RemoveEntity(EntityID) error
	AddComponents(EntityID, ...any) error
	RemoveComponents(EntityID, ...ComponentType) error
	GetComponents(EntityID, ...ComponentType) ([]any, error)
	Entity(EntityID) (*EntityRecord, bool)
	EntityCount() int

	Lookup(Bits) ([]EntityID, error)
	Query(Bits) (iter.Seq[*EntityRecord], error)
	Filter(QueryNode) iter.Seq[*EntityRecord]

	EnqueueCreateEntity(...any) error
	EnqueueRemoveEntity(EntityID) error
	EnqueueAddComponents(EntityID, ...any) error
	EnqueueRemoveComponents(EntityID, ...ComponentType) error
	Locked() bool
	Lock()
	Unlock() error

	Clear() error
}

// AppendOnly is the read surface of a Registry plus its single sanctioned mutation.
type AppendOnly[K comparable, V any] interface {
	Add(V) (K, error)
	Get(K) (V, bool)
	Has(K) bool
	Len() int
	All() iter.Seq2[K, V]
	Keys() iter.Seq[K]
}

// ComponentType identifies a kind of component by the Go type of its values.
type ComponentType interface {
	Type() reflect.Type
	Name() string
}

// Processor operates on every entity holding the component types it was registered with.
// components arrive in registration order.
type Processor interface {
	Process(id EntityID, components ...any) error
}

// ProcessorConstructor builds a processor bound to the world registering it.
type ProcessorConstructor func(World) Processor

type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

type QueryNode interface {
	Evaluate(record mask.Maskable, world World) bool
}

type iCursor interface {
	Entities() iter.Seq2[int, *EntityRecord]
	Next() bool
}

// EntityRecord holds one entity's components keyed by their single-bit Bits,
// plus the aggregate of those keys.
type EntityRecord struct {
	id         EntityID
	bits       Bits
	components *Registry[Bits, any]
	resolve    bitResolver
}

// ProcessorRecord is an immutable registration entry.
type ProcessorRecord struct {
	processor Processor
	bits      Bits
	order     []Bits
	priority  int
}

// Warning: holds the world lock between the first Next and the end of iteration.
type Cursor struct {
	query QueryNode
	world World

	matched []*EntityRecord
	index   int
	current *EntityRecord
	err     error

	initialized bool
}

type AccessibleComponent[T any] struct {
	typ reflect.Type
}
