package depot

import (
	"errors"
	"iter"
	"reflect"

	"github.com/TheBitDrifter/mask"
)

var _ mask.Maskable = &EntityRecord{}

// bitResolver maps a component type to its registered bit.
type bitResolver func(t reflect.Type) (Bits, error)

func newEntityRecord(id EntityID, resolve bitResolver, components ...any) (*EntityRecord, error) {
	rec := &EntityRecord{id: id, resolve: resolve}
	rec.components = newRegistry[Bits, any](func(_ int, component any) (Bits, error) {
		return resolve(reflect.TypeOf(component))
	})
	for _, component := range components {
		if _, err := rec.components.Add(component); err != nil {
			return nil, rec.explain(err, component)
		}
	}
	for bit := range rec.components.Keys() {
		rec.bits = rec.bits.Or(bit)
	}
	return rec, nil
}

func (r *EntityRecord) ID() EntityID {
	return r.id
}

// Bits returns the OR of every component bit the entity currently holds.
func (r *EntityRecord) Bits() Bits {
	return r.bits
}

func (r *EntityRecord) Mask() mask.Mask {
	return r.bits.Mask()
}

func (r *EntityRecord) Len() int {
	return r.components.Len()
}

func (r *EntityRecord) Has(bit Bits) bool {
	return r.components.Has(bit)
}

func (r *EntityRecord) Component(bit Bits) (any, bool) {
	return r.components.Get(bit)
}

// componentOf returns the component stored for type t, if the entity holds one.
func (r *EntityRecord) componentOf(t reflect.Type) (any, bool) {
	bit, err := r.resolve(t)
	if err != nil {
		return nil, false
	}
	return r.components.Get(bit)
}

// Components yields the entity's components in ascending bit order.
func (r *EntityRecord) Components() iter.Seq2[Bits, any] {
	return func(yield func(Bits, any) bool) {
		for bit := range r.bits.Bits() {
			component, _ := r.components.Get(bit)
			if !yield(bit, component) {
				return
			}
		}
	}
}

func (r *EntityRecord) add(component any) (Bits, error) {
	bit, err := r.components.Add(component)
	if err != nil {
		return Bits{}, r.explain(err, component)
	}
	r.bits = r.bits.Or(bit)
	return bit, nil
}

// remove drops the component stored under bit. It reports false, leaving the record untouched,
// when bit is not held.
func (r *EntityRecord) remove(bit Bits) bool {
	if !r.components.remove(bit) {
		return false
	}
	r.bits = r.bits.Xor(bit)
	return true
}

func (r *EntityRecord) clear() {
	r.components.reset()
	r.bits = r.bits.And(Bits{})
}

func (r *EntityRecord) explain(err error, component any) error {
	var exists KeyExistsError
	if errors.As(err, &exists) {
		return ComponentExistsError{Entity: r.id, Type: reflect.TypeOf(component)}
	}
	return err
}
