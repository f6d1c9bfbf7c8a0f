package depot

import (
	"reflect"
)

var _ ComponentType = componentType{}

type componentType struct {
	typ reflect.Type
}

// ComponentTypeOf returns the ComponentType of a component value.
func ComponentTypeOf(component any) ComponentType {
	return componentType{typ: reflect.TypeOf(component)}
}

func (c componentType) Type() reflect.Type {
	return c.typ
}

func (c componentType) Name() string {
	return typeName(c.typ)
}

// componentRegistry assigns bit n to the n-th registered type.
type componentRegistry struct {
	byBit  *Registry[Bits, ComponentType]
	byType map[reflect.Type]Bits
}

func newComponentRegistry() *componentRegistry {
	return &componentRegistry{
		byBit: newRegistry[Bits, ComponentType](func(size int, ct ComponentType) (Bits, error) {
			if size >= MaxComponentTypes {
				return Bits{}, ComponentCapacityError{Type: ct.Type()}
			}
			return BitAt(size), nil
		}),
		byType: make(map[reflect.Type]Bits),
	}
}

func (r *componentRegistry) register(ct ComponentType) (Bits, error) {
	if bit, ok := r.byType[ct.Type()]; ok {
		return bit, ComponentRegisteredError{Type: ct.Type(), Bit: bit}
	}
	bit, err := r.byBit.Add(ct)
	if err != nil {
		return Bits{}, err
	}
	r.byType[ct.Type()] = bit
	return bit, nil
}

func (r *componentRegistry) bitFor(t reflect.Type, op string) (Bits, error) {
	if t == nil {
		return Bits{}, NilComponentError{Op: op}
	}
	bit, ok := r.byType[t]
	if !ok {
		return Bits{}, UnknownComponentTypeError{Type: t, Op: op}
	}
	return bit, nil
}

func (r *componentRegistry) bitOf(component any, op string) (Bits, error) {
	return r.bitFor(reflect.TypeOf(component), op)
}

func (r *componentRegistry) typeFor(bit Bits) reflect.Type {
	ct, ok := r.byBit.Get(bit)
	if !ok {
		return nil
	}
	return ct.Type()
}

func (r *componentRegistry) len() int {
	return r.byBit.Len()
}
