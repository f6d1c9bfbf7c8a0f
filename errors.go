package depot

import (
	"fmt"
	"reflect"
)

type LockedWorldError struct{}

func (e LockedWorldError) Error() string {
	return fmt.Sprintf("world is currently locked")
}

// ComponentOrderError is returned when a component type is registered after a processor.
type ComponentOrderError struct {
	Type reflect.Type
}

func (e ComponentOrderError) Error() string {
	return fmt.Sprintf(
		"tried to register component %s after registering a processor: all components must be registered before processors",
		typeName(e.Type),
	)
}

type ComponentRegisteredError struct {
	Type reflect.Type
	Bit  Bits
}

func (e ComponentRegisteredError) Error() string {
	return fmt.Sprintf("component %s is already registered as %v", typeName(e.Type), e.Bit)
}

type ComponentCapacityError struct {
	Type reflect.Type
}

func (e ComponentCapacityError) Error() string {
	return fmt.Sprintf("cannot register component %s: world is at maximum capacity (%d)", typeName(e.Type), MaxComponentTypes)
}

// UnknownComponentTypeError is returned when a component type was never registered with the world.
// Op names the world operation that needed it.
type UnknownComponentTypeError struct {
	Type reflect.Type
	Op   string
}

func (e UnknownComponentTypeError) Error() string {
	return fmt.Sprintf("%s: unregistered component type %s", e.Op, typeName(e.Type))
}

type NilComponentError struct {
	Op string
}

func (e NilComponentError) Error() string {
	return fmt.Sprintf("%s: nil component", e.Op)
}

type EntityNotFoundError struct {
	ID EntityID
	Op string
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s: entity %d does not exist", e.Op, e.ID)
}

type ComponentExistsError struct {
	Entity EntityID
	Type   reflect.Type
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity %d: %s", e.Entity, typeName(e.Type))
}

type ComponentNotFoundError struct {
	Entity EntityID
	Type   reflect.Type
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity %d: %s", e.Entity, typeName(e.Type))
}

// KeyExistsError is returned by Registry.Add when the key strategy produced a key that is already present.
type KeyExistsError struct {
	Key any
}

func (e KeyExistsError) Error() string {
	return fmt.Sprintf("registry already holds key %v", e.Key)
}

type EmptyMaskError struct {
	Op string
}

func (e EmptyMaskError) Error() string {
	return fmt.Sprintf("%s: bitmask has no bits set", e.Op)
}

type UnknownBitError struct {
	Bit Bits
}

func (e UnknownBitError) Error() string {
	return fmt.Sprintf("bit %v was never assigned to a component type", e.Bit)
}

// ProcessError wraps the error a processor returned for one entity during World.Process.
type ProcessError struct {
	Processor reflect.Type
	Entity    EntityID
	Err       error
}

func (e ProcessError) Error() string {
	return fmt.Sprintf("processor %s failed on entity %d: %v", typeName(e.Processor), e.Entity, e.Err)
}

func (e ProcessError) Unwrap() error {
	return e.Err
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
