package depot

import "reflect"

var _ ComponentType = AccessibleComponent[any]{}

// Type returns the Go type values of this component have.
func (c AccessibleComponent[T]) Type() reflect.Type {
	return c.typ
}

func (c AccessibleComponent[T]) Name() string {
	return typeName(c.typ)
}

// Get retrieves the component value held by record
// Returns false when the entity does not hold this component
func (c AccessibleComponent[T]) Get(record *EntityRecord) (T, bool) {
	var zero T
	if record == nil {
		return zero, false
	}
	value, ok := record.componentOf(c.typ)
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	return typed, ok
}

// GetFromCursor retrieves the component value for the record at the cursor position
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) (T, bool) {
	return c.Get(cursor.Record())
}

// GetFromEntity retrieves the component value for the specified entity
func (c AccessibleComponent[T]) GetFromEntity(world World, id EntityID) (T, error) {
	var zero T
	components, err := world.GetComponents(id, c)
	if err != nil {
		return zero, err
	}
	return components[0].(T), nil
}
