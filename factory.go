package depot

import "reflect"

type factory struct{}

var Factory factory

func (f factory) NewWorld() World {
	return newWorld()
}

func (f factory) NewQuery() Query {
	return newQuery()
}

func (f factory) NewCursor(query QueryNode, world World) *Cursor {
	return newCursor(query, world)
}

func FactoryNewComponent[T any]() AccessibleComponent[T] {
	return AccessibleComponent[T]{typ: reflect.TypeFor[T]()}
}

func FactoryNewRegistry[K comparable, V any](newKey KeyFunc[K, V]) *Registry[K, V] {
	return newRegistry(newKey)
}
