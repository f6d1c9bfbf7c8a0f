package depot

import "iter"

var _ AppendOnly[int, any] = &Registry[int, any]{}

// KeyFunc mints the key for a value about to be added to a Registry.
// size is the number of entries already held.
type KeyFunc[K comparable, V any] func(size int, value V) (K, error)

// Registry is an append-only key/value container. The only public mutation is Add,
// which asks the registry's KeyFunc for a fresh key.
type Registry[K comparable, V any] struct {
	keys   []K
	items  map[K]V
	newKey KeyFunc[K, V]
}

func newRegistry[K comparable, V any](newKey KeyFunc[K, V]) *Registry[K, V] {
	return &Registry[K, V]{
		items:  make(map[K]V),
		newKey: newKey,
	}
}

// Add stores value under the key produced by the registry's KeyFunc and returns that key.
// A key that is already present is a broken KeyFunc and yields KeyExistsError.
func (r *Registry[K, V]) Add(value V) (K, error) {
	key, err := r.newKey(len(r.keys), value)
	if err != nil {
		var zero K
		return zero, err
	}
	if _, exists := r.items[key]; exists {
		return key, KeyExistsError{Key: key}
	}
	r.items[key] = value
	r.keys = append(r.keys, key)
	return key, nil
}

func (r *Registry[K, V]) Get(key K) (V, bool) {
	v, ok := r.items[key]
	return v, ok
}

func (r *Registry[K, V]) Has(key K) bool {
	_, ok := r.items[key]
	return ok
}

func (r *Registry[K, V]) Len() int {
	return len(r.keys)
}

// All yields entries in insertion order.
func (r *Registry[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range r.keys {
			if !yield(k, r.items[k]) {
				return
			}
		}
	}
}

func (r *Registry[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, k := range r.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// remove is reserved for in-package owners that maintain their own invariant over the keys.
func (r *Registry[K, V]) remove(key K) bool {
	if _, ok := r.items[key]; !ok {
		return false
	}
	delete(r.items, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
	return true
}

func (r *Registry[K, V]) reset() {
	r.keys = r.keys[:0]
	clear(r.items)
}
