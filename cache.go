package depot

import (
	"slices"
)

// entityCache maps each single component bit to the ids of the entities holding it.
type entityCache struct {
	sets map[Bits]map[EntityID]struct{}
}

func newEntityCache() *entityCache {
	return &entityCache{sets: make(map[Bits]map[EntityID]struct{})}
}

// track makes bit known to the cache with an empty set.
func (c *entityCache) track(bit Bits) {
	if _, ok := c.sets[bit]; !ok {
		c.sets[bit] = make(map[EntityID]struct{})
	}
}

func (c *entityCache) record(bit Bits, id EntityID) {
	set, ok := c.sets[bit]
	if !ok {
		set = make(map[EntityID]struct{})
		c.sets[bit] = set
	}
	set[id] = struct{}{}
}

func (c *entityCache) forget(bit Bits, id EntityID) {
	if set, ok := c.sets[bit]; ok {
		delete(set, id)
	}
}

func (c *entityCache) contains(bit Bits, id EntityID) bool {
	_, ok := c.sets[bit][id]
	return ok
}

// lookup intersects the sets of every bit in bitmask and returns the ids in ascending order.
func (c *entityCache) lookup(bitmask Bits) ([]EntityID, error) {
	if bitmask.IsZero() {
		return nil, EmptyMaskError{Op: "Lookup"}
	}
	split := bitmask.Split()
	sets := make([]map[EntityID]struct{}, 0, len(split))
	for _, bit := range split {
		set, ok := c.sets[bit]
		if !ok {
			return nil, UnknownBitError{Bit: bit}
		}
		sets = append(sets, set)
	}

	// Walk the smallest set and probe the rest
	slices.SortFunc(sets, func(a, b map[EntityID]struct{}) int {
		return len(a) - len(b)
	})
	ids := make([]EntityID, 0, len(sets[0]))
outer:
	for id := range sets[0] {
		for _, other := range sets[1:] {
			if _, ok := other[id]; !ok {
				continue outer
			}
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
