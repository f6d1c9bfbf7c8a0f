package depot

import (
	"iter"
)

var _ iCursor = &Cursor{}

func newCursor(query QueryNode, world World) *Cursor {
	return &Cursor{
		query: query,
		world: world,
	}
}

// Next advances to the next matching record. The world is locked from the first call until
// Next returns false; mutations in between must go through the Enqueue methods.
func (c *Cursor) Next() bool {
	if !c.initialized {
		c.initialize()
	}
	if c.index < len(c.matched) {
		c.current = c.matched[c.index]
		c.index++
		return true
	}
	c.Reset()
	return false
}

func (c *Cursor) Entities() iter.Seq2[int, *EntityRecord] {
	return func(yield func(int, *EntityRecord) bool) {
		c.initialize()
		for i, rec := range c.matched {
			c.index = i + 1
			c.current = rec
			if !yield(i, rec) {
				c.Reset()
				return
			}
		}
		c.Reset()
	}
}

func (c *Cursor) initialize() {
	if c.initialized {
		return
	}
	c.matched = c.matched[:0]
	for rec := range c.world.Filter(c.query) {
		c.matched = append(c.matched, rec)
	}
	c.index = 0
	c.current = nil
	c.err = nil
	c.world.Lock()
	c.initialized = true
}

// Reset releases the world lock and rewinds the cursor. Errors from operations deferred
// while the cursor held the lock are reported by Err.
func (c *Cursor) Reset() {
	wasInitialized := c.initialized
	c.index = 0
	c.current = nil
	c.matched = nil
	c.initialized = false
	if wasInitialized {
		c.err = c.world.Unlock()
	}
}

// Record returns the record the cursor is positioned on.
func (c *Cursor) Record() *EntityRecord {
	return c.current
}

func (c *Cursor) Err() error {
	return c.err
}

// TotalMatched initializes the cursor, taking the world lock, and counts the matches.
func (c *Cursor) TotalMatched() int {
	if !c.initialized {
		c.initialize()
	}
	return len(c.matched)
}
