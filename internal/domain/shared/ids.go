package shared

// IDGenerator hands out scenario-unique object ids. One generator is shared
// by every manager in a scenario; the engine never invents ids any other way.
type IDGenerator interface {
	// NextID returns the next unused id. Ids are strictly increasing.
	NextID() int64
}

// SequentialIDGenerator is the standard IDGenerator: a monotonically
// increasing counter seeded at construction. It is not safe for concurrent
// use; a scenario is single-threaded (see the concurrency model).
type SequentialIDGenerator struct {
	next int64
}

// NewSequentialIDGenerator creates a generator whose first id is start.
func NewSequentialIDGenerator(start int64) *SequentialIDGenerator {
	return &SequentialIDGenerator{next: start}
}

// NextID returns the next id and advances the counter.
func (g *SequentialIDGenerator) NextID() int64 {
	id := g.next
	g.next++
	return id
}

// Advance moves the counter to at least min. Used after restoring
// persisted objects so fresh ids never collide with restored ones.
func (g *SequentialIDGenerator) Advance(min int64) {
	if g.next < min {
		g.next = min
	}
}
