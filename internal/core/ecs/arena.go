package ecs

// Arena owns one entity collection. Entities keep insertion order, are
// addressed by generational handles, and are killed in two steps: Kill makes
// the handle absent immediately (lookups and iteration skip it), Compact
// physically drops dead slots once per tick.
//
// Single-goroutine access only (game loop).
type Arena[T any] struct {
	pool  *EntityPool
	ids   []EntityID
	items []*T
	index map[EntityID]int
	live  int
}

func NewArena[T any](capacity int) *Arena[T] {
	return &Arena[T]{
		pool:  NewEntityPool(),
		ids:   make([]EntityID, 0, capacity),
		items: make([]*T, 0, capacity),
		index: make(map[EntityID]int, capacity),
	}
}

// Add stores v and returns its new handle.
func (a *Arena[T]) Add(v *T) EntityID {
	id := a.pool.Create()
	a.index[id] = len(a.ids)
	a.ids = append(a.ids, id)
	a.items = append(a.items, v)
	a.live++
	return id
}

// Get resolves a handle. Dead or stale handles report false.
func (a *Arena[T]) Get(id EntityID) (*T, bool) {
	if !a.pool.Alive(id) {
		return nil, false
	}
	i, ok := a.index[id]
	if !ok {
		return nil, false
	}
	return a.items[i], true
}

func (a *Arena[T]) Alive(id EntityID) bool {
	return a.pool.Alive(id)
}

// Kill removes id from the live set. Its slot is reclaimed by Compact.
func (a *Arena[T]) Kill(id EntityID) bool {
	if !a.pool.Destroy(id) {
		return false
	}
	a.live--
	return true
}

// Len returns the number of live entities.
func (a *Arena[T]) Len() int { return a.live }

// Each visits live entities in insertion order. Entities killed during the
// walk are skipped from then on; entities added during the walk are not
// visited until the next call.
func (a *Arena[T]) Each(fn func(EntityID, *T)) {
	n := len(a.ids)
	for i := 0; i < n; i++ {
		id := a.ids[i]
		if !a.pool.Alive(id) {
			continue
		}
		fn(id, a.items[i])
	}
}

// Find returns the first live entity accepted by match.
func (a *Arena[T]) Find(match func(EntityID, *T) bool) (EntityID, *T, bool) {
	for i, id := range a.ids {
		if a.pool.Alive(id) && match(id, a.items[i]) {
			return id, a.items[i], true
		}
	}
	return None, nil, false
}

// Compact drops dead slots, preserving the order of survivors.
func (a *Arena[T]) Compact() {
	if a.live == len(a.ids) {
		return
	}
	w := 0
	for r, id := range a.ids {
		if !a.pool.Alive(id) {
			delete(a.index, id)
			continue
		}
		a.ids[w] = id
		a.items[w] = a.items[r]
		a.index[id] = w
		w++
	}
	for i := w; i < len(a.items); i++ {
		a.items[i] = nil
	}
	a.ids = a.ids[:w]
	a.items = a.items[:w]
}

// Reset discards every entity and starts a fresh handle space.
func (a *Arena[T]) Reset() {
	a.pool = NewEntityPool()
	a.ids = a.ids[:0]
	for i := range a.items {
		a.items[i] = nil
	}
	a.items = a.items[:0]
	a.index = make(map[EntityID]int, cap(a.ids))
	a.live = 0
}
