package netlist

// poolSlot wraps a pooled value with the in-band freelist discriminator:
// nextFree == poolUsed means the slot is live; otherwise nextFree is
// either the index of the next free slot or poolListEnd if this is the
// last one in the chain.
type poolSlot[T any] struct {
	value    T
	nextFree uint32
}

// ObjectPool is a stable-index arena over a homogeneous T, backed by an
// explicit freelist. Indices handed out by Allocate remain valid (point at
// the same logical slot) for the slot's entire lifetime; growing the pool
// never invalidates an outstanding index, which is what makes the proxy
// handles in module.go/node.go/wire.go safe to hold across mutation.
type ObjectPool[T any] struct {
	slots    []poolSlot[T]
	freeHead uint32 // poolListEnd if the freelist is empty
}

// newObjectPool returns an empty pool with an empty freelist.
func newObjectPool[T any]() ObjectPool[T] {
	return ObjectPool[T]{freeHead: poolListEnd}
}

// Allocate reserves a slot, reusing the freelist head if non-empty,
// otherwise appending. The returned value is the zero value of T.
func (p *ObjectPool[T]) Allocate() uint32 {
	if p.freeHead != poolListEnd {
		i := p.freeHead
		p.freeHead = p.slots[i].nextFree
		var zero T
		p.slots[i] = poolSlot[T]{value: zero, nextFree: poolUsed}
		return i
	}
	p.slots = append(p.slots, poolSlot[T]{nextFree: poolUsed})
	return uint32(len(p.slots) - 1)
}

// Deallocate resets the slot's value to its zero value and links it into
// the freelist. Subsequent IsValid(i) calls return false until the slot is
// reused by a later Allocate.
func (p *ObjectPool[T]) Deallocate(i uint32) {
	var zero T
	p.slots[i] = poolSlot[T]{value: zero, nextFree: p.freeHead}
	p.freeHead = i
}

// IsValid reports whether i currently refers to a live slot (as opposed
// to never allocated, or freed and not yet reused).
func (p *ObjectPool[T]) IsValid(i uint32) bool {
	return i < uint32(len(p.slots)) && p.slots[i].nextFree == poolUsed
}

// Get returns a pointer to the live value at i. Callers must have checked
// IsValid first; this is a programming-contract access, not a
// runtime-recoverable one (see spec.md §7).
func (p *ObjectPool[T]) Get(i uint32) *T {
	return &p.slots[i].value
}

// Len returns the pool's capacity, i.e. one past the highest index ever
// allocated (including currently-freed slots).
func (p *ObjectPool[T]) Len() int {
	return len(p.slots)
}

// All returns the indices of every live slot, in slot order (insertion
// order modulo freelist reuse).
func (p *ObjectPool[T]) All() []uint32 {
	out := make([]uint32, 0, len(p.slots))
	for i := range p.slots {
		if p.slots[i].nextFree == poolUsed {
			out = append(out, uint32(i))
		}
	}
	return out
}
