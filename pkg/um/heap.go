package um

// heap is the indexed collection of dynamically allocated arrays described
// in spec.md §3/§4.3. Entry 0 is the executing program and is created by
// the loader; every other entry is created by allocate, accessed through
// read/write, and released by abandon.
//
// Freed ids are kept on a LIFO free list and reissued before any new id is
// minted, which bounds identifier growth under allocate/abandon churn
// (Testable Property 3 expects exactly this: abandon then allocate returns
// the same id).
type heap struct {
	arrays  [][]platter
	free    []platter // stack of reusable ids, most-recently-freed on top
	freeSet map[platter]bool
}

func newHeap() *heap {
	h := &heap{
		arrays:  make([][]platter, 1, 16),
		freeSet: make(map[platter]bool),
	}
	h.arrays[0] = nil // populated by the loader before Run
	return h
}

// active reports whether id names a live array (including a zero-length
// one); it is false for ids that are free or never allocated.
func (h *heap) active(id platter) bool {
	if id >= platter(len(h.arrays)) {
		return false
	}
	return !h.freeSet[id]
}

// allocate creates a zero-filled array of length n and returns a fresh,
// non-zero id distinct from every currently active id.
func (h *heap) allocate(n platter) platter {
	contents := make([]platter, n)
	if len(h.free) > 0 {
		id := h.free[len(h.free)-1]
		h.free = h.free[:len(h.free)-1]
		delete(h.freeSet, id)
		h.arrays[id] = contents
		return id
	}
	id := platter(len(h.arrays))
	h.arrays = append(h.arrays, contents)
	return id
}

// abandon frees id, making it eligible for reuse by a later allocate.
// Abandoning id 0 or an already-free id is reported by the caller as a
// Fault; the heap itself only tracks the free/active bookkeeping.
func (h *heap) abandon(id platter) {
	h.freeSet[id] = true
	h.arrays[id] = nil
	h.free = append(h.free, id)
}

// length returns the element count of an active array.
func (h *heap) length(id platter) int {
	return len(h.arrays[id])
}

// read returns the platter at offset within array id.
func (h *heap) read(id, offset platter) platter {
	return h.arrays[id][offset]
}

// write stores value at offset within array id.
func (h *heap) write(id, offset, value platter) {
	h.arrays[id][offset] = value
}

// replaceZero overwrites entry 0 with an independent copy of id's contents.
// The copy is required so that later writes to id never alias H[0].
func (h *heap) replaceZero(id platter) {
	src := h.arrays[id]
	dup := make([]platter, len(src))
	copy(dup, src)
	h.arrays[0] = dup
}

// setZero installs prog as entry 0 directly, used once at load time.
func (h *heap) setZero(prog []platter) {
	h.arrays[0] = prog
}
