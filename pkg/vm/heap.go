package vm

import (
	"fmt"
)

// Heap is the indexed arena holding every registered constructor. A
// ConstructorID is a slot index; names map to slots so constructors can be
// resolved the way globals are.
type Heap struct {
	slots []*Constructor
	size  int // Current size of the heap
	// name -> index map backing ConstructorByName
	nameToIndex map[string]int
}

// NewHeap creates a new heap with the specified initial capacity
func NewHeap(initialCapacity int) *Heap {
	return &Heap{
		slots:       make([]*Constructor, initialCapacity),
		nameToIndex: make(map[string]int),
	}
}

// Resize ensures the heap can accommodate at least the specified size
func (h *Heap) Resize(newSize int) {
	if newSize > len(h.slots) {
		grown := make([]*Constructor, newSize)
		copy(grown, h.slots)
		h.slots = grown
	}
	if newSize > h.size {
		h.size = newSize
	}
}

// Get retrieves the constructor stored at index
func (h *Heap) Get(index int) (*Constructor, bool) {
	if index < 0 || index >= h.size {
		return nil, false
	}
	c := h.slots[index]
	return c, c != nil
}

// Set stores a constructor at the specified index
func (h *Heap) Set(index int, c *Constructor) error {
	if index < 0 {
		return fmt.Errorf("heap index cannot be negative: %d", index)
	}
	if index >= len(h.slots) {
		h.Resize(index + 1)
	}
	if prev := h.slots[index]; prev != nil && prev.Name != c.Name {
		delete(h.nameToIndex, prev.Name)
	}
	h.slots[index] = c
	if index >= h.size {
		h.size = index + 1
	}
	h.nameToIndex[c.Name] = index
	return nil
}

// Append stores c in the next free slot and returns its index
func (h *Heap) Append(c *Constructor) int {
	index := h.size
	if err := h.Set(index, c); err != nil {
		// index is never negative here
		panic(err)
	}
	return index
}

// Lookup resolves a constructor name to its slot index
func (h *Heap) Lookup(name string) (int, bool) {
	idx, ok := h.nameToIndex[name]
	return idx, ok
}

// Size returns the current size of the heap
func (h *Heap) Size() int {
	return h.size
}

// Constructors returns the occupied slots in index order (for debugging)
func (h *Heap) Constructors() []*Constructor {
	out := make([]*Constructor, 0, h.size)
	for _, c := range h.slots[:h.size] {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
