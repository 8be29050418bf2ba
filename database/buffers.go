package database

import "sync"

type scanBuffers struct {
	vals []any
	ptrs []any
}

// reset clears the buffers for reuse
func (sb *scanBuffers) reset() {
	// Clear slices but keep capacity
	sb.vals = sb.vals[:0]
	sb.ptrs = sb.ptrs[:0]
}

// ensureCapacity grows buffers if needed
func (sb *scanBuffers) ensureCapacity(size int) {
	if cap(sb.vals) < size {
		sb.vals = make([]any, 0, size)
		sb.ptrs = make([]any, 0, size)
	}
}

// prepare sets up buffers for scanning size columns
func (sb *scanBuffers) prepare(size int) {
	sb.reset()
	sb.ensureCapacity(size)

	for len(sb.vals) < size {
		sb.vals = append(sb.vals, nil)
		sb.ptrs = append(sb.ptrs, nil)
	}

	for i := range sb.vals {
		sb.ptrs[i] = &sb.vals[i]
	}
}

var scanPool = sync.Pool{
	New: func() interface{} {
		return &scanBuffers{
			vals: make([]any, 0, 20),
			ptrs: make([]any, 0, 20),
		}
	},
}
