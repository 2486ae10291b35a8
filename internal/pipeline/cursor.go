package pipeline

import "sync/atomic"

// atomicCursor hands out monotonically increasing indexes. next is a single
// indivisible read-and-increment, so each index is claimed by exactly one
// caller even under real parallelism.
type atomicCursor struct {
	n atomic.Int64
}

func (c *atomicCursor) next() int {
	return int(c.n.Add(1)) - 1
}
