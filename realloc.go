// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

// reallocate implements spec §4.5's six-case decision table. It must run
// under the caller's critical section; see Heap.Reallocate for the
// public, bracketed entry point.
func (h *Heap) reallocate(p []byte, size int) ([]byte, error) {
	if p == nil {
		return h.allocate(size)
	}

	if size == 0 {
		return nil, h.free(p)
	}

	c := h.blockOf(p)
	blockSize := h.block(c).size()
	curBytes := blockSize*h.blockSize - headerSize
	k := h.blocksFor(size)

	pred := h.block(c).prev()
	prevFree := 0
	if h.block(pred).free() {
		prevFree = c - pred
	}

	succ := h.block(c).next()
	nextFree := 0
	if h.block(succ).free() {
		nextFree = h.block(succ).size()
	}

	switch {
	case blockSize >= k:
		// case 1: already fits, keep in place.
	case blockSize+nextFree == k:
		// case 2: exact up-merge, strictly non-fragmenting.
		h.assimilateUp(c)
	case prevFree == 0 && blockSize+nextFree >= k:
		// case 3: up-merge (no usable predecessor to prefer instead).
		h.assimilateUp(c)
	case prevFree+blockSize >= k:
		// case 4: in-place grow into the predecessor.
		h.unlinkFree(pred)
		old := c
		c = h.assimilateDown(c, 0)
		h.shift(c, old, curBytes)
	case prevFree+blockSize+nextFree >= k:
		// case 5: up-merge then grow into the predecessor.
		h.assimilateUp(c)
		h.unlinkFree(pred)
		old := c
		c = h.assimilateDown(c, 0)
		h.shift(c, old, curBytes)
	default:
		// case 6: no in-place fit. Allocate fresh, copy, free the old
		// block. The old block is left untouched and reachable via p
		// if the new allocation fails — no partial failure.
		np, err := h.allocate(size)
		if err != nil {
			return nil, err
		}
		if np == nil {
			return nil, nil
		}

		copy(np, p) // copies min(len(np), len(p)) == min(size, curBytes) bytes
		if err := h.free(p); err != nil {
			return nil, err
		}

		return np, nil
	}

	if extent := h.block(c).size(); extent > k {
		h.split(c, k, 0)
		tail := c + k
		if err := h.free(h.block(tail).bodyPtr()); err != nil {
			return nil, err
		}
	}

	return h.block(c).bodyPtr(), nil
}

// shift moves the live prefix of a relocated-in-place block's contents
// from its former body offset (old) to its new, lower one (c), after
// assimilateDown merged it with its predecessor. Go's copy implements
// this as a memmove, correct even though the two regions overlap.
func (h *Heap) shift(c, old, n int) {
	if c == old {
		return
	}

	dst := h.block(c).bodyPtr()
	src := h.region[h.block(old).bodyOff() : h.block(old).bodyOff()+n]
	copy(dst[:n], src)
}
