// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

// allocate implements spec §4.3. It must run under the caller's critical
// section; see Heap.Allocate for the public, bracketed entry point.
func (h *Heap) allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, nil
	}

	k := h.blocksFor(size)

	c, found := h.findFit(k)
	if !found {
		return nil, nil
	}

	have := h.block(c).size()
	h.metricRemove(have)
	if have == k {
		h.unlinkFree(c)
	} else {
		h.splitAndKeepRing(c, k)
		h.metricAdd(have - k)
	}

	return h.block(c).bodyPtr(), nil
}

// findFit walks the free ring starting at nextFree(0) looking for a
// candidate of size >= k, per the Heap's configured FitPolicy. BestFit
// tracks the smallest candidate seen, ties broken by whichever was found
// first — it does not restart the search on an exact tie, matching
// umm_malloc's own best-fit walk. FirstFit returns the first adequate
// candidate.
func (h *Heap) findFit(k int) (int, bool) {
	switch h.cfg.policy() {
	case FirstFit:
		return h.firstFit(k)
	default:
		return h.bestFit(k)
	}
}

func (h *Heap) firstFit(k int) (int, bool) {
	for c := h.block(0).nextFree(); c != 0; c = h.block(c).nextFree() {
		if h.block(c).size() >= k {
			return c, true
		}
	}

	return 0, false
}

func (h *Heap) bestFit(k int) (int, bool) {
	best, bestSize := 0, 0
	for c := h.block(0).nextFree(); c != 0; c = h.block(c).nextFree() {
		sz := h.block(c).size()
		if sz < k {
			continue
		}

		if best == 0 || sz < bestSize {
			best, bestSize = c, sz
		}
	}

	return best, best != 0
}

// splitAndKeepRing implements spec §4.3's "size > k" branch: split off the
// tail, then splice the tail into c's old position in the free ring
// (c's free-ring neighbors become the tail's), since c itself is about to
// become used.
func (h *Heap) splitAndKeepRing(c, k int) {
	tail := c + k
	p, n := h.block(c).prevFree(), h.block(c).nextFree()

	h.split(c, k, FreeMask)

	h.block(p).setNextFree(tail)
	h.block(tail).setPrevFree(p)
	h.block(n).setPrevFree(tail)
	h.block(tail).setNextFree(n)
}
