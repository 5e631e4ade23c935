// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

// split divides block i so that its first k sub-blocks remain indexed at
// i and the remainder starts at i+k. newMask is stamped onto the tail's
// free flag: FreeMask when the tail returns to the free pool, 0 when it
// is handed to the user. split does not touch free-ring pointers — the
// caller, which alone knows whether the tail is becoming free or used,
// reconciles the ring explicitly: allocate's splitAndKeepRing splices the
// free tail into the ring, and reallocate frees its tail through free.
func (h *Heap) split(i, k int, newMask uint16) {
	bi := h.block(i)
	tail := i + k
	succ := bi.next()

	h.block(tail).setNextMasked(succ, newMask)
	h.block(tail).setPrev(i)
	h.block(succ).setPrev(tail)
	bi.setNextMasked(tail, 0)
}

// unlinkFree removes i from the free ring and clears its free flag. The
// caller is responsible for i's chain links, which are untouched here.
func (h *Heap) unlinkFree(i int) {
	bi := h.block(i)
	p, n := bi.prevFree(), bi.nextFree()
	h.block(p).setNextFree(n)
	h.block(n).setPrevFree(p)
	bi.setNextMasked(bi.next(), 0) // clears FreeMask, index unchanged
}

// assimilateUp folds i's chain successor into i, if that successor is
// free. No effect if the successor is used. Returns whether a fold
// happened, so callers that need to know can avoid a second lookup.
func (h *Heap) assimilateUp(i int) bool {
	succ := h.block(i).next()
	sb := h.block(succ)
	if !sb.free() {
		return false
	}

	size := sb.size()
	h.unlinkFree(succ)
	newSucc := sb.next()
	h.block(i).setNext(newSucc)
	h.block(newSucc).setPrev(i)
	h.metricRemove(size)
	return true
}

// assimilateDown unconditionally folds i into its chain predecessor,
// returning the predecessor's (now enlarged) index. mask is 0 when the
// merged block is to remain used, FreeMask when it is to become free.
// Precondition: the caller has already called assimilateUp on i first if
// applicable — assimilateDown never folds in the other direction.
//
// The predecessor's pre-merge extent always leaves the metrics (it is
// either consumed by a used block or about to be re-added at its new,
// larger size below) — matching umm_malloc's umm_assimilate_down, which
// calls UMM_FRAGMENTATION_METRIC_REMOVE unconditionally before the
// conditional _ADD.
func (h *Heap) assimilateDown(i int, mask uint16) int {
	p := h.block(i).prev()
	next := h.block(i).next()
	h.metricRemove(i - p)
	h.block(p).setNextMasked(next, mask)
	h.block(next).setPrev(p)
	if mask == FreeMask {
		h.metricAdd(next - p)
	}
	return p
}

// metricAdd and metricRemove maintain the two inline fragmentation
// accumulators (Σfree, Σfree²) at every point a free run appears, grows,
// shrinks, or disappears: linkHead, allocate's exact-fit/split branch,
// assimilateUp, assimilateDown. They are no-ops unless Config.InlineMetrics
// is set.
func (h *Heap) metricAdd(size int) {
	if !h.cfg.InlineMetrics {
		return
	}

	h.sumFree += int64(size)
	h.sumFreeSq += int64(size) * int64(size)
	h.freeRuns++
}

func (h *Heap) metricRemove(size int) {
	if !h.cfg.InlineMetrics {
		return
	}

	h.sumFree -= int64(size)
	h.sumFreeSq -= int64(size) * int64(size)
	h.freeRuns--
}

// linkHead adds free block i at the head of the free ring, stamping its
// free flag and recording it for the inline metrics.
func (h *Heap) linkHead(i, size int) {
	head := h.block(0).nextFree()
	h.block(head).setPrevFree(i)
	h.block(i).setNextFree(head)
	h.block(i).setPrevFree(0)
	h.block(0).setNextFree(i)
	h.block(i).setNextMasked(h.block(i).next(), FreeMask)
	h.metricAdd(size)
}
