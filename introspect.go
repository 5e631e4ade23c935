// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

import (
	"sort"

	"github.com/cznic/mathutil"
	"github.com/cznic/sortutil"
)

// HeapReport is the result of a chain walk: aggregate usage and
// fragmentation figures, plus the two supplementary fields this package
// carries over from umm_malloc's diagnostic entry point (original_source),
// additive to spec §4.6's formulas rather than a replacement for them.
type HeapReport struct {
	TotalBlocks int
	UsedBlocks  int
	FreeBlocks  int

	TotalEntries int // chain entries walked, used + free, sentinels excluded
	UsedEntries  int
	FreeEntries  int

	// FreeRunSizes lists the size, in blocks, of every free run
	// currently on the ring, sorted ascending via sortutil — the same
	// library falloc_test.go reaches for when comparing expected vs.
	// actual handle/size lists.
	FreeRunSizes []int

	LongestFreeEntries int // size of the largest free run, in blocks
	BlocksWalked       int // chain entries visited during this walk

	// MatchedHeader is set by Introspect when probePtr equalled the
	// address of some block's header, per spec §9's pinned (if
	// surprising) behavior: the match is against the header, not the
	// body.
	MatchedHeader bool
}

// UsageMetric is 100*used/free, or -1 when no free blocks remain.
func (r HeapReport) UsageMetric() int {
	return usageMetric(r.UsedBlocks, r.FreeBlocks)
}

func usageMetric(used, free int) int {
	if free == 0 {
		return -1
	}

	return 100 * used / free
}

// fragmentationMetric computes 100 minus the coefficient of variation of
// free run sizes via mathutil's integer square root, the same helper the
// teacher leans on throughout lldb for saturating/rounding arithmetic.
func fragmentationMetric(haveFree bool, sumFree, sumFreeSq int64) int {
	if !haveFree || sumFree == 0 {
		return 0
	}

	rms := mathutil.SqrtUint64(uint64(sumFreeSq))
	return 100 - int(100*rms/uint64(sumFree))
}

// walk traverses the block chain from block 0 until the terminal next ==
// 0, accumulating the figures Heap.Introspect returns. probePtr, if
// non-nil, is compared against each block's header address; see
// HeapReport.MatchedHeader.
func (h *Heap) walk(probePtr []byte) (HeapReport, int64, int64) {
	var r HeapReport
	var sumFree, sumFreeSq int64
	probeOff := h.offsetOf(probePtr)

	for i := h.block(0).next(); i != 0; {
		b := h.block(i)
		r.BlocksWalked++
		if i != h.n-1 {
			r.TotalEntries++
			r.TotalBlocks += b.size()
		}

		if probeOff == b.off() {
			r.MatchedHeader = true
		}

		if b.free() {
			sz := b.size()
			r.FreeEntries++
			r.FreeBlocks += sz
			r.FreeRunSizes = append(r.FreeRunSizes, sz)
			sumFree += int64(sz)
			sumFreeSq += int64(sz) * int64(sz)
			if sz > r.LongestFreeEntries {
				r.LongestFreeEntries = sz
			}
		} else if i != h.n-1 {
			r.UsedEntries++
			r.UsedBlocks += b.size()
		}

		i = b.next()
	}

	sort.Sort(sortutil.IntSlice(r.FreeRunSizes))
	return r, sumFree, sumFreeSq
}

// Introspect walks the chain and returns a HeapReport, optionally noting
// whether probePtr matched a block header address (see spec §9's pinned
// ambiguity: the match is intentionally against the header, not the
// user-visible body). force is accepted for API parity with spec §6 but
// this package always performs a full walk — there is no cached report to
// invalidate.
func (h *Heap) Introspect(probePtr []byte, force bool) (HeapReport, error) {
	if err := h.checkInit("Introspect"); err != nil {
		return HeapReport{}, err
	}

	h.cs.Enter()
	defer h.cs.Exit()
	r, _, _ := h.walk(probePtr)
	return r, nil
}

// FreeHeapBytes returns the number of bytes currently free.
func (h *Heap) FreeHeapBytes() (int, error) {
	if err := h.checkInit("FreeHeapBytes"); err != nil {
		return 0, err
	}

	h.cs.Enter()
	defer h.cs.Exit()
	r, _, _ := h.walk(nil)
	return r.FreeBlocks * h.blockSize, nil
}

// MaxFreeContiguousBytes returns the size, in bytes, of the largest single
// free run.
func (h *Heap) MaxFreeContiguousBytes() (int, error) {
	if err := h.checkInit("MaxFreeContiguousBytes"); err != nil {
		return 0, err
	}

	h.cs.Enter()
	defer h.cs.Exit()
	r, _, _ := h.walk(nil)
	return r.LongestFreeEntries * h.blockSize, nil
}

// UsageMetric returns 100*used/free, or -1 when no free blocks remain.
func (h *Heap) UsageMetric() (int, error) {
	if err := h.checkInit("UsageMetric"); err != nil {
		return 0, err
	}

	h.cs.Enter()
	defer h.cs.Exit()

	if h.cfg.InlineMetrics {
		return usageMetric(h.n-2-int(h.sumFree), int(h.sumFree)), nil
	}

	r, _, _ := h.walk(nil)
	return r.UsageMetric(), nil
}

// FragmentationMetric returns 100 minus the coefficient of variation of
// free run sizes; see fragmentationMetric.
func (h *Heap) FragmentationMetric() (int, error) {
	if err := h.checkInit("FragmentationMetric"); err != nil {
		return 0, err
	}

	h.cs.Enter()
	defer h.cs.Exit()

	if h.cfg.InlineMetrics {
		return fragmentationMetric(h.freeRuns > 0, h.sumFree, h.sumFreeSq), nil
	}

	r, sumFree, sumFreeSq := h.walk(nil)
	return fragmentationMetric(r.FreeBlocks > 0, sumFree, sumFreeSq), nil
}
