// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

// CriticalSection is a host-supplied scoped mutual-exclusion contract.
// Enter is called before an engine runs, Exit after it returns, on every
// exit path including panics recovered by the caller. A host targeting
// bare-metal hardware typically implements Enter as "disable interrupts
// and save prior state" and Exit as "restore"; a host running atop a
// threaded OS implements them as lock acquire/release.
//
// blockheap never calls Enter/Exit reentrantly and never calls back into
// a Heap from within Enter or Exit.
type CriticalSection interface {
	Enter()
	Exit()
}

// noCriticalSection is used when a caller passes a nil CriticalSection —
// single-goroutine, single-threaded use, or a host that genuinely needs no
// exclusion (e.g. an already-exclusive interrupt handler).
type noCriticalSection struct{}

func (noCriticalSection) Enter() {}
func (noCriticalSection) Exit()  {}

// Heap is a dynamic memory allocator over a single, fixed, contiguous
// region of memory. The zero value is not usable; construct one with
// Init.
type Heap struct {
	region    []byte
	cfg       Config
	cs        CriticalSection
	blockSize int
	n         int // block count
	prov      Provisioner

	initialized bool

	// Inline fragmentation accumulators, maintained only when
	// cfg.InlineMetrics is set; see freelist.go's metricAdd/metricRemove.
	sumFree   int64
	sumFreeSq int64
	freeRuns  int
}

// Init establishes the heap: it asks prov for a region of size bytes,
// zeroes it, computes the block count N = len(region)/blockSize (capped at
// maxBlocks, per spec §3.2's N <= 32767), and writes the initial
// sentinel/free configuration — block 0 and block N-1 as sentinels, block
// 1 as a single free run spanning [1, N-1).
//
// Each call to Init maps a new region and returns a new Heap.
func Init(prov Provisioner, size int, cfg Config, cs CriticalSection) (*Heap, error) {
	if cs == nil {
		cs = noCriticalSection{}
	}

	bs := cfg.blockSize()
	if bs < 8 {
		return nil, &ErrINVAL{Arg: "Config.BodySize too small", Val: cfg.BodySize}
	}

	region, err := prov.Map(size)
	if err != nil {
		return nil, err
	}

	n := len(region) / bs
	if n > maxBlocks {
		n = maxBlocks
	}
	if n < 3 {
		return nil, &ErrINVAL{Arg: "heap too small for block size", Val: size}
	}

	for i := range region[:n*bs] {
		region[i] = 0
	}

	h := &Heap{
		region:    region[:n*bs],
		cfg:       cfg,
		cs:        cs,
		blockSize: bs,
		n:         n,
		prov:      prov,
	}

	h.block(0).setNextMasked(1, 0)
	h.block(1).setNextMasked(n-1, FreeMask)
	h.block(1).setPrev(0)
	h.block(n - 1).setNextMasked(0, 0)
	h.block(n - 1).setPrev(1)

	h.block(0).setNextFree(1)
	h.block(1).setPrevFree(0)
	h.block(1).setNextFree(0)

	h.metricAdd(n - 2)
	h.initialized = true
	return h, nil
}

func (h *Heap) checkInit(op string) error {
	if h == nil || !h.initialized {
		return &ErrPERM{Op: op}
	}

	return nil
}

// Allocate returns a region of at least size bytes, aligned to the block
// size, or nil if no free run is large enough. Allocate(0) returns nil
// without effect.
func (h *Heap) Allocate(size int) ([]byte, error) {
	if err := h.checkInit("Allocate"); err != nil {
		return nil, err
	}

	h.cs.Enter()
	defer h.cs.Exit()

	if overhead := h.poisonOverhead(); overhead > 0 && size > 0 {
		raw, err := h.allocate(size + overhead)
		if err != nil || raw == nil {
			return raw, err
		}

		return h.poisonWrap(raw, size), nil
	}

	return h.allocate(size)
}

// Free releases the block p was allocated from. A nil p is a no-op.
func (h *Heap) Free(p []byte) error {
	if err := h.checkInit("Free"); err != nil {
		return err
	}

	h.cs.Enter()
	defer h.cs.Exit()

	if h.poisonOverhead() > 0 && p != nil {
		raw, _ := h.poisonUnwrap(p)
		return h.free(raw)
	}

	return h.free(p)
}

// Reallocate resizes the allocation p to size bytes, preserving the
// prefix of its contents up to min(oldSize, size), per the classic
// realloc contract: nil p behaves like Allocate, size == 0 behaves like
// Free.
func (h *Heap) Reallocate(p []byte, size int) ([]byte, error) {
	if err := h.checkInit("Reallocate"); err != nil {
		return nil, err
	}

	h.cs.Enter()
	defer h.cs.Exit()

	overhead := h.poisonOverhead()
	if overhead == 0 {
		return h.reallocate(p, size)
	}

	var raw []byte
	if p != nil {
		raw, _ = h.poisonUnwrap(p)
	}

	if size == 0 {
		return h.reallocate(raw, 0)
	}

	np, err := h.reallocate(raw, size+overhead)
	if err != nil || np == nil {
		return np, err
	}

	return h.poisonWrap(np, size), nil
}

// ZeroAllocate is Allocate(count*itemSize) followed by zeroing the result
// on success.
func (h *Heap) ZeroAllocate(count, itemSize int) ([]byte, error) {
	if err := h.checkInit("ZeroAllocate"); err != nil {
		return nil, err
	}

	h.cs.Enter()
	defer h.cs.Exit()

	size := count * itemSize
	var p []byte
	var err error
	if overhead := h.poisonOverhead(); overhead > 0 && size > 0 {
		var raw []byte
		raw, err = h.allocate(size + overhead)
		if err == nil && raw != nil {
			p = h.poisonWrap(raw, size)
		}
	} else {
		p, err = h.allocate(size)
	}
	if err != nil || p == nil {
		return p, err
	}

	for i := range p {
		p[i] = 0
	}
	return p, nil
}
