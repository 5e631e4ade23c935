// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

import "testing"

func TestAllocateZeroIsNoop(t *testing.T) {
	h := newTestHeap(t, 4, 16, Config{})

	p, err := h.Allocate(0)
	if err != nil || p != nil {
		t.Fatalf("Allocate(0) = %v, %v, want nil, nil", p, err)
	}
	checkIntegrity(t, h)
}

func TestAllocateExactFitUnlinks(t *testing.T) {
	// Three blocks: the two sentinels and a single 1-block free run, which
	// a 4-byte request fits exactly.
	h := newTestHeap(t, 4, 3, Config{})

	p, err := h.Allocate(4)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if len(p) < 4 {
		t.Fatalf("len(p) = %d, want >= 4", len(p))
	}
	checkIntegrity(t, h)

	r, _ := h.Introspect(nil, false)
	if r.UsedBlocks == 0 {
		t.Fatalf("expected UsedBlocks > 0 after Allocate")
	}
	if r.FreeEntries != 0 {
		t.Fatalf("FreeEntries = %d after an exact fit, want 0", r.FreeEntries)
	}
}

func TestAllocateSplitLargerRun(t *testing.T) {
	h := newTestHeap(t, 4, 32, Config{})

	p, err := h.Allocate(4)
	if err != nil || p == nil {
		t.Fatalf("Allocate: %v, %v", p, err)
	}
	checkIntegrity(t, h)

	r, _ := h.Introspect(nil, false)
	if r.FreeBlocks == 0 {
		t.Fatalf("expected a remaining free run after a split allocation")
	}
}

func TestAllocateExhaustion(t *testing.T) {
	h := newTestHeap(t, 4, 4, Config{})

	p, err := h.Allocate(1024)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil on an unsatisfiable request, got %d bytes", len(p))
	}
	checkIntegrity(t, h)
}

func TestFirstFitTakesFirstAdequateRun(t *testing.T) {
	h := newTestHeap(t, 4, 64, Config{Policy: FirstFit})

	a, err := h.Allocate(4)
	if err != nil || a == nil {
		t.Fatalf("Allocate a: %v, %v", a, err)
	}
	b, err := h.Allocate(4)
	if err != nil || b == nil {
		t.Fatalf("Allocate b: %v, %v", b, err)
	}
	c, err := h.Allocate(12)
	if err != nil || c == nil {
		t.Fatalf("Allocate c: %v, %v", c, err)
	}
	d, err := h.Allocate(4)
	if err != nil || d == nil {
		t.Fatalf("Allocate d: %v, %v", d, err)
	}
	checkIntegrity(t, h)

	if err := h.Free(a); err != nil {
		t.Fatalf("Free a: %v", err)
	}
	if err := h.Free(c); err != nil {
		t.Fatalf("Free c: %v", err)
	}
	checkIntegrity(t, h)

	// The free ring now holds c's 2-block run, then a's 1-block run, then
	// the remainder. FirstFit takes c's run, the first adequate one, even
	// though a's run is the tighter fit.
	p, err := h.Allocate(4)
	if err != nil || p == nil {
		t.Fatalf("Allocate p: %v, %v", p, err)
	}
	if got, want := h.blockOf(p), h.blockOf(c); got != want {
		t.Fatalf("FirstFit allocated block %d, want %d", got, want)
	}
	checkIntegrity(t, h)
}

func TestBestFitPrefersSmallestAdequateRun(t *testing.T) {
	h := newTestHeap(t, 4, 64, Config{Policy: BestFit})

	// Carve the single initial run into a 1-block gap, a used spacer, a
	// 2-block gap, a second spacer and the remainder, then free both gaps,
	// so BestFit has three free runs to choose between. The 2-block gap,
	// freed last, heads the ring.
	gap, err := h.Allocate(4)
	if err != nil || gap == nil {
		t.Fatalf("Allocate gap: %v, %v", gap, err)
	}
	spacer, err := h.Allocate(4)
	if err != nil || spacer == nil {
		t.Fatalf("Allocate spacer: %v, %v", spacer, err)
	}
	wide, err := h.Allocate(12)
	if err != nil || wide == nil {
		t.Fatalf("Allocate wide: %v, %v", wide, err)
	}
	spacer2, err := h.Allocate(4)
	if err != nil || spacer2 == nil {
		t.Fatalf("Allocate spacer2: %v, %v", spacer2, err)
	}
	if err := h.Free(gap); err != nil {
		t.Fatalf("Free gap: %v", err)
	}
	if err := h.Free(wide); err != nil {
		t.Fatalf("Free wide: %v", err)
	}

	p, err := h.Allocate(4)
	if err != nil || p == nil {
		t.Fatalf("Allocate p: %v, %v", p, err)
	}
	if got, want := h.blockOf(p), h.blockOf(gap); got != want {
		t.Fatalf("BestFit allocated block %d, want %d", got, want)
	}
	checkIntegrity(t, h)
}
