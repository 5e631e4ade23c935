// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

import "testing"

// newTestHeap builds a Heap over nBlocks blocks of the given body size,
// backed by a SliceProvisioner, with no critical section.
func newTestHeap(t *testing.T, bodySize, nBlocks int, cfg Config) *Heap {
	t.Helper()

	cfg.BodySize = bodySize
	h, err := Init(SliceProvisioner{}, nBlocks*cfg.blockSize(), cfg, nil)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	return h
}

// checkIntegrity fails the test if the heap's chain/free-ring structure is
// inconsistent.
func checkIntegrity(t *testing.T, h *Heap) {
	t.Helper()

	ok, err := h.IntegrityCheck()
	if err != nil {
		t.Fatalf("IntegrityCheck error: %v", err)
	}
	if !ok {
		t.Fatalf("IntegrityCheck reported inconsistency")
	}
}

func TestInitLayout(t *testing.T) {
	h := newTestHeap(t, 4, 16, Config{})
	checkIntegrity(t, h)

	r, err := h.Introspect(nil, false)
	if err != nil {
		t.Fatalf("Introspect: %v", err)
	}

	if got, want := r.FreeBlocks, 14; got != want {
		t.Fatalf("FreeBlocks = %d, want %d", got, want)
	}
	if got, want := r.UsedBlocks, 0; got != want {
		t.Fatalf("UsedBlocks = %d, want %d", got, want)
	}
	if got, want := len(r.FreeRunSizes), 1; got != want {
		t.Fatalf("len(FreeRunSizes) = %d, want %d", got, want)
	}
}

func TestInitRejectsTinyBodySize(t *testing.T) {
	_, err := Init(SliceProvisioner{}, 128, Config{BodySize: 2}, nil)
	if err == nil {
		t.Fatalf("expected error for BodySize too small to leave an 8-byte block")
	}
}

func TestCheckInitBeforeInit(t *testing.T) {
	var h *Heap
	if _, err := h.Allocate(8); err == nil {
		t.Fatalf("expected ErrPERM from a nil *Heap")
	}
}
