// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

import "testing"

func TestIntrospectUsageAndFragmentation(t *testing.T) {
	h := newTestHeap(t, 4, 64, Config{})

	if _, err := h.Allocate(4); err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	r, err := h.Introspect(nil, false)
	if err != nil {
		t.Fatalf("Introspect: %v", err)
	}
	if r.UsedBlocks == 0 || r.FreeBlocks == 0 {
		t.Fatalf("expected both used and free blocks, got %+v", r)
	}

	u, err := h.UsageMetric()
	if err != nil {
		t.Fatalf("UsageMetric: %v", err)
	}
	if u < 0 {
		t.Fatalf("UsageMetric = %d, want >= 0 with free blocks remaining", u)
	}

	frag, err := h.FragmentationMetric()
	if err != nil {
		t.Fatalf("FragmentationMetric: %v", err)
	}
	if frag != 0 {
		t.Fatalf("FragmentationMetric with a single free run = %d, want 0", frag)
	}
}

func TestIntrospectProbeMatchesBlockHeaderNotBody(t *testing.T) {
	h := newTestHeap(t, 4, 16, Config{})

	p, err := h.Allocate(4)
	if err != nil || p == nil {
		t.Fatalf("Allocate: %v, %v", p, err)
	}

	// p is the body pointer; the header probe, per the pinned behavior
	// in DESIGN.md, must be compared against the header address, not
	// the body, so probing with p itself must not match.
	r, err := h.Introspect(p, false)
	if err != nil {
		t.Fatalf("Introspect: %v", err)
	}
	if r.MatchedHeader {
		t.Fatalf("MatchedHeader = true probing with a body pointer, want false")
	}

	c := h.blockOf(p)
	header := h.region[h.block(c).off() : h.block(c).off()+1]
	r, err = h.Introspect(header, false)
	if err != nil {
		t.Fatalf("Introspect: %v", err)
	}
	if !r.MatchedHeader {
		t.Fatalf("MatchedHeader = false probing with the header address, want true")
	}
}

func TestInlineMetricsAgreeWithWalk(t *testing.T) {
	h := newTestHeap(t, 4, 64, Config{InlineMetrics: true})

	if _, err := h.Allocate(4); err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	walked, _, _ := h.walk(nil)
	if int64(walked.FreeBlocks) != h.sumFree {
		t.Fatalf("inline sumFree %d disagrees with walked FreeBlocks %d", h.sumFree, walked.FreeBlocks)
	}
}
