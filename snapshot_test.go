// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

import (
	"bytes"
	"testing"
)

func TestDumpSnapshotRoundTrip(t *testing.T) {
	h := newTestHeap(t, 4, 32, Config{})

	if _, err := h.Allocate(4); err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	dump, err := h.Dump()
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}

	region, err := Snapshot(dump)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if !bytes.Equal(region, h.region) {
		t.Fatalf("round-tripped region does not match the live heap's region")
	}
}
