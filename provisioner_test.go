// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

import "testing"

func TestSliceProvisionerMap(t *testing.T) {
	var prov SliceProvisioner

	region, err := prov.Map(128)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(region) != 128 {
		t.Fatalf("len(region) = %d, want 128", len(region))
	}

	for _, b := range region {
		if b != 0 {
			t.Fatalf("SliceProvisioner.Map region not zeroed")
		}
	}

	if err := prov.Unmap(region); err != nil {
		t.Fatalf("Unmap: %v", err)
	}
}

func TestSliceProvisionerRejectsNonPositiveSize(t *testing.T) {
	var prov SliceProvisioner

	if _, err := prov.Map(0); err == nil {
		t.Fatalf("expected an error mapping a zero-size region")
	}
}

func TestMmapProvisionerRoundTrip(t *testing.T) {
	var prov MmapProvisioner

	region, err := prov.Map(4096)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(region) < 4096 {
		t.Fatalf("len(region) = %d, want >= 4096", len(region))
	}

	region[0] = 0xff
	if region[0] != 0xff {
		t.Fatalf("mapped region not writable")
	}

	if err := prov.Unmap(region); err != nil {
		t.Fatalf("Unmap: %v", err)
	}
}

func TestHeapOverMmapProvisioner(t *testing.T) {
	cfg := Config{BodySize: 4}
	h, err := Init(MmapProvisioner{}, 4096, cfg, nil)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	p, err := h.Allocate(4)
	if err != nil || p == nil {
		t.Fatalf("Allocate: %v, %v", p, err)
	}
	checkIntegrity(t, h)
}
