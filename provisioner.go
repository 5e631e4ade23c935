// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

// Provisioner supplies the single contiguous region a Heap manages. It
// plays the role the teacher package's Filer plays for byte-addressable
// storage: Init asks it for a region once and never again, and never asks
// it to grow or shrink the region afterwards — a Heap does not multiplex
// across more than one backing allocation.
//
// Unmap releases the region. A Heap never calls it; it exists for a host
// that wants to tear down a Heap and hand the pages back to whatever
// provisioned them (the OS, a pool, a simulated flash part).
type Provisioner interface {
	// Map returns a region of at least size bytes. It may return a
	// larger region; Init uses only as much as divides evenly by the
	// configured block size.
	Map(size int) ([]byte, error)

	// Unmap releases a region previously returned by Map.
	Unmap(region []byte) error
}
