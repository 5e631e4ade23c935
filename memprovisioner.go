// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

// SliceProvisioner is a Provisioner backed by an ordinary Go slice. It is
// the pure-Go analogue of the teacher package's MemFiler: no syscalls, no
// alignment guarantees beyond what make([]byte, n) gives the runtime's
// allocator, usable on any GOOS/GOARCH.
type SliceProvisioner struct{}

// Map returns a freshly allocated, zeroed slice of exactly size bytes.
func (SliceProvisioner) Map(size int) ([]byte, error) {
	if size <= 0 {
		return nil, &ErrINVAL{Arg: "SliceProvisioner.Map: size", Val: size}
	}

	return make([]byte, size), nil
}

// Unmap is a no-op; the garbage collector reclaims region once the Heap
// that held it is no longer reachable.
func (SliceProvisioner) Unmap(region []byte) error {
	return nil
}
