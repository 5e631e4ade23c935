// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

import (
	"unsafe"

	"github.com/cznic/mathutil"
)

// maxBlocks is the largest block count this package can index: the free
// flag occupies the high bit of a 16-bit field, leaving 15 bits for the
// index itself. Spec §4.1's stray "32677" figure is a comment typo in the
// material this package was distilled from; math.MaxInt16 (32767) is the
// real ceiling, see DESIGN.md.
const maxBlocks = 1<<15 - 1 // math.MaxInt16

// blocksFor converts a byte request into a block count: one block if the
// body covers it outright, otherwise that first block plus enough further
// whole blocks, rounded up, to hold the bytes past its body (a block count
// k holds k*blockSize-4 bytes).
// The result saturates at maxBlocks so a free-ring scan can report
// out-of-memory without wrapping around.
func (h *Heap) blocksFor(size int) int {
	body := h.cfg.BodySize
	if size <= body {
		return 1
	}

	k := (size-body+h.blockSize-1)/h.blockSize + 1
	return mathutil.Min(k, maxBlocks)
}

// baseAddr is the address of the first byte of the Heap's region. Every
// user pointer handed out by Allocate/Reallocate is a sub-slice of that
// same backing array, so its block index is recovered by pointer
// subtraction rather than by any bookkeeping carried alongside the slice.
// This is the one place this package reaches for unsafe: the rest of the
// allocator only ever deals in block indices.
func (h *Heap) baseAddr() uintptr {
	return uintptr(unsafe.Pointer(&h.region[0]))
}

// offsetOf returns p's byte offset from the start of the Heap's region,
// or -1 for an empty/nil slice. p must be a sub-slice of region, as
// returned by a prior Allocate/Reallocate, or be probePtr in Introspect.
func (h *Heap) offsetOf(p []byte) int {
	if len(p) == 0 {
		return -1
	}

	return int(uintptr(unsafe.Pointer(&p[0])) - h.baseAddr())
}

// blockOf floor-divides a body pointer's offset from the region base by
// the block size. Correct because every body begins exactly headerSize
// bytes into its block and no other layout ever hands out a pointer
// there.
func (h *Heap) blockOf(p []byte) int {
	off := h.offsetOf(p)
	if off < 0 {
		return 0
	}

	return (off - headerSize) / h.blockSize
}
