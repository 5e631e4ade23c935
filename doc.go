// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*

Package blockheap implements a dynamic memory allocator over a single,
fixed, contiguous region of memory supplied by the caller at
initialization. It is intended for memory-constrained hosts — a
microcontroller, an embedded runtime, a small virtual machine — where the
heap cannot grow and every byte of bookkeeping overhead matters.

Heap layout

The heap is a contiguous array of fixed-size blocks, block size B bytes
(B == BodySize + 4, see Config.BodySize). Block 0 is the sentinel head of
both the block chain and the free ring; it carries no user data. The last
block, N-1, is the sentinel tail; its next-block index is 0, which is how
every chain walk recognizes the end.

	+--------++--------++--------+     +----------+
	| block 0||block 1 ||block 2 | ... |block N-1 |
	| (head) ||        ||        |     | (tail)   |
	+--------++--------++--------+     +----------+

Block header

Every block carries a used-header of two 15-bit block indices, next and
prev, packed into two uint16 words. The high bit of next (FreeMask,
0x8000) is the free flag: set if and only if the block is currently on the
free ring. The remaining 15 bits of next (IndexMask, 0x7FFF) are always
the actual index.

	used header (4 bytes):
	+----------------+----------------+
	| next (15) |F|  |      prev      |
	+----------------+----------------+

Body union

The body, up to BodySize bytes, holds raw user data while the block is
used. While the block is free, the first 4 bytes of the body are
reinterpreted as a free-header: nextFree, prevFree, another pair of 15-bit
indices threading the free ring. This reuse of user-data space for
free-list links, rather than a separate field, is what keeps per-block
overhead to a single used-header on tiny heaps: a block never needs both
sets of links live at once.

	free-when-bit-set body prefix (4 bytes, only while free):
	+----------------+----------------+
	|    nextFree    |    prevFree    |
	+----------------+----------------+

No block reference in this package is ever a native pointer; every
inter-block link is a 15-bit index into the block array. This both halves
per-block overhead relative to a pointer-based scheme and makes the heap
relocatable and byte-for-byte dumpable (see Heap.Dump).

External collaborators

blockheap accepts, but does not implement, a handful of host-supplied
collaborators:

  - A Provisioner supplies the backing []byte region at Init time; see
    provisioner.go, SliceProvisioner and MmapProvisioner.
  - A CriticalSection brackets every public operation with host-defined
    mutual exclusion; see critical.go.
  - A Logger receives diagnostic text on the corruption path only.
  - A CorruptionFunc is invoked by IntegrityCheck and PoisonCheck when they
    detect a mismatch.

blockheap never formats output itself and never provisions its own backing
memory or locking; those concerns belong to the host.

*/
package blockheap
