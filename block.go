// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

import "encoding/binary"

// FreeMask is the high bit of a block's next-block field: set if and only
// if the block currently lies on the free ring.
const FreeMask uint16 = 0x8000

// IndexMask extracts the 15-bit block index from a next-block field,
// discarding FreeMask.
const IndexMask uint16 = 0x7fff

// headerSize is the fixed size, in bytes, of a block's used-header: two
// 15-bit indices packed into two uint16 words, stored in network byte
// order (matching the teacher's own free-block link encoding).
const headerSize = 4

// byteOrder is used for every multi-byte field in the block array. Chosen
// for parity with the teacher's "P and N ... stored in network byte
// order" convention.
var byteOrder = binary.BigEndian

// block addresses a single block within a Heap's backing region. It holds
// no data itself; every method reads or writes directly into the Heap's
// region slice.
type block struct {
	h *Heap
	i int
}

func (h *Heap) block(i int) block { return block{h: h, i: i} }

func (b block) off() int { return b.i * b.h.blockSize }

// rawNext returns the unmasked next-block field, FreeMask and all.
func (b block) rawNext() uint16 {
	o := b.off()
	return byteOrder.Uint16(b.h.region[o : o+2])
}

func (b block) setRawNext(v uint16) {
	o := b.off()
	byteOrder.PutUint16(b.h.region[o:o+2], v)
}

// next returns the block index next holds, with FreeMask stripped.
func (b block) next() int { return int(b.rawNext() & IndexMask) }

// setNext rewrites the index bits of next-block, preserving whatever
// free-flag bit was already there. Used where the operation changes which
// block a chain link points to without changing the block's own free
// status (e.g. assimilateUp's rewrite of the absorbing block's link).
func (b block) setNext(i int) {
	b.setRawNext((b.rawNext() & FreeMask) | uint16(i)&IndexMask)
}

// setNextMasked rewrites both the index bits and the free-flag bit.
func (b block) setNextMasked(i int, mask uint16) {
	b.setRawNext((uint16(i) & IndexMask) | mask)
}

func (b block) free() bool { return b.rawNext()&FreeMask != 0 }

func (b block) prev() int {
	o := b.off()
	return int(byteOrder.Uint16(b.h.region[o+2:o+4]) & IndexMask)
}

func (b block) setPrev(i int) {
	o := b.off()
	byteOrder.PutUint16(b.h.region[o+2:o+4], uint16(i)&IndexMask)
}

// bodyOff is the offset of the first body byte: the user-data start when
// used, the free-header start when free.
func (b block) bodyOff() int { return b.off() + headerSize }

func (b block) nextFree() int {
	o := b.bodyOff()
	return int(byteOrder.Uint16(b.h.region[o:o+2]) & IndexMask)
}

func (b block) setNextFree(i int) {
	o := b.bodyOff()
	byteOrder.PutUint16(b.h.region[o:o+2], uint16(i)&IndexMask)
}

func (b block) prevFree() int {
	o := b.bodyOff()
	return int(byteOrder.Uint16(b.h.region[o+2:o+4]) & IndexMask)
}

func (b block) setPrevFree(i int) {
	o := b.bodyOff()
	byteOrder.PutUint16(b.h.region[o+2:o+4], uint16(i)&IndexMask)
}

// size is the block's current extent, in blocks: the distance to its
// chain successor. Valid for both used and free blocks.
func (b block) size() int { return b.next() - b.i }

// bodyPtr returns the user-visible address of this block's body: a slice
// into the Heap's region, starting 4 bytes into the block, the way
// block_of's doc (spec §4.1) assumes every user pointer does, and running
// to the start of the chain successor, so a block of extent k yields
// k*blockSize-4 bytes.
func (b block) bodyPtr() []byte {
	o := b.bodyOff()
	return b.h.region[o : b.next()*b.h.blockSize]
}
