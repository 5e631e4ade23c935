// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

const poisonByte = 0xa5

// poisonOverhead is the extra body bytes an allocation carries when
// poisoning is enabled: PoisonBefore guard bytes, a 2-byte length word
// recording the caller's originally requested size, then PoisonAfter
// guard bytes. Zero when poisoning is disabled.
func (h *Heap) poisonOverhead() int {
	if h.cfg.PoisonBefore == 0 && h.cfg.PoisonAfter == 0 {
		return 0
	}

	return h.cfg.PoisonBefore + 2 + h.cfg.PoisonAfter
}

// poisonWrap stamps guard bytes and the length word into raw, a freshly
// allocated body of at least size+poisonOverhead() bytes, and returns the
// inner, user-visible sub-slice.
func (h *Heap) poisonWrap(raw []byte, size int) []byte {
	pb := h.cfg.PoisonBefore
	for i := 0; i < pb; i++ {
		raw[i] = poisonByte
	}

	byteOrder.PutUint16(raw[pb:pb+2], uint16(size))

	inner := raw[pb+2 : pb+2+size]
	for i := pb + 2 + size; i < len(raw); i++ {
		raw[i] = poisonByte
	}

	return inner
}

// poisonUnwrap recovers the raw, block-owning slice and the caller's
// originally requested size from a user-visible pointer previously
// returned by a poisoning Allocate/Reallocate.
func (h *Heap) poisonUnwrap(p []byte) (raw []byte, size int) {
	pb := h.cfg.PoisonBefore
	off := h.offsetOf(p)
	rawOff := off - pb - 2
	c := (rawOff - headerSize) / h.blockSize
	body := h.block(c).bodyPtr()
	size = int(byteOrder.Uint16(body[pb : pb+2]))
	return body, size
}

// PoisonCheck verifies the guard bytes flanking the allocation p came
// from still read as poisonByte. It reports false, and invokes
// Config.OnCorruption, on the first violated guard byte. PoisonCheck is a
// no-op returning (true, nil) when poisoning is disabled.
func (h *Heap) PoisonCheck(p []byte) (bool, error) {
	if err := h.checkInit("PoisonCheck"); err != nil {
		return false, err
	}

	if h.poisonOverhead() == 0 {
		return true, nil
	}

	h.cs.Enter()
	defer h.cs.Exit()

	raw, size := h.poisonUnwrap(p)
	pb, pa := h.cfg.PoisonBefore, h.cfg.PoisonAfter

	for i := 0; i < pb; i++ {
		if raw[i] != poisonByte {
			return h.corrupt("prefix guard byte %d overwritten", i)
		}
	}

	tail := raw[pb+2+size:]
	for i := 0; i < pa && i < len(tail); i++ {
		if tail[i] != poisonByte {
			return h.corrupt("suffix guard byte %d overwritten", i)
		}
	}

	return true, nil
}
