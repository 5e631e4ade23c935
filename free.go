// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

// free implements spec §4.4. It must run under the caller's critical
// section; see Heap.Free for the public, bracketed entry point.
//
// The order here is load-bearing: swallowing the chain successor first
// means the predecessor-merge (or the head-of-ring insert) that follows
// sees the block's final extent without a second coalescing pass.
func (h *Heap) free(p []byte) error {
	if p == nil {
		return nil
	}

	c := h.blockOf(p)
	if c <= 0 || c >= h.n-1 {
		return &ErrINVAL{Arg: "Free: pointer out of range"}
	}

	h.assimilateUp(c)

	pred := h.block(c).prev()
	if h.block(pred).free() {
		h.assimilateDown(c, FreeMask)
		return nil
	}

	h.linkHead(c, h.block(c).size())
	return nil
}
