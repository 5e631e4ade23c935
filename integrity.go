// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

import (
	"fmt"

	"github.com/cznic/zappy"
)

// IntegrityCheck walks the free ring marking every member and checking its
// backlink, then walks the block chain cross-checking: chain order, chain
// backlinks, free-flag agreement with ring membership, free-ring index
// bounds, and the no-adjacent-free-blocks invariant. It returns false, a
// typed *ErrILSEQ identifying which check failed, and invokes
// Config.OnCorruption if set, on the first inconsistency found.
//
// Spec §4.7 describes the reference design as stealing a spare bit in
// prev_block to mark ring membership during the walk, clearing it again
// on the second pass. This implementation marks membership in a local
// slice instead: a host operation can safely observe the heap mid-check
// without tripping over a transiently corrupted flag bit if IntegrityCheck
// itself panics partway through.
func (h *Heap) IntegrityCheck() (bool, error) {
	if err := h.checkInit("IntegrityCheck"); err != nil {
		return false, err
	}

	h.cs.Enter()
	defer h.cs.Exit()

	seen := make([]bool, h.n)
	prev := 0
	for i := h.block(0).nextFree(); i != 0; i = h.block(i).nextFree() {
		if i <= 0 || i >= h.n {
			return h.reportILSEQ(ErrFreeIndexRange, 0, i)
		}

		if h.block(i).prevFree() != prev {
			return h.reportILSEQ(ErrFreeBacklink, i, prev)
		}

		seen[i] = true
		prev = i
	}

	for i := h.block(0).next(); i != 0; {
		b := h.block(i)
		next := b.next()

		if i != h.n-1 {
			if next <= i {
				return h.reportILSEQ(ErrChainOrder, i, next)
			}

			if h.block(next).prev() != i {
				return h.reportILSEQ(ErrChainBacklink, i, next)
			}
		}

		if b.free() != seen[i] {
			return h.reportILSEQ(ErrFlagMismatch, i, 0)
		}

		if b.free() && i != h.n-1 && h.block(next).free() {
			return h.reportILSEQ(ErrAdjacentFree, i, next)
		}

		if b.free() {
			nf, pf := b.nextFree(), b.prevFree()
			if nf < 0 || nf >= h.n || pf < 0 || pf >= h.n {
				return h.reportILSEQ(ErrFreeIndexRange, i, nf)
			}
		}

		i = next
	}

	return true, nil
}

// reportILSEQ builds the typed error identifying which structural
// invariant failed and routes it through reportCorruption.
func (h *Heap) reportILSEQ(t ErrILSEQType, off, arg int) (bool, error) {
	return h.reportCorruption(&ErrILSEQ{Type: t, Off: off, Arg: arg})
}

// corrupt builds an ErrCorruption from format/args and routes it through
// reportCorruption. Used by PoisonCheck, whose guard-byte violations are
// not one of ErrILSEQ's structural-inconsistency kinds.
func (h *Heap) corrupt(format string, args ...interface{}) (bool, error) {
	return h.reportCorruption(&ErrCorruption{Detail: fmt.Sprintf(format, args...)})
}

// reportCorruption logs, optionally attaches a zappy-compressed snapshot
// of the whole region for a host to ship off for diagnosis, invokes
// Config.OnCorruption, and returns (false, err).
func (h *Heap) reportCorruption(err error) (bool, error) {
	h.cfg.Logger.logf("blockheap: corruption detected: %s", err.Error())

	if h.cfg.OnCorruption != nil {
		zipped, zerr := zappy.Encode(nil, h.region)
		if zerr != nil {
			zipped = nil
		}
		h.cfg.OnCorruption(err.Error(), zipped)
	}

	return false, err
}
