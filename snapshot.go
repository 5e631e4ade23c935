// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

import (
	"github.com/golang/snappy"
)

// Dump returns a snappy-compressed copy of the entire region, header
// bytes and all. It is meant for a host to ship off-device for post-mortem
// analysis after IntegrityCheck or PoisonCheck reports a failure the host
// cannot otherwise explain; Snapshot decodes it back.
//
// Dump takes the critical section itself; it is safe to call from outside
// one.
func (h *Heap) Dump() ([]byte, error) {
	if err := h.checkInit("Dump"); err != nil {
		return nil, err
	}

	h.cs.Enter()
	defer h.cs.Exit()
	return snappy.Encode(nil, h.region), nil
}

// Snapshot decodes a buffer previously returned by Dump back into a raw
// region byte slice, without attaching it to any Heap. No constructor
// attaches an existing region: Init zeroes whatever region its Provisioner
// returns and writes a fresh layout, so a Heap built over the decoded
// slice does not show the snapshot's block chain.
func Snapshot(dump []byte) ([]byte, error) {
	return snappy.Decode(nil, dump)
}
