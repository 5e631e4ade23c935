// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

// FitPolicy selects the free-ring scan strategy used by Heap.Allocate. It
// is fixed for the lifetime of a Heap, but it is a per-Heap setting, not a
// build-time one: every allocation switches on it to pick the scan.
type FitPolicy int

// FitPolicy values for Config.Policy.
const (
	BestFit  FitPolicy = iota // scan the whole ring, keep the smallest candidate
	FirstFit                  // return the first candidate that fits
	invalidFitPolicy
)

// Config holds the compile-time-ish choices spec §6 lists as compile-time
// constants in the reference design. A managed-language port cannot fix
// these at build time the way a C header can, so they are grouped here and
// supplied once, at Init. The Heap keeps its own copy, so changes to the
// caller's Config value after Init returns have no effect on it.
type Config struct {
	// BodySize is the number of body bytes per block, not counting the
	// 4-byte used-header. Block size is BodySize + 4. Typical values are
	// 4 or 12, giving block sizes of 8 or 16.
	BodySize int

	// Policy selects BestFit or FirstFit. Zero value is BestFit.
	Policy FitPolicy

	// InlineMetrics, if true, maintains the fragmentation accumulators
	// incrementally at every free-ring mutation instead of recomputing
	// them from a full chain walk on every UsageMetric/FragmentationMetric
	// call.
	InlineMetrics bool

	// PoisonBefore and PoisonAfter are the guard byte counts flanking a
	// user allocation when poison checking is enabled. Zero disables
	// poisoning.
	PoisonBefore int
	PoisonAfter  int

	// Logger, if non-nil, receives diagnostic text on the corruption
	// path. Never invoked on the allocate/free/reallocate hot path.
	Logger Logger

	// OnCorruption, if non-nil, is invoked by IntegrityCheck and
	// PoisonCheck when they detect a mismatch, in addition to the false
	// return and the error result (*ErrILSEQ from IntegrityCheck,
	// *ErrCorruption from PoisonCheck).
	OnCorruption CorruptionFunc
}

// Logger is a host-supplied diagnostic sink. A nil Logger is valid and
// means "discard".
type Logger func(format string, args ...interface{})

func (l Logger) logf(format string, args ...interface{}) {
	if l != nil {
		l(format, args...)
	}
}

// CorruptionFunc is invoked with a human-readable description and, when
// available, a compressed snapshot of the region surrounding the failing
// block. See Heap.IntegrityCheck and Heap.PoisonCheck.
type CorruptionFunc func(detail string, zappedRegion []byte)

func (c Config) blockSize() int {
	return c.BodySize + 4
}

func (c Config) policy() FitPolicy {
	if c.Policy < 0 || c.Policy >= invalidFitPolicy {
		return BestFit
	}

	return c.Policy
}
