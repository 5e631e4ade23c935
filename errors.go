// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockheap

import "fmt"

// ErrINVAL reports an invalid argument passed to a public operation: a
// handle out of range, a size that cannot be satisfied by any Config.
type ErrINVAL struct {
	Arg string      // what was wrong
	Val interface{} // offending value, if any
}

func (e *ErrINVAL) Error() string {
	if e.Val == nil {
		return fmt.Sprintf("invalid argument: %s", e.Arg)
	}

	return fmt.Sprintf("invalid argument: %s: %v", e.Arg, e.Val)
}

// ErrILSEQ reports an inconsistency found by IntegrityCheck: a chain link that doesn't back-reference, a free flag
// that disagrees with ring membership, a free-ring index out of bounds.
type ErrILSEQ struct {
	Type ErrILSEQType
	Off  int // block index at which the inconsistency was observed
	Arg  int // offending value
}

// ErrILSEQType enumerates the distinct shapes of structural inconsistency
// ErrILSEQ can report.
type ErrILSEQType int

const (
	ErrChainOrder ErrILSEQType = iota
	ErrChainBacklink
	ErrFreeBacklink
	ErrFlagMismatch
	ErrFreeIndexRange
	ErrAdjacentFree
)

func (e *ErrILSEQ) Error() string {
	return fmt.Sprintf("heap inconsistency %v at block %d: %d", e.Type, e.Off, e.Arg)
}

func (t ErrILSEQType) String() string {
	switch t {
	case ErrChainOrder:
		return "chain order violated"
	case ErrChainBacklink:
		return "chain backlink mismatch"
	case ErrFreeBacklink:
		return "free-ring backlink mismatch"
	case ErrFlagMismatch:
		return "free flag disagrees with ring membership"
	case ErrFreeIndexRange:
		return "free-ring index out of range"
	case ErrAdjacentFree:
		return "adjacent free blocks"
	default:
		return "unknown"
	}
}

// ErrPERM reports a misuse of the API that is a programmer error, not a
// runtime condition: a public operation invoked on a nil Heap or one not
// returned by Init.
type ErrPERM struct {
	Op string
}

func (e *ErrPERM) Error() string { return fmt.Sprintf("%s: not initialized", e.Op) }

// ErrCorruption is returned by PoisonCheck alongside the false result and
// the CorruptionFunc invocation, when one is configured. IntegrityCheck
// reports its failures as *ErrILSEQ instead.
type ErrCorruption struct {
	Detail string
}

func (e *ErrCorruption) Error() string { return fmt.Sprintf("heap corruption detected: %s", e.Detail) }
