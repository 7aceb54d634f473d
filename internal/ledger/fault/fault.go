// Package fault classifies what can go wrong while reconciling a block store.
//
// Fatal conditions are *Error values carrying a Code that the CLI turns into the
// process exit code. Recoverable conditions are Inconsistency entries collected in
// a Report; they are logged as they are found and the run continues.
package fault

import (
	"errors"
	"fmt"
)

// Code is the exit code of a fatal category. All fatal codes are negative.
type Code int

const (
	CodeOK                Code = 0
	CodeDuplicateLane     Code = -1
	CodeLaneGap           Code = -2
	CodeLaneCount         Code = -3
	CodeTraversalDepth    Code = -4
	CodeStore             Code = -5
	CodeRootMismatch      Code = -6
	CodeStoreCorruption   Code = -7
	CodeNonContiguous     Code = -8
	CodeRootNotGenesis    Code = -9
	CodeNoChains          Code = -10
	CodeAmbiguousHeaviest Code = -11
	CodeConfig            Code = -12
)

// String returns the category name of the code.
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeDuplicateLane:
		return "duplicate_lane"
	case CodeLaneGap:
		return "lane_gap"
	case CodeLaneCount:
		return "lane_count"
	case CodeTraversalDepth:
		return "traversal_depth"
	case CodeStore:
		return "store"
	case CodeRootMismatch:
		return "root_mismatch"
	case CodeStoreCorruption:
		return "store_corruption"
	case CodeNonContiguous:
		return "non_contiguous_numbering"
	case CodeRootNotGenesis:
		return "root_not_genesis"
	case CodeNoChains:
		return "no_chains"
	case CodeAmbiguousHeaviest:
		return "ambiguous_heaviest"
	case CodeConfig:
		return "config"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// Error is a fatal condition that aborts the run.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

// Fatal builds an *Error with a formatted message.
func Fatal(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error around a cause.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Code, int(e.Code), e.Msg, e.Err)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, int(e.Code), e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the fatal code carried by err. Errors that carry no code come
// from an external collaborator and are reported as CodeStore.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return CodeStore
}
