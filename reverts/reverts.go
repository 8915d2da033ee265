// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the error taxonomy of the registry core.
// Every failed operation reverts as a whole and reports one of these kinds.
package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation reverted.
type Kind uint8

const (
	// KindPrecondition wrong caller, insufficient funds, wrong lifecycle state
	// or malformed input.
	KindPrecondition Kind = iota + 1
	// KindNotEligible the operation is valid but its time gate has not opened yet.
	KindNotEligible
	// KindAlreadyFinalized a challenge/epoch is already resolved, or a claim
	// was already taken.
	KindAlreadyFinalized
	// KindDegenerate a zero denominator in proportional division.
	KindDegenerate
	// KindTransferRejected the token ledger declined a transfer.
	KindTransferRejected
)

func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition violation"
	case KindNotEligible:
		return "not eligible yet"
	case KindAlreadyFinalized:
		return "already finalized"
	case KindDegenerate:
		return "degenerate state"
	case KindTransferRejected:
		return "transfer rejected"
	default:
		return "unknown"
	}
}

// Error is a revert reason with its kind.
type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Kind() Kind {
	return e.kind
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Precondition(format string, args ...any) *Error {
	return newError(KindPrecondition, format, args...)
}

func NotEligible(format string, args ...any) *Error {
	return newError(KindNotEligible, format, args...)
}

func AlreadyFinalized(format string, args ...any) *Error {
	return newError(KindAlreadyFinalized, format, args...)
}

func Degenerate(format string, args ...any) *Error {
	return newError(KindDegenerate, format, args...)
}

func TransferRejected(format string, args ...any) *Error {
	return newError(KindTransferRejected, format, args...)
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.kind == kind
	}
	return false
}

func IsPrecondition(err error) bool     { return Is(err, KindPrecondition) }
func IsNotEligible(err error) bool      { return Is(err, KindNotEligible) }
func IsAlreadyFinalized(err error) bool { return Is(err, KindAlreadyFinalized) }
func IsDegenerate(err error) bool       { return Is(err, KindDegenerate) }
func IsTransferRejected(err error) bool { return Is(err, KindTransferRejected) }
