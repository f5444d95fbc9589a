// Package zrtperrors defines the typed error kinds a channel can report to
// its host, per the ZRTP error handling design. An Error built by Wrap
// carries its underlying cause wrapped with github.com/pkg/errors, so
// callers retain a stack trace from the wrap site; New builds one with no
// cause.
package zrtperrors

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why an inbound packet was dropped or an operation failed.
type Kind int

const (
	InvalidPacket Kind = iota
	OutOfOrder
	Unexpected
	UnmatchingHashChain
	UnmatchingMAC
	UnmatchingConfirmMAC
	UnmatchingHvi
	UnmatchingRepetition
	CacheMismatch
	UnsupportedVersion
	InvalidContext
	CryptoFailure
	Fragment
	Timeout
	BuilderFailure
)

var kindNames = map[Kind]string{
	InvalidPacket:        "invalid packet",
	OutOfOrder:           "out of order",
	Unexpected:           "unexpected message for current state",
	UnmatchingHashChain:  "hash chain mismatch",
	UnmatchingMAC:        "MAC mismatch",
	UnmatchingConfirmMAC: "confirm MAC mismatch",
	UnmatchingHvi:        "hvi mismatch",
	UnmatchingRepetition: "repeated message bytes differ",
	CacheMismatch:        "cached secret mismatch",
	UnsupportedVersion:   "unsupported ZRTP version",
	InvalidContext:       "required key material missing",
	CryptoFailure:        "cryptographic primitive failure",
	Fragment:             "fragment incomplete",
	Timeout:              "retransmission cap reached",
	BuilderFailure:       "failed to build outbound message",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the single error type returned across the engine's public API.
// Channel is the channel tag the error occurred on, empty for session-level
// errors such as a malformed channel_add call.
type Error struct {
	Kind    Kind
	Channel string
	cause   error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("zrtp[%s]: %s", e.Channel, e.Kind)
	}
	return fmt.Sprintf("zrtp[%s]: %s: %s", e.Channel, e.Kind, e.cause)
}

func (e *Error) Cause() error { return e.cause }
func (e *Error) Unwrap() error { return e.cause }

// New constructs an *Error with no wrapped cause.
func New(channel string, kind Kind) *Error {
	return &Error{Kind: kind, Channel: channel}
}

// Wrap attaches kind to an existing error, recording a stack trace at the
// wrap site (always, even if cause already carries one).
func Wrap(channel string, kind Kind, cause error) *Error {
	if cause == nil {
		return New(channel, kind)
	}
	return &Error{Kind: kind, Channel: channel, cause: errors.WithStack(cause)}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Fatal reports whether a channel must stop making progress after this
// error. Timeout and CryptoFailure are fatal to the exchange; CacheMismatch
// is reported but not fatal per spec (the exchange continues to SAS).
func (k Kind) Fatal() bool {
	switch k {
	case Timeout, CryptoFailure:
		return true
	default:
		return false
	}
}
