// Package keyerr defines the error taxonomy shared by every package in this
// module. Every failure that crosses a package boundary is reported as a
// *KeyError carrying one of the Code values below, so callers can switch on
// Code instead of matching error strings.
package keyerr

import (
	"errors"
	"fmt"
)

// Code identifies the kind of failure that occurred.
type Code string

const (
	// UnrecognizedFormat means the input does not match any recognized
	// key, address, or extended-key shape.
	UnrecognizedFormat Code = "UNRECOGNIZED_FORMAT"

	// InvalidChecksum means a Base58Check checksum did not match its
	// payload.
	InvalidChecksum Code = "INVALID_CHECKSUM"

	// InvalidPoint means a byte string does not decode to a point on
	// the curve, or decodes to the point at infinity.
	InvalidPoint Code = "INVALID_POINT"

	// InvalidScalar means a private scalar is zero, is not smaller
	// than the curve order, or otherwise falls outside [1, n-1].
	InvalidScalar Code = "INVALID_SCALAR"

	// InvalidPath means a BIP-32 derivation path is syntactically or
	// semantically malformed.
	InvalidPath Code = "INVALID_PATH"

	// InvalidDerivation means a hardened child was requested from a
	// public-only parent, or a private child was requested from a
	// public-only parent.
	InvalidDerivation Code = "INVALID_DERIVATION"

	// InvalidPassphrase means BIP-38 address-hash verification failed
	// after decryption.
	InvalidPassphrase Code = "INVALID_PASSPHRASE"

	// EntropyUnavailable means the secure random source could not be
	// read.
	EntropyUnavailable Code = "ENTROPY_UNAVAILABLE"
)

// KeyError is the single structured error type returned across package
// boundaries in this module.
type KeyError struct {
	Code    Code
	Message string
	Cause   error
}

func (e *KeyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap lets errors.Is/errors.As reach the wrapped cause, if any.
func (e *KeyError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *KeyError with the same Code, so callers
// can write errors.Is(err, keyerr.New(keyerr.InvalidChecksum, "")).
func (e *KeyError) Is(target error) bool {
	var t *KeyError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// New builds a *KeyError with no wrapped cause.
func New(code Code, message string) *KeyError {
	return &KeyError{Code: code, Message: message}
}

// Newf builds a *KeyError with a formatted message.
func Newf(code Code, format string, args ...any) *KeyError {
	return &KeyError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a *KeyError that carries cause as its Unwrap target.
func Wrap(code Code, cause error, message string) *KeyError {
	return &KeyError{Code: code, Message: message, Cause: cause}
}

// Is reports whether err is a *KeyError with the given code.
func Is(err error, code Code) bool {
	var ke *KeyError
	if errors.As(err, &ke) {
		return ke.Code == code
	}
	return false
}
