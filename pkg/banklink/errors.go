// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package banklink

import (
	"errors"
	"fmt"
)

// ResolutionError means no adapter matches a resolution request. It is final:
// the registry never retries or falls back past its documented priority
// order.
type ResolutionError struct {
	Provider string
	Currency string
	Region   string
	Reason   string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolution failed (provider=%q currency=%q region=%q): %s", e.Provider, e.Currency, e.Region, e.Reason)
}

// UnsupportedOperationError means the resolved provider does not offer the
// requested capability. No fallback provider is attempted.
type UnsupportedOperationError struct {
	Provider  Provider
	Operation string
	Reason    string
}

func (e *UnsupportedOperationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s unsupported: %s", e.Provider, e.Operation, e.Reason)
	}
	return fmt.Sprintf("%s: %s unsupported", e.Provider, e.Operation)
}

// Unsupported builds an UnsupportedOperationError.
func Unsupported(p Provider, operation, reason string) error {
	return &UnsupportedOperationError{Provider: p, Operation: operation, Reason: reason}
}

// ValidationError means caller input (a payment type, a restriction group
// kind) is outside the adapter's accepted vocabulary. It is raised before any
// network call happens.
type ValidationError struct {
	Provider Provider
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Provider, e.Field, e.Message)
}

// TransportError wraps a failed provider HTTP call (network error, timeout,
// or non-2xx status). The upstream error is carried unchanged; nothing in
// this layer retries or suppresses it.
type TransportError struct {
	Provider  Provider
	Operation string
	Status    int // zero when the request never completed
	Err       error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s: status=%d: %v", e.Provider, e.Operation, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsUnsupported reports whether err is an UnsupportedOperationError.
func IsUnsupported(err error) bool {
	var uo *UnsupportedOperationError
	return errors.As(err, &uo)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsResolution reports whether err is a ResolutionError.
func IsResolution(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re)
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
