// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package banklink

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrors__taxonomy(t *testing.T) {
	var err error = &ResolutionError{Provider: "other", Reason: "unknown provider id"}
	if !IsResolution(err) {
		t.Error("expected ResolutionError")
	}
	if IsUnsupported(err) || IsValidation(err) || IsTransport(err) {
		t.Error("mis-classified error")
	}

	err = Unsupported(Meridian, "createCheckDeposit", "no check deposit product")
	if !IsUnsupported(err) {
		t.Error("expected UnsupportedOperationError")
	}
	if v := err.Error(); !strings.Contains(v, "createCheckDeposit") {
		t.Errorf("unexpected message: %s", v)
	}

	err = &ValidationError{Provider: Harbor, Field: "paymentType", Message: `"crypto" is not a Harbor payment type`}
	if !IsValidation(err) {
		t.Error("expected ValidationError")
	}
}

func TestErrors__transportUnwrap(t *testing.T) {
	upstream := errors.New("connection refused")
	err := &TransportError{
		Provider:  Harbor,
		Operation: "getCustomer",
		Err:       upstream,
	}
	if !errors.Is(err, upstream) {
		t.Error("expected the upstream error to be preserved")
	}
	if v := err.Error(); !strings.Contains(v, "getCustomer") {
		t.Errorf("unexpected message: %s", v)
	}

	// wrapping keeps the type visible
	wrapped := fmt.Errorf("caller context: %w", err)
	if !IsTransport(wrapped) {
		t.Error("expected TransportError through wrapping")
	}
}

func TestProvider__parse(t *testing.T) {
	if p, ok := ParseProvider(" Harbor "); !ok || p != Harbor {
		t.Errorf("got %v %v", p, ok)
	}
	if p, ok := ParseProvider("meridian"); !ok || p != Meridian {
		t.Errorf("got %v %v", p, ok)
	}
	if _, ok := ParseProvider("acme"); ok {
		t.Error("expected no match")
	}

	order := Providers()
	if len(order) != 2 || order[0] != Harbor || order[1] != Meridian {
		t.Errorf("unexpected enumeration order: %v", order)
	}
}
