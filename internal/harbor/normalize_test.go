// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package harbor

import (
	"testing"

	"github.com/moov-io/banklink/internal/normalize"
	"github.com/moov-io/banklink/pkg/banklink"
)

func TestNormalize__totality(t *testing.T) {
	// every normalizer must produce a fully-populated entity from an empty
	// payload: id synthesized, provider tagged, timestamps defaulted
	cust := normalizeCustomer(normalize.Raw{})
	if cust.ID == "" {
		t.Error("missing id")
	}
	if cust.Provider != banklink.Harbor {
		t.Errorf("provider=%v", cust.Provider)
	}
	if cust.Status != banklink.StatusUnknown {
		t.Errorf("status=%v", cust.Status)
	}
	if cust.CreatedAt.IsZero() || cust.UpdatedAt.IsZero() {
		t.Error("timestamps must never be zero")
	}

	pay := normalizePayment(normalize.Raw{})
	if pay.ID == "" || pay.Provider != banklink.Harbor {
		t.Errorf("payment=%#v", pay)
	}
	if pay.Currency != "USD" {
		t.Errorf("currency=%s", pay.Currency)
	}

	tx := normalizeTransaction(normalize.Raw{})
	if tx.ID == "" || tx.CreatedAt.IsZero() {
		t.Errorf("transaction=%#v", tx)
	}
}

func TestNormalize__fieldFallbacks(t *testing.T) {
	// legacy snake_case aliases resolve when the primary name is absent
	cust := normalizeCustomer(normalize.Raw{
		"customerId": "cus_1",
		"first_name": "Jane",
		"last_name":  "Doe",
	})
	if cust.ID != "cus_1" || cust.FirstName != "Jane" || cust.LastName != "Doe" {
		t.Errorf("customer=%#v", cust)
	}

	acct := normalizeAccount(normalize.Raw{
		"id":             "acc_1",
		"routing_number": "121042882",
		"balance":        float64(125.50),
	})
	if acct.RoutingNumber != "121042882" {
		t.Errorf("routingNumber=%s", acct.RoutingNumber)
	}
	if acct.Balance != 125.50 || acct.Currency != "USD" {
		t.Errorf("balance=%v %s", acct.Balance, acct.Currency)
	}
}

func TestNormalize__dispute(t *testing.T) {
	d := normalizeDispute(normalize.Raw{
		"id":         "dsp_1",
		"status":     "pending_arbitration", // provider-defined, passed through verbatim
		"resolvedAt": "2020-04-07T12:00:00Z",
	})
	if d.Status != "pending_arbitration" {
		t.Errorf("status=%s", d.Status)
	}
	if d.ResolvedAt == nil {
		t.Error("expected resolvedAt")
	}

	d = normalizeDispute(normalize.Raw{"id": "dsp_2"})
	if d.ResolvedAt != nil {
		t.Error("resolvedAt should stay nil when absent")
	}
}
