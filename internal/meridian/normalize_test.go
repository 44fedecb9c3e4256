// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package meridian

import (
	"testing"

	"github.com/moov-io/banklink/internal/normalize"
	"github.com/moov-io/banklink/pkg/banklink"
)

func TestNormalize__totality(t *testing.T) {
	cust := normalizeCustomer(normalize.Raw{})
	if cust.ID == "" || cust.Provider != banklink.Meridian {
		t.Errorf("customer=%#v", cust)
	}
	if cust.Status != banklink.StatusUnknown {
		t.Errorf("status=%v", cust.Status)
	}
	if cust.CreatedAt.IsZero() || cust.UpdatedAt.IsZero() {
		t.Error("timestamps must never be zero")
	}

	pay := normalizePayment(banklink.PaymentTypePayin)(normalize.Raw{})
	if pay.Type != banklink.PaymentTypePayin {
		t.Errorf("type=%s", pay.Type)
	}
	if pay.Currency != "EUR" {
		t.Errorf("currency=%s", pay.Currency)
	}
}

func TestNormalize__quotedAmounts(t *testing.T) {
	// Meridian serializes amounts as decimal strings on several endpoints
	tx := normalizeTransaction(normalize.Raw{
		"uid":      "txn_1",
		"amount":   "125.50",
		"currency": "gbp",
	})
	if tx.Amount != 125.50 {
		t.Errorf("amount=%v", tx.Amount)
	}
	if tx.Currency != "GBP" {
		t.Errorf("currency=%s", tx.Currency)
	}
}

func TestNormalize__recallResponse(t *testing.T) {
	rec := normalizeRecall(normalize.Raw{
		"uid":         "rec_1",
		"payment_uid": "pay_1",
		"reason":      "fraud",
	})
	if rec.Status != banklink.RecallRequested {
		t.Errorf("status=%s", rec.Status)
	}
	if rec.Response != nil {
		t.Error("response should stay nil when absent")
	}

	rec = normalizeRecall(normalize.Raw{
		"uid": "rec_2",
		"response": map[string]any{
			"accepted": false,
			"reason":   "funds already settled",
		},
	})
	if rec.Status != banklink.RecallResponded {
		t.Errorf("status=%s", rec.Status)
	}
	if rec.Response == nil || rec.Response.Accepted || rec.Response.Reason != "funds already settled" {
		t.Errorf("response=%#v", rec.Response)
	}
}
