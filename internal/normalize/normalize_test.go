// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package normalize

import (
	"testing"
	"time"
)

func TestDecode(t *testing.T) {
	raw, err := Decode([]byte(`{"id": "cus_123"}`))
	if err != nil {
		t.Fatal(err)
	}
	if v := raw.String("", "id"); v != "cus_123" {
		t.Errorf("id=%s", v)
	}

	// null and empty bodies decode to an empty Raw, not an error
	if raw, err := Decode([]byte(`null`)); err != nil || raw == nil {
		t.Errorf("raw=%v err=%v", raw, err)
	}
	if raw, err := Decode(nil); err != nil || raw == nil {
		t.Errorf("raw=%v err=%v", raw, err)
	}

	// malformed JSON is the one decode failure
	if _, err := Decode([]byte(`{not json`)); err == nil {
		t.Error("expected error")
	}
}

func TestString__fallbackChain(t *testing.T) {
	raw := Raw{"first_name": "Jane", "status": nil}

	if v := raw.String("", "firstName", "first_name"); v != "Jane" {
		t.Errorf("got %s", v)
	}
	if v := raw.String("unknown", "status", "state"); v != "unknown" {
		t.Errorf("got %s", v)
	}
	// numbers stringify rather than vanish
	raw = Raw{"limit": float64(250)}
	if v := raw.String("", "limit"); v != "250" {
		t.Errorf("got %s", v)
	}
}

func TestNumbers(t *testing.T) {
	raw := Raw{"expiry_month": float64(4), "balance": "1250.75", "count": "12"}

	if v := raw.Int(0, "expiry_month"); v != 4 {
		t.Errorf("got %d", v)
	}
	if v := raw.Int(0, "count"); v != 12 {
		t.Errorf("got %d", v)
	}
	if v := raw.Float(0, "balance"); v != 1250.75 {
		t.Errorf("got %v", v)
	}
	if v := raw.Float(-1, "missing"); v != -1 {
		t.Errorf("got %v", v)
	}
}

func TestTime__fallback(t *testing.T) {
	raw := Raw{"created_at": "2020-04-07T15:04:05Z"}
	if v := raw.Time("created_at"); v.Year() != 2020 {
		t.Errorf("got %v", v)
	}

	// absent timestamps default to call time, never zero
	before := time.Now().Add(-1 * time.Second)
	v := Raw{}.Time("created_at")
	if v.IsZero() || v.Time.Before(before) {
		t.Errorf("got %v", v)
	}

	if ptr := (Raw{}).TimePtr("resolved_at"); ptr != nil {
		t.Errorf("expected nil, got %v", ptr)
	}
	if ptr := (Raw{"resolved_at": "2020-04-07"}).TimePtr("resolved_at"); ptr == nil {
		t.Error("expected a timestamp")
	}
}

func TestID__synthesized(t *testing.T) {
	raw := Raw{"uid": "acc_9"}
	if v := raw.ID("uid", "id"); v != "acc_9" {
		t.Errorf("got %s", v)
	}

	// no identifier anywhere: one is synthesized, and two passes over the
	// same record do not agree -- the documented trade-off
	first := Raw{}.ID("uid", "id")
	second := Raw{}.ID("uid", "id")
	if first == "" || second == "" {
		t.Error("expected synthesized ids")
	}
	if first == second {
		t.Error("synthesized ids should differ between normalizations")
	}
}

func TestMoney__samePass(t *testing.T) {
	// amount and currency must come from the same candidate pair: the
	// billing pair wins here, so the stale top-level "currency" (EUR) must
	// not leak in
	raw := Raw{
		"billing_amount":   float64(10),
		"billing_currency": "GBP",
		"currency":         "EUR",
	}
	amount, cur := raw.Money("EUR",
		MoneyKeys{Amount: "amount", Currency: "currency"},
		MoneyKeys{Amount: "billing_amount", Currency: "billing_currency"},
	)
	if amount != 10 || cur != "GBP" {
		t.Errorf("amount=%v currency=%s", amount, cur)
	}

	// quoted decimal amounts parse
	raw = Raw{"amount": "12.50", "currency": "usd"}
	amount, cur = raw.Money("USD", MoneyKeys{Amount: "amount", Currency: "currency"})
	if amount != 12.50 || cur != "USD" {
		t.Errorf("amount=%v currency=%s", amount, cur)
	}

	// nothing present: zero plus the default currency
	amount, cur = Raw{}.Money("usd", MoneyKeys{Amount: "amount", Currency: "currency"})
	if amount != 0 || cur != "USD" {
		t.Errorf("amount=%v currency=%s", amount, cur)
	}
}

func TestStringsAndObjects(t *testing.T) {
	raw := Raw{
		"entries":  []any{"DE", "FR", float64(3)},
		"response": map[string]any{"accepted": true},
	}
	if v := raw.Strings("values", "entries"); len(v) != 2 || v[0] != "DE" {
		t.Errorf("got %v", v)
	}
	obj := raw.Object("response")
	if obj == nil || !obj.Bool(false, "accepted") {
		t.Errorf("got %v", obj)
	}
	if v := raw.Object("missing"); v != nil {
		t.Errorf("got %v", v)
	}
}
