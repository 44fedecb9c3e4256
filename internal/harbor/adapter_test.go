// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package harbor

import (
	"context"
	"net/http"
	"testing"

	"github.com/moov-io/banklink/pkg/banklink"

	"github.com/go-kit/kit/log"
)

func newTestAdapter(t *testing.T, handler http.Handler) *Adapter {
	t.Helper()

	client, _ := newTestClient(t, handler)
	return NewAdapter(log.NewNopLogger(), client)
}

func TestAdapter__interface(t *testing.T) {
	var _ banklink.Bank = NewAdapter(log.NewNopLogger(), nil)
}

func TestAdapter__createPaymentRouting(t *testing.T) {
	var gotPath string
	adapter := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"id":"pay_1","type":"wire","status":"pending","amount":500,"currency":"USD"}`))
	}))

	payment, err := adapter.CreatePayment(context.Background(), banklink.PaymentRequest{
		Type:          banklink.PaymentTypeWire,
		Amount:        500,
		Currency:      "USD",
		FromAccountID: "acc_1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/payments/wire" {
		t.Errorf("path=%s", gotPath)
	}
	if payment.ID != "pay_1" || payment.Type != "wire" || payment.Amount != 500 {
		t.Errorf("payment=%#v", payment)
	}
}

func TestAdapter__createPaymentUnknownType(t *testing.T) {
	hit := false
	adapter := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))

	_, err := adapter.CreatePayment(context.Background(), banklink.PaymentRequest{Type: "crypto"})
	if !banklink.IsValidation(err) {
		t.Fatalf("got %T: %v", err, err)
	}
	if hit {
		t.Error("an invalid payment type must be rejected before any request")
	}
}

func TestAdapter__listPaymentsFilter(t *testing.T) {
	adapter := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("type") != "ach" || q.Get("accountId") != "acc_1" || q.Get("limit") != "10" {
			t.Errorf("query=%v", q)
		}
		w.Write([]byte(`{"data":[{"id":"pay_1"},{"id":"pay_2"}]}`))
	}))

	page, err := adapter.ListPayments(context.Background(), banklink.PaymentListOptions{
		ListOptions: banklink.ListOptions{Limit: 10},
		Type:        banklink.PaymentTypeACH,
		AccountID:   "acc_1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 2 {
		t.Errorf("items=%d", len(page.Items))
	}
}

func TestAdapter__counterpartyRoutingNumber(t *testing.T) {
	hit := false
	adapter := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		w.Write([]byte(`{"id":"cp_1"}`))
	}))

	// bad check digit
	_, err := adapter.CreateCounterparty(context.Background(), banklink.CounterpartyRequest{
		Name:          "Jane Doe",
		RoutingNumber: "123456789",
		AccountNumber: "18",
	})
	if !banklink.IsValidation(err) {
		t.Fatalf("got %T: %v", err, err)
	}
	if hit {
		t.Error("routing number validation happens before any request")
	}

	cp, err := adapter.CreateCounterparty(context.Background(), banklink.CounterpartyRequest{
		Name:          "Jane Doe",
		RoutingNumber: "121042882",
		AccountNumber: "18",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cp.ID != "cp_1" {
		t.Errorf("counterparty=%#v", cp)
	}
}

func TestAdapter__restrictionGroups(t *testing.T) {
	var gotPath, gotMethod string
	adapter := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.Write([]byte(`{"id":"grp_1","name":"blocked countries","allowed":false,"values":["KP","IR"]}`))
	}))

	group, err := adapter.CreateRestrictionGroup(context.Background(), banklink.RestrictionCountry, banklink.RestrictionGroupRequest{
		Name:   "blocked countries",
		Values: []string{"KP", "IR"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/restriction-groups/country" || gotMethod != "POST" {
		t.Errorf("%s %s", gotMethod, gotPath)
	}
	if group.Kind != banklink.RestrictionCountry || len(group.Values) != 2 {
		t.Errorf("group=%#v", group)
	}

	if _, err := adapter.UpdateRestrictionGroup(context.Background(), banklink.RestrictionMcc, "grp_1", banklink.RestrictionGroupRequest{}); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/restriction-groups/mcc/grp_1" || gotMethod != "PUT" {
		t.Errorf("%s %s", gotMethod, gotPath)
	}

	if _, err := adapter.GetRestrictionGroup(context.Background(), "velocity", "grp_1"); !banklink.IsValidation(err) {
		t.Errorf("got %T: %v", err, err)
	}
}

func TestAdapter__unsupported(t *testing.T) {
	adapter := NewAdapter(log.NewNopLogger(), nil) // no network needed

	if _, err := adapter.CreateMandate(context.Background(), banklink.MandateRequest{}); !banklink.IsUnsupported(err) {
		t.Errorf("got %T: %v", err, err)
	}
	if _, err := adapter.ListRecalls(context.Background(), banklink.ListOptions{}); !banklink.IsUnsupported(err) {
		t.Errorf("got %T: %v", err, err)
	}
}

func TestAdapter__simulations(t *testing.T) {
	var gotPath string
	adapter := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"id":"pay_sim","status":"completed"}`))
	}))

	payment, err := adapter.SimulateIncomingPayment(context.Background(), banklink.SimulationRequest{
		AccountID: "acc_1",
		Amount:    1000,
	})
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/simulations/payments" {
		t.Errorf("path=%s", gotPath)
	}
	if payment.Status != "completed" {
		t.Errorf("payment=%#v", payment)
	}
}
