// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"testing"

	"github.com/moov-io/banklink/pkg/banklink"

	"github.com/go-kit/kit/log"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifier__verify(t *testing.T) {
	v := NewVerifier(log.NewNopLogger(), banklink.Harbor, "whsec_123")
	body := []byte(`{"id":"evt_1","type":"payment.completed"}`)

	if !v.Verify(signBody("whsec_123", body), body) {
		t.Error("expected valid signature to verify")
	}
	if v.Verify(signBody("whsec_123", body), []byte(`{"id":"evt_1","type":"payment.failed"}`)) {
		t.Error("a tampered body must not verify")
	}
	if v.Verify(signBody("other-secret", body), body) {
		t.Error("a signature under the wrong secret must not verify")
	}
	if v.Verify("", body) {
		t.Error("a missing signature must not verify")
	}
}

func TestVerifier__noSecret(t *testing.T) {
	// the insecure sandbox default: everything verifies
	v := NewVerifier(log.NewNopLogger(), banklink.Meridian, "")

	if !v.Verify("", []byte(`{}`)) {
		t.Error("no configured secret accepts every payload")
	}
	if !v.Verify("garbage", []byte(`{}`)) {
		t.Error("no configured secret accepts every payload")
	}
}

func TestVerifier__parse(t *testing.T) {
	v := NewVerifier(log.NewNopLogger(), banklink.Meridian, "whsec_123")

	event, err := v.Parse([]byte(`{"uid":"evt_1","event_type":"payout.settled","created_at":"2020-04-07T12:00:00Z","data":{"uid":"pay_1"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if event.ID != "evt_1" || event.Type != "payout.settled" || event.Provider != banklink.Meridian {
		t.Errorf("event=%#v", event)
	}
	if event.Payload == nil {
		t.Error("payload carries the full raw body")
	}

	// missing type falls back to the provider default
	event, err = v.Parse([]byte(`{"uid":"evt_2"}`))
	if err != nil {
		t.Fatal(err)
	}
	if event.Type != "meridian.event" {
		t.Errorf("type=%s", event.Type)
	}

	if _, err := v.Parse([]byte(`not json`)); err == nil {
		t.Error("expected decode error")
	}
}

func TestVerifier__signatureFromRequest(t *testing.T) {
	req, _ := http.NewRequest("POST", "/webhooks/meridian", nil)
	if sig := SignatureFromRequest(req); sig != "" {
		t.Errorf("signature=%q", sig)
	}

	req.Header.Set("X-Meridian-Signature", "abc123")
	if sig := SignatureFromRequest(req); sig != "abc123" {
		t.Errorf("signature=%q", sig)
	}

	// the first known header wins
	req.Header.Set("X-Harbor-Signature", "def456")
	if sig := SignatureFromRequest(req); sig != "def456" {
		t.Errorf("signature=%q", sig)
	}
}
