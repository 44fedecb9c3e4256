// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package webhooks authenticates and parses inbound provider webhooks.
package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/moov-io/banklink/internal/normalize"
	"github.com/moov-io/banklink/pkg/banklink"

	"github.com/go-kit/kit/log"
)

// signatureHeaders are tried in order when pulling a signature off an inbound
// request. Providers disagree on the header name.
var signatureHeaders = []string{
	"X-Harbor-Signature",
	"X-Meridian-Signature",
	"X-Signature",
}

// Verifier validates and parses one provider's webhooks.
type Verifier struct {
	logger   log.Logger
	provider banklink.Provider
	secret   string
}

// NewVerifier builds a Verifier. When no secret is configured Verify accepts
// every payload; that insecure default exists for sandbox setups where
// providers don't issue webhook secrets, and it is logged loudly here so the
// state is visible at startup.
func NewVerifier(logger log.Logger, provider banklink.Provider, secret string) *Verifier {
	if secret == "" {
		logger.Log("webhooks", "INSECURE: no webhook secret configured, signature verification disabled", "provider", provider)
	}
	return &Verifier{
		logger:   logger,
		provider: provider,
		secret:   secret,
	}
}

// Verify reports whether signature is the hex HMAC-SHA256 of body under the
// configured secret, compared in constant time. A missing secret verifies
// everything (see NewVerifier). A false return is an authentication failure,
// not an error: the caller decides how to reject the request.
func (v *Verifier) Verify(signature string, body []byte) bool {
	if v.secret == "" {
		v.logger.Log("webhooks", "accepting unverified webhook, no secret configured", "provider", v.provider)
		return true
	}
	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(strings.TrimSpace(signature)), []byte(expected))
}

// Parse maps a raw webhook body into a WebhookEvent. It fails only when the
// body is not JSON; unknown event types pass through with the provider's
// default type string.
func (v *Verifier) Parse(body []byte) (*banklink.WebhookEvent, error) {
	raw, err := normalize.Decode(body)
	if err != nil {
		return nil, err
	}
	return &banklink.WebhookEvent{
		ID:        raw.ID("id", "uid", "event_id", "eventId"),
		Provider:  v.provider,
		Type:      raw.String(string(v.provider)+".event", "type", "event_type", "eventType"),
		CreatedAt: raw.Time("createdAt", "created_at", "timestamp"),
		Payload:   raw,
	}, nil
}

// SignatureFromRequest returns the first non-empty value among the known
// provider signature headers.
func SignatureFromRequest(r *http.Request) string {
	for i := range signatureHeaders {
		if v := r.Header.Get(signatureHeaders[i]); v != "" {
			return v
		}
	}
	return ""
}
