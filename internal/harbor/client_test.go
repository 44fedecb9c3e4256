// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package harbor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moov-io/banklink/pkg/banklink"

	"github.com/go-kit/kit/log"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(log.NewNopLogger(), server.URL, "harbor-api-key", server.Client())
	return client, server
}

func TestClient__ping(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ping" {
			t.Errorf("path=%s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	if err := client.Ping(); err != nil {
		t.Fatal(err)
	}
}

func TestClient__bearerToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer harbor-api-key" {
			t.Errorf("Authorization=%q", auth)
		}
		w.Write([]byte(`{}`))
	}))
	if _, err := client.get(context.Background(), "getCustomer", "/customers/cus_1"); err != nil {
		t.Fatal(err)
	}
}

func TestClient__missingAPIKey(t *testing.T) {
	hit := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer server.Close()

	client := NewClient(log.NewNopLogger(), server.URL, "", server.Client())
	_, err := client.get(context.Background(), "getCustomer", "/customers/cus_1")
	if err == nil {
		t.Fatal("expected error")
	}
	var te *banklink.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("got %T: %v", err, err)
	}
	if te.Provider != banklink.Harbor || te.Operation != "getCustomer" {
		t.Errorf("transport error=%#v", te)
	}
	if hit {
		t.Error("no request should reach the server without an API key")
	}
}

func TestClient__sharedHTTPClient(t *testing.T) {
	// both provider clients are built from one pooled *http.Client; the
	// shared instance must come back untouched
	shared := &http.Client{Transport: &http.Transport{}}

	withKey := NewClient(log.NewNopLogger(), "https://harbor.example.com", "key", shared)
	withoutKey := NewClient(log.NewNopLogger(), "https://harbor.example.com", "", shared)

	if shared.Timeout != 0 {
		t.Errorf("shared client timeout mutated to %v", shared.Timeout)
	}
	if withKey.httpClient == shared || withoutKey.httpClient == shared {
		t.Error("provider clients must own their *http.Client")
	}
	if withKey.httpClient.Timeout != requestTimeout || withoutKey.httpClient.Timeout != requestTimeout {
		t.Errorf("timeouts=%v %v", withKey.httpClient.Timeout, withoutKey.httpClient.Timeout)
	}
	if withoutKey.httpClient.Transport != shared.Transport {
		t.Error("expected the shared transport to be reused")
	}
}

func TestClient__upstreamError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	_, err := client.get(context.Background(), "getAccount", "/accounts/acc_1")
	var te *banklink.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("got %T: %v", err, err)
	}
	if te.Status != http.StatusBadGateway {
		t.Errorf("status=%d", te.Status)
	}
}

func TestClient__pageQuery(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("limit") != "25" || q.Get("offset") != "50" || q.Get("pageToken") != "tok" {
			t.Errorf("query=%v", q)
		}
		w.Write([]byte(`{"data":[]}`))
	}))
	opts := banklink.ListOptions{Limit: 25, Offset: 50, PageToken: "tok"}
	if _, err := client.getCollection(context.Background(), "listAccounts", "/accounts", opts, nil); err != nil {
		t.Fatal(err)
	}
}
