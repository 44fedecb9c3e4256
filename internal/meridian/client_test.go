// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package meridian

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moov-io/banklink/pkg/banklink"

	"github.com/go-kit/kit/log"
)

const testSigningKey = "meridian-signing-key"

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(log.NewNopLogger(), server.URL, testSigningKey, server.Client())
	return client, server
}

func expectedSignature(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSigningKey))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
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

func TestClient__signsMutatingCalls(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := ioutil.ReadAll(r.Body)
		if sig := r.Header.Get(SignatureHeader); sig != expectedSignature(body) {
			t.Errorf("signature=%q body=%q", sig, body)
		}
		w.Write([]byte(`{}`))
	}))
	_, err := client.post(context.Background(), "createCustomer", "/customers", map[string]string{
		"first_name": "Jane",
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestClient__readsUnsigned(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sig := r.Header.Get(SignatureHeader); sig != "" {
			t.Errorf("GET should not carry a signature, got %q", sig)
		}
		w.Write([]byte(`{}`))
	}))
	if _, err := client.get(context.Background(), "getCustomer", "/customers/cus_1"); err != nil {
		t.Fatal(err)
	}
}

func TestClient__missingSigningKey(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(log.NewNopLogger(), server.URL, "", server.Client())

	// reads still work
	if _, err := client.get(context.Background(), "getCustomer", "/customers/cus_1"); err != nil {
		t.Fatal(err)
	}

	// mutating calls fail before any request
	_, err := client.post(context.Background(), "createCustomer", "/customers", map[string]string{"first_name": "Jane"})
	var te *banklink.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("got %T: %v", err, err)
	}
	if len(paths) != 1 || paths[0] != "/customers/cus_1" {
		t.Errorf("paths=%v", paths)
	}
}

func TestClient__sharedHTTPClient(t *testing.T) {
	// the pooled *http.Client is shared with the other provider; only its
	// transport is borrowed
	shared := &http.Client{Transport: &http.Transport{}}

	client := NewClient(log.NewNopLogger(), "https://meridian.example.com", testSigningKey, shared)

	if shared.Timeout != 0 {
		t.Errorf("shared client timeout mutated to %v", shared.Timeout)
	}
	if client.httpClient == shared {
		t.Error("provider clients must own their *http.Client")
	}
	if client.httpClient.Timeout != requestTimeout {
		t.Errorf("timeout=%v", client.httpClient.Timeout)
	}
	if client.httpClient.Transport != shared.Transport {
		t.Error("expected the shared transport to be reused")
	}
}

func TestClient__listQuery(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page_size") != "25" || q.Get("offset") != "50" || q.Get("starting_after") != "acc_9" {
			t.Errorf("query=%v", q)
		}
		w.Write([]byte(`{"items":[],"total":0}`))
	}))
	opts := banklink.ListOptions{Limit: 25, Offset: 50, PageToken: "acc_9"}
	if _, err := client.getCollection(context.Background(), "listAccounts", "/accounts", opts); err != nil {
		t.Fatal(err)
	}
}
