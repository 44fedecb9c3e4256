// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package meridian implements the banklink capability contract against the
// Meridian EU-market provider. Meridian is multi-currency, splits payments
// across payin/payout/transfer endpoint domains, and requires an HMAC-SHA256
// signature over the serialized request body on every mutating call.
package meridian

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/moov-io/banklink/internal/mask"
	"github.com/moov-io/banklink/internal/normalize"
	"github.com/moov-io/banklink/pkg/banklink"

	"github.com/go-kit/kit/log"
)

// SignatureHeader carries the request signature on mutating calls. Meridian
// echoes the same header name on its webhooks.
const SignatureHeader = "X-Meridian-Signature"

var errMissingSigningKey = errors.New("no signing key configured")

// requestTimeout bounds every Meridian call. Meridian's SEPA rails are slower
// than Harbor's, hence the longer fixed timeout. No retries.
const requestTimeout = 30 * time.Second

// Client is the low-level HTTP client for Meridian's API. The published
// catalogue is large (150+ operations); only the slice the adapter composes
// is exposed here, as generic verb helpers over stable paths.
type Client struct {
	logger     log.Logger
	baseURL    string
	signingKey string
	httpClient *http.Client

	missingAuth bool
}

// NewClient builds a Meridian client. An absent signing key logs a warning
// and produces clearly-failing calls at invocation time; construction never
// fails.
//
// underlying is shared between providers, so only its Transport is borrowed;
// the timeout lives on a client owned here.
func NewClient(logger log.Logger, baseURL, signingKey string, underlying *http.Client) *Client {
	httpClient := &http.Client{Timeout: requestTimeout}
	if underlying != nil {
		httpClient.Transport = underlying.Transport
	}

	c := &Client{
		logger:     logger,
		baseURL:    baseURL,
		signingKey: signingKey,
		httpClient: httpClient,
	}
	if signingKey == "" {
		c.missingAuth = true
		logger.Log("meridian", "no signing key configured, all mutating Meridian calls will fail")
	} else {
		logger.Log("meridian", fmt.Sprintf("using %s with signing key %s", baseURL, mask.Password(signingKey)))
	}
	return c
}

func (c *Client) Ping() error {
	ctx, cancelFn := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelFn()

	_, err := c.do(ctx, "ping", "GET", "/ping", nil)
	return err
}

// sign computes the hex HMAC-SHA256 of body under the signing key.
func (c *Client) sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(c.signingKey))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *Client) get(ctx context.Context, operation, path string) (normalize.Raw, error) {
	body, err := c.do(ctx, operation, "GET", path, nil)
	if err != nil {
		return nil, err
	}
	raw, err := normalize.Decode(body)
	if err != nil {
		return nil, c.transportErr(operation, 0, err)
	}
	return raw, nil
}

func (c *Client) getCollection(ctx context.Context, operation, path string, opts banklink.ListOptions) (any, error) {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("page_size", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.PageToken != "" {
		q.Set("starting_after", opts.PageToken)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	body, err := c.do(ctx, operation, "GET", path, nil)
	if err != nil {
		return nil, err
	}
	raw, err := normalize.DecodeAny(body)
	if err != nil {
		return nil, c.transportErr(operation, 0, err)
	}
	return raw, nil
}

func (c *Client) post(ctx context.Context, operation, path string, payload any) (normalize.Raw, error) {
	return c.write(ctx, operation, "POST", path, payload)
}

func (c *Client) put(ctx context.Context, operation, path string, payload any) (normalize.Raw, error) {
	return c.write(ctx, operation, "PUT", path, payload)
}

func (c *Client) delete(ctx context.Context, operation, path string) error {
	_, err := c.do(ctx, operation, "DELETE", path, nil)
	return err
}

func (c *Client) write(ctx context.Context, operation, method, path string, payload any) (normalize.Raw, error) {
	var buf []byte
	if payload != nil {
		bs, err := json.Marshal(payload)
		if err != nil {
			return nil, c.transportErr(operation, 0, err)
		}
		buf = bs
	}
	body, err := c.do(ctx, operation, method, path, buf)
	if err != nil {
		return nil, err
	}
	raw, err := normalize.Decode(body)
	if err != nil {
		return nil, c.transportErr(operation, 0, err)
	}
	return raw, nil
}

func (c *Client) do(ctx context.Context, operation, method, path string, payload []byte) ([]byte, error) {
	mutating := method != "GET"
	if c.missingAuth && mutating {
		return nil, c.transportErr(operation, 0, errMissingSigningKey)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, c.transportErr(operation, 0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if mutating {
		req.Header.Set(SignatureHeader, c.sign(payload))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportErr(operation, 0, err)
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportErr(operation, resp.StatusCode, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, c.transportErr(operation, resp.StatusCode, fmt.Errorf("%s %s: %s", method, path, snippet(body)))
	}
	return body, nil
}

func (c *Client) transportErr(operation string, status int, err error) error {
	c.logger.Log("meridian", operation, "status", status, "error", err)
	return &banklink.TransportError{
		Provider:  banklink.Meridian,
		Operation: operation,
		Status:    status,
		Err:       err,
	}
}

func snippet(body []byte) string {
	const max = 200
	if len(body) > max {
		body = body[:max]
	}
	return string(bytes.TrimSpace(body))
}
