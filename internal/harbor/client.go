// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package harbor implements the banklink capability contract against the
// Harbor US-market provider. Harbor is single currency (USD), authenticates
// with a bearer token, and maps each operation onto exactly one endpoint.
package harbor

import (
	"bytes"
	"context"
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
	"golang.org/x/oauth2"
)

var errMissingAPIKey = errors.New("no API key configured")

// requestTimeout bounds every Harbor call. There is no retry or backoff; on
// timeout the error propagates to the caller unchanged.
const requestTimeout = 15 * time.Second

// Client is the low-level HTTP client for Harbor's API. It holds no mutable
// state beyond the pooled http.Client, so concurrent calls are independent.
type Client struct {
	logger     log.Logger
	baseURL    string
	httpClient *http.Client

	// missingAuth means construction saw no API key. Calls fail at
	// invocation time instead of crashing startup.
	missingAuth bool
}

// NewClient builds a Harbor client. An absent API key logs a warning and
// produces clearly-failing calls later, never a construction failure.
//
// underlying is shared between providers, so only its Transport is borrowed;
// the timeout lives on a client owned here.
func NewClient(logger log.Logger, baseURL, apiKey string, underlying *http.Client) *Client {
	c := &Client{
		logger:  logger,
		baseURL: baseURL,
	}
	if apiKey == "" {
		c.missingAuth = true
		c.httpClient = &http.Client{Timeout: requestTimeout}
		if underlying != nil {
			c.httpClient.Transport = underlying.Transport
		}
		logger.Log("harbor", "no API key configured, all Harbor calls will fail")
	} else {
		ctx := context.Background()
		if underlying != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, underlying)
		}
		c.httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: apiKey,
			TokenType:   "Bearer",
		}))
		c.httpClient.Timeout = requestTimeout
		logger.Log("harbor", fmt.Sprintf("using %s with key %s", baseURL, mask.Password(apiKey)))
	}
	return c
}

func (c *Client) Ping() error {
	ctx, cancelFn := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelFn()

	_, err := c.do(ctx, "ping", "GET", "/ping", nil)
	return err
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

// getCollection returns the undecoded JSON value since list payloads may be a
// bare array. Extra query params merge with the pagination ones.
func (c *Client) getCollection(ctx context.Context, operation, path string, opts banklink.ListOptions, extra url.Values) (any, error) {
	q := pageQuery(opts)
	for k, vs := range extra {
		for i := range vs {
			q.Add(k, vs[i])
		}
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

func (c *Client) patch(ctx context.Context, operation, path string, payload any) (normalize.Raw, error) {
	return c.write(ctx, operation, "PATCH", path, payload)
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
	if c.missingAuth {
		return nil, c.transportErr(operation, 0, errMissingAPIKey)
	}

	var reader *bytes.Reader
	if payload == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, c.transportErr(operation, 0, err)
	}
	req.Header.Set("Content-Type", "application/json")

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
		return nil, c.transportErr(operation, resp.StatusCode, fmt.Errorf("%s %s: %s", method, path, firstLine(body)))
	}
	return body, nil
}

func (c *Client) transportErr(operation string, status int, err error) error {
	c.logger.Log("harbor", operation, "status", status, "error", err)
	return &banklink.TransportError{
		Provider:  banklink.Harbor,
		Operation: operation,
		Status:    status,
		Err:       err,
	}
}

func pageQuery(opts banklink.ListOptions) url.Values {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.PageToken != "" {
		q.Set("pageToken", opts.PageToken)
	}
	return q
}

func firstLine(body []byte) string {
	const max = 200
	if len(body) > max {
		body = body[:max]
	}
	return string(bytes.TrimSpace(body))
}
