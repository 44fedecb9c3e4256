// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package route holds the thin HTTP plumbing shared by the webhook endpoint
// and liveness routes. Anything heavier (per-domain REST surfaces, auth,
// recovery policy) belongs to callers of the dispatch layer, not here.
package route

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io/ioutil"
	"net/http"
	"regexp"
	"strings"
	"time"

	moovhttp "github.com/moov-io/base/http"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/prometheus"
	"github.com/gorilla/mux"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	// Prometheus Metrics
	Histogram = prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Name: "http_response_duration_seconds",
		Help: "Histogram representing the http response durations",
	}, []string{"route"})
)

// Responder carries the request-scoped logger and writer through a handler.
type Responder struct {
	XRequestID string

	logger log.Logger

	writer  http.ResponseWriter
	request *http.Request
}

func NewResponder(logger log.Logger, w http.ResponseWriter, r *http.Request) *Responder {
	return &Responder{
		XRequestID: moovhttp.GetRequestID(r),
		logger:     logger,
		writer:     w,
		request:    r,
	}
}

func (r *Responder) Log(kvpairs ...interface{}) {
	if r == nil {
		return
	}
	args := []interface{}{"requestID", r.XRequestID}
	args = append(args, kvpairs...)
	r.logger.Log(args...)
}

func (r *Responder) Respond(fn func(http.ResponseWriter)) {
	if r == nil {
		return
	}
	start := time.Now()
	r.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	fn(r.writer)
	name := fmt.Sprintf("%s-%s", strings.ToLower(r.request.Method), CleanPath(r.request.URL.Path))
	Histogram.With("route", name).Observe(time.Since(start).Seconds())
}

func (r *Responder) Problem(err error) {
	if r == nil {
		return
	}
	r.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	moovhttp.Problem(r.writer, err)
}

// ReadPathID returns one mux path variable from a request.
func ReadPathID(name string, r *http.Request) string {
	vars := mux.Vars(r)
	v, ok := vars[name]
	if ok {
		return v
	}
	return ""
}

func PingRoute(logger log.Logger, r *mux.Router) {
	r.Methods("GET").Path("/ping").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("PONG"))
	})
}

var baseIdRegex = regexp.MustCompile(`([a-f0-9]{40})`)

// CleanPath takes a URL path and formats it for Prometheus metrics
//
// This method replaces /'s with -'s and strips out moov/base.ID() values from URL path slugs.
func CleanPath(path string) string {
	parts := strings.Split(path, "/")
	var out []string
	for i := range parts {
		if parts[i] == "" || baseIdRegex.MatchString(parts[i]) {
			continue // assume it's a moov/base.ID() value
		}
		out = append(out, parts[i])
	}
	return strings.Join(out, "-")
}

// TLSHttpClient returns an *http.Client with connection pooling suitable for
// long-lived provider clients, optionally trusting an extra CA file. Each
// provider client sets its own fixed timeout on top.
func TLSHttpClient(path string) (*http.Client, error) {
	tlsConfig := &tls.Config{}
	pool, err := x509.SystemCertPool()
	if pool == nil || err != nil {
		pool = x509.NewCertPool()
	}

	// read extra CA file
	if path != "" {
		bs, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("problem reading %s: %v", path, err)
		}
		ok := pool.AppendCertsFromPEM(bs)
		if !ok {
			return nil, fmt.Errorf("couldn't parse PEM in: %s", path)
		}
	}
	tlsConfig.RootCAs = pool

	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig:     tlsConfig,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			MaxConnsPerHost:     100,
			IdleConnTimeout:     1 * time.Minute,
		},
	}, nil
}
