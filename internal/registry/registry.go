// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package registry selects which provider adapter services a request.
//
// The registry holds only immutable, construction-time state (the adapter
// set, per-provider currency and region lists, and the default provider), so
// concurrent Resolve calls need no locking.
package registry

import (
	"strings"

	"github.com/moov-io/banklink/pkg/banklink"

	"github.com/go-kit/kit/log"
	"golang.org/x/text/currency"
)

// Resolution is a request to pick an adapter. Every field is optional; when
// all are empty the configured default provider is used.
type Resolution struct {
	Provider string
	Currency string
	Region   string
}

type entry struct {
	adapter    banklink.Bank
	currencies map[string]bool
	regions    map[string]bool
}

// Registry resolves a Resolution to exactly one adapter (or one error).
type Registry struct {
	logger log.Logger

	// entries is indexed by provider tag; order fixes the enumeration used
	// to break currency and region ties (harbor before meridian).
	entries map[banklink.Provider]*entry
	order   []banklink.Provider

	defaultProvider banklink.Provider
	hasDefault      bool
}

// Options configures one adapter's membership.
type Options struct {
	Adapter    banklink.Bank
	Currencies []string
	Regions    []string
}

// New builds a Registry. Adapters register in banklink.Providers() order
// regardless of the order opts is supplied in, keeping tie-breaking stable
// and documented.
func New(logger log.Logger, defaultProvider string, opts map[banklink.Provider]Options) *Registry {
	r := &Registry{
		logger:  logger,
		entries: make(map[banklink.Provider]*entry),
	}
	for _, p := range banklink.Providers() {
		o, ok := opts[p]
		if !ok || o.Adapter == nil {
			continue
		}
		e := &entry{
			adapter:    o.Adapter,
			currencies: make(map[string]bool),
			regions:    make(map[string]bool),
		}
		for i := range o.Currencies {
			if unit, err := currency.ParseISO(o.Currencies[i]); err == nil {
				e.currencies[unit.String()] = true
			} else {
				logger.Log("registry", "skipping unknown currency", "provider", p, "currency", o.Currencies[i])
			}
		}
		for i := range o.Regions {
			e.regions[strings.ToLower(strings.TrimSpace(o.Regions[i]))] = true
		}
		r.entries[p] = e
		r.order = append(r.order, p)
	}
	if p, ok := banklink.ParseProvider(defaultProvider); ok {
		r.defaultProvider = p
		r.hasDefault = true
	}
	return r
}

// Resolve picks exactly one adapter for req, in strict priority order:
//
//  1. an explicit provider id, when a matching adapter exists (an unknown
//     explicit id fails immediately -- it never falls through);
//  2. the first adapter, in enumeration order, supporting req.Currency;
//  3. the first adapter, in enumeration order, listing req.Region
//     (case-insensitive);
//  4. the configured default provider.
//
// Resolve is total: every call returns one adapter or one ResolutionError,
// never zero and never an ambiguous match.
func (r *Registry) Resolve(req Resolution) (banklink.Bank, error) {
	if v := strings.TrimSpace(req.Provider); v != "" {
		p, ok := banklink.ParseProvider(v)
		if !ok {
			return nil, r.fail(req, "unknown provider id")
		}
		e, ok := r.entries[p]
		if !ok {
			return nil, r.fail(req, "provider has no registered adapter")
		}
		return e.adapter, nil
	}

	if v := strings.TrimSpace(req.Currency); v != "" {
		code := v
		if unit, err := currency.ParseISO(v); err == nil {
			code = unit.String()
		}
		for _, p := range r.order {
			if r.entries[p].currencies[code] {
				return r.entries[p].adapter, nil
			}
		}
		// unsupported currency falls through to the default
	}

	if v := strings.ToLower(strings.TrimSpace(req.Region)); v != "" {
		for _, p := range r.order {
			if r.entries[p].regions[v] {
				return r.entries[p].adapter, nil
			}
		}
	}

	if r.hasDefault {
		if e, ok := r.entries[r.defaultProvider]; ok {
			return e.adapter, nil
		}
		return nil, r.fail(req, "default provider has no registered adapter")
	}
	return nil, r.fail(req, "no adapter matched and no default provider configured")
}

func (r *Registry) fail(req Resolution, reason string) error {
	err := &banklink.ResolutionError{
		Provider: req.Provider,
		Currency: req.Currency,
		Region:   req.Region,
		Reason:   reason,
	}
	r.logger.Log("registry", "resolution failed", "error", err)
	return err
}
