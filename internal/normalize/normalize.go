// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package normalize turns raw, partially-typed provider payloads into values
// the canonical model can be built from.
//
// Every accessor takes an ordered list of candidate keys (the provider's
// primary field name first, then known aliases) and falls back to a typed
// default only as a last resort. Accessors never error and never panic on
// missing or mistyped fields; the only operation that can fail is decoding a
// body that is not JSON at all.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/moov-io/base"
)

// Raw is one provider object, as decoded JSON.
type Raw map[string]any

// Decode parses body into a Raw. A JSON null or empty body decodes to an
// empty Raw so normalization stays total; malformed JSON is the one error
// this package surfaces.
func Decode(body []byte) (Raw, error) {
	if len(body) == 0 {
		return Raw{}, nil
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("normalize: decode: %v", err)
	}
	if out == nil {
		return Raw{}, nil
	}
	return out, nil
}

// String returns the first present candidate as a string, else def.
func (r Raw) String(def string, keys ...string) string {
	for i := range keys {
		v, ok := r[keys[i]]
		if !ok || v == nil {
			continue
		}
		switch vv := v.(type) {
		case string:
			if vv != "" {
				return vv
			}
		case float64:
			return strconv.FormatFloat(vv, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(vv)
		}
	}
	return def
}

// Int returns the first present candidate as an int64, else def. Numeric
// strings are accepted since several providers quote integers.
func (r Raw) Int(def int64, keys ...string) int64 {
	for i := range keys {
		v, ok := r[keys[i]]
		if !ok || v == nil {
			continue
		}
		switch vv := v.(type) {
		case float64:
			return int64(vv)
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(vv), 10, 64); err == nil {
				return n
			}
		}
	}
	return def
}

// Float returns the first present candidate as a float64, else def.
func (r Raw) Float(def float64, keys ...string) float64 {
	for i := range keys {
		v, ok := r[keys[i]]
		if !ok || v == nil {
			continue
		}
		switch vv := v.(type) {
		case float64:
			return vv
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(vv), 64); err == nil {
				return f
			}
		}
	}
	return def
}

// Bool returns the first present candidate as a bool, else def.
func (r Raw) Bool(def bool, keys ...string) bool {
	for i := range keys {
		v, ok := r[keys[i]]
		if !ok || v == nil {
			continue
		}
		switch vv := v.(type) {
		case bool:
			return vv
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(vv)); err == nil {
				return b
			}
		}
	}
	return def
}

// Strings returns the first present candidate as a []string, else nil.
func (r Raw) Strings(keys ...string) []string {
	for i := range keys {
		v, ok := r[keys[i]]
		if !ok || v == nil {
			continue
		}
		arr, ok := v.([]any)
		if !ok {
			continue
		}
		var out []string
		for j := range arr {
			if s, ok := arr[j].(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Object returns the first present candidate as a nested Raw, else nil.
func (r Raw) Object(keys ...string) Raw {
	for i := range keys {
		if m, ok := r[keys[i]].(map[string]any); ok {
			return Raw(m)
		}
	}
	return nil
}

var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Time returns the first candidate parseable as a timestamp. Timestamps are
// never absent in the canonical model, so the fallback is call time.
func (r Raw) Time(keys ...string) base.Time {
	for i := range keys {
		v, ok := r[keys[i]]
		if !ok || v == nil {
			continue
		}
		switch vv := v.(type) {
		case string:
			for j := range timeFormats {
				if t, err := time.Parse(timeFormats[j], vv); err == nil {
					return base.NewTime(t)
				}
			}
		case float64:
			// unix seconds
			return base.NewTime(time.Unix(int64(vv), 0).UTC())
		}
	}
	return base.Now()
}

// TimePtr is Time without the call-time fallback, for optional timestamps
// like Dispute.ResolvedAt.
func (r Raw) TimePtr(keys ...string) *base.Time {
	for i := range keys {
		v, ok := r[keys[i]].(string)
		if !ok || v == "" {
			continue
		}
		for j := range timeFormats {
			if t, err := time.Parse(timeFormats[j], v); err == nil {
				tt := base.NewTime(t)
				return &tt
			}
		}
	}
	return nil
}

// ID returns the first present identifier candidate. When none is present a
// random id is synthesized so canonical entities always carry one. Two
// normalizations of the same provider record without a stable id will NOT
// compare equal; callers needing idempotent re-reads must rely on the
// provider's own identifier.
func (r Raw) ID(keys ...string) string {
	if v := r.String("", keys...); v != "" {
		return v
	}
	return base.ID()
}

// MoneyKeys names one candidate amount/currency field pair.
type MoneyKeys struct {
	Amount   string
	Currency string
}

// Money resolves an amount and its currency together from the same candidate
// pair, so an amount can never be emitted with a currency sourced from a
// different, stale field. The first pair whose amount field is present wins;
// its currency field falls back to defCurrency when absent.
func (r Raw) Money(defCurrency string, pairs ...MoneyKeys) (float64, string) {
	for i := range pairs {
		v, ok := r[pairs[i].Amount]
		if !ok || v == nil {
			continue
		}
		var amount float64
		switch vv := v.(type) {
		case float64:
			amount = vv
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(vv), 64)
			if err != nil {
				continue
			}
			amount = f
		default:
			continue
		}
		cur := r.String(defCurrency, pairs[i].Currency)
		return amount, strings.ToUpper(cur)
	}
	return 0, strings.ToUpper(defCurrency)
}
