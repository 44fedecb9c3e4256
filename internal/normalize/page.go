// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package normalize

import (
	"encoding/json"

	"github.com/moov-io/banklink/pkg/banklink"
)

// DecodeAny parses body into an arbitrary JSON value for collection payloads,
// which may legally be a bare array rather than an object.
func DecodeAny(body []byte) (any, error) {
	if len(body) == 0 {
		return nil, nil
	}
	var out any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Page maps one provider collection payload into a PaginatedResult. Three raw
// shapes are accepted:
//
//	{"data": [...], "total": n, "nextPageToken": "..."}
//	[...]
//	{"items": [...], "total"|"count": n, "nextPageToken": "..."}
//
// Any other shape yields an empty result, not an error. That silent-empty
// fallback is a deliberate simplicity trade-off and is covered by tests; it
// must not be read as a success signal.
func Page[T any](raw any, mapFn func(Raw) T) banklink.PaginatedResult[T] {
	var (
		entries []any
		total   int64 = -1
		token   string
	)

	switch v := raw.(type) {
	case []any:
		entries = v
	case map[string]any:
		r := Raw(v)
		if arr, ok := v["data"].([]any); ok {
			entries = arr
		} else if arr, ok := v["items"].([]any); ok {
			entries = arr
		} else {
			return banklink.PaginatedResult[T]{Items: []T{}}
		}
		total = r.Int(-1, "total", "count")
		token = r.String("", "nextPageToken")
	default:
		return banklink.PaginatedResult[T]{Items: []T{}}
	}

	items := make([]T, 0, len(entries))
	for i := range entries {
		obj, ok := entries[i].(map[string]any)
		if !ok {
			continue
		}
		items = append(items, mapFn(Raw(obj)))
	}

	out := banklink.PaginatedResult[T]{
		Items:         items,
		Total:         len(items),
		NextPageToken: token,
	}
	if total >= 0 {
		out.Total = int(total)
	}
	return out
}
