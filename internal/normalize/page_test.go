// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mapName(r Raw) string {
	return r.String("", "name")
}

func TestPage__shapeEquivalence(t *testing.T) {
	// the same three logical records in each accepted raw shape
	shapes := map[string][]byte{
		"data":  []byte(`{"data": [{"name":"a"},{"name":"b"},{"name":"c"}], "total": 3, "nextPageToken": "tok"}`),
		"bare":  []byte(`[{"name":"a"},{"name":"b"},{"name":"c"}]`),
		"items": []byte(`{"items": [{"name":"a"},{"name":"b"},{"name":"c"}], "count": 3, "nextPageToken": "tok"}`),
	}

	for shape, body := range shapes {
		raw, err := DecodeAny(body)
		require.NoError(t, err, shape)

		page := Page(raw, mapName)
		require.Equal(t, []string{"a", "b", "c"}, page.Items, shape)
		require.Equal(t, 3, page.Total, shape)
	}
}

func TestPage__unknownShapeIsEmpty(t *testing.T) {
	// an unrecognized shape yields an empty result, not an error; this is
	// explicitly not a success signal
	for _, body := range []string{
		`{"records": [{"name":"a"}]}`,
		`"just a string"`,
		`42`,
		`null`,
	} {
		raw, err := DecodeAny([]byte(body))
		require.NoError(t, err)

		page := Page(raw, mapName)
		require.NotNil(t, page.Items, body)
		require.Empty(t, page.Items, body)
		require.Zero(t, page.Total, body)
	}
}

func TestPage__details(t *testing.T) {
	// total falls back to item count when absent
	raw, err := DecodeAny([]byte(`{"data": [{"name":"a"}]}`))
	require.NoError(t, err)
	page := Page(raw, mapName)
	require.Equal(t, 1, page.Total)
	require.Empty(t, page.NextPageToken)

	// a reported total wins over the item count (short page)
	raw, err = DecodeAny([]byte(`{"items": [{"name":"a"}], "total": 9, "nextPageToken": "next"}`))
	require.NoError(t, err)
	page = Page(raw, mapName)
	require.Equal(t, 9, page.Total)
	require.Equal(t, "next", page.NextPageToken)

	// non-object entries are skipped, not fatal
	raw, err = DecodeAny([]byte(`{"data": [{"name":"a"}, "junk", 7]}`))
	require.NoError(t, err)
	page = Page(raw, mapName)
	require.Equal(t, []string{"a"}, page.Items)
}
