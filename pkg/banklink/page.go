// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package banklink

// PaginatedResult is the one collection shape every list operation returns,
// regardless of how the provider paginates.
type PaginatedResult[T any] struct {
	Items         []T    `json:"items"`
	Total         int    `json:"total"`
	NextPageToken string `json:"nextPageToken,omitempty"`
}

// ListOptions carries caller pagination hints. Providers that page by token
// ignore Offset and vice versa.
type ListOptions struct {
	Limit     int
	Offset    int
	PageToken string
}

// PaymentListOptions adds the optional payment type filter. On providers
// whose payments live in several endpoint domains, leaving Type empty fans
// the list out to every domain and concatenates the results.
type PaymentListOptions struct {
	ListOptions

	Type      string
	AccountID string
}
