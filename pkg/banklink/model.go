// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package banklink holds the canonical, provider-agnostic domain model and
// the capability contract every backend adapter implements.
//
// The canonical layer is stateless: every entity is produced by translating a
// provider payload on read and is never mutated after it has been returned.
// Entities always carry an ID (synthesized when the provider omits one),
// the Provider tag that produced them, and non-zero timestamps (defaulted to
// call time when the provider omits them). Amounts always travel with their
// ISO-4217 currency code; no layer assumes an implicit currency.
package banklink

import (
	"github.com/moov-io/base"
)

// Status values providers do not share a vocabulary for (disputes, payments
// in flight, applications under review) are passed through verbatim as opaque
// strings rather than forced into a closed enum.

// StatusUnknown is the sentinel applied when a provider payload carries no
// usable status field.
const StatusUnknown = "unknown"

type Customer struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`

	CreatedAt base.Time `json:"createdAt"`
	UpdatedAt base.Time `json:"updatedAt"`
}

type Application struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`

	CustomerID string `json:"customerId"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	Message    string `json:"message"`

	CreatedAt base.Time `json:"createdAt"`
	UpdatedAt base.Time `json:"updatedAt"`
}

type Account struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`

	CustomerID    string  `json:"customerId"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	Balance       float64 `json:"balance"`
	Currency      string  `json:"currency"`
	Iban          string  `json:"iban,omitempty"`
	RoutingNumber string  `json:"routingNumber,omitempty"`
	AccountNumber string  `json:"accountNumber,omitempty"`

	CreatedAt base.Time `json:"createdAt"`
	UpdatedAt base.Time `json:"updatedAt"`
}

type Card struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`

	AccountID  string `json:"accountId"`
	CustomerID string `json:"customerId"`
	Form       string `json:"form"` // physical or virtual
	Last4      string `json:"last4"`
	Status     string `json:"status"`
	ExpiryMonth int   `json:"expiryMonth"`
	ExpiryYear  int   `json:"expiryYear"`

	CreatedAt base.Time `json:"createdAt"`
	UpdatedAt base.Time `json:"updatedAt"`
}

// Payment collapses every provider-specific instrument (ACH, wire, book
// transfer, card-funded, SEPA payin/payout/transfer) into one shape tagged by
// Type. The tag vocabulary is provider-specific; see PaymentRequest.
type Payment struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`

	Type           string  `json:"type"`
	Status         string  `json:"status"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	Description    string  `json:"description"`
	FromAccountID  string  `json:"fromAccountId,omitempty"`
	ToAccountID    string  `json:"toAccountId,omitempty"`
	CounterpartyID string  `json:"counterpartyId,omitempty"`

	CreatedAt base.Time `json:"createdAt"`
	UpdatedAt base.Time `json:"updatedAt"`
}

// Transaction is a ledger-posted movement, distinct from Authorization which
// is a card-network event that may never post.
type Transaction struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`

	AccountID   string  `json:"accountId"`
	Type        string  `json:"type"`
	Direction   string  `json:"direction"` // credit or debit
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	Balance     float64 `json:"balance"` // running balance after posting, when reported

	CreatedAt base.Time `json:"createdAt"`
}

type Counterparty struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`

	Name          string `json:"name"`
	Type          string `json:"type"`
	RoutingNumber string `json:"routingNumber,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	Iban          string `json:"iban,omitempty"`
	Bic           string `json:"bic,omitempty"`

	CreatedAt base.Time `json:"createdAt"`
	UpdatedAt base.Time `json:"updatedAt"`
}

type Authorization struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`

	CardID       string  `json:"cardId"`
	Status       string  `json:"status"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	MerchantName string  `json:"merchantName"`
	MerchantMcc  string  `json:"merchantMcc"`

	CreatedAt base.Time `json:"createdAt"`
}

type Statement struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`

	AccountID string `json:"accountId"`
	Period    string `json:"period"` // e.g. 2020-04
	Format    string `json:"format"`
	URL       string `json:"url,omitempty"`

	CreatedAt base.Time `json:"createdAt"`
}

type CheckDeposit struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`

	AccountID string  `json:"accountId"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`

	CreatedAt base.Time `json:"createdAt"`
	UpdatedAt base.Time `json:"updatedAt"`
}

// Dispute statuses between "opened" and "resolved" are provider-defined
// strings passed through verbatim.
type Dispute struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`

	TransactionID string  `json:"transactionId"`
	Status        string  `json:"status"`
	Reason        string  `json:"reason"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`

	CreatedAt  base.Time  `json:"createdAt"`
	ResolvedAt *base.Time `json:"resolvedAt,omitempty"`
}

type Reward struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`

	AccountID   string  `json:"accountId"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`

	CreatedAt base.Time `json:"createdAt"`
}

// Mandate is a standing debit authorization (e.g. a SEPA direct debit
// mandate) between a debtor and a creditor.
type Mandate struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`

	Reference    string `json:"reference"`
	DebtorName   string `json:"debtorName"`
	DebtorIban   string `json:"debtorIban"`
	CreditorName string `json:"creditorName"`
	CreditorID   string `json:"creditorId"`
	Status       string `json:"status"`

	CreatedAt base.Time `json:"createdAt"`
	UpdatedAt base.Time `json:"updatedAt"`
}

// RestrictionGroupKind selects which dimension a restriction group keys on.
type RestrictionGroupKind string

const (
	RestrictionCountry  RestrictionGroupKind = "country"
	RestrictionMcc      RestrictionGroupKind = "mcc"
	RestrictionMerchant RestrictionGroupKind = "merchant"
)

func (k RestrictionGroupKind) Valid() bool {
	switch k {
	case RestrictionCountry, RestrictionMcc, RestrictionMerchant:
		return true
	}
	return false
}

// RestrictionGroup is an allow or deny list over one dimension (countries,
// merchant category codes, or individual merchants).
type RestrictionGroup struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`

	Kind    RestrictionGroupKind `json:"kind"`
	Name    string               `json:"name"`
	Allowed bool                 `json:"allowed"` // true = allow list, false = deny list
	Values  []string             `json:"values"`

	CreatedAt base.Time `json:"createdAt"`
	UpdatedAt base.Time `json:"updatedAt"`
}

// Recall statuses. The only surfaced transition is requested -> responded;
// there is no cancellation state.
const (
	RecallRequested = "requested"
	RecallResponded = "responded"
)

type Recall struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`

	PaymentID string          `json:"paymentId"`
	Reason    string          `json:"reason"`
	Status    string          `json:"status"`
	Response  *RecallResponse `json:"response,omitempty"`

	CreatedAt base.Time `json:"createdAt"`
	UpdatedAt base.Time `json:"updatedAt"`
}

// RecallResponse is the sub-state attached once the receiving side answers a
// recall.
type RecallResponse struct {
	Accepted bool      `json:"accepted"`
	Reason   string    `json:"reason"`
	At       base.Time `json:"at"`
}

// WebhookEvent is a transient parse result and is never persisted.
type WebhookEvent struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`

	Type      string         `json:"type"`
	CreatedAt base.Time      `json:"createdAt"`
	Payload   map[string]any `json:"payload"`
}
