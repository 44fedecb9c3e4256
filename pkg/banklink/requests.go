// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package banklink

// Payment type discriminators. The two vocabularies are not interchangeable:
// a caller must know which provider it targets before choosing one. Adapters
// reject values outside their own vocabulary with a ValidationError before
// any network call is made.
const (
	// Harbor payment types
	PaymentTypeACH           = "ach"
	PaymentTypeWire          = "wire"
	PaymentTypeBook          = "book"
	PaymentTypeCard          = "card"
	PaymentTypeACHCollection = "achCollection"
	PaymentTypeACHReturn     = "achReturn"

	// Meridian payment types
	PaymentTypePayin    = "payin"
	PaymentTypePayout   = "payout"
	PaymentTypeTransfer = "transfer"
)

type CustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

type ApplicationRequest struct {
	CustomerID string `json:"customerId"`
	Type       string `json:"type"`
}

type AccountRequest struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name,omitempty"`
	Type       string `json:"type,omitempty"`
	Currency   string `json:"currency,omitempty"`
}

type CardRequest struct {
	AccountID  string `json:"accountId"`
	CustomerID string `json:"customerId,omitempty"`
	Form       string `json:"form,omitempty"` // physical or virtual
}

type PaymentRequest struct {
	Type           string  `json:"type"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	Description    string  `json:"description,omitempty"`
	FromAccountID  string  `json:"fromAccountId,omitempty"`
	ToAccountID    string  `json:"toAccountId,omitempty"`
	CounterpartyID string  `json:"counterpartyId,omitempty"`
}

type CounterpartyRequest struct {
	Name          string `json:"name"`
	Type          string `json:"type,omitempty"`
	RoutingNumber string `json:"routingNumber,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	Iban          string `json:"iban,omitempty"`
	Bic           string `json:"bic,omitempty"`
}

type CheckDepositRequest struct {
	AccountID  string  `json:"accountId"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	FrontImage string  `json:"frontImage,omitempty"` // base64
	BackImage  string  `json:"backImage,omitempty"`
}

type RewardRequest struct {
	AccountID   string  `json:"accountId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description,omitempty"`
}

type MandateRequest struct {
	Reference    string `json:"reference"`
	DebtorName   string `json:"debtorName"`
	DebtorIban   string `json:"debtorIban"`
	CreditorName string `json:"creditorName"`
	CreditorID   string `json:"creditorId"`
}

type RestrictionGroupRequest struct {
	Name    string   `json:"name"`
	Allowed bool     `json:"allowed"`
	Values  []string `json:"values"`
}

type RecallRequest struct {
	PaymentID string `json:"paymentId"`
	Reason    string `json:"reason"`
}

type RecallResponseRequest struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

// SimulationRequest drives sandbox-only simulation endpoints.
type SimulationRequest struct {
	AccountID string  `json:"accountId,omitempty"`
	CardID    string  `json:"cardId,omitempty"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}
