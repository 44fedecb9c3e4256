// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package banklink

import (
	"context"
	"strings"
)

// Provider identifies which banking backend produced (or will service) a
// request. The set is closed at compile time -- callers resolve a Provider to
// an adapter exactly once, through the registry, and never branch on the tag
// afterwards.
type Provider string

const (
	// Harbor is the US-market provider. Single currency (USD), bearer-token
	// authentication, one endpoint per operation.
	Harbor Provider = "harbor"

	// Meridian is the EU-market provider. Multi-currency, request signing on
	// every mutating call, payments split across payin/payout/transfer
	// endpoint domains.
	Meridian Provider = "meridian"
)

func (p Provider) String() string {
	return string(p)
}

// ParseProvider matches a string against the known provider tags.
func ParseProvider(v string) (Provider, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "harbor":
		return Harbor, true
	case "meridian":
		return Meridian, true
	}
	return Provider(""), false
}

// Providers returns every known provider tag in the stable enumeration order
// used to break resolution ties.
func Providers() []Provider {
	return []Provider{Harbor, Meridian}
}

// Bank is the capability set every backend adapter implements. Callers hold a
// Bank (obtained from the registry) and never the concrete adapter type.
//
// Create/update/cancel calls are not idempotent by contract: submitting the
// same input twice creates two resources unless the underlying provider
// deduplicates. Adapters whose provider lacks a capability fail those calls
// with an UnsupportedOperationError rather than returning empty successes.
//
// Each operation is a single blocking outbound call. Cancelling ctx abandons
// the in-flight request but the provider-side effect may already have
// happened; that at-most-once-from-the-client ambiguity is inherent and is
// surfaced to callers, not resolved here.
type Bank interface {
	Provider() Provider
	Ping() error

	// Customers
	CreateCustomer(ctx context.Context, req CustomerRequest) (*Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)
	ListCustomers(ctx context.Context, opts ListOptions) (*PaginatedResult[Customer], error)
	UpdateCustomer(ctx context.Context, customerID string, req CustomerRequest) (*Customer, error)

	// Applications (onboarding / KYC flow)
	CreateApplication(ctx context.Context, req ApplicationRequest) (*Application, error)
	GetApplication(ctx context.Context, applicationID string) (*Application, error)
	ListApplications(ctx context.Context, opts ListOptions) (*PaginatedResult[Application], error)

	// Accounts
	CreateAccount(ctx context.Context, req AccountRequest) (*Account, error)
	GetAccount(ctx context.Context, accountID string) (*Account, error)
	ListAccounts(ctx context.Context, opts ListOptions) (*PaginatedResult[Account], error)
	CloseAccount(ctx context.Context, accountID string) (*Account, error)

	// Cards
	IssueCard(ctx context.Context, req CardRequest) (*Card, error)
	GetCard(ctx context.Context, cardID string) (*Card, error)
	ListCards(ctx context.Context, opts ListOptions) (*PaginatedResult[Card], error)
	FreezeCard(ctx context.Context, cardID string) (*Card, error)
	UnfreezeCard(ctx context.Context, cardID string) (*Card, error)

	// Payments
	CreatePayment(ctx context.Context, req PaymentRequest) (*Payment, error)
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
	ListPayments(ctx context.Context, opts PaymentListOptions) (*PaginatedResult[Payment], error)
	CancelPayment(ctx context.Context, paymentID string) (*Payment, error)

	// Transactions (ledger-posted movements)
	GetTransaction(ctx context.Context, transactionID string) (*Transaction, error)
	ListTransactions(ctx context.Context, accountID string, opts ListOptions) (*PaginatedResult[Transaction], error)

	// Counterparties
	CreateCounterparty(ctx context.Context, req CounterpartyRequest) (*Counterparty, error)
	GetCounterparty(ctx context.Context, counterpartyID string) (*Counterparty, error)
	ListCounterparties(ctx context.Context, opts ListOptions) (*PaginatedResult[Counterparty], error)
	DeleteCounterparty(ctx context.Context, counterpartyID string) error

	// Authorizations (card-network events, pending or settled)
	GetAuthorization(ctx context.Context, authorizationID string) (*Authorization, error)
	ListAuthorizations(ctx context.Context, opts ListOptions) (*PaginatedResult[Authorization], error)

	// Statements
	GetStatement(ctx context.Context, statementID string) (*Statement, error)
	ListStatements(ctx context.Context, accountID string, opts ListOptions) (*PaginatedResult[Statement], error)

	// Check deposits
	CreateCheckDeposit(ctx context.Context, req CheckDepositRequest) (*CheckDeposit, error)
	GetCheckDeposit(ctx context.Context, checkDepositID string) (*CheckDeposit, error)
	ListCheckDeposits(ctx context.Context, opts ListOptions) (*PaginatedResult[CheckDeposit], error)

	// Disputes
	GetDispute(ctx context.Context, disputeID string) (*Dispute, error)
	ListDisputes(ctx context.Context, opts ListOptions) (*PaginatedResult[Dispute], error)

	// Rewards
	CreateReward(ctx context.Context, req RewardRequest) (*Reward, error)
	GetReward(ctx context.Context, rewardID string) (*Reward, error)
	ListRewards(ctx context.Context, opts ListOptions) (*PaginatedResult[Reward], error)

	// Mandates (standing debit authorizations)
	CreateMandate(ctx context.Context, req MandateRequest) (*Mandate, error)
	GetMandate(ctx context.Context, mandateID string) (*Mandate, error)
	ListMandates(ctx context.Context, opts ListOptions) (*PaginatedResult[Mandate], error)
	CancelMandate(ctx context.Context, mandateID string) (*Mandate, error)

	// Restriction groups, keyed by kind (country, mcc, merchant)
	CreateRestrictionGroup(ctx context.Context, kind RestrictionGroupKind, req RestrictionGroupRequest) (*RestrictionGroup, error)
	GetRestrictionGroup(ctx context.Context, kind RestrictionGroupKind, groupID string) (*RestrictionGroup, error)
	ListRestrictionGroups(ctx context.Context, kind RestrictionGroupKind, opts ListOptions) (*PaginatedResult[RestrictionGroup], error)
	UpdateRestrictionGroup(ctx context.Context, kind RestrictionGroupKind, groupID string, req RestrictionGroupRequest) (*RestrictionGroup, error)
	DeleteRestrictionGroup(ctx context.Context, kind RestrictionGroupKind, groupID string) error

	// Recalls (payment reversal requests)
	CreateRecall(ctx context.Context, req RecallRequest) (*Recall, error)
	GetRecall(ctx context.Context, recallID string) (*Recall, error)
	ListRecalls(ctx context.Context, opts ListOptions) (*PaginatedResult[Recall], error)
	RespondToRecall(ctx context.Context, recallID string, req RecallResponseRequest) (*Recall, error)

	// Simulations (sandbox-only helpers)
	SimulateIncomingPayment(ctx context.Context, req SimulationRequest) (*Payment, error)
	SimulateAuthorization(ctx context.Context, req SimulationRequest) (*Authorization, error)
}
