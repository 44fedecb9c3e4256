// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package harbor

import (
	"context"
	"fmt"
	"net/url"

	"github.com/moov-io/banklink/internal/normalize"
	"github.com/moov-io/banklink/pkg/banklink"

	"github.com/moov-io/ach"

	"github.com/go-kit/kit/log"
)

// paymentEndpoints maps Harbor's payment type discriminator onto its six
// fixed sub-endpoints. A discriminator outside this table is a caller error
// caught before any network call.
var paymentEndpoints = map[string]string{
	banklink.PaymentTypeACH:           "/payments/ach",
	banklink.PaymentTypeWire:          "/payments/wire",
	banklink.PaymentTypeBook:          "/payments/book",
	banklink.PaymentTypeCard:          "/payments/card",
	banklink.PaymentTypeACHCollection: "/payments/ach-collections",
	banklink.PaymentTypeACHReturn:     "/payments/ach-returns",
}

// Adapter implements banklink.Bank against Harbor.
type Adapter struct {
	client *Client
	logger log.Logger
}

func NewAdapter(logger log.Logger, client *Client) *Adapter {
	return &Adapter{
		client: client,
		logger: logger,
	}
}

func (a *Adapter) Provider() banklink.Provider {
	return banklink.Harbor
}

func (a *Adapter) Ping() error {
	return a.client.Ping()
}

// Customers

func (a *Adapter) CreateCustomer(ctx context.Context, req banklink.CustomerRequest) (*banklink.Customer, error) {
	raw, err := a.client.post(ctx, "createCustomer", "/customers", req)
	if err != nil {
		return nil, err
	}
	out := normalizeCustomer(raw)
	return &out, nil
}

func (a *Adapter) GetCustomer(ctx context.Context, customerID string) (*banklink.Customer, error) {
	raw, err := a.client.get(ctx, "getCustomer", "/customers/"+customerID)
	if err != nil {
		return nil, err
	}
	out := normalizeCustomer(raw)
	return &out, nil
}

func (a *Adapter) ListCustomers(ctx context.Context, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.Customer], error) {
	raw, err := a.client.getCollection(ctx, "listCustomers", "/customers", opts, nil)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeCustomer)
	return &page, nil
}

func (a *Adapter) UpdateCustomer(ctx context.Context, customerID string, req banklink.CustomerRequest) (*banklink.Customer, error) {
	raw, err := a.client.patch(ctx, "updateCustomer", "/customers/"+customerID, req)
	if err != nil {
		return nil, err
	}
	out := normalizeCustomer(raw)
	return &out, nil
}

// Applications

func (a *Adapter) CreateApplication(ctx context.Context, req banklink.ApplicationRequest) (*banklink.Application, error) {
	raw, err := a.client.post(ctx, "createApplication", "/applications", req)
	if err != nil {
		return nil, err
	}
	out := normalizeApplication(raw)
	return &out, nil
}

func (a *Adapter) GetApplication(ctx context.Context, applicationID string) (*banklink.Application, error) {
	raw, err := a.client.get(ctx, "getApplication", "/applications/"+applicationID)
	if err != nil {
		return nil, err
	}
	out := normalizeApplication(raw)
	return &out, nil
}

func (a *Adapter) ListApplications(ctx context.Context, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.Application], error) {
	raw, err := a.client.getCollection(ctx, "listApplications", "/applications", opts, nil)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeApplication)
	return &page, nil
}

// Accounts

func (a *Adapter) CreateAccount(ctx context.Context, req banklink.AccountRequest) (*banklink.Account, error) {
	raw, err := a.client.post(ctx, "createAccount", "/accounts", req)
	if err != nil {
		return nil, err
	}
	out := normalizeAccount(raw)
	return &out, nil
}

func (a *Adapter) GetAccount(ctx context.Context, accountID string) (*banklink.Account, error) {
	raw, err := a.client.get(ctx, "getAccount", "/accounts/"+accountID)
	if err != nil {
		return nil, err
	}
	out := normalizeAccount(raw)
	return &out, nil
}

func (a *Adapter) ListAccounts(ctx context.Context, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.Account], error) {
	raw, err := a.client.getCollection(ctx, "listAccounts", "/accounts", opts, nil)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeAccount)
	return &page, nil
}

func (a *Adapter) CloseAccount(ctx context.Context, accountID string) (*banklink.Account, error) {
	raw, err := a.client.post(ctx, "closeAccount", "/accounts/"+accountID+"/close", nil)
	if err != nil {
		return nil, err
	}
	out := normalizeAccount(raw)
	return &out, nil
}

// Cards

func (a *Adapter) IssueCard(ctx context.Context, req banklink.CardRequest) (*banklink.Card, error) {
	raw, err := a.client.post(ctx, "issueCard", "/cards", req)
	if err != nil {
		return nil, err
	}
	out := normalizeCard(raw)
	return &out, nil
}

func (a *Adapter) GetCard(ctx context.Context, cardID string) (*banklink.Card, error) {
	raw, err := a.client.get(ctx, "getCard", "/cards/"+cardID)
	if err != nil {
		return nil, err
	}
	out := normalizeCard(raw)
	return &out, nil
}

func (a *Adapter) ListCards(ctx context.Context, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.Card], error) {
	raw, err := a.client.getCollection(ctx, "listCards", "/cards", opts, nil)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeCard)
	return &page, nil
}

func (a *Adapter) FreezeCard(ctx context.Context, cardID string) (*banklink.Card, error) {
	raw, err := a.client.post(ctx, "freezeCard", "/cards/"+cardID+"/freeze", nil)
	if err != nil {
		return nil, err
	}
	out := normalizeCard(raw)
	return &out, nil
}

func (a *Adapter) UnfreezeCard(ctx context.Context, cardID string) (*banklink.Card, error) {
	raw, err := a.client.post(ctx, "unfreezeCard", "/cards/"+cardID+"/unfreeze", nil)
	if err != nil {
		return nil, err
	}
	out := normalizeCard(raw)
	return &out, nil
}

// Payments

func (a *Adapter) CreatePayment(ctx context.Context, req banklink.PaymentRequest) (*banklink.Payment, error) {
	path, ok := paymentEndpoints[req.Type]
	if !ok {
		return nil, &banklink.ValidationError{
			Provider: banklink.Harbor,
			Field:    "paymentType",
			Message:  fmt.Sprintf("%q is not a Harbor payment type", req.Type),
		}
	}
	raw, err := a.client.post(ctx, "createPayment", path, req)
	if err != nil {
		return nil, err
	}
	out := normalizePayment(raw)
	return &out, nil
}

func (a *Adapter) GetPayment(ctx context.Context, paymentID string) (*banklink.Payment, error) {
	raw, err := a.client.get(ctx, "getPayment", "/payments/"+paymentID)
	if err != nil {
		return nil, err
	}
	out := normalizePayment(raw)
	return &out, nil
}

func (a *Adapter) ListPayments(ctx context.Context, opts banklink.PaymentListOptions) (*banklink.PaginatedResult[banklink.Payment], error) {
	if opts.Type != "" {
		if _, ok := paymentEndpoints[opts.Type]; !ok {
			return nil, &banklink.ValidationError{
				Provider: banklink.Harbor,
				Field:    "paymentType",
				Message:  fmt.Sprintf("%q is not a Harbor payment type", opts.Type),
			}
		}
	}
	raw, err := a.client.getCollection(ctx, "listPayments", "/payments", opts.ListOptions, paymentFilterQuery(opts))
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizePayment)
	return &page, nil
}

func (a *Adapter) CancelPayment(ctx context.Context, paymentID string) (*banklink.Payment, error) {
	raw, err := a.client.post(ctx, "cancelPayment", "/payments/"+paymentID+"/cancel", nil)
	if err != nil {
		return nil, err
	}
	out := normalizePayment(raw)
	return &out, nil
}

// Transactions

func (a *Adapter) GetTransaction(ctx context.Context, transactionID string) (*banklink.Transaction, error) {
	raw, err := a.client.get(ctx, "getTransaction", "/transactions/"+transactionID)
	if err != nil {
		return nil, err
	}
	out := normalizeTransaction(raw)
	return &out, nil
}

func (a *Adapter) ListTransactions(ctx context.Context, accountID string, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.Transaction], error) {
	raw, err := a.client.getCollection(ctx, "listTransactions", "/accounts/"+accountID+"/transactions", opts, nil)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeTransaction)
	return &page, nil
}

// Counterparties

func (a *Adapter) CreateCounterparty(ctx context.Context, req banklink.CounterpartyRequest) (*banklink.Counterparty, error) {
	if req.RoutingNumber != "" {
		if err := ach.CheckRoutingNumber(req.RoutingNumber); err != nil {
			return nil, &banklink.ValidationError{
				Provider: banklink.Harbor,
				Field:    "routingNumber",
				Message:  err.Error(),
			}
		}
	}
	raw, err := a.client.post(ctx, "createCounterparty", "/counterparties", req)
	if err != nil {
		return nil, err
	}
	out := normalizeCounterparty(raw)
	return &out, nil
}

func (a *Adapter) GetCounterparty(ctx context.Context, counterpartyID string) (*banklink.Counterparty, error) {
	raw, err := a.client.get(ctx, "getCounterparty", "/counterparties/"+counterpartyID)
	if err != nil {
		return nil, err
	}
	out := normalizeCounterparty(raw)
	return &out, nil
}

func (a *Adapter) ListCounterparties(ctx context.Context, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.Counterparty], error) {
	raw, err := a.client.getCollection(ctx, "listCounterparties", "/counterparties", opts, nil)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeCounterparty)
	return &page, nil
}

func (a *Adapter) DeleteCounterparty(ctx context.Context, counterpartyID string) error {
	return a.client.delete(ctx, "deleteCounterparty", "/counterparties/"+counterpartyID)
}

// Authorizations

func (a *Adapter) GetAuthorization(ctx context.Context, authorizationID string) (*banklink.Authorization, error) {
	raw, err := a.client.get(ctx, "getAuthorization", "/authorizations/"+authorizationID)
	if err != nil {
		return nil, err
	}
	out := normalizeAuthorization(raw)
	return &out, nil
}

func (a *Adapter) ListAuthorizations(ctx context.Context, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.Authorization], error) {
	raw, err := a.client.getCollection(ctx, "listAuthorizations", "/authorizations", opts, nil)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeAuthorization)
	return &page, nil
}

// Statements

func (a *Adapter) GetStatement(ctx context.Context, statementID string) (*banklink.Statement, error) {
	raw, err := a.client.get(ctx, "getStatement", "/statements/"+statementID)
	if err != nil {
		return nil, err
	}
	out := normalizeStatement(raw)
	return &out, nil
}

func (a *Adapter) ListStatements(ctx context.Context, accountID string, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.Statement], error) {
	raw, err := a.client.getCollection(ctx, "listStatements", "/accounts/"+accountID+"/statements", opts, nil)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeStatement)
	return &page, nil
}

// Check deposits

func (a *Adapter) CreateCheckDeposit(ctx context.Context, req banklink.CheckDepositRequest) (*banklink.CheckDeposit, error) {
	raw, err := a.client.post(ctx, "createCheckDeposit", "/check-deposits", req)
	if err != nil {
		return nil, err
	}
	out := normalizeCheckDeposit(raw)
	return &out, nil
}

func (a *Adapter) GetCheckDeposit(ctx context.Context, checkDepositID string) (*banklink.CheckDeposit, error) {
	raw, err := a.client.get(ctx, "getCheckDeposit", "/check-deposits/"+checkDepositID)
	if err != nil {
		return nil, err
	}
	out := normalizeCheckDeposit(raw)
	return &out, nil
}

func (a *Adapter) ListCheckDeposits(ctx context.Context, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.CheckDeposit], error) {
	raw, err := a.client.getCollection(ctx, "listCheckDeposits", "/check-deposits", opts, nil)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeCheckDeposit)
	return &page, nil
}

// Disputes

func (a *Adapter) GetDispute(ctx context.Context, disputeID string) (*banklink.Dispute, error) {
	raw, err := a.client.get(ctx, "getDispute", "/disputes/"+disputeID)
	if err != nil {
		return nil, err
	}
	out := normalizeDispute(raw)
	return &out, nil
}

func (a *Adapter) ListDisputes(ctx context.Context, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.Dispute], error) {
	raw, err := a.client.getCollection(ctx, "listDisputes", "/disputes", opts, nil)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeDispute)
	return &page, nil
}

// Rewards

func (a *Adapter) CreateReward(ctx context.Context, req banklink.RewardRequest) (*banklink.Reward, error) {
	raw, err := a.client.post(ctx, "createReward", "/rewards", req)
	if err != nil {
		return nil, err
	}
	out := normalizeReward(raw)
	return &out, nil
}

func (a *Adapter) GetReward(ctx context.Context, rewardID string) (*banklink.Reward, error) {
	raw, err := a.client.get(ctx, "getReward", "/rewards/"+rewardID)
	if err != nil {
		return nil, err
	}
	out := normalizeReward(raw)
	return &out, nil
}

func (a *Adapter) ListRewards(ctx context.Context, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.Reward], error) {
	raw, err := a.client.getCollection(ctx, "listRewards", "/rewards", opts, nil)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeReward)
	return &page, nil
}

// Mandates -- Harbor has no direct debit mandate product.

func (a *Adapter) CreateMandate(ctx context.Context, req banklink.MandateRequest) (*banklink.Mandate, error) {
	return nil, banklink.Unsupported(banklink.Harbor, "createMandate", "no direct debit mandate product")
}

func (a *Adapter) GetMandate(ctx context.Context, mandateID string) (*banklink.Mandate, error) {
	return nil, banklink.Unsupported(banklink.Harbor, "getMandate", "no direct debit mandate product")
}

func (a *Adapter) ListMandates(ctx context.Context, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.Mandate], error) {
	return nil, banklink.Unsupported(banklink.Harbor, "listMandates", "no direct debit mandate product")
}

func (a *Adapter) CancelMandate(ctx context.Context, mandateID string) (*banklink.Mandate, error) {
	return nil, banklink.Unsupported(banklink.Harbor, "cancelMandate", "no direct debit mandate product")
}

// Restriction groups -- one generic endpoint family keyed by kind.

func (a *Adapter) CreateRestrictionGroup(ctx context.Context, kind banklink.RestrictionGroupKind, req banklink.RestrictionGroupRequest) (*banklink.RestrictionGroup, error) {
	if !kind.Valid() {
		return nil, invalidKind(kind)
	}
	raw, err := a.client.post(ctx, "createRestrictionGroup", "/restriction-groups/"+string(kind), req)
	if err != nil {
		return nil, err
	}
	out := normalizeRestrictionGroup(kind)(raw)
	return &out, nil
}

func (a *Adapter) GetRestrictionGroup(ctx context.Context, kind banklink.RestrictionGroupKind, groupID string) (*banklink.RestrictionGroup, error) {
	if !kind.Valid() {
		return nil, invalidKind(kind)
	}
	raw, err := a.client.get(ctx, "getRestrictionGroup", "/restriction-groups/"+string(kind)+"/"+groupID)
	if err != nil {
		return nil, err
	}
	out := normalizeRestrictionGroup(kind)(raw)
	return &out, nil
}

func (a *Adapter) ListRestrictionGroups(ctx context.Context, kind banklink.RestrictionGroupKind, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.RestrictionGroup], error) {
	if !kind.Valid() {
		return nil, invalidKind(kind)
	}
	raw, err := a.client.getCollection(ctx, "listRestrictionGroups", "/restriction-groups/"+string(kind), opts, nil)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeRestrictionGroup(kind))
	return &page, nil
}

func (a *Adapter) UpdateRestrictionGroup(ctx context.Context, kind banklink.RestrictionGroupKind, groupID string, req banklink.RestrictionGroupRequest) (*banklink.RestrictionGroup, error) {
	if !kind.Valid() {
		return nil, invalidKind(kind)
	}
	raw, err := a.client.put(ctx, "updateRestrictionGroup", "/restriction-groups/"+string(kind)+"/"+groupID, req)
	if err != nil {
		return nil, err
	}
	out := normalizeRestrictionGroup(kind)(raw)
	return &out, nil
}

func (a *Adapter) DeleteRestrictionGroup(ctx context.Context, kind banklink.RestrictionGroupKind, groupID string) error {
	if !kind.Valid() {
		return invalidKind(kind)
	}
	return a.client.delete(ctx, "deleteRestrictionGroup", "/restriction-groups/"+string(kind)+"/"+groupID)
}

// Recalls -- Harbor has no payment recall product; US returns are modeled as
// achReturn payments instead.

func (a *Adapter) CreateRecall(ctx context.Context, req banklink.RecallRequest) (*banklink.Recall, error) {
	return nil, banklink.Unsupported(banklink.Harbor, "createRecall", "use an achReturn payment instead")
}

func (a *Adapter) GetRecall(ctx context.Context, recallID string) (*banklink.Recall, error) {
	return nil, banklink.Unsupported(banklink.Harbor, "getRecall", "use an achReturn payment instead")
}

func (a *Adapter) ListRecalls(ctx context.Context, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.Recall], error) {
	return nil, banklink.Unsupported(banklink.Harbor, "listRecalls", "use an achReturn payment instead")
}

func (a *Adapter) RespondToRecall(ctx context.Context, recallID string, req banklink.RecallResponseRequest) (*banklink.Recall, error) {
	return nil, banklink.Unsupported(banklink.Harbor, "respondToRecall", "use an achReturn payment instead")
}

// Simulations

func (a *Adapter) SimulateIncomingPayment(ctx context.Context, req banklink.SimulationRequest) (*banklink.Payment, error) {
	raw, err := a.client.post(ctx, "simulateIncomingPayment", "/simulations/payments", req)
	if err != nil {
		return nil, err
	}
	out := normalizePayment(raw)
	return &out, nil
}

func (a *Adapter) SimulateAuthorization(ctx context.Context, req banklink.SimulationRequest) (*banklink.Authorization, error) {
	raw, err := a.client.post(ctx, "simulateAuthorization", "/simulations/authorizations", req)
	if err != nil {
		return nil, err
	}
	out := normalizeAuthorization(raw)
	return &out, nil
}

func invalidKind(kind banklink.RestrictionGroupKind) error {
	return &banklink.ValidationError{
		Provider: banklink.Harbor,
		Field:    "restrictionGroupKind",
		Message:  fmt.Sprintf("%q is not a restriction group kind", kind),
	}
}

func paymentFilterQuery(opts banklink.PaymentListOptions) url.Values {
	q := url.Values{}
	if opts.Type != "" {
		q.Set("type", opts.Type)
	}
	if opts.AccountID != "" {
		q.Set("accountId", opts.AccountID)
	}
	return q
}
