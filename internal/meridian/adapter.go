// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package meridian

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/moov-io/banklink/internal/normalize"
	"github.com/moov-io/banklink/pkg/banklink"

	"github.com/go-kit/kit/log"
)

// paymentDomains maps Meridian's payment type discriminator onto its three
// endpoint domains. Each domain has independent create/get/list operations;
// there is no cross-domain payments endpoint.
var paymentDomains = map[string]string{
	banklink.PaymentTypePayin:    "/payins",
	banklink.PaymentTypePayout:   "/payouts",
	banklink.PaymentTypeTransfer: "/transfers",
}

// paymentDomainOrder fixes the fan-out enumeration for untyped payment reads.
var paymentDomainOrder = []string{
	banklink.PaymentTypePayin,
	banklink.PaymentTypePayout,
	banklink.PaymentTypeTransfer,
}

// restrictionFamilies maps a restriction group kind onto Meridian's three
// entirely separate endpoint families. There is no generic path.
var restrictionFamilies = map[banklink.RestrictionGroupKind]string{
	banklink.RestrictionCountry:  "/restrictions/countries",
	banklink.RestrictionMcc:      "/restrictions/mccs",
	banklink.RestrictionMerchant: "/restrictions/merchants",
}

// Adapter implements banklink.Bank against Meridian as a thin composition
// layer over the low-level Client.
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
	return banklink.Meridian
}

func (a *Adapter) Ping() error {
	return a.client.Ping()
}

// Customers

func (a *Adapter) CreateCustomer(ctx context.Context, req banklink.CustomerRequest) (*banklink.Customer, error) {
	raw, err := a.client.post(ctx, "createCustomer", "/customers", customerPayload(req))
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
	raw, err := a.client.getCollection(ctx, "listCustomers", "/customers", opts)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeCustomer)
	return &page, nil
}

func (a *Adapter) UpdateCustomer(ctx context.Context, customerID string, req banklink.CustomerRequest) (*banklink.Customer, error) {
	raw, err := a.client.put(ctx, "updateCustomer", "/customers/"+customerID, customerPayload(req))
	if err != nil {
		return nil, err
	}
	out := normalizeCustomer(raw)
	return &out, nil
}

// Applications

func (a *Adapter) CreateApplication(ctx context.Context, req banklink.ApplicationRequest) (*banklink.Application, error) {
	raw, err := a.client.post(ctx, "createApplication", "/applications", map[string]string{
		"customer_uid": req.CustomerID,
		"type":         req.Type,
	})
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
	raw, err := a.client.getCollection(ctx, "listApplications", "/applications", opts)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeApplication)
	return &page, nil
}

// Accounts

func (a *Adapter) CreateAccount(ctx context.Context, req banklink.AccountRequest) (*banklink.Account, error) {
	raw, err := a.client.post(ctx, "createAccount", "/accounts", map[string]string{
		"customer_uid": req.CustomerID,
		"name":         req.Name,
		"type":         req.Type,
		"currency":     req.Currency,
	})
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
	raw, err := a.client.getCollection(ctx, "listAccounts", "/accounts", opts)
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
	raw, err := a.client.post(ctx, "issueCard", "/cards", map[string]string{
		"account_uid":  req.AccountID,
		"customer_uid": req.CustomerID,
		"form":         req.Form,
	})
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
	raw, err := a.client.getCollection(ctx, "listCards", "/cards", opts)
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
	path, ok := paymentDomains[req.Type]
	if !ok {
		return nil, &banklink.ValidationError{
			Provider: banklink.Meridian,
			Field:    "paymentType",
			Message:  fmt.Sprintf("%q is not a Meridian payment type", req.Type),
		}
	}
	raw, err := a.client.post(ctx, "createPayment", path, paymentPayload(req))
	if err != nil {
		return nil, err
	}
	out := normalizePayment(req.Type)(raw)
	return &out, nil
}

// findPayment probes the three payment domains in their fixed order since
// Meridian has no cross-domain lookup. A miss in one domain (404) moves on to
// the next; any other failure propagates immediately. The matched domain is
// returned alongside the record: routing decisions key on it, never on the
// payload's own type field, which Meridian populates with rail-specific
// values outside the domain vocabulary.
func (a *Adapter) findPayment(ctx context.Context, paymentID string) (string, normalize.Raw, error) {
	var lastErr error
	for _, domain := range paymentDomainOrder {
		raw, err := a.client.get(ctx, "getPayment", paymentDomains[domain]+"/"+paymentID)
		if err != nil {
			var te *banklink.TransportError
			if errors.As(err, &te) && te.Status == http.StatusNotFound {
				lastErr = err
				continue
			}
			return "", nil, err
		}
		return domain, raw, nil
	}
	return "", nil, lastErr
}

func (a *Adapter) GetPayment(ctx context.Context, paymentID string) (*banklink.Payment, error) {
	domain, raw, err := a.findPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	out := normalizePayment(domain)(raw)
	return &out, nil
}

// ListPayments lists one domain when a type filter is given. Without a
// filter it fans out to all three domains and concatenates: Total is the
// concatenated length and no cross-domain ordering is guaranteed.
func (a *Adapter) ListPayments(ctx context.Context, opts banklink.PaymentListOptions) (*banklink.PaginatedResult[banklink.Payment], error) {
	if opts.Type != "" {
		path, ok := paymentDomains[opts.Type]
		if !ok {
			return nil, &banklink.ValidationError{
				Provider: banklink.Meridian,
				Field:    "paymentType",
				Message:  fmt.Sprintf("%q is not a Meridian payment type", opts.Type),
			}
		}
		raw, err := a.client.getCollection(ctx, "listPayments", path, opts.ListOptions)
		if err != nil {
			return nil, err
		}
		page := normalize.Page(raw, normalizePayment(opts.Type))
		return &page, nil
	}

	var merged banklink.PaginatedResult[banklink.Payment]
	merged.Items = []banklink.Payment{}
	for _, domain := range paymentDomainOrder {
		raw, err := a.client.getCollection(ctx, "listPayments", paymentDomains[domain], opts.ListOptions)
		if err != nil {
			return nil, err
		}
		page := normalize.Page(raw, normalizePayment(domain))
		merged.Items = append(merged.Items, page.Items...)
	}
	merged.Total = len(merged.Items)
	return &merged, nil
}

func (a *Adapter) CancelPayment(ctx context.Context, paymentID string) (*banklink.Payment, error) {
	domain, _, err := a.findPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	raw, err := a.client.post(ctx, "cancelPayment", paymentDomains[domain]+"/"+paymentID+"/cancel", nil)
	if err != nil {
		return nil, err
	}
	out := normalizePayment(domain)(raw)
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
	raw, err := a.client.getCollection(ctx, "listTransactions", "/accounts/"+accountID+"/transactions", opts)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeTransaction)
	return &page, nil
}

// Counterparties (Meridian calls them beneficiaries)

func (a *Adapter) CreateCounterparty(ctx context.Context, req banklink.CounterpartyRequest) (*banklink.Counterparty, error) {
	raw, err := a.client.post(ctx, "createCounterparty", "/beneficiaries", map[string]string{
		"name": req.Name,
		"type": req.Type,
		"iban": req.Iban,
		"bic":  req.Bic,
	})
	if err != nil {
		return nil, err
	}
	out := normalizeCounterparty(raw)
	return &out, nil
}

func (a *Adapter) GetCounterparty(ctx context.Context, counterpartyID string) (*banklink.Counterparty, error) {
	raw, err := a.client.get(ctx, "getCounterparty", "/beneficiaries/"+counterpartyID)
	if err != nil {
		return nil, err
	}
	out := normalizeCounterparty(raw)
	return &out, nil
}

func (a *Adapter) ListCounterparties(ctx context.Context, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.Counterparty], error) {
	raw, err := a.client.getCollection(ctx, "listCounterparties", "/beneficiaries", opts)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeCounterparty)
	return &page, nil
}

func (a *Adapter) DeleteCounterparty(ctx context.Context, counterpartyID string) error {
	return a.client.delete(ctx, "deleteCounterparty", "/beneficiaries/"+counterpartyID)
}

// Authorizations

func (a *Adapter) GetAuthorization(ctx context.Context, authorizationID string) (*banklink.Authorization, error) {
	raw, err := a.client.get(ctx, "getAuthorization", "/card-authorisations/"+authorizationID)
	if err != nil {
		return nil, err
	}
	out := normalizeAuthorization(raw)
	return &out, nil
}

func (a *Adapter) ListAuthorizations(ctx context.Context, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.Authorization], error) {
	raw, err := a.client.getCollection(ctx, "listAuthorizations", "/card-authorisations", opts)
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
	raw, err := a.client.getCollection(ctx, "listStatements", "/accounts/"+accountID+"/statements", opts)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeStatement)
	return &page, nil
}

// Check deposits -- Meridian has no check deposit product.

func (a *Adapter) CreateCheckDeposit(ctx context.Context, req banklink.CheckDepositRequest) (*banklink.CheckDeposit, error) {
	return nil, banklink.Unsupported(banklink.Meridian, "createCheckDeposit", "no check deposit product")
}

func (a *Adapter) GetCheckDeposit(ctx context.Context, checkDepositID string) (*banklink.CheckDeposit, error) {
	return nil, banklink.Unsupported(banklink.Meridian, "getCheckDeposit", "no check deposit product")
}

func (a *Adapter) ListCheckDeposits(ctx context.Context, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.CheckDeposit], error) {
	return nil, banklink.Unsupported(banklink.Meridian, "listCheckDeposits", "no check deposit product")
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
	raw, err := a.client.getCollection(ctx, "listDisputes", "/disputes", opts)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeDispute)
	return &page, nil
}

// Rewards -- Meridian has no rewards product.

func (a *Adapter) CreateReward(ctx context.Context, req banklink.RewardRequest) (*banklink.Reward, error) {
	return nil, banklink.Unsupported(banklink.Meridian, "createReward", "no rewards product")
}

func (a *Adapter) GetReward(ctx context.Context, rewardID string) (*banklink.Reward, error) {
	return nil, banklink.Unsupported(banklink.Meridian, "getReward", "no rewards product")
}

func (a *Adapter) ListRewards(ctx context.Context, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.Reward], error) {
	return nil, banklink.Unsupported(banklink.Meridian, "listRewards", "no rewards product")
}

// Mandates

func (a *Adapter) CreateMandate(ctx context.Context, req banklink.MandateRequest) (*banklink.Mandate, error) {
	raw, err := a.client.post(ctx, "createMandate", "/mandates", map[string]string{
		"reference":     req.Reference,
		"debtor_name":   req.DebtorName,
		"debtor_iban":   req.DebtorIban,
		"creditor_name": req.CreditorName,
		"creditor_id":   req.CreditorID,
	})
	if err != nil {
		return nil, err
	}
	out := normalizeMandate(raw)
	return &out, nil
}

func (a *Adapter) GetMandate(ctx context.Context, mandateID string) (*banklink.Mandate, error) {
	raw, err := a.client.get(ctx, "getMandate", "/mandates/"+mandateID)
	if err != nil {
		return nil, err
	}
	out := normalizeMandate(raw)
	return &out, nil
}

func (a *Adapter) ListMandates(ctx context.Context, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.Mandate], error) {
	raw, err := a.client.getCollection(ctx, "listMandates", "/mandates", opts)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeMandate)
	return &page, nil
}

func (a *Adapter) CancelMandate(ctx context.Context, mandateID string) (*banklink.Mandate, error) {
	raw, err := a.client.post(ctx, "cancelMandate", "/mandates/"+mandateID+"/cancel", nil)
	if err != nil {
		return nil, err
	}
	out := normalizeMandate(raw)
	return &out, nil
}

// Restriction groups -- three separate endpoint families, create/list/get
// only. No family offers update or delete; Meridian expects a replacement
// group to be created and the old one retired operationally.

func (a *Adapter) CreateRestrictionGroup(ctx context.Context, kind banklink.RestrictionGroupKind, req banklink.RestrictionGroupRequest) (*banklink.RestrictionGroup, error) {
	path, err := a.restrictionFamily(kind)
	if err != nil {
		return nil, err
	}
	raw, err := a.client.post(ctx, "createRestrictionGroup", path, map[string]any{
		"name":         req.Name,
		"is_allowlist": req.Allowed,
		"entries":      req.Values,
	})
	if err != nil {
		return nil, err
	}
	out := normalizeRestrictionGroup(kind)(raw)
	return &out, nil
}

func (a *Adapter) GetRestrictionGroup(ctx context.Context, kind banklink.RestrictionGroupKind, groupID string) (*banklink.RestrictionGroup, error) {
	path, err := a.restrictionFamily(kind)
	if err != nil {
		return nil, err
	}
	raw, err := a.client.get(ctx, "getRestrictionGroup", path+"/"+groupID)
	if err != nil {
		return nil, err
	}
	out := normalizeRestrictionGroup(kind)(raw)
	return &out, nil
}

func (a *Adapter) ListRestrictionGroups(ctx context.Context, kind banklink.RestrictionGroupKind, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.RestrictionGroup], error) {
	path, err := a.restrictionFamily(kind)
	if err != nil {
		return nil, err
	}
	raw, err := a.client.getCollection(ctx, "listRestrictionGroups", path, opts)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeRestrictionGroup(kind))
	return &page, nil
}

// UpdateRestrictionGroup always fails before any network call: Meridian's
// restriction families are immutable once created.
func (a *Adapter) UpdateRestrictionGroup(ctx context.Context, kind banklink.RestrictionGroupKind, groupID string, req banklink.RestrictionGroupRequest) (*banklink.RestrictionGroup, error) {
	if _, err := a.restrictionFamily(kind); err != nil {
		return nil, err
	}
	return nil, banklink.Unsupported(banklink.Meridian, "updateRestrictionGroup", "restriction groups are immutable, recreate the group instead")
}

func (a *Adapter) DeleteRestrictionGroup(ctx context.Context, kind banklink.RestrictionGroupKind, groupID string) error {
	if _, err := a.restrictionFamily(kind); err != nil {
		return err
	}
	return banklink.Unsupported(banklink.Meridian, "deleteRestrictionGroup", "restriction groups are immutable, recreate the group instead")
}

func (a *Adapter) restrictionFamily(kind banklink.RestrictionGroupKind) (string, error) {
	path, ok := restrictionFamilies[kind]
	if !ok {
		return "", &banklink.ValidationError{
			Provider: banklink.Meridian,
			Field:    "restrictionGroupKind",
			Message:  fmt.Sprintf("%q is not a restriction group kind", kind),
		}
	}
	return path, nil
}

// Recalls

func (a *Adapter) CreateRecall(ctx context.Context, req banklink.RecallRequest) (*banklink.Recall, error) {
	raw, err := a.client.post(ctx, "createRecall", "/recalls", map[string]string{
		"payment_uid": req.PaymentID,
		"reason":      req.Reason,
	})
	if err != nil {
		return nil, err
	}
	out := normalizeRecall(raw)
	return &out, nil
}

func (a *Adapter) GetRecall(ctx context.Context, recallID string) (*banklink.Recall, error) {
	raw, err := a.client.get(ctx, "getRecall", "/recalls/"+recallID)
	if err != nil {
		return nil, err
	}
	out := normalizeRecall(raw)
	return &out, nil
}

func (a *Adapter) ListRecalls(ctx context.Context, opts banklink.ListOptions) (*banklink.PaginatedResult[banklink.Recall], error) {
	raw, err := a.client.getCollection(ctx, "listRecalls", "/recalls", opts)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, normalizeRecall)
	return &page, nil
}

func (a *Adapter) RespondToRecall(ctx context.Context, recallID string, req banklink.RecallResponseRequest) (*banklink.Recall, error) {
	raw, err := a.client.post(ctx, "respondToRecall", "/recalls/"+recallID+"/response", map[string]any{
		"accepted": req.Accepted,
		"reason":   req.Reason,
	})
	if err != nil {
		return nil, err
	}
	out := normalizeRecall(raw)
	return &out, nil
}

// Simulations

func (a *Adapter) SimulateIncomingPayment(ctx context.Context, req banklink.SimulationRequest) (*banklink.Payment, error) {
	raw, err := a.client.post(ctx, "simulateIncomingPayment", "/sandbox/payins", map[string]any{
		"account_uid": req.AccountID,
		"amount":      req.Amount,
		"currency":    req.Currency,
	})
	if err != nil {
		return nil, err
	}
	out := normalizePayment(banklink.PaymentTypePayin)(raw)
	return &out, nil
}

func (a *Adapter) SimulateAuthorization(ctx context.Context, req banklink.SimulationRequest) (*banklink.Authorization, error) {
	raw, err := a.client.post(ctx, "simulateAuthorization", "/sandbox/card-authorisations", map[string]any{
		"card_uid": req.CardID,
		"amount":   req.Amount,
		"currency": req.Currency,
	})
	if err != nil {
		return nil, err
	}
	out := normalizeAuthorization(raw)
	return &out, nil
}

func customerPayload(req banklink.CustomerRequest) map[string]string {
	return map[string]string{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"email":      req.Email,
		"phone":      req.Phone,
	}
}

func paymentPayload(req banklink.PaymentRequest) map[string]any {
	return map[string]any{
		"amount":                  req.Amount,
		"currency":                req.Currency,
		"reference":               req.Description,
		"source_account_uid":      req.FromAccountID,
		"destination_account_uid": req.ToAccountID,
		"beneficiary_uid":         req.CounterpartyID,
	}
}
