// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package harbor

import (
	"github.com/moov-io/banklink/internal/normalize"
	"github.com/moov-io/banklink/pkg/banklink"
)

// Harbor payloads use camelCase field names with a handful of legacy
// snake_case aliases left over from their v1 API. Every mapping below tries
// the primary name first, then the alias, then a typed default. Harbor is
// USD-only so that is the currency fallback on every money pair.

const usd = "USD"

func normalizeCustomer(r normalize.Raw) banklink.Customer {
	return banklink.Customer{
		ID:        r.ID("id", "customerId"),
		Provider:  banklink.Harbor,
		FirstName: r.String("", "firstName", "first_name"),
		LastName:  r.String("", "lastName", "last_name"),
		Email:     r.String("", "email"),
		Phone:     r.String("", "phone", "phoneNumber"),
		Status:    r.String(banklink.StatusUnknown, "status"),
		CreatedAt: r.Time("createdAt", "created_at"),
		UpdatedAt: r.Time("updatedAt", "updated_at", "createdAt", "created_at"),
	}
}

func normalizeApplication(r normalize.Raw) banklink.Application {
	return banklink.Application{
		ID:         r.ID("id", "applicationId"),
		Provider:   banklink.Harbor,
		CustomerID: r.String("", "customerId", "customer_id"),
		Type:       r.String(banklink.StatusUnknown, "type"),
		Status:     r.String(banklink.StatusUnknown, "status"),
		Message:    r.String("", "message", "statusMessage"),
		CreatedAt:  r.Time("createdAt", "created_at"),
		UpdatedAt:  r.Time("updatedAt", "updated_at", "createdAt", "created_at"),
	}
}

func normalizeAccount(r normalize.Raw) banklink.Account {
	amount, currency := r.Money(usd,
		normalize.MoneyKeys{Amount: "balance", Currency: "currency"},
		normalize.MoneyKeys{Amount: "availableBalance", Currency: "currency"},
	)
	return banklink.Account{
		ID:            r.ID("id", "accountId"),
		Provider:      banklink.Harbor,
		CustomerID:    r.String("", "customerId", "customer_id"),
		Name:          r.String("", "name", "nickname"),
		Type:          r.String(banklink.StatusUnknown, "type", "accountType"),
		Status:        r.String(banklink.StatusUnknown, "status"),
		Balance:       amount,
		Currency:      currency,
		RoutingNumber: r.String("", "routingNumber", "routing_number"),
		AccountNumber: r.String("", "accountNumber", "account_number"),
		CreatedAt:     r.Time("createdAt", "created_at"),
		UpdatedAt:     r.Time("updatedAt", "updated_at", "createdAt", "created_at"),
	}
}

func normalizeCard(r normalize.Raw) banklink.Card {
	return banklink.Card{
		ID:          r.ID("id", "cardId"),
		Provider:    banklink.Harbor,
		AccountID:   r.String("", "accountId", "account_id"),
		CustomerID:  r.String("", "customerId", "customer_id"),
		Form:        r.String(banklink.StatusUnknown, "form", "cardForm"),
		Last4:       r.String("", "last4", "lastFour"),
		Status:      r.String(banklink.StatusUnknown, "status"),
		ExpiryMonth: int(r.Int(0, "expiryMonth", "expMonth")),
		ExpiryYear:  int(r.Int(0, "expiryYear", "expYear")),
		CreatedAt:   r.Time("createdAt", "created_at"),
		UpdatedAt:   r.Time("updatedAt", "updated_at", "createdAt", "created_at"),
	}
}

func normalizePayment(r normalize.Raw) banklink.Payment {
	amount, currency := r.Money(usd,
		normalize.MoneyKeys{Amount: "amount", Currency: "currency"},
	)
	return banklink.Payment{
		ID:             r.ID("id", "paymentId"),
		Provider:       banklink.Harbor,
		Type:           r.String(banklink.StatusUnknown, "type", "paymentType"),
		Status:         r.String(banklink.StatusUnknown, "status"),
		Amount:         amount,
		Currency:       currency,
		Description:    r.String("", "description", "memo"),
		FromAccountID:  r.String("", "fromAccountId", "accountId"),
		ToAccountID:    r.String("", "toAccountId"),
		CounterpartyID: r.String("", "counterpartyId", "counterparty_id"),
		CreatedAt:      r.Time("createdAt", "created_at"),
		UpdatedAt:      r.Time("updatedAt", "updated_at", "createdAt", "created_at"),
	}
}

func normalizeTransaction(r normalize.Raw) banklink.Transaction {
	amount, currency := r.Money(usd,
		normalize.MoneyKeys{Amount: "amount", Currency: "currency"},
	)
	return banklink.Transaction{
		ID:          r.ID("id", "transactionId"),
		Provider:    banklink.Harbor,
		AccountID:   r.String("", "accountId", "account_id"),
		Type:        r.String(banklink.StatusUnknown, "type"),
		Direction:   r.String(banklink.StatusUnknown, "direction"),
		Amount:      amount,
		Currency:    currency,
		Description: r.String("", "description", "summary"),
		Balance:     r.Float(0, "balance", "runningBalance"),
		CreatedAt:   r.Time("createdAt", "created_at", "postedAt"),
	}
}

func normalizeCounterparty(r normalize.Raw) banklink.Counterparty {
	return banklink.Counterparty{
		ID:            r.ID("id", "counterpartyId"),
		Provider:      banklink.Harbor,
		Name:          r.String("", "name"),
		Type:          r.String(banklink.StatusUnknown, "type"),
		RoutingNumber: r.String("", "routingNumber", "routing_number"),
		AccountNumber: r.String("", "accountNumber", "account_number"),
		CreatedAt:     r.Time("createdAt", "created_at"),
		UpdatedAt:     r.Time("updatedAt", "updated_at", "createdAt", "created_at"),
	}
}

func normalizeAuthorization(r normalize.Raw) banklink.Authorization {
	amount, currency := r.Money(usd,
		normalize.MoneyKeys{Amount: "amount", Currency: "currency"},
	)
	return banklink.Authorization{
		ID:           r.ID("id", "authorizationId"),
		Provider:     banklink.Harbor,
		CardID:       r.String("", "cardId", "card_id"),
		Status:       r.String(banklink.StatusUnknown, "status"),
		Amount:       amount,
		Currency:     currency,
		MerchantName: r.String("", "merchantName", "merchant"),
		MerchantMcc:  r.String("", "merchantMcc", "mcc"),
		CreatedAt:    r.Time("createdAt", "created_at"),
	}
}

func normalizeStatement(r normalize.Raw) banklink.Statement {
	return banklink.Statement{
		ID:        r.ID("id", "statementId"),
		Provider:  banklink.Harbor,
		AccountID: r.String("", "accountId", "account_id"),
		Period:    r.String("", "period", "month"),
		Format:    r.String("pdf", "format"),
		URL:       r.String("", "url", "downloadUrl"),
		CreatedAt: r.Time("createdAt", "created_at"),
	}
}

func normalizeCheckDeposit(r normalize.Raw) banklink.CheckDeposit {
	amount, currency := r.Money(usd,
		normalize.MoneyKeys{Amount: "amount", Currency: "currency"},
	)
	return banklink.CheckDeposit{
		ID:        r.ID("id", "checkDepositId"),
		Provider:  banklink.Harbor,
		AccountID: r.String("", "accountId", "account_id"),
		Status:    r.String(banklink.StatusUnknown, "status"),
		Amount:    amount,
		Currency:  currency,
		CreatedAt: r.Time("createdAt", "created_at"),
		UpdatedAt: r.Time("updatedAt", "updated_at", "createdAt", "created_at"),
	}
}

func normalizeDispute(r normalize.Raw) banklink.Dispute {
	amount, currency := r.Money(usd,
		normalize.MoneyKeys{Amount: "amount", Currency: "currency"},
	)
	return banklink.Dispute{
		ID:            r.ID("id", "disputeId"),
		Provider:      banklink.Harbor,
		TransactionID: r.String("", "transactionId", "transaction_id"),
		Status:        r.String(banklink.StatusUnknown, "status"),
		Reason:        r.String("", "reason"),
		Amount:        amount,
		Currency:      currency,
		CreatedAt:     r.Time("createdAt", "created_at"),
		ResolvedAt:    r.TimePtr("resolvedAt", "resolved_at"),
	}
}

func normalizeReward(r normalize.Raw) banklink.Reward {
	amount, currency := r.Money(usd,
		normalize.MoneyKeys{Amount: "amount", Currency: "currency"},
	)
	return banklink.Reward{
		ID:          r.ID("id", "rewardId"),
		Provider:    banklink.Harbor,
		AccountID:   r.String("", "accountId", "account_id"),
		Status:      r.String(banklink.StatusUnknown, "status"),
		Amount:      amount,
		Currency:    currency,
		Description: r.String("", "description"),
		CreatedAt:   r.Time("createdAt", "created_at"),
	}
}

func normalizeRestrictionGroup(kind banklink.RestrictionGroupKind) func(normalize.Raw) banklink.RestrictionGroup {
	return func(r normalize.Raw) banklink.RestrictionGroup {
		return banklink.RestrictionGroup{
			ID:        r.ID("id", "groupId"),
			Provider:  banklink.Harbor,
			Kind:      kind,
			Name:      r.String("", "name"),
			Allowed:   r.Bool(false, "allowed", "isAllowList"),
			Values:    r.Strings("values", "entries"),
			CreatedAt: r.Time("createdAt", "created_at"),
			UpdatedAt: r.Time("updatedAt", "updated_at", "createdAt", "created_at"),
		}
	}
}
