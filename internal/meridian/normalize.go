// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package meridian

import (
	"github.com/moov-io/banklink/internal/normalize"
	"github.com/moov-io/banklink/pkg/banklink"
)

// Meridian payloads use snake_case and identify records by "uid" (with "id"
// as an alias on newer endpoints). Amounts frequently arrive as quoted
// decimal strings. Meridian is multi-currency, so EUR is only the last-resort
// default when a payload omits the currency entirely.

const eur = "EUR"

func normalizeCustomer(r normalize.Raw) banklink.Customer {
	return banklink.Customer{
		ID:        r.ID("uid", "id", "customer_uid"),
		Provider:  banklink.Meridian,
		FirstName: r.String("", "first_name", "given_name"),
		LastName:  r.String("", "last_name", "family_name"),
		Email:     r.String("", "email", "email_address"),
		Phone:     r.String("", "phone", "phone_number"),
		Status:    r.String(banklink.StatusUnknown, "status", "state"),
		CreatedAt: r.Time("created_at", "inserted_at"),
		UpdatedAt: r.Time("updated_at", "created_at", "inserted_at"),
	}
}

func normalizeApplication(r normalize.Raw) banklink.Application {
	return banklink.Application{
		ID:         r.ID("uid", "id", "application_uid"),
		Provider:   banklink.Meridian,
		CustomerID: r.String("", "customer_uid", "customer_id"),
		Type:       r.String(banklink.StatusUnknown, "type", "product"),
		Status:     r.String(banklink.StatusUnknown, "status", "state"),
		Message:    r.String("", "message", "status_reason"),
		CreatedAt:  r.Time("created_at", "inserted_at"),
		UpdatedAt:  r.Time("updated_at", "created_at", "inserted_at"),
	}
}

func normalizeAccount(r normalize.Raw) banklink.Account {
	amount, currency := r.Money(eur,
		normalize.MoneyKeys{Amount: "balance", Currency: "currency"},
		normalize.MoneyKeys{Amount: "available_balance", Currency: "currency"},
	)
	return banklink.Account{
		ID:         r.ID("uid", "id", "account_uid"),
		Provider:   banklink.Meridian,
		CustomerID: r.String("", "customer_uid", "customer_id"),
		Name:       r.String("", "name", "label"),
		Type:       r.String(banklink.StatusUnknown, "type", "account_type"),
		Status:     r.String(banklink.StatusUnknown, "status", "state"),
		Balance:    amount,
		Currency:   currency,
		Iban:       r.String("", "iban"),
		CreatedAt:  r.Time("created_at", "inserted_at"),
		UpdatedAt:  r.Time("updated_at", "created_at", "inserted_at"),
	}
}

func normalizeCard(r normalize.Raw) banklink.Card {
	return banklink.Card{
		ID:          r.ID("uid", "id", "card_uid"),
		Provider:    banklink.Meridian,
		AccountID:   r.String("", "account_uid", "account_id"),
		CustomerID:  r.String("", "customer_uid", "customer_id"),
		Form:        r.String(banklink.StatusUnknown, "form", "card_type"),
		Last4:       r.String("", "last_four", "pan_last_digits"),
		Status:      r.String(banklink.StatusUnknown, "status", "state"),
		ExpiryMonth: int(r.Int(0, "expiry_month", "exp_month")),
		ExpiryYear:  int(r.Int(0, "expiry_year", "exp_year")),
		CreatedAt:   r.Time("created_at", "inserted_at"),
		UpdatedAt:   r.Time("updated_at", "created_at", "inserted_at"),
	}
}

// normalizePayment tags the canonical payment with the endpoint domain the
// record came from, since Meridian payloads carry no cross-domain type field.
func normalizePayment(domain string) func(normalize.Raw) banklink.Payment {
	return func(r normalize.Raw) banklink.Payment {
		amount, currency := r.Money(eur,
			normalize.MoneyKeys{Amount: "amount", Currency: "currency"},
			normalize.MoneyKeys{Amount: "amount_value", Currency: "amount_currency"},
		)
		return banklink.Payment{
			ID:             r.ID("uid", "id", "payment_uid"),
			Provider:       banklink.Meridian,
			Type:           r.String(domain, "type"),
			Status:         r.String(banklink.StatusUnknown, "status", "state"),
			Amount:         amount,
			Currency:       currency,
			Description:    r.String("", "description", "reference"),
			FromAccountID:  r.String("", "source_account_uid", "account_uid"),
			ToAccountID:    r.String("", "destination_account_uid"),
			CounterpartyID: r.String("", "beneficiary_uid", "counterparty_uid"),
			CreatedAt:      r.Time("created_at", "inserted_at"),
			UpdatedAt:      r.Time("updated_at", "created_at", "inserted_at"),
		}
	}
}

func normalizeTransaction(r normalize.Raw) banklink.Transaction {
	amount, currency := r.Money(eur,
		normalize.MoneyKeys{Amount: "amount", Currency: "currency"},
		normalize.MoneyKeys{Amount: "amount_value", Currency: "amount_currency"},
	)
	return banklink.Transaction{
		ID:          r.ID("uid", "id", "transaction_uid"),
		Provider:    banklink.Meridian,
		AccountID:   r.String("", "account_uid", "account_id"),
		Type:        r.String(banklink.StatusUnknown, "type", "transaction_type"),
		Direction:   r.String(banklink.StatusUnknown, "direction", "credit_debit_indicator"),
		Amount:      amount,
		Currency:    currency,
		Description: r.String("", "description", "narrative"),
		Balance:     r.Float(0, "balance_after", "balance"),
		CreatedAt:   r.Time("created_at", "booked_at", "inserted_at"),
	}
}

func normalizeCounterparty(r normalize.Raw) banklink.Counterparty {
	return banklink.Counterparty{
		ID:        r.ID("uid", "id", "beneficiary_uid"),
		Provider:  banklink.Meridian,
		Name:      r.String("", "name", "holder_name"),
		Type:      r.String(banklink.StatusUnknown, "type"),
		Iban:      r.String("", "iban"),
		Bic:       r.String("", "bic", "swift_code"),
		CreatedAt: r.Time("created_at", "inserted_at"),
		UpdatedAt: r.Time("updated_at", "created_at", "inserted_at"),
	}
}

func normalizeAuthorization(r normalize.Raw) banklink.Authorization {
	amount, currency := r.Money(eur,
		normalize.MoneyKeys{Amount: "amount", Currency: "currency"},
		normalize.MoneyKeys{Amount: "billing_amount", Currency: "billing_currency"},
	)
	return banklink.Authorization{
		ID:           r.ID("uid", "id", "authorisation_uid"),
		Provider:     banklink.Meridian,
		CardID:       r.String("", "card_uid", "card_id"),
		Status:       r.String(banklink.StatusUnknown, "status", "state"),
		Amount:       amount,
		Currency:     currency,
		MerchantName: r.String("", "merchant_name", "merchant"),
		MerchantMcc:  r.String("", "merchant_category_code", "mcc"),
		CreatedAt:    r.Time("created_at", "authorised_at"),
	}
}

func normalizeStatement(r normalize.Raw) banklink.Statement {
	return banklink.Statement{
		ID:        r.ID("uid", "id", "statement_uid"),
		Provider:  banklink.Meridian,
		AccountID: r.String("", "account_uid", "account_id"),
		Period:    r.String("", "period", "statement_period"),
		Format:    r.String("pdf", "format"),
		URL:       r.String("", "url", "download_url"),
		CreatedAt: r.Time("created_at", "generated_at"),
	}
}

func normalizeDispute(r normalize.Raw) banklink.Dispute {
	amount, currency := r.Money(eur,
		normalize.MoneyKeys{Amount: "amount", Currency: "currency"},
	)
	return banklink.Dispute{
		ID:            r.ID("uid", "id", "dispute_uid"),
		Provider:      banklink.Meridian,
		TransactionID: r.String("", "transaction_uid", "transaction_id"),
		Status:        r.String(banklink.StatusUnknown, "status", "state"),
		Reason:        r.String("", "reason", "reason_code"),
		Amount:        amount,
		Currency:      currency,
		CreatedAt:     r.Time("created_at", "opened_at"),
		ResolvedAt:    r.TimePtr("resolved_at", "closed_at"),
	}
}

func normalizeMandate(r normalize.Raw) banklink.Mandate {
	return banklink.Mandate{
		ID:           r.ID("uid", "id", "mandate_uid"),
		Provider:     banklink.Meridian,
		Reference:    r.String("", "reference", "mandate_reference"),
		DebtorName:   r.String("", "debtor_name"),
		DebtorIban:   r.String("", "debtor_iban"),
		CreditorName: r.String("", "creditor_name"),
		CreditorID:   r.String("", "creditor_id", "creditor_identifier"),
		Status:       r.String(banklink.StatusUnknown, "status", "state"),
		CreatedAt:    r.Time("created_at", "inserted_at"),
		UpdatedAt:    r.Time("updated_at", "created_at", "inserted_at"),
	}
}

func normalizeRestrictionGroup(kind banklink.RestrictionGroupKind) func(normalize.Raw) banklink.RestrictionGroup {
	return func(r normalize.Raw) banklink.RestrictionGroup {
		return banklink.RestrictionGroup{
			ID:        r.ID("uid", "id", "group_uid"),
			Provider:  banklink.Meridian,
			Kind:      kind,
			Name:      r.String("", "name", "description"),
			Allowed:   r.Bool(false, "allowed", "is_allowlist"),
			Values:    r.Strings("values", "entries", "items"),
			CreatedAt: r.Time("created_at", "inserted_at"),
			UpdatedAt: r.Time("updated_at", "created_at", "inserted_at"),
		}
	}
}

func normalizeRecall(r normalize.Raw) banklink.Recall {
	out := banklink.Recall{
		ID:        r.ID("uid", "id", "recall_uid"),
		Provider:  banklink.Meridian,
		PaymentID: r.String("", "payment_uid", "payment_id"),
		Reason:    r.String("", "reason", "reason_code"),
		Status:    r.String(banklink.RecallRequested, "status", "state"),
		CreatedAt: r.Time("created_at", "inserted_at"),
		UpdatedAt: r.Time("updated_at", "created_at", "inserted_at"),
	}
	if resp := r.Object("response", "recall_response"); resp != nil {
		out.Response = &banklink.RecallResponse{
			Accepted: resp.Bool(false, "accepted"),
			Reason:   resp.String("", "reason"),
			At:       resp.Time("created_at", "responded_at"),
		}
		out.Status = banklink.RecallResponded
	}
	return out
}
