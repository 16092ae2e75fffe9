package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Type classifies a transaction.
type Type string

const (
	TypeDeposit      Type = "DEPOSIT"
	TypeWithdraw     Type = "WITHDRAW"
	TypeTransfer     Type = "TRANSFER"
	TypeBalanceCheck Type = "BALANCE_CHECK"
)

// Status is the lifecycle state of a transaction record. A record is created
// PENDING and settles exactly once into one of the terminal states.
type Status string

const (
	StatusPending           Status = "PENDING"
	StatusSuccess           Status = "SUCCESS"
	StatusFailed            Status = "FAILED"
	StatusInsufficientFunds Status = "INSUFFICIENT_FUNDS"
	StatusInvalidAccount    Status = "INVALID_ACCOUNT"
)

// Transaction is one attempted balance operation, successful or not.
// Everything except Status is fixed at creation; Status moves out of
// PENDING through Settle and never changes again. Both sides of a
// transfer share the same ID.
type Transaction struct {
	ID          string          // unique, monotonically distinguishable
	FromAccount string          // empty for deposits
	ToAccount   string          // empty for withdrawals
	Type        Type
	Amount      decimal.Decimal // always positive
	Description string
	CreatedAt   time.Time
	Status      Status
}

// NewTransaction builds a PENDING record stamped with the current time.
func NewTransaction(id, from, to string, typ Type, amount decimal.Decimal, description string) Transaction {
	return Transaction{
		ID:          id,
		FromAccount: from,
		ToAccount:   to,
		Type:        typ,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now(),
		Status:      StatusPending,
	}
}

// Settle moves the record out of PENDING. Settling twice, or settling back
// to PENDING, is a programming error and is reported as one.
func (t *Transaction) Settle(s Status) error {
	if t.Status != StatusPending {
		return fmt.Errorf("transaction %s already settled as %s", t.ID, t.Status)
	}
	if s == StatusPending {
		return fmt.Errorf("transaction %s cannot settle to PENDING", t.ID)
	}
	t.Status = s
	return nil
}

// Successful reports whether the record settled as SUCCESS.
func (t Transaction) Successful() bool {
	return t.Status == StatusSuccess
}

// String renders the record as a single audit line.
func (t Transaction) String() string {
	from := t.FromAccount
	if from == "" {
		from = "N/A"
	}
	to := t.ToAccount
	if to == "" {
		to = "N/A"
	}
	return fmt.Sprintf("%s %s $%s from=%s to=%s status=%s desc=%q",
		t.ID, t.Type, t.Amount.StringFixed(2), from, to, t.Status, t.Description)
}
