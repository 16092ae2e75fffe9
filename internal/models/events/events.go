// Package events defines the audit payloads the engine emits after account
// lifecycle changes and balance operations. Emission is at least once and
// happens after the operation that caused it completes; consumers dedupe on
// EventID and must not assume ordering.
package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TopicAccounts   = "ledger.accounts"
	TopicOperations = "ledger.operations"
)

// AccountCreated is emitted once a new account is registered.
type AccountCreated struct {
	EventID        string          `json:"event_id"`
	Number         string          `json:"number"`
	Holder         string          `json:"holder"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// NewAccountCreated stamps the event with a fresh id and the current time.
func NewAccountCreated(number, holder string, initial decimal.Decimal) AccountCreated {
	return AccountCreated{
		EventID:        uuid.NewString(),
		Number:         number,
		Holder:         holder,
		InitialBalance: initial,
		OccurredAt:     time.Now(),
	}
}

func (e AccountCreated) String() string {
	return fmt.Sprintf("account created: %s for %s with $%s", e.Number, e.Holder, e.InitialBalance.StringFixed(2))
}

// AccountClosed is emitted once an account is removed from the registry.
type AccountClosed struct {
	EventID    string    `json:"event_id"`
	Number     string    `json:"number"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewAccountClosed(number string) AccountClosed {
	return AccountClosed{
		EventID:    uuid.NewString(),
		Number:     number,
		OccurredAt: time.Now(),
	}
}

func (e AccountClosed) String() string {
	return fmt.Sprintf("account closed: %s", e.Number)
}

// OperationCompleted is emitted for every processed balance operation,
// successful or not.
type OperationCompleted struct {
	EventID       string          `json:"event_id"`
	TransactionID string          `json:"transaction_id"`
	Type          string          `json:"type"`
	FromAccount   string          `json:"from_account,omitempty"`
	ToAccount     string          `json:"to_account,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	Reason        string          `json:"reason,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

func NewOperationCompleted(txID, typ, from, to string, amount decimal.Decimal, status, reason string) OperationCompleted {
	return OperationCompleted{
		EventID:       uuid.NewString(),
		TransactionID: txID,
		Type:          typ,
		FromAccount:   from,
		ToAccount:     to,
		Amount:        amount,
		Status:        status,
		Reason:        reason,
		OccurredAt:    time.Now(),
	}
}

func (e OperationCompleted) String() string {
	s := fmt.Sprintf("%s %s $%s status=%s", e.TransactionID, e.Type, e.Amount.StringFixed(2), e.Status)
	if e.Reason != "" {
		s += " reason=" + e.Reason
	}
	return s
}
