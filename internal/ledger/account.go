package ledger

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/ids"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/models"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/validate"
)

// ErrInvalidInitialBalance is returned when an account is constructed with a
// negative opening balance.
var ErrInvalidInitialBalance = errors.New("initial balance cannot be negative")

// Account lifecycle states.
const (
	StatusActive = "ACTIVE"
	StatusClosed = "CLOSED"
)

// Account is one ledger entry: a balance plus the append-only history of
// every operation attempted against it. A single mutex guards balance,
// history and the closed flag; readers take the same lock as writers so a
// read always observes a fully applied operation.
//
// number, holder and createdAt are fixed at construction and read without
// the lock. number in particular is the lock-ordering key for transfers and
// must stay readable while no lock is held.
type Account struct {
	number    string
	holder    string
	createdAt time.Time
	gen       *ids.Generator

	mu      sync.Mutex
	balance decimal.Decimal
	history []models.Transaction
	closed  bool
}

// NewAccount builds an account. A negative initial balance is the one hard
// construction failure; a positive one is recorded as a synthetic initial
// deposit so the history explains the balance from the first entry.
func NewAccount(number, holder string, initial decimal.Decimal, gen *ids.Generator) (*Account, error) {
	if initial.Sign() < 0 {
		return nil, ErrInvalidInitialBalance
	}
	a := &Account{
		number:    number,
		holder:    holder,
		createdAt: time.Now(),
		gen:       gen,
		balance:   initial,
		history:   make([]models.Transaction, 0, 8),
	}
	if initial.Sign() > 0 {
		rec := models.NewTransaction(gen.TransactionID(), "", number, models.TypeDeposit, initial, "Initial deposit")
		a.history = append(a.history, settled(rec, models.StatusSuccess))
	}
	return a, nil
}

// settled stamps a freshly created record with its terminal status. Fresh
// records are always PENDING, so the transition cannot fail.
func settled(rec models.Transaction, s models.Status) models.Transaction {
	_ = rec.Settle(s)
	return rec
}

// Number returns the account's unique identifier.
func (a *Account) Number() string { return a.number }

// Holder returns the account holder's name.
func (a *Account) Holder() string { return a.holder }

// CreatedAt returns the account's creation time.
func (a *Account) CreatedAt() time.Time { return a.createdAt }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Status reports whether the account is ACTIVE or CLOSED.
func (a *Account) Status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return StatusClosed
	}
	return StatusActive
}

// History returns an independent copy of the transaction history, oldest
// first. The copy never changes once returned.
func (a *Account) History() []models.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Transaction, len(a.history))
	copy(out, a.history)
	return out
}

// Deposit credits amount to the account. The attempt is appended to the
// history whether it succeeds or fails; the returned result carries the
// settled record.
func (a *Account) Deposit(amount decimal.Decimal, description string) models.Result {
	rec := models.NewTransaction(a.gen.TransactionID(), "", a.number, models.TypeDeposit, amount, description)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return a.reject(rec, models.StatusInvalidAccount, "account is closed")
	}
	if !validate.Amount(amount) {
		return a.reject(rec, models.StatusFailed, "amount must be positive")
	}

	a.balance = a.balance.Add(amount)
	rec = settled(rec, models.StatusSuccess)
	a.history = append(a.history, rec)
	return models.Success(rec)
}

// Withdraw debits amount from the account. A debit that would overdraw the
// account fails with INSUFFICIENT_FUNDS and leaves the balance untouched;
// the attempt is still recorded.
func (a *Account) Withdraw(amount decimal.Decimal, description string) models.Result {
	rec := models.NewTransaction(a.gen.TransactionID(), a.number, "", models.TypeWithdraw, amount, description)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return a.reject(rec, models.StatusInvalidAccount, "account is closed")
	}
	if !validate.Amount(amount) {
		return a.reject(rec, models.StatusFailed, "amount must be positive")
	}
	if a.balance.LessThan(amount) {
		return a.reject(rec, models.StatusInsufficientFunds, "insufficient funds")
	}

	a.balance = a.balance.Sub(amount)
	rec = settled(rec, models.StatusSuccess)
	a.history = append(a.history, rec)
	return models.Success(rec)
}

// TransferTo atomically moves amount from a to target: no interleaving can
// observe the debit without the credit. Both account locks are taken in
// account-number order, never argument order, so opposite-direction
// transfers on the same pair cannot deadlock.
//
// A failed transfer appends one record to the source only; a successful one
// appends the same record, sharing one transaction id, to both sides.
func (a *Account) TransferTo(target *Account, amount decimal.Decimal, description string) models.Result {
	if target == nil {
		rec := models.NewTransaction(a.gen.TransactionID(), a.number, "", models.TypeTransfer, amount, description)
		a.mu.Lock()
		defer a.mu.Unlock()
		return a.reject(rec, models.StatusInvalidAccount, "target account does not exist")
	}
	rec := models.NewTransaction(a.gen.TransactionID(), a.number, target.number, models.TypeTransfer, amount, description)

	// Self-transfer is rejected before any locking; taking the same mutex
	// twice would self-deadlock.
	if a == target || a.number == target.number {
		return models.Failure(models.StatusFailed, "cannot transfer to the same account", settled(rec, models.StatusFailed))
	}

	// Lock both accounts in number order to avoid deadlock.
	first, second := a, target
	if second.number < first.number {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if a.closed {
		return a.reject(rec, models.StatusInvalidAccount, "source account is closed")
	}
	if target.closed {
		return a.reject(rec, models.StatusInvalidAccount, "target account is closed")
	}
	if !validate.Amount(amount) {
		return a.reject(rec, models.StatusFailed, "amount must be positive")
	}
	if a.balance.LessThan(amount) {
		return a.reject(rec, models.StatusInsufficientFunds, "insufficient funds")
	}

	a.balance = a.balance.Sub(amount)
	target.balance = target.balance.Add(amount)
	rec = settled(rec, models.StatusSuccess)
	a.history = append(a.history, rec)
	target.history = append(target.history, rec)
	return models.Success(rec)
}

// reject settles rec with a failure status, appends it to the history and
// wraps it in a failure result. Callers must hold a.mu.
func (a *Account) reject(rec models.Transaction, s models.Status, reason string) models.Result {
	rec = settled(rec, s)
	a.history = append(a.history, rec)
	return models.Failure(s, reason, rec)
}

// close marks the account CLOSED so later operations fail with
// INVALID_ACCOUNT. Only accounts with a zero balance may close.
func (a *Account) close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	if !a.balance.IsZero() {
		return ErrBalanceNotZero
	}
	a.closed = true
	return nil
}
