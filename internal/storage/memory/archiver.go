// Package memory is an in-memory archiver for settled transaction records.
// It backs tests and demos; nothing survives the process.
package memory

import (
	"context"
	"sync"

	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/interfaces"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/models"
)

// Archiver stores archived records in a slice guarded by a mutex. Getters
// return copies so external code cannot modify internal state.
type Archiver struct {
	mu      sync.Mutex
	records []models.Transaction
}

// NewArchiver creates an empty in-memory archiver.
func NewArchiver() *Archiver {
	return &Archiver{
		records: make([]models.Transaction, 0),
	}
}

// Archive appends rec. It never fails in memory.
func (a *Archiver) Archive(ctx context.Context, rec models.Transaction) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, rec)
	return nil
}

// All returns a copy of every archived record in arrival order.
func (a *Archiver) All() []models.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	copied := make([]models.Transaction, len(a.records))
	copy(copied, a.records)
	return copied
}

// ByAccount returns the archived records touching the given account number,
// on either side of the operation.
func (a *Archiver) ByAccount(number string) []models.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	var result []models.Transaction
	for _, rec := range a.records {
		if rec.FromAccount == number || rec.ToAccount == number {
			result = append(result, rec)
		}
	}
	return result
}

// Len reports how many records have been archived.
func (a *Archiver) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.records)
}

// Compile-time check: Archiver implements the Archiver interface.
var _ interfaces.Archiver = (*Archiver)(nil)
