// Package ids owns identifier generation for the ledger. All process-wide
// counters live on a single Generator created at startup; nothing here is
// package-level state.
package ids

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
)

const txPrefix = "TXN"

// Generator hands out account numbers and transaction ids. Account numbers
// are a bank-code prefix plus an incrementing sequence; transaction ids are
// prefixed ULIDs, so ids created later compare lexicographically greater.
type Generator struct {
	code string
	seq  atomic.Uint64

	mu      sync.Mutex // guards entropy; the monotonic reader is not safe concurrently
	entropy *ulid.MonotonicEntropy
}

// NewGenerator creates a Generator for the given bank code. The code is
// upper-cased and embedded in every account number.
func NewGenerator(code string) *Generator {
	return &Generator{
		code:    strings.ToUpper(code),
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// AccountNumber returns the next account number, formatted CODE-NNNNNNNN.
func (g *Generator) AccountNumber() string {
	return fmt.Sprintf("%s-%08d", g.code, g.seq.Add(1))
}

// TransactionID returns a fresh transaction id. Ids from one Generator are
// unique and strictly increasing, even when requested concurrently.
func (g *Generator) TransactionID() string {
	g.mu.Lock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
	g.mu.Unlock()
	return txPrefix + "-" + id.String()
}
