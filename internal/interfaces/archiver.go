package interfaces

import (
	"context"

	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/models"
)

// Archiver keeps an external copy of settled transaction records. The
// in-account history remains the source of truth; archiving is at least
// once and failures are the caller's to log, not to propagate.
type Archiver interface {
	Archive(ctx context.Context, rec models.Transaction) error
}
