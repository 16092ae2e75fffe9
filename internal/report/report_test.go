package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/ledger"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/models"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/worker"
)

func testSnapshot() ledger.Snapshot {
	cfg := ledger.DefaultConfig()
	cfg.Name = "Report Bank"
	cfg.Code = "RPT"
	cfg.MaxAccounts = 50
	cfg.Workers = 8
	return ledger.Snapshot{
		Config:        cfg,
		Running:       true,
		AccountCount:  3,
		TotalBalance:  decimal.NewFromInt(1234),
		Stats:         ledger.Stats{Total: 10, Succeeded: 8, Failed: 2},
		QueueDepth:    4,
		QueueCapacity: 16,
		ActiveWorkers: 2,
		QueuedTasks:   1,
		GeneratedAt:   time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSystem(t *testing.T) {
	out := System(testSnapshot())
	assertContains(t, out,
		"System: RUNNING",
		"Accounts: 3/50",
		"Transactions: 10",
		"Success Rate: 80.0%",
	)

	snap := testSnapshot()
	snap.Running = false
	snap.Stats = ledger.Stats{}
	out = System(snap)
	assertContains(t, out, "System: STOPPED", "Success Rate: 0.0%")
}

func TestPerformance(t *testing.T) {
	out := Performance(testSnapshot())
	assertContains(t, out,
		"=== BANK PERFORMANCE REPORT ===",
		"Bank: Report Bank (RPT)",
		"System Status: RUNNING",
		"Total Accounts: 3",
		"Total Balance: $1234.00",
		"Total Transactions: 10",
		"Successful: 8",
		"Failed: 2",
		"Success Rate: 80.0%",
		"Workers: 8 (active: 2)",
		"Queue: 4/16 (pool backlog: 1)",
		"Audit Logging: ENABLED",
		"Generated: 2025-06-01 12:30:00",
	)

	snap := testSnapshot()
	snap.Config.AuditEnabled = false
	assertContains(t, Performance(snap), "Audit Logging: DISABLED")
}

func TestWorkers(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := Workers(nil); got != "No workers registered" {
			t.Errorf("Workers(nil) = %q", got)
		}
	})

	t.Run("renders each entry", func(t *testing.T) {
		started := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
		out := Workers([]worker.Info{
			{Name: "worker-1", Status: worker.StatusIdle, StartedAt: started},
			{Name: "worker-2", Status: worker.StatusExecuting, StartedAt: started},
		})
		assertContains(t, out,
			"Worker Status:",
			"worker-1: IDLE (started 2025-06-01 09:00:00)",
			"worker-2: EXECUTING",
		)
		if strings.HasSuffix(out, "\n") {
			t.Error("Workers output ends with a trailing newline")
		}
	})
}

func TestTransactionSummary(t *testing.T) {
	amount := decimal.NewFromInt(25)
	mk := func(id string, status models.Status) models.Transaction {
		rec := models.NewTransaction(id, "RPT-00000001", "RPT-00000002", models.TypeTransfer, amount, "summary test")
		_ = rec.Settle(status)
		return rec
	}
	history := []models.Transaction{
		mk("TXN-A", models.StatusSuccess),
		mk("TXN-B", models.StatusSuccess),
		mk("TXN-C", models.StatusInsufficientFunds),
		mk("TXN-D", models.StatusFailed),
		mk("TXN-E", models.StatusInvalidAccount),
	}

	out := TransactionSummary("RPT-00000001", history)
	assertContains(t, out,
		"Transaction history for RPT-00000001 (5 records):",
		"TXN-A",
		"Summary: 2 successful, 1 failed, 1 insufficient funds, 1 invalid account",
	)
}

func TestTransactionSummaryEmptyHistory(t *testing.T) {
	out := TransactionSummary("RPT-00000009", nil)
	assertContains(t, out,
		"Transaction history for RPT-00000009 (0 records):",
		"Summary: 0 successful, 0 failed, 0 insufficient funds, 0 invalid account",
	)
}
