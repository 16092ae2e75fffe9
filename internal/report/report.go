// Package report renders human-readable system and performance reports from
// bank snapshots. Everything here is pure formatting over copies; no locks
// are taken and no state is touched.
package report

import (
	"fmt"
	"strings"

	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/ledger"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/models"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/validate"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/worker"
)

const timeLayout = "2006-01-02 15:04:05"

// System renders the short status summary.
func System(snap ledger.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "System: %s\n", runState(snap.Running))
	fmt.Fprintf(&b, "Accounts: %d/%d\n", snap.AccountCount, snap.Config.MaxAccounts)
	fmt.Fprintf(&b, "Transactions: %d\n", snap.Stats.Total)
	fmt.Fprintf(&b, "Success Rate: %.1f%%", successRate(snap.Stats))
	return b.String()
}

// Performance renders the full performance report.
func Performance(snap ledger.Snapshot) string {
	var b strings.Builder
	b.WriteString("=== BANK PERFORMANCE REPORT ===\n")
	fmt.Fprintf(&b, "Bank: %s (%s)\n", snap.Config.Name, snap.Config.Code)
	fmt.Fprintf(&b, "System Status: %s\n", runState(snap.Running))
	fmt.Fprintf(&b, "Total Accounts: %d\n", snap.AccountCount)
	fmt.Fprintf(&b, "Total Balance: %s\n", validate.FormatCurrency(snap.TotalBalance))
	fmt.Fprintf(&b, "Total Transactions: %d\n", snap.Stats.Total)
	fmt.Fprintf(&b, "Successful: %d\n", snap.Stats.Succeeded)
	fmt.Fprintf(&b, "Failed: %d\n", snap.Stats.Failed)
	fmt.Fprintf(&b, "Success Rate: %.1f%%\n", successRate(snap.Stats))
	fmt.Fprintf(&b, "Workers: %d (active: %d)\n", snap.Config.Workers, snap.ActiveWorkers)
	fmt.Fprintf(&b, "Queue: %d/%d (pool backlog: %d)\n", snap.QueueDepth, snap.QueueCapacity, snap.QueuedTasks)
	fmt.Fprintf(&b, "Audit Logging: %s\n", enabled(snap.Config.AuditEnabled))
	fmt.Fprintf(&b, "Generated: %s", snap.GeneratedAt.UTC().Format(timeLayout))
	return b.String()
}

// Workers renders one line per monitored worker.
func Workers(infos []worker.Info) string {
	if len(infos) == 0 {
		return "No workers registered"
	}
	var b strings.Builder
	b.WriteString("Worker Status:\n")
	for i, info := range infos {
		fmt.Fprintf(&b, "  %s: %s (started %s)", info.Name, info.Status,
			info.StartedAt.UTC().Format(timeLayout))
		if i < len(infos)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// TransactionSummary renders an account's history copy with per-status
// totals at the end.
func TransactionSummary(number string, history []models.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Transaction history for %s (%d records):\n", number, len(history))

	counts := make(map[models.Status]int)
	for _, rec := range history {
		fmt.Fprintf(&b, "  %s\n", rec.String())
		counts[rec.Status]++
	}

	fmt.Fprintf(&b, "Summary: %d successful, %d failed, %d insufficient funds, %d invalid account",
		counts[models.StatusSuccess],
		counts[models.StatusFailed],
		counts[models.StatusInsufficientFunds],
		counts[models.StatusInvalidAccount],
	)
	return b.String()
}

func successRate(s ledger.Stats) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Succeeded) * 100 / float64(s.Total)
}

func runState(running bool) string {
	if running {
		return "RUNNING"
	}
	return "STOPPED"
}

func enabled(on bool) string {
	if on {
		return "ENABLED"
	}
	return "DISABLED"
}
