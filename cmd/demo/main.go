// Command demo drives the concurrent banking ledger from the console. It
// walks the scenarios the system exists to demonstrate: basic operations,
// concurrent transfers in both directions, reader/writer interleaving,
// asynchronous processing through the queue and pool, monitoring reports and
// error handling.
package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	auditkafka "github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/audit/kafka"
	auditredis "github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/audit/redis"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/audit/zaplog"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/config"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/interfaces"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/ledger"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/models"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/report"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/storage/memory"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	publisher, closePublisher := buildPublisher(cfg.Audit, logger)
	defer closePublisher()

	archiver, memArchive, closeArchiver := buildArchiver(cfg.Archive, logger)
	defer closeArchiver()

	bank := ledger.New(ledger.Config{
		Name:              cfg.Bank.Name,
		Code:              cfg.Bank.Code,
		MaxAccounts:       cfg.Bank.MaxAccounts,
		Workers:           cfg.Bank.Workers,
		QueueCapacity:     cfg.Bank.QueueCapacity,
		MaxInitialBalance: cfg.Bank.MaxInitialBalance,
		AuditEnabled:      cfg.Audit.Enabled,
	},
		ledger.WithLogger(logger),
		ledger.WithPublisher(publisher),
		ledger.WithArchiver(archiver),
	)

	fmt.Println("CONCURRENT BANKING LEDGER SYSTEM")
	fmt.Println("=================================")

	bank.Start()
	bank.GenerateSampleAccounts(cfg.Demo.SampleAccounts)

	demonstrateBasicOperations(bank)
	demonstrateConcurrentTransfers(bank)
	demonstrateReaderWriterInterleaving(bank)
	demonstrateAsyncProcessing(bank)
	demonstrateMonitoring(bank)
	demonstrateErrorHandling(bank)

	printFinalState(bank, memArchive)

	bank.Stop()
	fmt.Println("\nAll demonstrations completed.")
}

// buildPublisher picks the audit sink from configuration. The returned
// cleanup is always safe to call.
func buildPublisher(cfg config.AuditConfig, logger *zap.Logger) (interfaces.EventPublisher, func()) {
	switch cfg.Sink {
	case config.SinkKafka:
		p := auditkafka.NewPublisher(cfg.KafkaBrokers)
		return p, func() {
			if err := p.Close(); err != nil {
				logger.Warn("kafka publisher close failed", zap.Error(err))
			}
		}
	case config.SinkRedis:
		p := auditredis.NewPublisher(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisChannelPrefix)
		return p, func() {
			if err := p.Close(); err != nil {
				logger.Warn("redis publisher close failed", zap.Error(err))
			}
		}
	default:
		return zaplog.NewPublisher(logger), func() {}
	}
}

// buildArchiver picks the archival sink. The *memory.Archiver return is
// non-nil only for the in-memory sink, so the final state can show what was
// archived.
func buildArchiver(cfg config.ArchiveConfig, logger *zap.Logger) (interfaces.Archiver, *memory.Archiver, func()) {
	switch cfg.Sink {
	case config.ArchivePostgres:
		ctx := context.Background()
		pg, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			logger.Fatal("failed to open postgres archiver", zap.Error(err))
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal("failed to ensure archive schema", zap.Error(err))
		}
		return pg, nil, func() {
			if err := pg.Close(); err != nil {
				logger.Warn("postgres archiver close failed", zap.Error(err))
			}
		}
	case config.ArchiveNone:
		return nil, nil, func() {}
	default:
		m := memory.NewArchiver()
		return m, m, func() {}
	}
}

func demonstrateBasicOperations(bank *ledger.Bank) {
	fmt.Println("\n=== BASIC BANKING OPERATIONS ===")

	acc1, err := bank.CreateAccount("John Doe", decimal.NewFromInt(1000))
	if err != nil {
		fmt.Println("create failed:", err)
		return
	}
	acc2, _ := bank.CreateAccount("Jane Smith", decimal.NewFromInt(2500))
	acc3, _ := bank.CreateAccount("Bob Johnson", decimal.NewFromInt(500))
	fmt.Printf("Created accounts: %s, %s, %s\n", acc1, acc2, acc3)

	bank.ProcessDeposit(acc1, decimal.NewFromInt(500), "Salary deposit")
	bank.ProcessWithdraw(acc2, decimal.NewFromInt(200), "ATM withdrawal")
	bank.ProcessTransfer(acc1, acc3, decimal.NewFromInt(150), "Loan repayment")

	fmt.Println("\nFinal Balances:")
	for _, number := range []string{acc1, acc2, acc3} {
		if acct, ok := bank.Account(number); ok {
			fmt.Printf("%s (%s): $%s\n", number, acct.Holder(), acct.Balance().StringFixed(2))
		}
	}
}

func demonstrateConcurrentTransfers(bank *ledger.Bank) {
	fmt.Println("\n=== CONCURRENT TRANSFERS DEMONSTRATION ===")

	accounts := bank.Accounts()
	if len(accounts) < 2 {
		fmt.Println("Need at least 2 accounts for the concurrent demonstration")
		return
	}
	acc1, acc2 := accounts[0].Number(), accounts[1].Number()
	fmt.Printf("Initiating 10 concurrent transfers between %s and %s\n", acc1, acc2)

	g := new(errgroup.Group)
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			amount := decimal.NewFromInt(int64(10 + i*5))
			desc := fmt.Sprintf("Concurrent transfer %d", i+1)
			if i%2 == 0 {
				bank.ProcessTransfer(acc1, acc2, amount, desc)
			} else {
				bank.ProcessTransfer(acc2, acc1, amount, desc)
			}
			return nil
		})
	}
	_ = g.Wait()

	fmt.Println("Concurrent transfers completed!")
	for _, number := range []string{acc1, acc2} {
		if acct, ok := bank.Account(number); ok {
			fmt.Printf("Final balance %s: $%s\n", number, acct.Balance().StringFixed(2))
		}
	}
}

func demonstrateReaderWriterInterleaving(bank *ledger.Bank) {
	fmt.Println("\n=== READER/WRITER INTERLEAVING DEMONSTRATION ===")

	accounts := bank.Accounts()
	if len(accounts) < 2 {
		fmt.Println("Need at least 2 accounts for the interleaving demonstration")
		return
	}
	acc1, acc2 := accounts[0].Number(), accounts[1].Number()
	fmt.Println("Running rapid balance checks against concurrent mutations...")

	g := new(errgroup.Group)
	for i := 0; i < 5; i++ {
		g.Go(func() error {
			for j := 0; j < 20; j++ {
				balance1 := bank.ProcessBalanceCheck(acc1)
				balance2 := bank.ProcessBalanceCheck(acc2)
				if j%10 == 0 && balance1.OK && balance2.OK {
					fmt.Printf("Reader %d check %d: %s=$%s, %s=$%s\n", i, j,
						acc1, balance1.Record.Amount.StringFixed(2),
						acc2, balance2.Record.Amount.StringFixed(2))
				}
			}
			return nil
		})
	}
	for i := 0; i < 3; i++ {
		g.Go(func() error {
			for j := 0; j < 10; j++ {
				amount := decimal.NewFromInt(int64(5 + j*2))
				desc := fmt.Sprintf("Interleaving test %d-%d", i, j)
				if i%2 == 0 {
					bank.ProcessDeposit(acc1, amount, desc)
				} else {
					bank.ProcessWithdraw(acc2, amount, desc)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	fmt.Println("Reader/writer interleaving completed: every read saw a fully applied state.")
}

func demonstrateAsyncProcessing(bank *ledger.Bank) {
	fmt.Println("\n=== ASYNCHRONOUS PROCESSING DEMONSTRATION ===")

	accounts := bank.Accounts()
	if len(accounts) < 2 {
		fmt.Println("Need at least 2 accounts for the async demonstration")
		return
	}
	acc1, acc2 := accounts[0].Number(), accounts[1].Number()

	const submissions = 20
	fmt.Printf("Submitting %d operations through the bounded queue...\n", submissions)

	var wg sync.WaitGroup
	var succeeded, failed atomic.Int64
	done := func(res models.Result) {
		defer wg.Done()
		if res.OK {
			succeeded.Add(1)
		} else {
			failed.Add(1)
		}
	}

	ctx := context.Background()
	for i := 0; i < submissions; i++ {
		var req ledger.Request
		switch i % 3 {
		case 0:
			req = ledger.Request{
				Kind: models.TypeTransfer, From: acc1, To: acc2,
				Amount: decimal.NewFromInt(5), Description: fmt.Sprintf("Async transfer %d", i),
			}
		case 1:
			req = ledger.Request{
				Kind: models.TypeDeposit, Account: acc1,
				Amount: decimal.NewFromInt(20), Description: fmt.Sprintf("Async deposit %d", i),
			}
		default:
			req = ledger.Request{
				Kind: models.TypeWithdraw, Account: acc2,
				Amount: decimal.NewFromInt(15), Description: fmt.Sprintf("Async withdrawal %d", i),
			}
		}

		wg.Add(1)
		if err := bank.Submit(ctx, req, done); err != nil {
			wg.Done()
			fmt.Println("submission rejected:", err)
		}
	}

	wg.Wait()
	fmt.Printf("Async results: %d succeeded, %d failed\n", succeeded.Load(), failed.Load())
}

func demonstrateMonitoring(bank *ledger.Bank) {
	fmt.Println("\n=== SYSTEM MONITORING ===")

	snap := bank.Snapshot()
	fmt.Println(report.System(snap))
	fmt.Println()
	fmt.Println(report.Performance(snap))
}

func demonstrateErrorHandling(bank *ledger.Bank) {
	fmt.Println("\n=== ERROR HANDLING DEMONSTRATION ===")

	accounts := bank.Accounts()
	if len(accounts) == 0 {
		fmt.Println("Need at least 1 account for the error demonstration")
		return
	}
	testAccount := accounts[0].Number()
	balance := accounts[0].Balance()

	overdraft := balance.Add(decimal.NewFromInt(1000))
	fmt.Printf("Attempting to withdraw $%s from an account holding $%s\n",
		overdraft.StringFixed(2), balance.StringFixed(2))
	res := bank.ProcessWithdraw(testAccount, overdraft, "Overdraft test")
	fmt.Printf("Withdrawal result: %s (%s)\n", res.Status, res.Reason)

	fmt.Println("Attempting to check a malformed account number...")
	res = bank.ProcessBalanceCheck("NONEXISTENT")
	fmt.Printf("Balance check result: %s (%s)\n", res.Status, res.Reason)

	fmt.Println("Attempting to create an account with a blank holder name...")
	if _, err := bank.CreateAccount("  ", decimal.NewFromInt(100)); err != nil {
		fmt.Println("Creation rejected:", err)
	}

	fmt.Println("Attempting to close an account holding a balance...")
	if err := bank.CloseAccount(testAccount); err != nil {
		fmt.Println("Close rejected:", err)
	}

	fmt.Println("Attempting a self-transfer...")
	res = bank.ProcessTransfer(testAccount, testAccount, decimal.NewFromInt(10), "Self transfer")
	fmt.Printf("Transfer result: %s (%s)\n", res.Status, res.Reason)
}

func printFinalState(bank *ledger.Bank, memArchive *memory.Archiver) {
	fmt.Println("\n=== FINAL SYSTEM STATE ===")

	accounts := bank.Accounts()
	fmt.Printf("Total accounts: %d\n", len(accounts))
	for _, acct := range accounts {
		fmt.Printf("Account: %s | Holder: %s | Balance: $%s\n",
			acct.Number(), acct.Holder(), acct.Balance().StringFixed(2))
	}

	if len(accounts) > 0 {
		first := accounts[0]
		fmt.Println()
		fmt.Println(report.TransactionSummary(first.Number(), first.History()))
	}

	if memArchive != nil {
		fmt.Printf("\nArchived records: %d\n", memArchive.Len())
	}

	fmt.Println()
	fmt.Println(report.Workers(bank.Snapshot().Workers))
}
