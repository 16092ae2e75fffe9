// Package ledger implements the concurrent banking core: accounts with
// per-account locking and append-only histories, and the bank registry that
// owns them together with the queue and worker pool driving asynchronous
// operations.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/audit/zaplog"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/ids"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/interfaces"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/models"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/models/events"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/validate"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/worker"
)

// Registry management errors.
var (
	ErrInvalidHolderName = errors.New("holder name must be 2 to 100 non-blank characters")
	ErrBankFull          = errors.New("bank is at maximum account capacity")
	ErrAccountNotFound   = errors.New("account does not exist")
	ErrBalanceNotZero    = errors.New("account balance must be zero to close")
	ErrBankStopped       = errors.New("bank is not running")
)

// Pool scheduling priorities. Transfers run ahead of single-account
// operations so both of their locks are released sooner.
const (
	PriorityNormal   = 0
	PriorityTransfer = 1
)

const archiveTimeout = 5 * time.Second

// Config tunes a Bank. Zero or negative fields fall back to the defaults.
type Config struct {
	Name              string
	Code              string
	MaxAccounts       int
	Workers           int
	QueueCapacity     int
	MaxInitialBalance decimal.Decimal
	AuditEnabled      bool
}

// DefaultConfig returns the stock configuration: 1000 accounts, 100 workers,
// a 100-slot intake queue and audit logging enabled.
func DefaultConfig() Config {
	return Config{
		Name:              "Concurrent Banking Ledger",
		Code:              "CBL",
		MaxAccounts:       1000,
		Workers:           100,
		QueueCapacity:     100,
		MaxInitialBalance: decimal.NewFromInt(1_000_000),
		AuditEnabled:      true,
	}
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.Name == "" {
		c.Name = def.Name
	}
	if c.Code == "" {
		c.Code = def.Code
	}
	if c.MaxAccounts < 1 {
		c.MaxAccounts = def.MaxAccounts
	}
	if c.Workers < 1 {
		c.Workers = def.Workers
	}
	if c.QueueCapacity < 1 {
		c.QueueCapacity = def.QueueCapacity
	}
	if c.MaxInitialBalance.Sign() <= 0 {
		c.MaxInitialBalance = def.MaxInitialBalance
	}
	return c
}

// Request describes one ledger operation submitted for asynchronous
// processing. Account carries the target for deposits, withdrawals and
// balance checks; From/To carry the transfer pair.
type Request struct {
	Kind        models.Type
	Account     string
	From        string
	To          string
	Amount      decimal.Decimal
	Description string
}

func (r Request) taskDescription() string {
	if r.Kind == models.TypeTransfer {
		return fmt.Sprintf("%s %s -> %s", r.Kind, r.From, r.To)
	}
	return fmt.Sprintf("%s %s", r.Kind, r.Account)
}

func (r Request) priority() int {
	if r.Kind == models.TypeTransfer {
		return PriorityTransfer
	}
	return PriorityNormal
}

// Option configures optional Bank collaborators.
type Option func(*Bank)

// WithLogger sets the structured logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Bank) { b.logger = logger }
}

// WithPublisher sets the audit event sink. The default, when audit is
// enabled, publishes events through the bank's logger.
func WithPublisher(p interfaces.EventPublisher) Option {
	return func(b *Bank) { b.publisher = p }
}

// WithArchiver sets the settled-record archiver. No archiver means settled
// records live only in account histories.
func WithArchiver(a interfaces.Archiver) Option {
	return func(b *Bank) { b.archiver = a }
}

// Stats is a point-in-time copy of the bank's operation counters.
type Stats struct {
	Total     uint64
	Succeeded uint64
	Failed    uint64
}

// Snapshot is a read-only view of the system for reporting. Balances are
// read one account at a time, so TotalBalance is exact only while no writer
// is active.
type Snapshot struct {
	Config        Config
	Running       bool
	AccountCount  int
	TotalBalance  decimal.Decimal
	Stats         Stats
	QueueDepth    int
	QueueCapacity int
	ActiveWorkers int
	QueuedTasks   int
	Workers       []worker.Info
	GeneratedAt   time.Time
}

// Bank is the ledger registry. It maps account numbers to live accounts and
// owns the intake queue, the worker pool and the operation counters.
//
// The registry mutex guards the map structure only; it is never held while
// an account lock is held, and account operations run entirely outside it.
type Bank struct {
	cfg    Config
	logger *zap.Logger

	mu       sync.Mutex
	accounts map[string]*Account

	gen     *ids.Generator
	queue   *worker.Queue
	pool    *worker.Pool
	monitor *worker.Monitor

	running    atomic.Bool
	stopped    atomic.Bool
	intake     sync.RWMutex
	dispatchWG sync.WaitGroup

	total     atomic.Uint64
	succeeded atomic.Uint64
	failed    atomic.Uint64

	publisher interfaces.EventPublisher
	archiver  interfaces.Archiver
}

// New builds a Bank from cfg. The worker pool is created immediately but
// processes nothing until Start.
func New(cfg Config, opts ...Option) *Bank {
	cfg = cfg.normalized()
	b := &Bank{
		cfg:      cfg,
		logger:   zap.NewNop(),
		accounts: make(map[string]*Account),
		gen:      ids.NewGenerator(cfg.Code),
		monitor:  worker.NewMonitor(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	b.queue = worker.NewQueue(cfg.QueueCapacity)
	b.pool = worker.NewPool(cfg.Workers, b.monitor, b.logger)
	if !cfg.AuditEnabled {
		b.publisher = nil
	} else if b.publisher == nil {
		b.publisher = zaplog.NewPublisher(b.logger)
	}
	return b
}

// Start brings the bank online: the pool begins executing and the dispatcher
// starts moving queued requests into it. Idempotent; a stopped bank cannot
// be restarted.
func (b *Bank) Start() {
	if b.stopped.Load() || !b.running.CompareAndSwap(false, true) {
		return
	}
	b.pool.Start()
	b.dispatchWG.Add(1)
	go b.dispatch()
	b.logger.Info("bank started",
		zap.String("name", b.cfg.Name),
		zap.Int("workers", b.cfg.Workers),
		zap.Int("queue_capacity", b.cfg.QueueCapacity),
	)
}

// Stop takes the bank offline: intake closes, every request already queued
// is dispatched and executed, and Stop returns only after the dispatcher and
// all workers have terminated. Idempotent and terminal.
func (b *Bank) Stop() {
	if !b.stopped.CompareAndSwap(false, true) {
		return
	}
	b.running.Store(false)
	// Submissions that already passed the running check must land before the
	// queue closes, or their items could slip past the dispatcher's final
	// drain. Later submissions observe running=false and reject.
	b.intake.Lock()
	b.intake.Unlock()
	b.queue.Close()
	b.dispatchWG.Wait()
	b.pool.Stop()
	b.logger.Info("bank stopped", zap.String("name", b.cfg.Name))
}

// Running reports whether the bank accepts submissions.
func (b *Bank) Running() bool { return b.running.Load() }

// Name returns the configured bank name.
func (b *Bank) Name() string { return b.cfg.Name }

// dispatch moves items from the intake queue into the worker pool until the
// queue is closed and drained. It runs on its own goroutine and reports to
// the monitor under a fixed name.
func (b *Bank) dispatch() {
	defer b.dispatchWG.Done()
	b.monitor.Register("dispatcher")
	defer b.monitor.SetStatus("dispatcher", worker.StatusTerminated)

	for {
		item, err := b.queue.Dequeue(context.Background())
		if err != nil {
			return
		}
		if err := b.pool.Submit(item.Run, item.Description, item.Priority); err != nil {
			b.logger.Warn("request dropped during shutdown",
				zap.String("task", item.Description),
				zap.Error(err),
			)
		}
	}
}

// Submit queues req for asynchronous processing. It blocks while the intake
// queue is full; ctx is the caller's escape hatch from that wait. done, when
// non-nil, receives the operation result on the worker goroutine.
//
// Submissions are rejected with ErrBankStopped unless the bank is running.
func (b *Bank) Submit(ctx context.Context, req Request, done func(models.Result)) error {
	b.intake.RLock()
	defer b.intake.RUnlock()
	if !b.running.Load() {
		return ErrBankStopped
	}
	run := func() {
		res := b.process(req)
		if done != nil {
			done(res)
		}
	}
	item := worker.NewItem(run, req.taskDescription(), req.priority())
	if err := b.queue.Enqueue(ctx, item); err != nil {
		if errors.Is(err, worker.ErrQueueClosed) {
			return ErrBankStopped
		}
		return err
	}
	return nil
}

// process routes an asynchronous request to the matching operation.
func (b *Bank) process(req Request) models.Result {
	switch req.Kind {
	case models.TypeDeposit:
		return b.ProcessDeposit(req.Account, req.Amount, req.Description)
	case models.TypeWithdraw:
		return b.ProcessWithdraw(req.Account, req.Amount, req.Description)
	case models.TypeTransfer:
		return b.ProcessTransfer(req.From, req.To, req.Amount, req.Description)
	case models.TypeBalanceCheck:
		return b.ProcessBalanceCheck(req.Account)
	default:
		return b.finish(models.Failure(models.StatusFailed,
			fmt.Sprintf("unsupported operation type %q", req.Kind), models.Transaction{}))
	}
}

// CreateAccount registers a new account for holder with the given opening
// balance and returns its generated number. Holder names and opening
// balances are validated up front; capacity is enforced under the registry
// lock so the limit cannot be raced past.
func (b *Bank) CreateAccount(holder string, initial decimal.Decimal) (string, error) {
	if !validate.HolderName(holder) {
		return "", ErrInvalidHolderName
	}
	if !validate.InitialBalance(initial, b.cfg.MaxInitialBalance) {
		return "", ErrInvalidInitialBalance
	}

	number := b.gen.AccountNumber()
	acct, err := NewAccount(number, holder, initial, b.gen)
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	if len(b.accounts) >= b.cfg.MaxAccounts {
		b.mu.Unlock()
		return "", ErrBankFull
	}
	b.accounts[number] = acct
	b.mu.Unlock()

	b.logger.Info("account created",
		zap.String("number", number),
		zap.String("holder", holder),
		zap.String("balance", initial.StringFixed(2)),
	)
	b.publish(events.TopicAccounts, events.NewAccountCreated(number, holder, initial))
	return number, nil
}

// CloseAccount marks the account closed and removes it from the registry.
// Only zero-balance accounts may close. Handles obtained earlier stay valid;
// operations through them fail once the account is closed.
func (b *Bank) CloseAccount(number string) error {
	b.mu.Lock()
	acct, ok := b.accounts[number]
	b.mu.Unlock()
	if !ok {
		return ErrAccountNotFound
	}
	if err := acct.close(); err != nil {
		return err
	}

	b.mu.Lock()
	delete(b.accounts, number)
	b.mu.Unlock()

	b.logger.Info("account closed", zap.String("number", number))
	b.publish(events.TopicAccounts, events.NewAccountClosed(number))
	return nil
}

// Account returns a shared handle to the account, if registered.
func (b *Bank) Account(number string) (*Account, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acct, ok := b.accounts[number]
	return acct, ok
}

// Accounts returns shared handles to every registered account, sorted by
// number. The slice is an independent copy.
func (b *Bank) Accounts() []*Account {
	b.mu.Lock()
	out := make([]*Account, 0, len(b.accounts))
	for _, acct := range b.accounts {
		out = append(out, acct)
	}
	b.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Number() < out[j].Number() })
	return out
}

// AccountCount reports how many accounts are registered.
func (b *Bank) AccountCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.accounts)
}

// ProcessDeposit credits amount to the named account.
func (b *Bank) ProcessDeposit(number string, amount decimal.Decimal, description string) models.Result {
	acct, res, ok := b.lookup(number)
	if !ok {
		return b.finish(res)
	}
	return b.finish(acct.Deposit(amount, description))
}

// ProcessWithdraw debits amount from the named account.
func (b *Bank) ProcessWithdraw(number string, amount decimal.Decimal, description string) models.Result {
	acct, res, ok := b.lookup(number)
	if !ok {
		return b.finish(res)
	}
	return b.finish(acct.Withdraw(amount, description))
}

// ProcessTransfer moves amount between two registered accounts.
func (b *Bank) ProcessTransfer(from, to string, amount decimal.Decimal, description string) models.Result {
	source, res, ok := b.lookup(from)
	if !ok {
		return b.finish(res)
	}
	target, res, ok := b.lookup(to)
	if !ok {
		return b.finish(res)
	}
	return b.finish(source.TransferTo(target, amount, description))
}

// ProcessBalanceCheck reads the named account's balance. The result carries
// a settled BALANCE_CHECK record whose amount is the balance; reads never
// append to the account history.
func (b *Bank) ProcessBalanceCheck(number string) models.Result {
	acct, res, ok := b.lookup(number)
	if !ok {
		return b.finish(res)
	}
	rec := models.NewTransaction(b.gen.TransactionID(), "", number,
		models.TypeBalanceCheck, acct.Balance(), "Balance check")
	return b.finish(models.Success(settled(rec, models.StatusSuccess)))
}

// lookup resolves an account number for a processing operation. On failure
// it returns an INVALID_ACCOUNT result carrying no record; nothing was
// attempted against any account, so there is nothing to append.
func (b *Bank) lookup(number string) (*Account, models.Result, bool) {
	if !validate.AccountNumber(number) {
		return nil, models.Failure(models.StatusInvalidAccount,
			fmt.Sprintf("malformed account number %q", number), models.Transaction{}), false
	}
	acct, ok := b.Account(number)
	if !ok {
		return nil, models.Failure(models.StatusInvalidAccount,
			fmt.Sprintf("account %s does not exist", number), models.Transaction{}), false
	}
	return acct, models.Result{}, true
}

// finish applies the bank-level bookkeeping every processed operation gets:
// counters, audit emission and archival. It returns res unchanged.
func (b *Bank) finish(res models.Result) models.Result {
	b.total.Add(1)
	if res.OK {
		b.succeeded.Add(1)
	} else {
		b.failed.Add(1)
	}

	rec := res.Record
	b.publish(events.TopicOperations, events.NewOperationCompleted(
		rec.ID, string(rec.Type), rec.FromAccount, rec.ToAccount,
		rec.Amount, string(res.Status), res.Reason,
	))
	b.archive(rec)
	return res
}

// publish sends an audit event to the configured sink. Emission is
// at-least-once and failures are logged, never propagated.
func (b *Bank) publish(topic string, event any) {
	if b.publisher == nil {
		return
	}
	if err := b.publisher.Publish(topic, event); err != nil {
		b.logger.Error("audit publish failed",
			zap.String("topic", topic),
			zap.Error(err),
		)
	}
}

// archive hands a settled record to the archiver. Zero-valued records
// (registry-level rejections) have nothing to archive.
func (b *Bank) archive(rec models.Transaction) {
	if b.archiver == nil || rec.ID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()
	if err := b.archiver.Archive(ctx, rec); err != nil {
		b.logger.Error("archive failed",
			zap.String("transaction_id", rec.ID),
			zap.Error(err),
		)
	}
}

// Stats returns a copy of the operation counters.
func (b *Bank) Stats() Stats {
	return Stats{
		Total:     b.total.Load(),
		Succeeded: b.succeeded.Load(),
		Failed:    b.failed.Load(),
	}
}

// Snapshot captures the system state for reporting.
func (b *Bank) Snapshot() Snapshot {
	accounts := b.Accounts()
	total := decimal.Zero
	for _, acct := range accounts {
		total = total.Add(acct.Balance())
	}
	return Snapshot{
		Config:        b.cfg,
		Running:       b.running.Load(),
		AccountCount:  len(accounts),
		TotalBalance:  total,
		Stats:         b.Stats(),
		QueueDepth:    b.queue.Len(),
		QueueCapacity: b.queue.Cap(),
		ActiveWorkers: b.pool.ActiveWorkers(),
		QueuedTasks:   b.pool.QueuedTasks(),
		Workers:       b.monitor.Snapshot(),
		GeneratedAt:   time.Now(),
	}
}

// sampleHolders seeds GenerateSampleAccounts.
var sampleHolders = []string{
	"John Smith", "Jane Doe", "Bob Johnson", "Alice Brown", "Charlie Wilson",
	"Diana Davis", "Edward Miller", "Fiona Garcia", "George Martinez", "Helen Taylor",
}

// GenerateSampleAccounts creates up to n demo accounts with varied balances
// and returns the numbers actually created. Creation failures are logged and
// skipped; n is clamped to the configured account limit.
func (b *Bank) GenerateSampleAccounts(n int) []string {
	if n > b.cfg.MaxAccounts {
		n = b.cfg.MaxAccounts
	}
	created := make([]string, 0, n)
	for i := 0; i < n; i++ {
		holder := fmt.Sprintf("%s %d", sampleHolders[i%len(sampleHolders)], i+1)
		balance := decimal.New(int64(10_000+rand.IntN(990_000)), -2)
		number, err := b.CreateAccount(holder, balance)
		if err != nil {
			b.logger.Warn("sample account skipped",
				zap.String("holder", holder),
				zap.Error(err),
			)
			continue
		}
		created = append(created, number)
	}
	b.logger.Info("sample accounts generated", zap.Int("count", len(created)))
	return created
}

// Clear drops every account from the registry. Outstanding handles keep
// working; only the registry forgets them. Intended for demos and tests.
func (b *Bank) Clear() {
	b.mu.Lock()
	b.accounts = make(map[string]*Account)
	b.mu.Unlock()
	b.logger.Warn("all account data cleared")
}
