// Package postgres archives settled transaction records in a Postgres
// table. Archival is at-least-once upstream, so inserts are keyed on the
// transaction id and replays are ignored.
package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq" // postgres driver

	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/interfaces"
	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/models"
)

// Archiver writes records through database/sql.
type Archiver struct {
	db *sql.DB
}

// NewArchiver wraps an open database handle.
func NewArchiver(db *sql.DB) *Archiver {
	return &Archiver{
		db: db,
	}
}

// Open connects to the database at dsn and verifies the connection.
func Open(ctx context.Context, dsn string) (*Archiver, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return NewArchiver(db), nil
}

// EnsureSchema creates the archive table when it does not exist.
func (a *Archiver) EnsureSchema(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS archived_transactions (
		id           text PRIMARY KEY,
		from_account text NOT NULL,
		to_account   text NOT NULL,
		type         text NOT NULL,
		amount       numeric(20,4) NOT NULL,
		description  text NOT NULL,
		status       text NOT NULL,
		created_at   timestamptz NOT NULL,
		archived_at  timestamptz NOT NULL DEFAULT now()
	)`

	_, err := a.db.ExecContext(ctx, query)
	return err
}

// Archive inserts rec. A replayed record with the same id is a no-op, which
// keeps at-least-once delivery idempotent.
func (a *Archiver) Archive(ctx context.Context, rec models.Transaction) error {
	const query = `INSERT INTO archived_transactions
		(id, from_account, to_account, type, amount, description, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO NOTHING`

	_, err := a.db.ExecContext(ctx, query,
		rec.ID, rec.FromAccount, rec.ToAccount, string(rec.Type),
		rec.Amount, rec.Description, string(rec.Status), rec.CreatedAt)

	return err
}

// All returns every archived record, oldest first.
func (a *Archiver) All(ctx context.Context) ([]models.Transaction, error) {
	const query = `SELECT id, from_account, to_account, type, amount, description, status, created_at
		FROM archived_transactions ORDER BY archived_at`

	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ByAccount returns the archived records touching the given account number,
// on either side of the operation.
func (a *Archiver) ByAccount(ctx context.Context, number string) ([]models.Transaction, error) {
	const query = `SELECT id, from_account, to_account, type, amount, description, status, created_at
		FROM archived_transactions
		WHERE from_account = $1 OR to_account = $1
		ORDER BY archived_at`

	rows, err := a.db.QueryContext(ctx, query, number)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Exists reports whether a record with the given transaction id is archived.
func (a *Archiver) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT 1 FROM archived_transactions WHERE id = $1 LIMIT 1`

	var one int
	err := a.db.QueryRowContext(ctx, query, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close releases the database handle.
func (a *Archiver) Close() error {
	return a.db.Close()
}

func scanRecords(rows *sql.Rows) ([]models.Transaction, error) {
	var records []models.Transaction
	for rows.Next() {
		var rec models.Transaction
		err := rows.Scan(
			&rec.ID,
			&rec.FromAccount,
			&rec.ToAccount,
			&rec.Type,
			&rec.Amount,
			&rec.Description,
			&rec.Status,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

var _ interfaces.Archiver = (*Archiver)(nil)
