// Package storage persists bills in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"time"

	"flatbot/internal/core/domain"

	_ "modernc.org/sqlite"
)

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

const schema = `
CREATE TABLE IF NOT EXISTS bills (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	token       TEXT NOT NULL UNIQUE,
	guild_id    TEXT NOT NULL,
	purpose     TEXT NOT NULL,
	receipt_url TEXT NOT NULL,
	created_by  TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS bill_shares (
	bill_id INTEGER NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
	name    TEXT NOT NULL,
	amount  INTEGER NOT NULL,
	paid    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (bill_id, name)
);`

var ErrBillNotFound = errors.New("bill not found")

type SQLiteStore struct {
	db *sql.DB
}

// Open opens the bill store, creating the schema if needed.
func Open(path string) (*SQLiteStore, error) {
	dsn := path + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateBill(ctx context.Context, bill *domain.Bill) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO bills (token, guild_id, purpose, receipt_url, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		bill.Token, string(bill.GuildID), bill.Purpose, bill.ReceiptURL, bill.CreatedBy,
		bill.CreatedAt.UTC().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to insert bill: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read bill id: %w", err)
	}

	for _, share := range bill.Shares {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO bill_shares (bill_id, name, amount, paid) VALUES (?, ?, ?, ?)`,
			id, share.Name, share.Amount, share.Paid); err != nil {
			return 0, fmt.Errorf("failed to insert share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit bill: %w", err)
	}

	return id, nil
}

func (s *SQLiteStore) GetBillByToken(ctx context.Context, token string) (*domain.Bill, error) {
	bill := &domain.Bill{}
	var createdAt int64
	var guildID string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, token, guild_id, purpose, receipt_url, created_by, created_at
		 FROM bills WHERE token = ?`, token).
		Scan(&bill.ID, &bill.Token, &guildID, &bill.Purpose, &bill.ReceiptURL, &bill.CreatedBy, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrBillNotFound, token)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query bill: %w", err)
	}

	bill.GuildID = domain.EntityID(guildID)
	bill.CreatedAt = fromMillis(createdAt)

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, amount, paid FROM bill_shares WHERE bill_id = ? ORDER BY rowid`, bill.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var share domain.Share
		if err := rows.Scan(&share.Name, &share.Amount, &share.Paid); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		bill.Shares = append(bill.Shares, share)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shares: %w", err)
	}

	return bill, nil
}

func (s *SQLiteStore) MarkPaid(ctx context.Context, token string, name string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE bill_shares SET paid = 1
		 WHERE name = ? AND bill_id = (SELECT id FROM bills WHERE token = ?)`, name, token)
	if err != nil {
		return fmt.Errorf("failed to mark share paid: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrBillNotFound, token)
	}

	return nil
}
