package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"Alcove/internal/core/accounts"
)

type postgresAccountRepo struct {
	db *sql.DB
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(db *sql.DB) accounts.Repository {
	return &postgresAccountRepo{db: db}
}

// Load returns the stored accounts ordered by position and the selected
// index. An empty table yields a nil slice and index 0.
func (r *postgresAccountRepo) Load(ctx context.Context) ([]accounts.Account, int, error) {
	query := `
		SELECT id, instance, token, display_name, selected, created_at
		FROM accounts
		ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load accounts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var list []accounts.Account
	selected := 0
	for rows.Next() {
		var account accounts.Account
		var token sql.NullString
		var isSelected bool
		if err := rows.Scan(&account.ID, &account.Instance, &token, &account.DisplayName, &isSelected, &account.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan account row: %w", err)
		}
		account.Token = token.String
		if isSelected {
			selected = len(list)
		}
		list = append(list, account)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating account rows: %w", err)
	}

	return list, selected, nil
}

// Save replaces the stored list and selected index atomically. The whole
// list is small (one row per signed-in instance), so a delete-and-insert
// inside one transaction is simpler than diffing.
func (r *postgresAccountRepo) Save(ctx context.Context, list []accounts.Account, selected int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("failed to rollback transaction", slog.String("error", err.Error()))
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("failed to clear accounts: %w", err)
	}

	query := `
		INSERT INTO accounts (position, instance, token, display_name, selected, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for i, account := range list {
		var token sql.NullString
		if account.Token != "" {
			token = sql.NullString{String: account.Token, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, query, i, account.Instance, token, account.DisplayName, i == selected, account.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert account for %s: %w", account.Instance, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
