package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Alcove/internal/core/oauth"
)

// OAuthStateRepo implements oauth.StateStore. It is returned concrete so
// callers can also reach DeleteExpired for the periodic sweep.
type OAuthStateRepo struct {
	db *sql.DB
}

var _ oauth.StateStore = (*OAuthStateRepo)(nil)

// NewOAuthStateRepository creates a new PostgreSQL OAuth state store
func NewOAuthStateRepository(db *sql.DB) *OAuthStateRepo {
	return &OAuthStateRepo{db: db}
}

// Create stores a pending authorization attempt keyed by its state token.
func (r *OAuthStateRepo) Create(ctx context.Context, record oauth.StateRecord) error {
	query := `
		INSERT INTO oauth_states (state, provider_id, instance, redirect_uri, expires_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, record.State, record.ProviderID, record.Instance, record.RedirectURI, record.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create oauth state: %w", err)
	}
	return nil
}

// Get returns the record for a state token, or oauth.ErrStateNotFound.
func (r *OAuthStateRepo) Get(ctx context.Context, state string) (*oauth.StateRecord, error) {
	record := &oauth.StateRecord{}
	query := `
		SELECT state, provider_id, instance, redirect_uri, expires_at
		FROM oauth_states
		WHERE state = $1`

	err := r.db.QueryRowContext(ctx, query, state).
		Scan(&record.State, &record.ProviderID, &record.Instance, &record.RedirectURI, &record.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, oauth.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth state: %w", err)
	}
	return record, nil
}

// Delete removes a record. Deleting an unknown state is not an error.
func (r *OAuthStateRepo) Delete(ctx context.Context, state string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM oauth_states WHERE state = $1`, state); err != nil {
		return fmt.Errorf("failed to delete oauth state: %w", err)
	}
	return nil
}

// DeleteExpired sweeps records whose window has passed. Called
// periodically; abandoned attempts otherwise accumulate forever.
func (r *OAuthStateRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM oauth_states WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired oauth states: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count expired oauth states: %w", err)
	}
	return n, nil
}
