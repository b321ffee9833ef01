package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"kiosk_pickup_scheduler/internal/domain/collection"

	"github.com/lib/pq" // For pq.Array and driver registration
)

// Custom errors specific to the pickup request repository
var ErrRequestNotFound = fmt.Errorf("pickup request not found")

// Request row statuses.
const (
	requestStatusOpen   = "OPEN"
	requestStatusClosed = "CLOSED"
)

// PostgresRequestRepository persists issued pickup requests. Open rows are
// the cross-run dedup set; the reset step closes them after the dedup window.
type PostgresRequestRepository struct {
	db *sql.DB
}

func NewPostgresRequestRepository(db *sql.DB) *PostgresRequestRepository {
	return &PostgresRequestRepository{db: db}
}

func (r *PostgresRequestRepository) ListOpenNames(ctx context.Context, serviceBank string) (map[string]bool, error) {
	query := `SELECT kiosk_name FROM pickup_requests
               WHERE service_bank = $1 AND status = $2`
	rows, err := r.db.QueryContext(ctx, query, serviceBank, requestStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("error listing open requests for %q: %w", serviceBank, err)
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning open request row: %w", err)
		}
		names[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating open request rows: %w", err)
	}
	return names, nil
}

func (r *PostgresRequestRepository) RecordBatch(ctx context.Context, batch collection.Batch) error {
	if len(batch.Requests) == 0 {
		return nil
	}

	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for batch record: %w", err)
	}
	defer txn.Rollback() // Rollback if not committed

	stmt, err := txn.PrepareContext(ctx, `INSERT INTO pickup_requests
               (kiosk_name, display_name, amount, service_bank, subject, raw_remark, target_date, status, created_at)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
               ON CONFLICT (kiosk_name, service_bank, target_date) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for batch record: %w", err)
	}
	defer stmt.Close()

	for _, req := range batch.Requests {
		_, err := stmt.ExecContext(ctx, req.Kiosk, req.DisplayName, req.Amount,
			req.Partner, req.Subject, req.RawRemark, batch.TargetDate, requestStatusOpen)
		if err != nil {
			return fmt.Errorf("error recording request for kiosk %q: %w", req.Kiosk, err)
		}
	}

	return txn.Commit()
}

func (r *PostgresRequestRepository) CloseBefore(ctx context.Context, serviceBank string, cutoff time.Time) error {
	query := `UPDATE pickup_requests SET status = $1
               WHERE service_bank = $2 AND status = $3 AND target_date < $4`
	_, err := r.db.ExecContext(ctx, query, requestStatusClosed, serviceBank, requestStatusOpen, cutoff)
	if err != nil {
		return fmt.Errorf("error closing expired requests for %q: %w", serviceBank, err)
	}
	return nil
}

// ListByNames returns open requests for the given kiosk names, used by the
// ops bot status command.
func (r *PostgresRequestRepository) ListByNames(ctx context.Context, serviceBank string, names []string) ([]*collection.PickupRequest, error) {
	query := `SELECT kiosk_name, display_name, amount, service_bank, subject, raw_remark
               FROM pickup_requests
               WHERE service_bank = $1 AND status = $2 AND kiosk_name = ANY($3::varchar[])
               ORDER BY kiosk_name`
	rows, err := r.db.QueryContext(ctx, query, serviceBank, requestStatusOpen, pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("error listing requests by names: %w", err)
	}
	defer rows.Close()

	requests := make([]*collection.PickupRequest, 0)
	for rows.Next() {
		req := &collection.PickupRequest{}
		if err := rows.Scan(&req.Kiosk, &req.DisplayName, &req.Amount, &req.Partner, &req.Subject, &req.RawRemark); err != nil {
			return nil, fmt.Errorf("error scanning request row: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating request rows: %w", err)
	}
	return requests, nil
}
