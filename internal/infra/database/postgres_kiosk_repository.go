package database

import (
	"context"
	"database/sql"
	"fmt"

	"kiosk_pickup_scheduler/internal/domain/kiosk"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrKioskNotFound = fmt.Errorf("kiosk not found")

type PostgresKioskRepository struct {
	db *sql.DB
}

func NewPostgresKioskRepository(db *sql.DB) *PostgresKioskRepository {
	return &PostgresKioskRepository{db: db}
}

const kioskColumns = `id, name, current_amount, last_remark, business_days, schedule, service_bank, updated_at`

func (r *PostgresKioskRepository) ListByPartner(ctx context.Context, serviceBank string) ([]*kiosk.CollectionPoint, error) {
	query := `SELECT ` + kioskColumns + `
               FROM kiosks WHERE service_bank = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, serviceBank)
	if err != nil {
		return nil, fmt.Errorf("error listing kiosks for partner %q: %w", serviceBank, err)
	}
	defer rows.Close()
	return scanKiosks(rows)
}

func (r *PostgresKioskRepository) ListAll(ctx context.Context) ([]*kiosk.CollectionPoint, error) {
	query := `SELECT ` + kioskColumns + ` FROM kiosks ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing all kiosks: %w", err)
	}
	defer rows.Close()
	return scanKiosks(rows)
}

// ClearRemark blanks the remark of one kiosk. Invoked by the reset step once
// a scheduling remark has aged out of its dedup window.
func (r *PostgresKioskRepository) ClearRemark(ctx context.Context, kioskName string) error {
	query := `UPDATE kiosks SET last_remark = '', updated_at = NOW() WHERE name = $1`
	res, err := r.db.ExecContext(ctx, query, kioskName)
	if err != nil {
		return fmt.Errorf("error clearing remark for kiosk %q: %w", kioskName, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking cleared remark for kiosk %q: %w", kioskName, err)
	}
	if affected == 0 {
		return ErrKioskNotFound
	}
	return nil
}

func scanKiosks(rows *sql.Rows) ([]*kiosk.CollectionPoint, error) {
	kiosks := make([]*kiosk.CollectionPoint, 0)
	for rows.Next() {
		cp := &kiosk.CollectionPoint{}
		if err := rows.Scan(
			&cp.ID, &cp.Name, &cp.CurrentAmount, &cp.LastRemark,
			&cp.BusinessDays, &cp.Schedule, &cp.AssignedPartner, &cp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning kiosk row: %w", err)
		}
		kiosks = append(kiosks, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating kiosk rows: %w", err)
	}
	return kiosks, nil
}
