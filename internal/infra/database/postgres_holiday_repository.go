package database

import (
	"context"
	"database/sql"
	"fmt"

	"kiosk_pickup_scheduler/internal/domain/calendar"
)

type PostgresHolidayRepository struct {
	db *sql.DB
}

func NewPostgresHolidayRepository(db *sql.DB) *PostgresHolidayRepository {
	return &PostgresHolidayRepository{db: db}
}

func (r *PostgresHolidayRepository) ListAll(ctx context.Context) ([]calendar.Holiday, error) {
	query := `SELECT holiday_date, name, holiday_type FROM holidays ORDER BY holiday_date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing holidays: %w", err)
	}
	defer rows.Close()

	holidays := make([]calendar.Holiday, 0)
	for rows.Next() {
		var h calendar.Holiday
		if err := rows.Scan(&h.Date, &h.Name, &h.Type); err != nil {
			return nil, fmt.Errorf("error scanning holiday row: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holiday rows: %w", err)
	}
	return holidays, nil
}
