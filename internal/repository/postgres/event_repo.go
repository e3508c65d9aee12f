package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventhub/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, date, location, total_slots, available_slots, status, is_paid, price, organizer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	var price sql.NullFloat64
	if e.Price != nil {
		price = sql.NullFloat64{Float64: *e.Price, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		e.Name, e.Description, e.Date, e.Location, e.TotalSlots, e.AvailableSlots,
		string(e.Status), e.IsPaid, price, e.OrganizerID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, description, date, location, total_slots, available_slots, status, is_paid, price, organizer_id, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, onlyApproved bool) ([]*domain.Event, error) {
	query := `
		SELECT id, name, description, date, location, total_slots, available_slots, status, is_paid, price, organizer_id, created_at, updated_at
		FROM events
		ORDER BY date ASC
	`
	if onlyApproved {
		query = `
		SELECT id, name, description, date, location, total_slots, available_slots, status, is_paid, price, organizer_id, created_at, updated_at
		FROM events
		WHERE status = 'approved'
		ORDER BY date ASC
	`
	}
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Approve(ctx context.Context, id string) error {
	query := `UPDATE events SET status = 'approved', updated_at = NOW() WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReserveSlot is the single atomic step of the reservation protocol. The
// conditional UPDATE matches at most one row; under concurrent requests for
// the last seat exactly one statement reports an affected row.
func (r *eventRepository) ReserveSlot(ctx context.Context, id string) error {
	query := `
		UPDATE events
		SET available_slots = available_slots - 1, updated_at = NOW()
		WHERE id = $1 AND status = 'approved' AND available_slots > 0
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEventFull
	}
	return nil
}

func (r *eventRepository) ReleaseSlot(ctx context.Context, id string) error {
	query := `
		UPDATE events
		SET available_slots = available_slots + 1, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var status string
	var priceNull sql.NullFloat64
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Date, &e.Location,
		&e.TotalSlots, &e.AvailableSlots, &status, &e.IsPaid, &priceNull,
		&e.OrganizerID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Status = domain.EventStatus(status)
	if priceNull.Valid {
		e.Price = &priceNull.Float64
	}
	return e, nil
}
