package mysql

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"casarural/internal/adapters/observability"
	"casarural/internal/domain"
)

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Create(ctx context.Context, f domain.Fields) (string, error) {
	res, err := s.db.ExecContext(ctx, insertBookingSQL,
		f.Name, f.Email, f.Phone, f.Guests, f.DateIn, f.DateOut, f.Price)
	if err != nil {
		observability.ObserveStore("mysql", "create", "error")
		return "", err
	}
	id, err := res.LastInsertId()
	if err != nil {
		observability.ObserveStore("mysql", "create", "error")
		return "", err
	}
	observability.ObserveStore("mysql", "create", "ok")
	return strconv.FormatInt(id, 10), nil
}

func (s *Store) ListBookedDateRanges(ctx context.Context) ([]domain.DateRange, error) {
	rows, err := s.db.QueryContext(ctx, selectDateRangesSQL)
	if err != nil {
		observability.ObserveStore("mysql", "list_dates", "error")
		return nil, err
	}
	defer rows.Close()

	var out []domain.DateRange
	for rows.Next() {
		var dr domain.DateRange
		if err := rows.Scan(&dr.StartDate, &dr.EndDate); err != nil {
			observability.ObserveStore("mysql", "list_dates", "error")
			return nil, err
		}
		out = append(out, dr)
	}
	if err := rows.Err(); err != nil {
		observability.ObserveStore("mysql", "list_dates", "error")
		return nil, err
	}
	observability.ObserveStore("mysql", "list_dates", "ok")
	return out, nil
}

func (s *Store) ListAll(ctx context.Context) ([]domain.Booking, error) {
	rows, err := s.db.QueryContext(ctx, selectAllSQL)
	if err != nil {
		observability.ObserveStore("mysql", "list_all", "error")
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var id int64
		if err := rows.Scan(&id, &b.Name, &b.Email, &b.Phone, &b.Guests, &b.DateIn, &b.DateOut, &b.Price); err != nil {
			observability.ObserveStore("mysql", "list_all", "error")
			return nil, err
		}
		b.ID = strconv.FormatInt(id, 10)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		observability.ObserveStore("mysql", "list_all", "error")
		return nil, err
	}
	observability.ObserveStore("mysql", "list_all", "ok")
	return out, nil
}

// Update assembles SET clauses from the supplied fields only. MySQL reports
// zero affected rows both for a missing id and for a write that changed
// nothing, so a zero-row result re-checks existence; a no-op update on an
// existing booking succeeds, matching the Redis backend.
func (s *Store) Update(ctx context.Context, id string, p domain.Patch) error {
	sets := make([]string, 0, 7)
	args := make([]any, 0, 8)
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *p.Email)
	}
	if p.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *p.Phone)
	}
	if p.Guests != nil {
		sets = append(sets, "guests = ?")
		args = append(args, *p.Guests)
	}
	if p.DateIn != nil {
		sets = append(sets, "date_in = ?")
		args = append(args, *p.DateIn)
	}
	if p.DateOut != nil {
		sets = append(sets, "date_out = ?")
		args = append(args, *p.DateOut)
	}
	if p.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *p.Price)
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, updateBookingPrefix+strings.Join(sets, ", ")+updateBookingSuffix, args...)
	if err != nil {
		observability.ObserveStore("mysql", "update", "error")
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		observability.ObserveStore("mysql", "update", "error")
		return err
	}
	if n == 0 {
		var exists bool
		if err := s.db.QueryRowContext(ctx, existsSQL, id).Scan(&exists); err != nil {
			observability.ObserveStore("mysql", "update", "error")
			return err
		}
		if !exists {
			observability.ObserveStore("mysql", "update", "not_found")
			return domain.ErrNotFound
		}
	}
	observability.ObserveStore("mysql", "update", "ok")
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, deleteBookingSQL, id)
	if err != nil {
		observability.ObserveStore("mysql", "delete", "error")
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		observability.ObserveStore("mysql", "delete", "error")
		return err
	}
	if n == 0 {
		observability.ObserveStore("mysql", "delete", "not_found")
		return domain.ErrNotFound
	}
	observability.ObserveStore("mysql", "delete", "ok")
	return nil
}
