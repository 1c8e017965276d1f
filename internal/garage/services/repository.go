package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garage-admin/garage/internal/garage/vehicles"
	"github.com/garage-admin/garage/internal/platform/db"
	"github.com/garage-admin/garage/internal/platform/httpx"
	"github.com/garage-admin/garage/internal/shared"
)

// Repository defines persistence for services.
type Repository interface {
	List(ctx context.Context, params shared.ListParams) ([]Detail, int, error)
	Get(ctx context.Context, id int64) (Detail, error)
	VehicleExists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, s Service) (Service, error)
	Update(ctx context.Context, s Service) (Service, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const detailColumns = `s.id, s.start_at, s.finish_at, s.symptoms, s.repairs, s.cost::text,
	s.is_paid, s.paid_date, s.kilometers, ` + vehicles.DetailColumns

const detailFrom = `services s JOIN ` + vehicles.DetailFrom

// flatColumns ends with the nullable cost and paid date, see scanFields.
const flatColumns = `id, vehicle_id, start_at, finish_at, symptoms, repairs, is_paid, kilometers,
	cost::text, paid_date`

// nullable holds the columns that need conversion after scanning.
type nullable struct {
	cost     *string
	paidDate *time.Time
}

func (n nullable) into(cost **shared.Money, paid **shared.Date) {
	*cost = shared.MoneyPtr(n.cost)
	*paid = nil
	if n.paidDate != nil {
		d := shared.NewDate(*n.paidDate)
		*paid = &d
	}
}

func scanDetail(row pgx.Row) (Detail, error) {
	var (
		d Detail
		n nullable
	)
	vehicleTargets, finish := vehicles.ScanDetailTargets(&d.Vehicle)
	targets := append([]any{&d.ID, &d.StartAt, &d.FinishAt, &d.Symptoms, &d.Repairs, &n.cost,
		&d.IsPaid, &n.paidDate, &d.Kilometers}, vehicleTargets...)
	if err := row.Scan(targets...); err != nil {
		return Detail{}, err
	}
	finish()
	n.into(&d.Cost, &d.PaidDate)
	return d, nil
}

func scanService(row pgx.Row) (Service, error) {
	var (
		s Service
		n nullable
	)
	err := row.Scan(&s.ID, &s.Vehicle, &s.StartAt, &s.FinishAt, &s.Symptoms, &s.Repairs,
		&s.IsPaid, &s.Kilometers, &n.cost, &n.paidDate)
	if err != nil {
		return Service{}, err
	}
	n.into(&s.Cost, &s.PaidDate)
	return s, nil
}

func (r *repository) List(ctx context.Context, params shared.ListParams) ([]Detail, int, error) {
	return db.List(ctx, r.pool, db.ListQuery{Select: detailColumns, From: detailFrom, Spec: Listing}, params,
		func(rows pgx.Rows) (Detail, error) { return scanDetail(rows) })
}

func (r *repository) Get(ctx context.Context, id int64) (Detail, error) {
	d, err := scanDetail(r.pool.QueryRow(ctx, `SELECT `+detailColumns+` FROM `+detailFrom+` WHERE s.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Detail{}, shared.ErrNotFound
	}
	if err != nil {
		return Detail{}, fmt.Errorf("services: get: %w", err)
	}
	return d, nil
}

func (r *repository) VehicleExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM vehicles WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("services: vehicle exists: %w", err)
	}
	return exists, nil
}

func writeArgs(s Service) []any {
	var cost *string
	if s.Cost != nil {
		v := string(*s.Cost)
		cost = &v
	}
	var paid *time.Time
	if s.PaidDate != nil {
		paid = &s.PaidDate.Time
	}
	return []any{s.Vehicle, s.StartAt, s.FinishAt, s.Symptoms, s.Repairs, cost, s.IsPaid, paid, s.Kilometers}
}

func (r *repository) Create(ctx context.Context, s Service) (Service, error) {
	created, err := scanService(r.pool.QueryRow(ctx, `
		INSERT INTO services (vehicle_id, start_at, finish_at, symptoms, repairs, cost, is_paid, paid_date, kilometers)
		VALUES ($1, $2, $3, $4, $5, $6::text::numeric, $7, $8, $9)
		RETURNING `+flatColumns, writeArgs(s)...))
	if err != nil {
		return Service{}, mapWriteError(err, s)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, s Service) (Service, error) {
	args := append([]any{s.ID}, writeArgs(s)...)
	updated, err := scanService(r.pool.QueryRow(ctx, `
		UPDATE services
		SET vehicle_id = $2, start_at = $3, finish_at = $4, symptoms = $5, repairs = $6,
		    cost = $7::text::numeric, is_paid = $8, paid_date = $9, kilometers = $10
		WHERE id = $1
		RETURNING `+flatColumns, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Service{}, shared.ErrNotFound
	}
	if err != nil {
		return Service{}, mapWriteError(err, s)
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("services: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func mapWriteError(err error, s Service) error {
	if db.IsForeignKeyViolation(err, "services_vehicle_id_fkey") {
		return httpx.Invalid("vehicle", "does_not_exist", doesNotExist(s.Vehicle))
	}
	return fmt.Errorf("services: write: %w", err)
}

func doesNotExist(id int64) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}
