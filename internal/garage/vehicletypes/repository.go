package vehicletypes

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garage-admin/garage/internal/platform/db"
	"github.com/garage-admin/garage/internal/platform/httpx"
	"github.com/garage-admin/garage/internal/shared"
)

// ErrProtected reports a type still referenced by vehicles.
var ErrProtected = httpx.Invalid("", "protected",
	"Cannot delete some instances of model 'Type' because they are referenced through protected foreign keys: 'Vehicle.type'.")

// Repository defines persistence for vehicle types.
type Repository interface {
	List(ctx context.Context, params shared.ListParams) ([]Type, int, error)
	Get(ctx context.Context, id int64) (Type, error)
	Create(ctx context.Context, name string) (Type, error)
	Update(ctx context.Context, t Type) (Type, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func scanType(row pgx.Row) (Type, error) {
	var t Type
	err := row.Scan(&t.ID, &t.Name)
	return t, err
}

func (r *repository) List(ctx context.Context, params shared.ListParams) ([]Type, int, error) {
	return db.List(ctx, r.pool, db.ListQuery{Select: "t.id, t.name", From: "vehicle_types t", Spec: Listing}, params,
		func(rows pgx.Rows) (Type, error) { return scanType(rows) })
}

func (r *repository) Get(ctx context.Context, id int64) (Type, error) {
	t, err := scanType(r.pool.QueryRow(ctx, `SELECT id, name FROM vehicle_types WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Type{}, shared.ErrNotFound
	}
	if err != nil {
		return Type{}, fmt.Errorf("vehicletypes: get: %w", err)
	}
	return t, nil
}

func (r *repository) Create(ctx context.Context, name string) (Type, error) {
	t, err := scanType(r.pool.QueryRow(ctx, `INSERT INTO vehicle_types (name) VALUES ($1) RETURNING id, name`, name))
	if err != nil {
		return Type{}, fmt.Errorf("vehicletypes: create: %w", err)
	}
	return t, nil
}

func (r *repository) Update(ctx context.Context, t Type) (Type, error) {
	updated, err := scanType(r.pool.QueryRow(ctx, `UPDATE vehicle_types SET name = $2 WHERE id = $1 RETURNING id, name`, t.ID, t.Name))
	if errors.Is(err, pgx.ErrNoRows) {
		return Type{}, shared.ErrNotFound
	}
	if err != nil {
		return Type{}, fmt.Errorf("vehicletypes: update: %w", err)
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vehicle_types WHERE id = $1`, id)
	if db.IsForeignKeyViolation(err, "vehicles_type_id_fkey") {
		return ErrProtected
	}
	if err != nil {
		return fmt.Errorf("vehicletypes: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
