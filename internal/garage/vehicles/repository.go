package vehicles

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garage-admin/garage/internal/garage/clients"
	"github.com/garage-admin/garage/internal/platform/db"
	"github.com/garage-admin/garage/internal/platform/httpx"
	"github.com/garage-admin/garage/internal/shared"
)

// Repository defines persistence for vehicles.
type Repository interface {
	List(ctx context.Context, params shared.ListParams) ([]Detail, int, error)
	Get(ctx context.Context, id int64) (Detail, error)
	References(ctx context.Context, v Vehicle) (References, error)
	Create(ctx context.Context, v Vehicle) (Vehicle, error)
	Update(ctx context.Context, v Vehicle) (Vehicle, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// DetailColumns selects a vehicle with its type, brand and client.
const DetailColumns = `v.id, v.model, v.year, v.color, v.license_plate, v.kilometers,
	t.id, t.name, b.id, b.name, ` + clients.Columns

// DetailFrom is the FROM clause matching DetailColumns.
const DetailFrom = `vehicles v
	JOIN vehicle_types t ON t.id = v.type_id
	JOIN brands b ON b.id = v.brand_id
	JOIN clients c ON c.id = v.client_id
	` + clients.CreatorJoin

// ScanDetailTargets returns the scan destinations for DetailColumns. Call
// finish once the row was scanned.
func ScanDetailTargets(d *Detail) (targets []any, finish func()) {
	clientTargets, finish := clients.ScanTargets(&d.Client)
	targets = append([]any{&d.ID, &d.Model, &d.Year, &d.Color, &d.LicensePlate, &d.Kilometers,
		&d.Type.ID, &d.Type.Name, &d.Brand.ID, &d.Brand.Name}, clientTargets...)
	return targets, finish
}

func scanDetail(row pgx.Row) (Detail, error) {
	var d Detail
	targets, finish := ScanDetailTargets(&d)
	if err := row.Scan(targets...); err != nil {
		return Detail{}, err
	}
	finish()
	return d, nil
}

const flatColumns = `id, type_id, brand_id, model, year, color, license_plate, kilometers, client_id`

func scanVehicle(row pgx.Row) (Vehicle, error) {
	var v Vehicle
	err := row.Scan(&v.ID, &v.Type, &v.Brand, &v.Model, &v.Year, &v.Color, &v.LicensePlate, &v.Kilometers, &v.Client)
	return v, err
}

func (r *repository) List(ctx context.Context, params shared.ListParams) ([]Detail, int, error) {
	return db.List(ctx, r.pool, db.ListQuery{Select: DetailColumns, From: DetailFrom, Spec: Listing}, params,
		func(rows pgx.Rows) (Detail, error) { return scanDetail(rows) })
}

func (r *repository) Get(ctx context.Context, id int64) (Detail, error) {
	d, err := scanDetail(r.pool.QueryRow(ctx, `SELECT `+DetailColumns+` FROM `+DetailFrom+` WHERE v.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Detail{}, shared.ErrNotFound
	}
	if err != nil {
		return Detail{}, fmt.Errorf("vehicles: get: %w", err)
	}
	return d, nil
}

func (r *repository) References(ctx context.Context, v Vehicle) (References, error) {
	var refs References
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM vehicle_types WHERE id = $1),
		       EXISTS (SELECT 1 FROM brands WHERE id = $2),
		       EXISTS (SELECT 1 FROM clients WHERE id = $3)`,
		v.Type, v.Brand, v.Client).Scan(&refs.Type, &refs.Brand, &refs.Client)
	if err != nil {
		return References{}, fmt.Errorf("vehicles: references: %w", err)
	}
	return refs, nil
}

func (r *repository) Create(ctx context.Context, v Vehicle) (Vehicle, error) {
	created, err := scanVehicle(r.pool.QueryRow(ctx, `
		INSERT INTO vehicles (type_id, brand_id, model, year, color, license_plate, kilometers, client_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+flatColumns,
		v.Type, v.Brand, v.Model, v.Year, v.Color, v.LicensePlate, v.Kilometers, v.Client))
	if err != nil {
		return Vehicle{}, mapWriteError(err, v)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, v Vehicle) (Vehicle, error) {
	updated, err := scanVehicle(r.pool.QueryRow(ctx, `
		UPDATE vehicles
		SET type_id = $2, brand_id = $3, model = $4, year = $5, color = $6,
		    license_plate = $7, kilometers = $8, client_id = $9
		WHERE id = $1
		RETURNING `+flatColumns,
		v.ID, v.Type, v.Brand, v.Model, v.Year, v.Color, v.LicensePlate, v.Kilometers, v.Client))
	if errors.Is(err, pgx.ErrNoRows) {
		return Vehicle{}, shared.ErrNotFound
	}
	if err != nil {
		return Vehicle{}, mapWriteError(err, v)
	}
	return updated, nil
}

// Delete removes a vehicle and its services.
func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("vehicles: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// mapWriteError turns a foreign key race (row removed after the reference
// check) into the same field error the check reports.
func mapWriteError(err error, v Vehicle) error {
	switch {
	case db.IsForeignKeyViolation(err, "vehicles_type_id_fkey"):
		return httpx.Invalid("type", "does_not_exist", doesNotExist(v.Type))
	case db.IsForeignKeyViolation(err, "vehicles_brand_id_fkey"):
		return httpx.Invalid("brand", "does_not_exist", doesNotExist(v.Brand))
	case db.IsForeignKeyViolation(err, "vehicles_client_id_fkey"):
		return httpx.Invalid("client", "does_not_exist", doesNotExist(v.Client))
	}
	return fmt.Errorf("vehicles: write: %w", err)
}
