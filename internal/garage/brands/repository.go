package brands

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garage-admin/garage/internal/platform/db"
	"github.com/garage-admin/garage/internal/shared"
)

// Repository defines persistence for brands.
type Repository interface {
	List(ctx context.Context, params shared.ListParams) ([]Brand, int, error)
	Get(ctx context.Context, id int64) (Brand, error)
	// NameTaken compares natural keys, skipping excludeID.
	NameTaken(ctx context.Context, key string, excludeID int64) (bool, error)
	Create(ctx context.Context, b Brand) (Brand, error)
	Update(ctx context.Context, b Brand) (Brand, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func scanBrand(row pgx.Row) (Brand, error) {
	var b Brand
	err := row.Scan(&b.ID, &b.Name)
	return b, err
}

func (r *repository) List(ctx context.Context, params shared.ListParams) ([]Brand, int, error) {
	return db.List(ctx, r.pool, db.ListQuery{Select: "b.id, b.name", From: "brands b", Spec: Listing}, params,
		func(rows pgx.Rows) (Brand, error) { return scanBrand(rows) })
}

func (r *repository) Get(ctx context.Context, id int64) (Brand, error) {
	b, err := scanBrand(r.pool.QueryRow(ctx, `SELECT id, name FROM brands WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Brand{}, shared.ErrNotFound
	}
	if err != nil {
		return Brand{}, fmt.Errorf("brands: get: %w", err)
	}
	return b, nil
}

func (r *repository) NameTaken(ctx context.Context, key string, excludeID int64) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM brands WHERE name_key = $1 AND id <> $2)`, key, excludeID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("brands: name taken: %w", err)
	}
	return taken, nil
}

func (r *repository) Create(ctx context.Context, b Brand) (Brand, error) {
	created, err := scanBrand(r.pool.QueryRow(ctx,
		`INSERT INTO brands (name, name_key) VALUES ($1, $2) RETURNING id, name`,
		b.Name, shared.NaturalKey(b.Name)))
	if err != nil {
		return Brand{}, mapWriteError(err)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, b Brand) (Brand, error) {
	updated, err := scanBrand(r.pool.QueryRow(ctx,
		`UPDATE brands SET name = $2, name_key = $3 WHERE id = $1 RETURNING id, name`,
		b.ID, b.Name, shared.NaturalKey(b.Name)))
	if errors.Is(err, pgx.ErrNoRows) {
		return Brand{}, shared.ErrNotFound
	}
	if err != nil {
		return Brand{}, mapWriteError(err)
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if db.IsForeignKeyViolation(err, "vehicles_brand_id_fkey") {
		return ErrProtected
	}
	if err != nil {
		return fmt.Errorf("brands: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func mapWriteError(err error) error {
	if db.IsUniqueViolation(err, "brands_name_key_key") {
		return ErrNameTaken
	}
	return fmt.Errorf("brands: write: %w", err)
}
