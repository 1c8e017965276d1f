package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garage-admin/garage/internal/platform/db"
	"github.com/garage-admin/garage/internal/shared"
)

// Repository defines persistence for clients.
type Repository interface {
	List(ctx context.Context, params shared.ListParams) ([]Client, int, error)
	Get(ctx context.Context, id int64) (Client, error)
	Create(ctx context.Context, c Client, createdBy int64) (Client, error)
	Update(ctx context.Context, c Client) (Client, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// Columns is the select list of a client joined with its creator, shared with
// the packages that embed clients in their responses.
const Columns = `c.id, c.is_active, c.first_name, c.last_name, c.company, c.email, c.phone,
	c.address, c.city, c.state, c.created_at, cu.id, cu.first_name, cu.last_name`

// CreatorJoin joins the creator of client alias c.
const CreatorJoin = `LEFT JOIN users cu ON cu.id = c.created_by`

// From is the FROM clause matching Columns.
const From = `clients c ` + CreatorJoin

// ScanTargets returns the scan destinations for Columns. Call finish once the
// row was scanned.
func ScanTargets(c *Client) (targets []any, finish func()) {
	var (
		creatorID    *int64
		creatorFirst *string
		creatorLast  *string
	)
	targets = []any{&c.ID, &c.IsActive, &c.FirstName, &c.LastName, &c.Company, &c.Email, &c.Phone,
		&c.Address, &c.City, &c.State, &c.CreatedAt, &creatorID, &creatorFirst, &creatorLast}
	finish = func() {
		c.CreatedBy = nil
		if creatorID != nil {
			c.CreatedBy = &Creator{ID: *creatorID, FullName: deref(creatorFirst) + " " + deref(creatorLast)}
		}
	}
	return targets, finish
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func scanClient(row pgx.Row) (Client, error) {
	var c Client
	targets, finish := ScanTargets(&c)
	if err := row.Scan(targets...); err != nil {
		return Client{}, err
	}
	finish()
	return c, nil
}

func (r *repository) List(ctx context.Context, params shared.ListParams) ([]Client, int, error) {
	return db.List(ctx, r.pool, db.ListQuery{Select: Columns, From: From, Spec: Listing}, params,
		func(rows pgx.Rows) (Client, error) { return scanClient(rows) })
}

func (r *repository) Get(ctx context.Context, id int64) (Client, error) {
	c, err := scanClient(r.pool.QueryRow(ctx, `SELECT `+Columns+` FROM `+From+` WHERE c.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Client{}, shared.ErrNotFound
	}
	if err != nil {
		return Client{}, fmt.Errorf("clients: get: %w", err)
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, c Client, createdBy int64) (Client, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO clients (is_active, first_name, last_name, company, email, phone, address, city, state, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		c.IsActive, c.FirstName, c.LastName, c.Company, c.Email, c.Phone, c.Address, c.City, c.State, createdBy,
	).Scan(&id)
	if err != nil {
		return Client{}, fmt.Errorf("clients: create: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *repository) Update(ctx context.Context, c Client) (Client, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE clients
		SET is_active = $2, first_name = $3, last_name = $4, company = $5, email = $6,
		    phone = $7, address = $8, city = $9, state = $10
		WHERE id = $1`,
		c.ID, c.IsActive, c.FirstName, c.LastName, c.Company, c.Email, c.Phone, c.Address, c.City, c.State)
	if err != nil {
		return Client{}, fmt.Errorf("clients: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Client{}, shared.ErrNotFound
	}
	return r.Get(ctx, c.ID)
}

// Delete removes a client together with its vehicles and their services.
func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("clients: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
