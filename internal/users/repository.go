package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garage-admin/garage/internal/platform/db"
	"github.com/garage-admin/garage/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	List(ctx context.Context, params shared.ListParams) ([]User, int, error)
	Get(ctx context.Context, id int64) (User, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, u User) (User, error)
	Delete(ctx context.Context, id int64) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `u.id, u.email, u.first_name, u.last_name, u.is_active, u.is_staff, u.is_superuser, u.last_login, u.password, u.created_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.IsActive, &u.IsStaff,
		&u.IsSuperuser, &u.LastLogin, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// List returns one page of users.
func (r *Repository) List(ctx context.Context, params shared.ListParams) ([]User, int, error) {
	return db.List(ctx, r.pool, db.ListQuery{Select: userColumns, From: "users u", Spec: Listing}, params,
		func(rows pgx.Rows) (User, error) { return scanUser(rows) })
}

// Get loads a user by id.
func (r *Repository) Get(ctx context.Context, id int64) (User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, shared.ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("users: get: %w", err)
	}
	return u, nil
}

// EmailTaken reports whether another account already uses email.
func (r *Repository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1) AND id <> $2)`,
		email, excludeID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("users: email taken: %w", err)
	}
	return taken, nil
}

// Create inserts u and returns the stored row.
func (r *Repository) Create(ctx context.Context, u User) (User, error) {
	created, err := scanUser(r.pool.QueryRow(ctx, `
		INSERT INTO users AS u (email, password, first_name, last_name, is_active, is_staff, is_superuser)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.IsActive, u.IsStaff, u.IsSuperuser))
	if err != nil {
		return User{}, mapWriteError(err)
	}
	return created, nil
}

// Update stores every mutable column of u.
func (r *Repository) Update(ctx context.Context, u User) (User, error) {
	updated, err := scanUser(r.pool.QueryRow(ctx, `
		UPDATE users AS u
		SET email = $2, password = $3, first_name = $4, last_name = $5, is_active = $6
		WHERE u.id = $1
		RETURNING `+userColumns,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.IsActive))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, shared.ErrNotFound
	}
	if err != nil {
		return User{}, mapWriteError(err)
	}
	return updated, nil
}

// Delete removes a user.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("users: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func mapWriteError(err error) error {
	if db.IsUniqueViolation(err, "users_email_key") {
		return ErrEmailTaken
	}
	return fmt.Errorf("users: write: %w", err)
}

var _ RepositoryPort = (*Repository)(nil)
