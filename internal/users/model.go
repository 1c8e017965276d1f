// Package users exposes user accounts over the /v1/users/ resource.
package users

import (
	"time"

	"github.com/garage-admin/garage/internal/shared"
)

// User is a user account. The password hash never leaves the server.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	IsActive     bool       `json:"is_active"`
	IsStaff      bool       `json:"is_staff"`
	LastLogin    *time.Time `json:"last_login"`
	IsSuperuser  bool       `json:"-"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"-"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Listing declares the searchable, orderable and filterable columns.
var Listing = shared.ListSpec{
	Search: []shared.Field{
		{Name: "first_name", Column: "u.first_name"},
		{Name: "last_name", Column: "u.last_name"},
		{Name: "email", Column: "u.email"},
	},
	Ordering: []shared.Field{
		{Name: "id", Column: "u.id"},
		{Name: "email", Column: "u.email"},
		{Name: "first_name", Column: "u.first_name"},
		{Name: "last_name", Column: "u.last_name"},
	},
	Filters: []shared.Field{
		{Name: "is_active", Column: "u.is_active", Kind: shared.KindBool},
		{Name: "is_staff", Column: "u.is_staff", Kind: shared.KindBool},
	},
	DefaultOrdering: []string{"u.last_name ASC", "u.first_name ASC", "u.id ASC"},
}
