// Package clients exposes garage customers over /v1/clients/.
package clients

import (
	"time"

	"github.com/garage-admin/garage/internal/shared"
)

// Creator is the compact view of the user who registered a client.
type Creator struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

// Client is a garage customer.
type Client struct {
	ID        int64     `json:"id"`
	CreatedBy *Creator  `json:"created_by"`
	IsActive  bool      `json:"is_active"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Company   *string   `json:"company"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	City      *string   `json:"city"`
	State     *string   `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName joins first and last name.
func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Listing declares the searchable, orderable and filterable columns.
var Listing = shared.ListSpec{
	Search: []shared.Field{
		{Name: "last_name", Column: "c.last_name"},
		{Name: "first_name", Column: "c.first_name"},
		{Name: "email", Column: "c.email"},
	},
	Ordering: []shared.Field{
		{Name: "id", Column: "c.id"},
		{Name: "last_name", Column: "c.last_name"},
		{Name: "is_active", Column: "c.is_active"},
	},
	Filters: []shared.Field{
		{Name: "is_active", Column: "c.is_active", Kind: shared.KindBool},
	},
	DefaultOrdering: []string{"c.last_name ASC", "c.first_name ASC", "c.id ASC"},
}
