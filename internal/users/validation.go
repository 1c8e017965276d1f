package users

import (
	"github.com/garage-admin/garage/internal/platform/httpx"
)

// ErrEmailTaken reports an email already used by another account, compared
// case-insensitively.
var ErrEmailTaken = httpx.Invalid("email", "unique", "user with this email already exists.")

func (c Changes) apply(u *User) {
	if c.Email != nil {
		u.Email = *c.Email
	}
	if c.FirstName != nil {
		u.FirstName = *c.FirstName
	}
	if c.LastName != nil {
		u.LastName = *c.LastName
	}
	if c.IsActive != nil {
		u.IsActive = *c.IsActive
	}
}
