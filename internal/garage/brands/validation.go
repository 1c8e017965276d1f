package brands

import (
	"strings"

	"github.com/garage-admin/garage/internal/platform/httpx"
)

// ErrNameTaken reports a brand name already used, compared case-insensitively.
var ErrNameTaken = httpx.Invalid("name", "unique", "brand with this name already exists.")

// ErrProtected reports a brand still referenced by vehicles.
var ErrProtected = httpx.Invalid("", "protected",
	"Cannot delete some instances of model 'Brand' because they are referenced through protected foreign keys: 'Vehicle.brand'.")

func normalizeName(name string) string {
	return strings.TrimSpace(name)
}
