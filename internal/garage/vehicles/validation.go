package vehicles

import (
	"fmt"

	"github.com/garage-admin/garage/internal/platform/httpx"
)

// References reports which foreign keys of a vehicle point at existing rows.
type References struct {
	Type   bool
	Brand  bool
	Client bool
}

// check converts missing references into field errors in declaration order.
func (r References) check(v Vehicle) error {
	var errs httpx.FieldErrors
	if !r.Type {
		errs.Add("type", "does_not_exist", doesNotExist(v.Type))
	}
	if !r.Brand {
		errs.Add("brand", "does_not_exist", doesNotExist(v.Brand))
	}
	if !r.Client {
		errs.Add("client", "does_not_exist", doesNotExist(v.Client))
	}
	return errs.Err()
}

func doesNotExist(id int64) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}
