package vehicles

// VehicleRequest is the body of POST and PUT requests.
type VehicleRequest struct {
	Type         *int64  `json:"type" validate:"required"`
	Brand        *int64  `json:"brand" validate:"required"`
	Model        *string `json:"model" validate:"required,notblank,max=255"`
	Year         *int    `json:"year" validate:"required,min=-2147483648,max=2147483647"`
	Color        *string `json:"color" validate:"required,notblank,max=100"`
	LicensePlate *string `json:"license_plate" validate:"required,notblank,max=10"`
	Kilometers   *int    `json:"kilometers" validate:"required,min=-2147483648,max=2147483647"`
	Client       *int64  `json:"client" validate:"required"`
}

// PatchVehicleRequest is the body of PATCH requests.
type PatchVehicleRequest struct {
	Type         *int64  `json:"type"`
	Brand        *int64  `json:"brand"`
	Model        *string `json:"model" validate:"omitempty,notblank,max=255"`
	Year         *int    `json:"year" validate:"omitempty,min=-2147483648,max=2147483647"`
	Color        *string `json:"color" validate:"omitempty,notblank,max=100"`
	LicensePlate *string `json:"license_plate" validate:"omitempty,notblank,max=10"`
	Kilometers   *int    `json:"kilometers" validate:"omitempty,min=-2147483648,max=2147483647"`
	Client       *int64  `json:"client"`
}

// Changes is the set of fields a write touches.
type Changes PatchVehicleRequest

// Changes converts the request.
func (r VehicleRequest) Changes() Changes { return Changes(r) }

// Changes converts the request.
func (r PatchVehicleRequest) Changes() Changes { return Changes(r) }

func (c Changes) apply(v *Vehicle) {
	setInt64(&v.Type, c.Type)
	setInt64(&v.Brand, c.Brand)
	setString(&v.Model, c.Model)
	setInt(&v.Year, c.Year)
	setString(&v.Color, c.Color)
	setString(&v.LicensePlate, c.LicensePlate)
	setInt(&v.Kilometers, c.Kilometers)
	setInt64(&v.Client, c.Client)
}

func setInt64(dst *int64, src *int64) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
