package vehicletypes

import "github.com/garage-admin/garage/internal/apidoc"

// Doc describes the types resource.
func Doc(pageSize int) apidoc.Resource {
	return apidoc.Resource{
		Name: "types", Singular: "vehicle type", Tag: "Vehicle types",
		Schema: "VehicleType", WriteSchema: "VehicleTypeRequest", PatchSchema: "PatchedVehicleTypeRequest",
		Listing: Listing, PageSize: pageSize,
	}
}

// Schemas returns the vehicle type component schemas.
func Schemas() []apidoc.Schema {
	return []apidoc.Schema{
		{Name: "VehicleType", Properties: []apidoc.Property{
			{Name: "id", Type: "integer", ReadOnly: true, Required: true},
			{Name: "name", Type: "string", MaxLength: 100, Required: true},
		}},
		{Name: "VehicleTypeRequest", Properties: []apidoc.Property{
			{Name: "name", Type: "string", MaxLength: 100, Required: true},
		}},
		{Name: "PatchedVehicleTypeRequest", Properties: []apidoc.Property{
			{Name: "name", Type: "string", MaxLength: 100},
		}},
	}
}
