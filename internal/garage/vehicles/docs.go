package vehicles

import "github.com/garage-admin/garage/internal/apidoc"

// Doc describes the vehicles resource.
func Doc(pageSize int) apidoc.Resource {
	return apidoc.Resource{
		Name: "vehicles", Singular: "vehicle", Tag: "Vehicles",
		Schema: "Vehicle", ListSchema: "VehicleDetail",
		WriteSchema: "VehicleRequest", PatchSchema: "PatchedVehicleRequest",
		Listing: Listing, PageSize: pageSize,
	}
}

func fields(required bool) []apidoc.Property {
	return []apidoc.Property{
		{Name: "type", Type: "integer", Required: required},
		{Name: "brand", Type: "integer", Required: required},
		{Name: "model", Type: "string", MaxLength: 255, Required: required},
		{Name: "year", Type: "integer", Required: required},
		{Name: "color", Type: "string", MaxLength: 100, Required: required},
		{Name: "license_plate", Type: "string", MaxLength: 10, Required: required},
		{Name: "kilometers", Type: "integer", Required: required},
		{Name: "client", Type: "integer", Required: required},
	}
}

// Schemas returns the vehicle component schemas.
func Schemas() []apidoc.Schema {
	id := apidoc.Property{Name: "id", Type: "integer", ReadOnly: true, Required: true}
	return []apidoc.Schema{
		{Name: "Vehicle", Properties: append([]apidoc.Property{id}, fields(true)...)},
		{Name: "VehicleDetail", Properties: []apidoc.Property{
			id,
			{Name: "type", Ref: "VehicleType", Required: true},
			{Name: "brand", Ref: "Brand", Required: true},
			{Name: "model", Type: "string", Required: true},
			{Name: "year", Type: "integer", Required: true},
			{Name: "color", Type: "string", Required: true},
			{Name: "license_plate", Type: "string", Required: true},
			{Name: "kilometers", Type: "integer", Required: true},
			{Name: "client", Ref: "Client", Required: true},
		}},
		{Name: "VehicleRequest", Properties: fields(true)},
		{Name: "PatchedVehicleRequest", Properties: fields(false)},
	}
}
