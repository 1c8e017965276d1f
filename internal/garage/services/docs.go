package services

import "github.com/garage-admin/garage/internal/apidoc"

// Doc describes the services resource.
func Doc(pageSize int) apidoc.Resource {
	return apidoc.Resource{
		Name: "services", Singular: "service", Tag: "Services",
		Schema: "Service", ListSchema: "ServiceDetail",
		WriteSchema: "ServiceRequest", PatchSchema: "PatchedServiceRequest",
		Listing: Listing, PageSize: pageSize,
	}
}

func fields(vehicle apidoc.Property, required bool) []apidoc.Property {
	return []apidoc.Property{
		vehicle,
		{Name: "start_at", Type: "string", Format: "date-time", Required: required},
		{Name: "finish_at", Type: "string", Format: "date-time", Nullable: true},
		{Name: "symptoms", Type: "string", Nullable: true},
		{Name: "repairs", Type: "string", Nullable: true},
		{Name: "cost", Type: "string", Format: "decimal", Nullable: true},
		{Name: "is_paid", Type: "boolean"},
		{Name: "paid_date", Type: "string", Format: "date", Nullable: true},
		{Name: "kilometers", Type: "integer", Required: required},
	}
}

// Schemas returns the service component schemas.
func Schemas() []apidoc.Schema {
	id := apidoc.Property{Name: "id", Type: "integer", ReadOnly: true, Required: true}
	vehicleID := func(required bool) apidoc.Property {
		return apidoc.Property{Name: "vehicle", Type: "integer", Required: required}
	}
	return []apidoc.Schema{
		{Name: "Service", Properties: append([]apidoc.Property{id}, fields(vehicleID(true), true)...)},
		{Name: "ServiceDetail", Properties: append([]apidoc.Property{id},
			fields(apidoc.Property{Name: "vehicle", Ref: "VehicleDetail", Required: true}, true)...)},
		{Name: "ServiceRequest", Properties: fields(vehicleID(true), true)},
		{Name: "PatchedServiceRequest", Properties: fields(vehicleID(false), false)},
	}
}
