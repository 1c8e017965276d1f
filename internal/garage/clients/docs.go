package clients

import "github.com/garage-admin/garage/internal/apidoc"

// Doc describes the clients resource.
func Doc(pageSize int) apidoc.Resource {
	return apidoc.Resource{
		Name: "clients", Singular: "client", Tag: "Clients",
		Schema: "Client", WriteSchema: "ClientRequest", PatchSchema: "PatchedClientRequest",
		Listing: Listing, PageSize: pageSize,
	}
}

func writeProperties(required bool) []apidoc.Property {
	return []apidoc.Property{
		{Name: "is_active", Type: "boolean"},
		{Name: "first_name", Type: "string", MaxLength: 100, Required: required},
		{Name: "last_name", Type: "string", MaxLength: 100, Required: required},
		{Name: "company", Type: "string", MaxLength: 100, Nullable: true},
		{Name: "email", Type: "string", Format: "email", MaxLength: 255, Nullable: true},
		{Name: "phone", Type: "string", MaxLength: 20, Nullable: true},
		{Name: "address", Type: "string", MaxLength: 255, Nullable: true},
		{Name: "city", Type: "string", MaxLength: 100, Nullable: true},
		{Name: "state", Type: "string", MaxLength: 100, Nullable: true},
	}
}

// Schemas returns the client component schemas.
func Schemas() []apidoc.Schema {
	read := append([]apidoc.Property{
		{Name: "id", Type: "integer", ReadOnly: true, Required: true},
		{Name: "created_by", Ref: "ClientUserDetails", ReadOnly: true, Nullable: true},
	}, writeProperties(true)...)
	read = append(read, apidoc.Property{Name: "created_at", Type: "string", Format: "date-time", ReadOnly: true})

	return []apidoc.Schema{
		{Name: "ClientUserDetails", Properties: []apidoc.Property{
			{Name: "id", Type: "integer", ReadOnly: true, Required: true},
			{Name: "full_name", Type: "string", ReadOnly: true, Required: true},
		}},
		{Name: "Client", Properties: read},
		{Name: "ClientRequest", Properties: writeProperties(true)},
		{Name: "PatchedClientRequest", Properties: writeProperties(false)},
	}
}
