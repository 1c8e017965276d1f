package users

import "github.com/garage-admin/garage/internal/apidoc"

// Doc describes the users resource for the API document.
func Doc(pageSize int) apidoc.Resource {
	return apidoc.Resource{
		Name: "users", Singular: "user", Tag: "Users",
		Schema: "User", WriteSchema: "UserRequest", PatchSchema: "PatchedUserRequest",
		Listing: Listing, PageSize: pageSize, SelfOrAdmin: true,
	}
}

// Schemas returns the component schemas of the users resource.
func Schemas() []apidoc.Schema {
	return []apidoc.Schema{
		{Name: "User", Properties: []apidoc.Property{
			{Name: "id", Type: "integer", ReadOnly: true, Required: true},
			{Name: "email", Type: "string", Format: "email", MaxLength: 255, Required: true},
			{Name: "first_name", Type: "string", MaxLength: 100, Required: true},
			{Name: "last_name", Type: "string", MaxLength: 100, Required: true},
			{Name: "is_active", Type: "boolean"},
			{Name: "is_staff", Type: "boolean", ReadOnly: true},
			{Name: "last_login", Type: "string", Format: "date-time", ReadOnly: true, Nullable: true},
		}},
		{Name: "UserRequest", Properties: []apidoc.Property{
			{Name: "email", Type: "string", Format: "email", MaxLength: 255, Required: true},
			{Name: "password", Type: "string", WriteOnly: true, Required: true},
			{Name: "first_name", Type: "string", MaxLength: 100, Required: true},
			{Name: "last_name", Type: "string", MaxLength: 100, Required: true},
			{Name: "is_active", Type: "boolean"},
		}},
		{Name: "PatchedUserRequest", Properties: []apidoc.Property{
			{Name: "email", Type: "string", Format: "email", MaxLength: 255},
			{Name: "password", Type: "string", WriteOnly: true},
			{Name: "first_name", Type: "string", MaxLength: 100},
			{Name: "last_name", Type: "string", MaxLength: 100},
			{Name: "is_active", Type: "boolean"},
		}},
	}
}
