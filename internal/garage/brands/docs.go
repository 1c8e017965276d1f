package brands

import "github.com/garage-admin/garage/internal/apidoc"

// Doc describes the brands resource.
func Doc(pageSize int) apidoc.Resource {
	return apidoc.Resource{
		Name: "brands", Singular: "brand", Tag: "Brands",
		Schema: "Brand", WriteSchema: "BrandRequest", PatchSchema: "PatchedBrandRequest",
		Listing: Listing, PageSize: pageSize,
	}
}

// Schemas returns the brand component schemas.
func Schemas() []apidoc.Schema {
	return []apidoc.Schema{
		{Name: "Brand", Properties: []apidoc.Property{
			{Name: "id", Type: "integer", ReadOnly: true, Required: true},
			{Name: "name", Type: "string", MaxLength: 100, Required: true},
		}},
		{Name: "BrandRequest", Properties: []apidoc.Property{
			{Name: "name", Type: "string", MaxLength: 100, Required: true},
		}},
		{Name: "PatchedBrandRequest", Properties: []apidoc.Property{
			{Name: "name", Type: "string", MaxLength: 100},
		}},
	}
}
