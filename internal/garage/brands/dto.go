package brands

// BrandRequest is the body of POST and PUT requests.
type BrandRequest struct {
	Name *string `json:"name" validate:"required,notblank,max=100"`
}

// PatchBrandRequest is the body of PATCH requests.
type PatchBrandRequest struct {
	Name *string `json:"name" validate:"omitempty,notblank,max=100"`
}
