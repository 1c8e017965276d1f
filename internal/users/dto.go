package users

// CreateUserRequest is the body of POST and PUT requests.
type CreateUserRequest struct {
	Email     *string `json:"email" validate:"required,notblank,email,max=255"`
	Password  *string `json:"password" validate:"required,min=8"`
	FirstName *string `json:"first_name" validate:"required,notblank,max=100"`
	LastName  *string `json:"last_name" validate:"required,notblank,max=100"`
	IsActive  *bool   `json:"is_active"`
}

// UpdateUserRequest is the body of PATCH requests; absent fields are kept.
type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,notblank,email,max=255"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
	FirstName *string `json:"first_name" validate:"omitempty,notblank,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,notblank,max=100"`
	IsActive  *bool   `json:"is_active"`
}

// Changes is the set of fields a write touches.
type Changes struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	IsActive  *bool
}

// Changes converts the request.
func (r CreateUserRequest) Changes() Changes {
	return Changes{Email: r.Email, Password: r.Password, FirstName: r.FirstName, LastName: r.LastName, IsActive: r.IsActive}
}

// Changes converts the request.
func (r UpdateUserRequest) Changes() Changes {
	return Changes(r)
}
