package clients

// ClientRequest is the body of POST and PUT requests. Optional fields left
// out of a PUT keep their stored value.
type ClientRequest struct {
	IsActive  *bool   `json:"is_active"`
	FirstName *string `json:"first_name" validate:"required,notblank,max=100"`
	LastName  *string `json:"last_name" validate:"required,notblank,max=100"`
	Company   *string `json:"company" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	Address   *string `json:"address" validate:"omitempty,max=255"`
	City      *string `json:"city" validate:"omitempty,max=100"`
	State     *string `json:"state" validate:"omitempty,max=100"`
}

// PatchClientRequest is the body of PATCH requests.
type PatchClientRequest struct {
	IsActive  *bool   `json:"is_active"`
	FirstName *string `json:"first_name" validate:"omitempty,notblank,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,notblank,max=100"`
	Company   *string `json:"company" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	Address   *string `json:"address" validate:"omitempty,max=255"`
	City      *string `json:"city" validate:"omitempty,max=100"`
	State     *string `json:"state" validate:"omitempty,max=100"`
}

// Changes is the set of fields a write touches.
type Changes PatchClientRequest

// Changes converts the request.
func (r ClientRequest) Changes() Changes { return Changes(r) }

// Changes converts the request.
func (r PatchClientRequest) Changes() Changes { return Changes(r) }

func (c Changes) apply(cl *Client) {
	if c.IsActive != nil {
		cl.IsActive = *c.IsActive
	}
	if c.FirstName != nil {
		cl.FirstName = *c.FirstName
	}
	if c.LastName != nil {
		cl.LastName = *c.LastName
	}
	for _, f := range []struct {
		src *string
		dst **string
	}{
		{c.Company, &cl.Company},
		{c.Email, &cl.Email},
		{c.Phone, &cl.Phone},
		{c.Address, &cl.Address},
		{c.City, &cl.City},
		{c.State, &cl.State},
	} {
		if f.src != nil {
			v := *f.src
			*f.dst = &v
		}
	}
}
