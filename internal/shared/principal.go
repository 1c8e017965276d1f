package shared

// Principal describes the authenticated actor of a request.
type Principal struct {
	ID       int64
	Email    string
	IsStaff  bool
	IsActive bool
}
