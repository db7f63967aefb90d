package domain

// Principal is the resolved identity attached to an authenticated request.
type Principal struct {
	UserID string
	Email  string
}
