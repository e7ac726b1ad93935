package user

import "errors"

// Role is the signed-in user's role as carried in the bearer token.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleHr       Role = "HR"
	RoleAdmin    Role = "ADMIN"
)

// CanReviewTimelogs reports whether the role may adjust timelogs and
// process edit requests.
func (r Role) CanReviewTimelogs() bool {
	return r == RoleHr || r == RoleAdmin
}

// Auth errors
var (
	ErrInvalidToken     = errors.New("invalid or missing bearer token")
	ErrHrAccessRequired = errors.New("HR access required")
)
