package domain

import "time"

// Role encodes the access level of a user account. Signup always issues
// RoleStandard; no route is role-gated.
type Role int

const RoleStandard Role = 0

// User is the domain model for a fan-site account. LikeIDs mirrors the set
// of likes whose creator is this user; both sides are mutated in the same
// transaction.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	LikeIDs      []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
