package model

import "time"

// DefaultUserRole is assigned when a user is created without a role.
const DefaultUserRole = "user"

// User represents an application user record as stored in the `users`
// table.  The ID is chosen by the caller; Email is unique across users.
//
// Fields:
//
//	ID        – primary key identifier of the user.
//	Email     – unique email address.
//	Name      – display name.
//	Role      – "user" or "admin".
//	CreatedAt – server-assigned creation timestamp.
type User struct {
	ID        string     // users.id
	Email     string     // users.email
	Name      string     // users.name
	Role      string     // users.role
	CreatedAt *time.Time // users.created_at
}
