package models

// Role distinguishes the two account variants.
type Role string

const (
	// RoleAdmin is the administrator role. Exactly one administrator, the
	// reserved "admin" account, is guaranteed to exist and cannot be
	// deleted.
	RoleAdmin Role = "Admin"

	// RoleStaff is a regular staff account. Orders record the staff
	// username that placed them.
	RoleStaff Role = "Staff"
)

// User is a login account. Usernames are unique and case-sensitive and
// serve as the natural key; the numeric ID exists for display and is
// allocated monotonically like every other record ID.
type User struct {
	ID       int
	Username string

	// Password is an opaque string compared verbatim at login. The
	// system inherits plaintext credential storage; do not hash here.
	Password string

	DisplayName string
	Role        Role
}

// IsAdmin reports whether the account carries the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
