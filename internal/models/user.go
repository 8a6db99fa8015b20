package models

// DefaultAdminName is the display name given to an administrator created from the CLI.
const DefaultAdminName = "Admin"

// User is a login-capable account. The first row is the administrator.
// PasswordHash is empty when no credentials have been set.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
