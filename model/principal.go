package model

// Role is the access level carried by an authenticated principal.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// Principal is the authenticated caller as seen by the route pipeline and
// handlers. It is produced once per request and never mutated.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
