package model

import "time"

// User is an admin-panel account. Credentials never leave the server; only
// the derived Principal does.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
