package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash; plaintext passwords never leave the request
// that carried them and are never persisted or logged.
type User struct {
	ID        string
	Name      string
	Email     string
	Age       int
	Password  string
	Profile   Profile
	CreatedAt time.Time
	UpdatedAt time.Time
}
