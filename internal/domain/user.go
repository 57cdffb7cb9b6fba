package domain

import "time"

type Role string

const (
	RolePatron    Role = "PATRON"
	RoleLibrarian Role = "LIBRARIAN"
)

type User struct {
	ID           int64      `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	PhoneNumber  string     `json:"phone_number"`
	Role         Role       `json:"role"`
	Address      string     `json:"address"`
	CreatedOn    time.Time  `json:"created_on"`
	UpdatedOn    *time.Time `json:"updated_on,omitempty"`
}

// FullName is the display name used in loan projections.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
