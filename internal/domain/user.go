package domain

import (
	"net/mail"
	"strings"
	"time"
)

type User struct {
	ID           string    `json:"userId"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Active       bool      `json:"active"`
	Role         UserRole  `json:"role,omitempty"`
	EmployeeID   *string   `json:"employeeId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasRole reports whether the user's active role is one of allowed.
func (u *User) HasRole(allowed ...UserRole) bool {
	for _, r := range allowed {
		if u.Role == r {
			return true
		}
	}
	return false
}

// Registration is the input to account creation.
type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (r Registration) Validate() error {
	if r.Email == "" || r.Password == "" || r.FirstName == "" || r.LastName == "" {
		return Invalid("All fields are required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return Invalid("invalid email %q", r.Email)
	}
	if len(r.Password) < 8 {
		return Invalid("password must be at least 8 characters")
	}
	return nil
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the result of a successful register or login.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
