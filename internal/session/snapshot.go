package session

import (
	"strings"

	"github.com/shivam13669/storiesby-auth/internal/users"
)

// Snapshot is the denormalized slice of a user record that a client
// keeps between runs to restore "logged in" state without
// re-authenticating. It excludes the password hash and the suspension
// flag by construction.
type Snapshot struct {
	ID                 int64  `json:"id"`
	FullName           string `json:"fullName"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	TestimonialAllowed bool   `json:"testimonialAllowed"`
}

func FromUser(u *users.User) Snapshot {
	return Snapshot{
		ID:                 u.ID,
		FullName:           u.FullName,
		Email:              u.Email,
		Role:               u.Role,
		TestimonialAllowed: u.TestimonialAllowed,
	}
}

// FirstName returns the first whitespace-separated token of the full
// name, used for greetings.
func (s Snapshot) FirstName() string {
	fields := strings.Fields(s.FullName)
	if len(fields) == 0 {
		return s.FullName
	}
	return fields[0]
}
