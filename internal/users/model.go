package users

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the durable account record. PasswordHash is never
// serialized: every payload leaving the service omits it.
type User struct {
	ID                 int64     `json:"id"`
	FullName           string    `json:"fullName"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	MobileNumber       string    `json:"mobileNumber"`
	CountryCode        string    `json:"countryCode"`
	Role               string    `json:"role"`
	TestimonialAllowed bool      `json:"testimonialAllowed"`
	IsSuspended        bool      `json:"isSuspended"`
	SignupDate         time.Time `json:"signupDate"`
}

// SignupParams carries the caller-supplied fields of a new account.
type SignupParams struct {
	FullName     string
	Email        string
	Password     string
	MobileNumber string
	CountryCode  string
}
