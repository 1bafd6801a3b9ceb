// Package client is the HTTP client for the auth service API. It is
// the only place that speaks the wire format; callers deal in User
// values and sentinel errors.
package client

import (
	"context"

	"github.com/shivam13669/storiesby-auth/internal/users"
)

// Client covers every operation the auth service exposes.
type Client interface {
	Signup(ctx context.Context, p users.SignupParams) (*users.User, error)
	Login(ctx context.Context, email, password string) (*users.User, error)
	GetUser(ctx context.Context, id int64) (*users.User, error)
	ListUsers(ctx context.Context) ([]*users.User, error)
	ToggleTestimonial(ctx context.Context, id int64) error
	Suspend(ctx context.Context, id int64) error
	Unsuspend(ctx context.Context, id int64) error
	DeleteUser(ctx context.Context, id int64) error
	ResetPassword(ctx context.Context, id int64, password string) error
	Health(ctx context.Context) error
}
