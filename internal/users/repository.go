package users

import "context"

// Repository is the durable store of user records.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	ToggleTestimonial(ctx context.Context, id int64) (*User, error)
	SetSuspended(ctx context.Context, id int64, suspended bool) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}
