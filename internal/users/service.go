package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/shivam13669/storiesby-auth/internal/logger"
)

// Cache is an optional read cache for user lookups by id. A nil cache
// disables caching; cache failures are logged and never surfaced.
type Cache interface {
	Get(ctx context.Context, id int64) (*User, error)
	Set(ctx context.Context, u *User) error
	Invalidate(ctx context.Context, id int64) error
}

// Service implements the account operations. It performs no
// authorization: admin gating happens at the calling boundary, which
// is a deployment risk when callers are untrusted (see DESIGN.md).
type Service struct {
	repo  Repository
	cache Cache
}

func NewService(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Signup creates a new account with role "user". The email must not
// belong to an existing account, compared case-insensitively.
func (s *Service) Signup(ctx context.Context, p SignupParams) (*User, error) {

	_, err := s.repo.GetByEmail(ctx, p.Email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("checking existing email: %w", err)
	}

	hash, err := HashPassword(p.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		FullName:     p.FullName,
		Email:        p.Email,
		PasswordHash: hash,
		MobileNumber: p.MobileNumber,
		CountryCode:  p.CountryCode,
		Role:         RoleUser,
	}

	// The unique index still guards the race between the lookup above
	// and the insert.
	return s.repo.Create(ctx, user)
}

// Login verifies credentials. Suspension is checked before the
// password so a suspended user with the right password still learns
// the account is suspended, not that the password failed.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user.IsSuspended {
		return nil, ErrSuspended
	}

	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			logger.Warn("user cache read failed", map[string]any{
				"id":    id,
				"error": err.Error(),
			})
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			logger.Warn("user cache write failed", map[string]any{
				"id":    id,
				"error": err.Error(),
			})
		}
	}

	return user, nil
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *Service) ToggleTestimonial(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.ToggleTestimonial(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return user, nil
}

// Suspend sets the suspension flag. Already being in the target state
// is not an error.
func (s *Service) Suspend(ctx context.Context, id int64, suspended bool) error {
	if err := s.repo.SetSuspended(ctx, id, suspended); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// ResetPassword is an administrative override: the previous password
// is not required.
func (s *Service) ResetPassword(ctx context.Context, id int64, newPassword string) error {
	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// Delete removes the account permanently. Any session snapshot held
// by a client for this id dies on its next restore or refresh.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *Service) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		logger.Warn("user cache invalidation failed", map[string]any{
			"id":    id,
			"error": err.Error(),
		})
	}
}
