package users

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake repository ----

type fakeRepo struct {
	nextID int64
	byID   map[int64]*User
	order  []int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, byID: map[int64]*User{}}
}

func (f *fakeRepo) Create(ctx context.Context, user *User) (*User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, ErrDuplicateEmail
		}
	}
	user.ID = f.nextID
	user.SignupDate = time.Now()
	f.nextID++
	f.byID[user.ID] = user
	f.order = append(f.order, user.ID)
	return user, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) List(ctx context.Context) ([]*User, error) {
	out := make([]*User, 0, len(f.order))
	for _, id := range f.order {
		copied := *f.byID[id]
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeRepo) ToggleTestimonial(ctx context.Context, id int64) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.TestimonialAllowed = !u.TestimonialAllowed
	copied := *u
	return &copied, nil
}

func (f *fakeRepo) SetSuspended(ctx context.Context, id int64, suspended bool) error {
	u, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.IsSuspended = suspended
	return nil
}

func (f *fakeRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	u, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return ErrNotFound
	}
	delete(f.byID, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

// ---- helpers ----

func signupAlice(t *testing.T, s *Service) *User {
	t.Helper()
	u, err := s.Signup(context.Background(), SignupParams{
		FullName:     "Alice Smith",
		Email:        "alice@x.com",
		Password:     "pw123",
		MobileNumber: "5550100",
		CountryCode:  "+1",
	})
	require.NoError(t, err)
	return u
}

// ---- tests ----

func TestSignup_AssignsDistinctIDs(t *testing.T) {
	s := NewService(newFakeRepo(), nil)
	ctx := context.Background()

	alice := signupAlice(t, s)
	bob, err := s.Signup(ctx, SignupParams{
		FullName: "Bob Jones", Email: "bob@x.com", Password: "pw456",
	})
	require.NoError(t, err)

	assert.NotEqual(t, alice.ID, bob.ID)
	assert.Equal(t, RoleUser, alice.Role)
	assert.False(t, alice.TestimonialAllowed)
	assert.False(t, alice.IsSuspended)
	assert.False(t, alice.SignupDate.IsZero())

	got, err := s.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", got.FullName)

	got, err = s.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob Jones", got.FullName)
}

func TestSignup_DuplicateEmailCaseInsensitive(t *testing.T) {
	s := NewService(newFakeRepo(), nil)
	signupAlice(t, s)

	_, err := s.Signup(context.Background(), SignupParams{
		FullName: "Alice Again", Email: "ALICE@X.COM", Password: "other",
	})
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestSignup_PasswordNeverStoredPlaintext(t *testing.T) {
	s := NewService(newFakeRepo(), nil)
	alice := signupAlice(t, s)

	assert.NotEqual(t, "pw123", alice.PasswordHash)
	require.NoError(t, VerifyPassword(alice.PasswordHash, "pw123"))
}

func TestLogin(t *testing.T) {
	s := NewService(newFakeRepo(), nil)
	alice := signupAlice(t, s)
	ctx := context.Background()

	t.Run("success with case-insensitive email", func(t *testing.T) {
		got, err := s.Login(ctx, "ALICE@X.COM", "pw123")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.Login(ctx, "nobody@x.com", "pw123")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login(ctx, "alice@x.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("suspended beats correct password", func(t *testing.T) {
		require.NoError(t, s.Suspend(ctx, alice.ID, true))
		_, err := s.Login(ctx, "alice@x.com", "pw123")
		require.ErrorIs(t, err, ErrSuspended)
	})
}

func TestLogin_ResponseOmitsPassword(t *testing.T) {
	s := NewService(newFakeRepo(), nil)
	signupAlice(t, s)

	got, err := s.Login(context.Background(), "alice@x.com", "pw123")
	require.NoError(t, err)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
	assert.NotContains(t, string(data), got.PasswordHash)
}

func TestSuspendUnsuspend_Idempotent(t *testing.T) {
	s := NewService(newFakeRepo(), nil)
	alice := signupAlice(t, s)
	ctx := context.Background()

	require.NoError(t, s.Suspend(ctx, alice.ID, true))
	require.NoError(t, s.Suspend(ctx, alice.ID, true))

	got, err := s.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSuspended)

	require.NoError(t, s.Suspend(ctx, alice.ID, false))
	got, err = s.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, got.IsSuspended)

	require.ErrorIs(t, s.Suspend(ctx, 999, true), ErrNotFound)
}

func TestToggleTestimonial_DoubleApplicationRestores(t *testing.T) {
	s := NewService(newFakeRepo(), nil)
	alice := signupAlice(t, s)
	ctx := context.Background()

	first, err := s.ToggleTestimonial(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, first.TestimonialAllowed)

	second, err := s.ToggleTestimonial(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, second.TestimonialAllowed)

	_, err = s.ToggleTestimonial(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResetPassword(t *testing.T) {
	s := NewService(newFakeRepo(), nil)
	alice := signupAlice(t, s)
	ctx := context.Background()

	require.NoError(t, s.ResetPassword(ctx, alice.ID, "newpass"))

	_, err := s.Login(ctx, "alice@x.com", "pw123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	got, err := s.Login(ctx, "alice@x.com", "newpass")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	require.ErrorIs(t, s.ResetPassword(ctx, 999, "x"), ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := NewService(newFakeRepo(), nil)
	alice := signupAlice(t, s)
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, alice.ID))

	_, err := s.Get(ctx, alice.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, s.Delete(ctx, alice.ID), ErrNotFound)
}

func TestList_SignupOrder(t *testing.T) {
	s := NewService(newFakeRepo(), nil)
	ctx := context.Background()

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := s.Signup(ctx, SignupParams{
			FullName: "User " + email, Email: email, Password: "pw",
		})
		require.NoError(t, err)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a@x.com", list[0].Email)
	assert.Equal(t, "b@x.com", list[1].Email)
	assert.Equal(t, "c@x.com", list[2].Email)
}

// Full scenario: signup, login, suspend, login fails, unsuspend,
// login works again.
func TestSuspensionLifecycle(t *testing.T) {
	s := NewService(newFakeRepo(), nil)
	alice := signupAlice(t, s)
	ctx := context.Background()

	require.EqualValues(t, 1, alice.ID)
	assert.Equal(t, "Alice Smith", alice.FullName)

	got, err := s.Login(ctx, "ALICE@X.COM", "pw123")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	require.NoError(t, s.Suspend(ctx, alice.ID, true))
	_, err = s.Login(ctx, "alice@x.com", "pw123")
	require.ErrorIs(t, err, ErrSuspended)

	require.NoError(t, s.Suspend(ctx, alice.ID, false))
	_, err = s.Login(ctx, "alice@x.com", "pw123")
	require.NoError(t, err)
}
