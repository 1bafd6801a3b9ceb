package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivam13669/storiesby-auth/internal/users"
)

// ---- fake service ----

type fakeService struct {
	signupOut *users.User
	signupErr error

	loginOut *users.User
	loginErr error

	getOut *users.User
	getErr error

	listOut []*users.User
	listErr error

	toggleOut *users.User
	toggleErr error

	suspendErr error
	resetErr   error
	deleteErr  error

	lastSuspendID    int64
	lastSuspendValue bool
	lastResetPass    string
}

func (f *fakeService) Signup(ctx context.Context, p users.SignupParams) (*users.User, error) {
	return f.signupOut, f.signupErr
}

func (f *fakeService) Login(ctx context.Context, email, password string) (*users.User, error) {
	return f.loginOut, f.loginErr
}

func (f *fakeService) Get(ctx context.Context, id int64) (*users.User, error) {
	return f.getOut, f.getErr
}

func (f *fakeService) List(ctx context.Context) ([]*users.User, error) {
	return f.listOut, f.listErr
}

func (f *fakeService) ToggleTestimonial(ctx context.Context, id int64) (*users.User, error) {
	return f.toggleOut, f.toggleErr
}

func (f *fakeService) Suspend(ctx context.Context, id int64, suspended bool) error {
	f.lastSuspendID = id
	f.lastSuspendValue = suspended
	return f.suspendErr
}

func (f *fakeService) ResetPassword(ctx context.Context, id int64, newPassword string) error {
	f.lastResetPass = newPassword
	return f.resetErr
}

func (f *fakeService) Delete(ctx context.Context, id int64) error {
	return f.deleteErr
}

// ---- helpers ----

func setupRouter(t *testing.T, svc UserService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func alice() *users.User {
	return &users.User{
		ID: 1, FullName: "Alice Smith", Email: "alice@x.com",
		PasswordHash: "secret-hash", Role: users.RoleUser,
		SignupDate: time.Now(),
	}
}

// ---- tests ----

func TestSignup(t *testing.T) {
	svc := &fakeService{signupOut: alice()}
	r := setupRouter(t, svc)

	body := map[string]string{
		"fullName": "Alice Smith", "email": "alice@x.com", "password": "pw123",
	}
	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Account created successfully"`)
	assert.NotContains(t, w.Body.String(), "secret-hash")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc := &fakeService{signupErr: users.ErrDuplicateEmail}
	r := setupRouter(t, svc)

	body := map[string]string{
		"fullName": "Alice Smith", "email": "alice@x.com", "password": "pw123",
	}
	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", body)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestSignup_InvalidBody(t *testing.T) {
	r := setupRouter(t, &fakeService{})

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", map[string]string{
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown email", users.ErrNotFound, http.StatusNotFound},
		{"suspended", users.ErrSuspended, http.StatusForbidden},
		{"wrong password", users.ErrInvalidCredentials, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t, &fakeService{loginErr: tt.err})
			w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
				"email": "alice@x.com", "password": "pw123",
			})
			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestLogin_Success(t *testing.T) {
	r := setupRouter(t, &fakeService{loginOut: alice()})

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "alice@x.com", "password": "pw123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User    map[string]any `json:"user"`
		Message string         `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Login successful", resp.Message)
	assert.EqualValues(t, 1, resp.User["id"])
	assert.NotContains(t, resp.User, "password")
	assert.NotContains(t, resp.User, "passwordHash")
}

func TestGetUser(t *testing.T) {
	r := setupRouter(t, &fakeService{getOut: alice()})

	w := doJSON(t, r, http.MethodGet, "/api/auth/user/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"alice@x.com"`)
}

func TestGetUser_NotFound(t *testing.T) {
	r := setupRouter(t, &fakeService{getErr: users.ErrNotFound})

	w := doJSON(t, r, http.MethodGet, "/api/auth/user/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUser_InvalidID(t *testing.T) {
	r := setupRouter(t, &fakeService{})

	w := doJSON(t, r, http.MethodGet, "/api/auth/user/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListUsers(t *testing.T) {
	r := setupRouter(t, &fakeService{listOut: []*users.User{alice()}})

	w := doJSON(t, r, http.MethodGet, "/api/auth/users", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"users"`)
	assert.NotContains(t, w.Body.String(), "secret-hash")
}

func TestSuspendUnsuspend(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(t, svc)

	w := doJSON(t, r, http.MethodPost, "/api/auth/users/4/suspend", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 4, svc.lastSuspendID)
	assert.True(t, svc.lastSuspendValue)

	w = doJSON(t, r, http.MethodPost, "/api/auth/users/4/unsuspend", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, svc.lastSuspendValue)
}

func TestDeleteUser_NotFound(t *testing.T) {
	r := setupRouter(t, &fakeService{deleteErr: users.ErrNotFound})

	w := doJSON(t, r, http.MethodDelete, "/api/auth/users/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResetPassword(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(t, svc)

	w := doJSON(t, r, http.MethodPost, "/api/auth/users/2/reset-password",
		map[string]string{"password": "newpass"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "newpass", svc.lastResetPass)

	w = doJSON(t, r, http.MethodPost, "/api/auth/users/2/reset-password",
		map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleTestimonial(t *testing.T) {
	u := alice()
	u.TestimonialAllowed = true
	r := setupRouter(t, &fakeService{toggleOut: u})

	w := doJSON(t, r, http.MethodPost, "/api/auth/users/1/toggle-testimonial", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"testimonialAllowed":true`)
}
