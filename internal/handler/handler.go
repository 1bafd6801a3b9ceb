package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shivam13669/storiesby-auth/internal/users"
)

// UserService is the slice of the account service the HTTP layer needs.
type UserService interface {
	Signup(ctx context.Context, p users.SignupParams) (*users.User, error)
	Login(ctx context.Context, email, password string) (*users.User, error)
	Get(ctx context.Context, id int64) (*users.User, error)
	List(ctx context.Context) ([]*users.User, error)
	ToggleTestimonial(ctx context.Context, id int64) (*users.User, error)
	Suspend(ctx context.Context, id int64, suspended bool) error
	ResetPassword(ctx context.Context, id int64, newPassword string) error
	Delete(ctx context.Context, id int64) error
}

// Handler exposes the account operations over HTTP. It enforces no
// caller identity: the admin-only routes rely on the client-side
// access gate, so this surface must not be exposed to untrusted
// callers without an authenticating proxy in front of it.
type Handler struct {
	service UserService
}

func NewHandler(service UserService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")

	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.GET("/user/:id", h.GetUser)

	auth.GET("/users", h.ListUsers)
	auth.POST("/users/:id/toggle-testimonial", h.ToggleTestimonial)
	auth.POST("/users/:id/suspend", h.Suspend)
	auth.POST("/users/:id/unsuspend", h.Unsuspend)
	auth.DELETE("/users/:id", h.DeleteUser)
	auth.POST("/users/:id/reset-password", h.ResetPassword)
}

// userID parses the :id path parameter. A malformed id is reported as
// a bad request, not a missing user.
func userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return id, true
}

// writeError maps domain errors to HTTP statuses. Anything unmapped
// is an internal error; the detail stays out of the response.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, users.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": users.ErrNotFound.Error()})
	case errors.Is(err, users.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": users.ErrDuplicateEmail.Error()})
	case errors.Is(err, users.ErrSuspended):
		c.JSON(http.StatusForbidden, gin.H{"error": "Account suspended. Please contact admin."})
	case errors.Is(err, users.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": users.ErrInvalidCredentials.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
