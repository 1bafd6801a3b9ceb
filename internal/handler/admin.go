package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Admin mutations. The service layer applies no authorization here;
// callers are expected to gate these behind an admin check.

func (h *Handler) ToggleTestimonial(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	user, err := h.service.ToggleTestimonial(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"message": "Testimonial permission updated",
	})
}

func (h *Handler) Suspend(c *gin.Context) {
	h.setSuspended(c, true, "User suspended")
}

func (h *Handler) Unsuspend(c *gin.Context) {
	h.setSuspended(c, false, "User unsuspended")
}

func (h *Handler) setSuspended(c *gin.Context, suspended bool, message string) {
	id, ok := userID(c)
	if !ok {
		return
	}

	if err := h.service.Suspend(c.Request.Context(), id, suspended); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *Handler) ResetPassword(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), id, req.Password); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset"})
}
