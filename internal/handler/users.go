package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shivam13669/storiesby-auth/internal/users"
)

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListUsers returns every account in signup order.
func (h *Handler) ListUsers(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if list == nil {
		list = []*users.User{}
	}

	c.JSON(http.StatusOK, gin.H{"users": list})
}
