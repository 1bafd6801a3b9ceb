package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shivam13669/storiesby-auth/internal/users"
)

type signupRequest struct {
	FullName     string `json:"fullName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	MobileNumber string `json:"mobileNumber"`
	CountryCode  string `json:"countryCode"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.service.Signup(c.Request.Context(), users.SignupParams{
		FullName:     req.FullName,
		Email:        req.Email,
		Password:     req.Password,
		MobileNumber: req.MobileNumber,
		CountryCode:  req.CountryCode,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    user,
		"message": "Account created successfully",
	})
}
