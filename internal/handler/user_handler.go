package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/netly-app/netly/internal/pkg/response"
	"github.com/netly-app/netly/internal/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := h.users.GetProfile(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

type emailRequest struct {
	Email string `json:"email"`
}

func (h *UserHandler) RequestEmailChange(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		invalidRequest(c, "email required")
		return
	}
	if err := h.users.RequestEmailChange(c.Request.Context(), getUserID(c), req.Email); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

type updateProfileRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	OTPCode string `json:"otp_code"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "")
		return
	}
	profile, err := h.users.UpdateBasicInfo(c.Request.Context(), getUserID(c), req.Name, req.Email, req.OTPCode)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

func (h *UserHandler) RequestSecondaryEmail(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		invalidRequest(c, "email required")
		return
	}
	if err := h.users.RequestSecondaryEmail(c.Request.Context(), getUserID(c), req.Email); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

type confirmEmailRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otp_code"`
}

func (h *UserHandler) ConfirmSecondaryEmail(c *gin.Context) {
	var req confirmEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.OTPCode == "" {
		invalidRequest(c, "email and otp_code required")
		return
	}
	profile, err := h.users.ConfirmSecondaryEmail(c.Request.Context(), getUserID(c), req.Email, req.OTPCode)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

func (h *UserHandler) RemoveSecondaryEmail(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		invalidRequest(c, "email required")
		return
	}
	profile, err := h.users.RemoveSecondaryEmail(c.Request.Context(), getUserID(c), req.Email)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}
