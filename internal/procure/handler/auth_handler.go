package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/procureflow/procureflow/internal/auth"
)

// AuthHandler registration, password setup and login
type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register vendor signup
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	vendor, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			BadRequest(c, err.Error())
			return
		}
		InternalError(c, "registration failed: "+err.Error())
		return
	}

	Created(c, vendor)
}

// SetPassword consume a setup token
// POST /api/v1/auth/set-password
func (h *AuthHandler) SetPassword(c *gin.Context) {
	var req auth.SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := h.svc.SetPassword(c.Request.Context(), &req); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			BadRequest(c, err.Error())
			return
		}
		InternalError(c, "failed to set password: "+err.Error())
		return
	}

	Success(c, nil)
}

// Login email/password login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, pair, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrPasswordNotSet):
			Unauthorized(c, err.Error())
		case errors.Is(err, auth.ErrAccountNotApproved):
			Forbidden(c, err.Error())
		default:
			InternalError(c, "login failed: "+err.Error())
		}
		return
	}

	Success(c, gin.H{
		"user":          user,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    pair.ExpiresIn,
	})
}

// Refresh exchange a refresh token for a new pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		Unauthorized(c, err.Error())
		return
	}

	Success(c, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    pair.ExpiresIn,
	})
}

// Me current user
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.svc.GetCurrentUser(c.Request.Context(), GetUserID(c))
	if err != nil {
		NotFound(c, "user not found")
		return
	}
	Success(c, user)
}
