package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/internal/middleware"
	"github.com/teamflow/backend/internal/services"
	"github.com/teamflow/backend/pkg/response"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a local account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, user)
}

// Login authenticates and issues an access/refresh token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(&req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"access_token":       result.AccessToken,
		"expires_at":         result.AccessExpireAt,
		"refresh_token":      result.RefreshToken,
		"refresh_expires_at": result.RefreshExpireAt,
		"user":               result.User,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh rotates the refresh token and issues a new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Refresh(req.RefreshToken, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"access_token":       result.AccessToken,
		"expires_at":         result.AccessExpireAt,
		"refresh_token":      result.RefreshToken,
		"refresh_expires_at": result.RefreshExpireAt,
	})
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout revokes the presented refresh token. Always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req logoutRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.authService.RevokeRefreshToken(req.RefreshToken); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, user)
}

// ChangePassword updates the caller's local password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ChangePassword(middleware.GetUserID(c), &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "password changed"})
}

// AuthModes reports which authentication backends are available.
func (h *AuthHandler) AuthModes(c *gin.Context) {
	response.Success(c, gin.H{
		"local": true,
		"ldap":  h.authService.IsLDAPEnabled(),
	})
}
