package controllers

import (
	"errors"
	"net/http"

	"github.com/fabiomatricardi/cm-log-system/pkg/resp"
	"github.com/fabiomatricardi/cm-log-system/services"
	"github.com/fabiomatricardi/cm-log-system/utils"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, admin, err := a.auth.Login(req.Username, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		resp.Unauthorized(c, "Invalid credentials. Access denied to email management.")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"token": token,
		"admin": gin.H{"id": admin.ID, "username": admin.Username, "role": admin.Role},
	})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	resp.OK(c, gin.H{"username": utils.CurrentUsername(c), "role": utils.CurrentRole(c)})
}
