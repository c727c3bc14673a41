package controllers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sufal54/bolpurmart-admin-sub000/middleware"
)

const adminSessionTTL = 24 * time.Hour

type AuthController struct {
	adminEmail    string
	adminPassword string
	jwtSecret     string
}

func NewAuthController(adminEmail, adminPassword, jwtSecret string) *AuthController {
	return &AuthController{
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		jwtSecret:     jwtSecret,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login compares the submitted credentials against the configured admin
// account and issues a session token.
func (ctrl *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(ctrl.adminEmail)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(ctrl.adminPassword)) == 1
	if !emailOK || !passwordOK {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := middleware.IssueAdminToken(ctrl.jwtSecret, req.Email, adminSessionTTL)
	if err != nil {
		zap.L().Error("Failed to issue admin token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "expires_in": int(adminSessionTTL.Seconds())})
}
