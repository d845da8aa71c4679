// backend-go/internal/api/handlers/auth_handler.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storedispatch/backend-go/internal/domain"
	"github.com/storedispatch/backend-go/internal/service"
)

// Authenticator is the slice of the auth service the HTTP layer needs.
type Authenticator interface {
	Register(ctx context.Context, in *service.RegisterInput) (int64, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

type AuthHandler struct {
	auth Authenticator
}

func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var in service.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	userID, err := h.auth.Register(c.Request.Context(), &in)
	if err != nil {
		respondError(c, "creating user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "User created successfully",
		"localUserId": userID,
	})
}

type loginRequest struct {
	Email    string `json:"Email"`
	Password string `json:"password"`
}

// Login handles POST /api/login. Credential failures are reported as 400,
// matching how clients already distinguish them from server faults.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			return
		}
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User not found"})
			return
		}
		respondError(c, "logging in", err)
		return
	}

	var store *string
	if user.StoreName != nil {
		store = user.StoreName
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"roles":    user.Roles,
			"store":    store,
		},
	})
}

// Logout handles POST /api/logout by expiring the authorization cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("Authorization", "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
