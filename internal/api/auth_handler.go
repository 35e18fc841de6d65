package api

import (
	"errors"
	"fmt"
	"net/http"

	"fittech/gym-app/internal/domain"
	"fittech/gym-app/internal/identity"
	"fittech/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string      `json:"token"`
	Role     domain.Role `json:"role"`
	Redirect string      `json:"redirect"`
}

// --- Handler Methods ---

// Login handles the member login page. The resolved role decides the
// redirect, so a trainer logging in here still lands on the trainer
// dashboard.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeLoginError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: result.Token, Role: result.Role, Redirect: result.Redirect})
}

// TrainerLogin requires the trainer role; any other principal is logged
// straight back out.
func (h *AuthHandler) TrainerLogin(c *gin.Context) {
	h.loginAs(c, domain.RoleTrainer)
}

// AdminLogin requires the admin role, verified against the admin collection.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.loginAs(c, domain.RoleAdmin)
}

func (h *AuthHandler) loginAs(c *gin.Context, required domain.Role) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.authService.LoginAs(c.Request.Context(), req.Email, req.Password, required)
	if err != nil {
		h.writeLoginError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: result.Token, Role: result.Role, Redirect: result.Redirect})
}

// Logout revokes the current token.
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenRaw, exists := c.Get(ContextTokenKey)
	token, ok := tokenRaw.(string)
	if !exists || !ok {
		abortWithError(c, http.StatusUnauthorized, "No active session")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not terminate session, please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me reports the authenticated principal and its dashboard route.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	role, _ := getUserRoleFromContext(c)
	c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role, "redirect": role.DashboardRoute()})
}

func (h *AuthHandler) writeLoginError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrInvalidCredential):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotAuthorizedForRole):
		// The session was already terminated by the service.
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrStore):
		abortWithError(c, http.StatusInternalServerError, "Something went wrong, please try again")
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
	}
}
