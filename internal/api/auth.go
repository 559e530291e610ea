package api

import (
	"expense_tracker/internal/domain"     // Importing domain models
	"expense_tracker/internal/middleware" // Caller identity
	"expense_tracker/internal/service"    // Account use-cases
	"net/http"                            // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`     // Display name must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Message string         `json:"message"` // Outcome text shown by the client
	Token   string         `json:"token"`   // JWT token
	User    domain.Profile `json:"user"`    // Public user fields
}

// RegisterHandler creates an account and returns a token for it
func RegisterHandler(accounts *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		res, err := accounts.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			respondError(c, err, messages{notFound: "User not found"})
			return
		}
		c.JSON(http.StatusCreated, AuthResponse{Message: "User Registered", Token: res.Token, User: res.User.Profile()})
	}
}

// LoginHandler authenticates a user and returns a fresh JWT token
func LoginHandler(accounts *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		res, err := accounts.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err, messages{notFound: "User not found"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Message: "Login successful", Token: res.Token, User: res.User.Profile()})
	}
}

// MeHandler returns the profile of the authenticated caller
func MeHandler(accounts *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		user, err := accounts.Profile(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, messages{notFound: "User not found"})
			return
		}
		c.JSON(http.StatusOK, user.Profile())
	}
}
