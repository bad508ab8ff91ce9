package api

import (
	"errors"                        // Error comparison
	"net/http"                      // HTTP status codes
	"savings_ledger/internal/store" // User store
	"savings_ledger/internal/utils" // Utility functions
	"time"                          // Token issue time

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Request struct for registration
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`         // Username must be provided
	Password        string `json:"password" binding:"required"`         // Password must be provided
	ConfirmPassword string `json:"confirm_password" binding:"required"` // Password repeated
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token     string    `json:"token"`      // JWT token
	ExpiresAt time.Time `json:"expires_at"` // Token expiry
	Username  string    `json:"username"`   // Display name
}

// RegisterHandler creates a user with an empty main balance and no goals
func RegisterHandler(users *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := users.Register(req.Username, req.Password, req.ConfirmPassword)
		switch {
		case errors.Is(err, store.ErrUserExists):
			// Usernames are unique regardless of case
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		case errors.Is(err, store.ErrInvalidUsername),
			errors.Is(err, store.ErrWeakPassword),
			errors.Is(err, store.ErrPasswordMismatch):
			// Validation failures are the caller's to fix
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case err != nil:
			logrus.WithFields(logrus.Fields{
				"username": req.Username, // Requested username
				"error":    err.Error(),  // Error message
			}).Error("Registration failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id":   user.ID,                             // User ID
			"timestamp": user.CreatedAt.Format(time.RFC3339), // Registration time
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(users *store.Store, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Compare provided password with stored hash
		user, err := users.Authenticate(req.Username, req.Password)
		if err != nil {
			// Unknown user and wrong password look the same
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		now := time.Now() // Issue time
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret, ttl, now)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token, ExpiresAt: now.Add(ttl), Username: user.Username})
	}
}
