package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-attend/internal/engine"
	"go-attend/internal/store"
)

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /auth/signup
func SignupHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		if req.Username == "" || req.Password == "" || req.Name == "" || req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Username, password, name, and email are required"}})
			return
		}
		u, err := eng.SignUp(req.Username, req.Password, req.Name, req.Email)
		if err != nil {
			if errors.Is(err, store.ErrConflict) {
				c.JSON(http.StatusConflict, gin.H{"error": gin.H{"message": "Username or email already exists"}})
				return
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": gin.H{"message": "Storage unavailable"}})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": u})
	}
}

// POST /auth/login
func LoginHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Username and password are required"}})
			return
		}
		u, err := eng.Login(req.Username, req.Password)
		if err != nil {
			if errors.Is(err, engine.ErrAuth) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Invalid username or password"}})
				return
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": gin.H{"message": "Storage unavailable"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u})
	}
}

// GET /auth/check-users
func CheckUsersHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		has, err := eng.HasUsers()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": gin.H{"message": "Storage unavailable"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"hasUsers": has})
	}
}
