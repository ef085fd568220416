package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-attend/internal/engine"
	"go-attend/internal/store"
)

// GET /users
func ListUsersHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := eng.ListUsers()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": gin.H{"message": "Storage unavailable"}})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// DELETE /users/:username
func DeleteUserHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		if err := eng.DeleteUser(username); err != nil {
			switch {
			case errors.Is(err, engine.ErrForbidden):
				c.JSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Cannot delete admin or CEO users"}})
			case errors.Is(err, store.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "User not found"}})
			default:
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": gin.H{"message": "Storage unavailable"}})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully", "deletedUser": username})
	}
}
