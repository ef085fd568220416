package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-attend/internal/config"
	"go-attend/internal/engine"
)

func SetupRouter(cfg *config.Config, eng *engine.Engine, rdb *redis.Client) *gin.Engine {
	r := gin.Default()
	feed := NewFeed()

	group := r.Group(cfg.Server.Subpath + "/api")
	{
		group.GET("/health", healthHandler)
		group.GET("/config", configHandler(cfg))

		// Auth
		group.POST("/auth/signup", SignupHandler(eng))
		group.POST("/auth/login", LoginHandler(eng))
		group.GET("/auth/check-users", CheckUsersHandler(eng))

		// Users
		group.GET("/users", ListUsersHandler(eng))
		group.DELETE("/users/:username", DeleteUserHandler(eng))

		// Attendance
		group.POST("/attendance/sign-in", SignInHandler(eng, rdb, feed))
		group.POST("/attendance/sign-out", SignOutHandler(eng, rdb, feed))
		group.PATCH("/attendance/sign-out/:id", EditSignOutHandler(eng, feed))
		group.GET("/attendance", ListAttendanceHandler(eng))
		group.GET("/attendance/feed", feed.Handler())
		group.GET("/stats", StatsHandler(eng))
		group.GET("/presence", PresenceHandler(rdb))
	}

	return r
}
