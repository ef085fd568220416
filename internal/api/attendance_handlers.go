package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-attend/internal/attendance"
	"go-attend/internal/engine"
	"go-attend/internal/presence"
	"go-attend/internal/store"
)

type SignInRequest struct {
	Username string `json:"username"`
}

type SignOutRequest struct {
	Username     string `json:"username"`
	Description  string `json:"description"`
	UploadedFile string `json:"uploadedFile"`
}

type EditSignOutRequest struct {
	Description  *string `json:"description"`
	UploadedFile *string `json:"uploadedFile"`
}

// POST /attendance/sign-in
func SignInHandler(eng *engine.Engine, rdb *redis.Client, feed *Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignInRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Username is required"}})
			return
		}
		ev, err := eng.SignIn(req.Username)
		if err != nil {
			if errors.Is(err, engine.ErrAlreadySignedIn) {
				c.JSON(http.StatusConflict, gin.H{"error": gin.H{"message": "You can only sign in once per day"}})
				return
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": gin.H{"message": "Storage unavailable"}})
			return
		}
		if rdb != nil {
			_ = presence.Mark(rdb, req.Username)
		}
		feed.Broadcast(ev)
		c.JSON(http.StatusCreated, gin.H{"event": ev})
	}
}

// POST /attendance/sign-out
func SignOutHandler(eng *engine.Engine, rdb *redis.Client, feed *Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignOutRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Username is required"}})
			return
		}
		ev, err := eng.SignOut(req.Username, req.Description, req.UploadedFile)
		if err != nil {
			var recent *engine.RecentSignOutError
			if errors.As(err, &recent) {
				c.JSON(http.StatusConflict, gin.H{"error": gin.H{
					"message": "You signed out less than 12 hours ago; edit the previous sign-out instead",
					"eventId": recent.EventID,
				}})
				return
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": gin.H{"message": "Storage unavailable"}})
			return
		}
		if rdb != nil {
			_ = presence.Clear(rdb, req.Username)
		}
		feed.Broadcast(ev)
		c.JSON(http.StatusCreated, gin.H{"event": ev})
	}
}

// PATCH /attendance/sign-out/:id
func EditSignOutHandler(eng *engine.Engine, feed *Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid event id"}})
			return
		}
		var req EditSignOutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		ev, err := eng.EditLastSignOut(id, req.Description, req.UploadedFile)
		if err != nil {
			switch {
			case errors.Is(err, engine.ErrEditWindowExpired):
				c.JSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "You can only edit your sign-out within 12 hours"}})
			case errors.Is(err, store.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Sign-out event not found"}})
			default:
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": gin.H{"message": "Storage unavailable"}})
			}
			return
		}
		feed.Broadcast(ev)
		c.JSON(http.StatusOK, gin.H{"event": ev})
	}
}

// GET /attendance?username=&action=
func ListAttendanceHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := attendance.Filter{
			Username: c.Query("username"),
			Action:   attendance.Action(c.Query("action")),
		}
		events, err := eng.ListEvents(f)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": gin.H{"message": "Storage unavailable"}})
			return
		}
		if events == nil {
			events = []attendance.Event{}
		}
		c.JSON(http.StatusOK, events)
	}
}

// GET /stats?username=
func StatsHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := eng.Stats(c.Query("username"))
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": gin.H{"message": "Storage unavailable"}})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// PresenceHandler returns the number of users currently signed in. The
// count is best-effort: with redis missing or unreachable it answers zero
// instead of failing the request.
func PresenceHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.JSON(http.StatusOK, gin.H{"online": 0})
			return
		}
		count, err := presence.Count(rdb)
		if err != nil {
			log.Printf("[Presence] count failed: %v", err)
			c.JSON(http.StatusOK, gin.H{"online": 0})
			return
		}
		c.JSON(http.StatusOK, gin.H{"online": count})
	}
}
