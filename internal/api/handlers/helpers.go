package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentUserID returns the verified caller identity set by the auth
// middleware.
func currentUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	id, _ := userID.(string)
	return id
}

func parseID(value string) (uint, bool) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
