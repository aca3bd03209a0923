package utils

import "github.com/gin-gonic/gin"

// CurrentUserID reads the authenticated user's id set by the auth middleware.
// Claims decoded from JSON may arrive as a float, so a few numeric shapes are
// accepted. Returns 0 on an unauthenticated request.
func CurrentUserID(c *gin.Context) uint {
	v, ok := c.Get("userId")
	if !ok {
		return 0
	}
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	}
	return 0
}

// CurrentRole reads the role claim, "" when absent.
func CurrentRole(c *gin.Context) string {
	v, _ := c.Get("role")
	role, _ := v.(string)
	return role
}
