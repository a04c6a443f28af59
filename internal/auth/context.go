package auth

import "github.com/gin-gonic/gin"

const (
	ctxStaffID    = "staffID"
	ctxStaffEmail = "staffEmail"
)

// GetUserID returns the authenticated staff member's ID or an empty string.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxStaffID)
}

// GetUserEmail returns the authenticated staff member's email or an empty string.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(ctxStaffEmail)
}
