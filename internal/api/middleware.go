package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/response"
)

// RecoveryJSON turns a panic into a 500 with the standard error body.
func RecoveryJSON() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal server error"})
	})
}

// NotFound answers unknown routes with the standard error body.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "route not found"})
}
