package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/settings", authMiddleware)
	{
		group.GET("", h.Get)
		group.POST("", h.Create)
		group.PATCH("", h.Update)
		group.POST("/reset", h.Reset)
	}
}
