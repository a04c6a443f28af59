package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers file routes. They are public so <img> tags can
// load them; file ids are random UUIDs.
func RegisterRoutes(r gin.IRouter, handler *Handler) {
	group := r.Group("/files")

	group.GET("/:id", handler.ServeFile)
	group.GET("/:id/thumbnail", handler.ServeThumbnail)
}
