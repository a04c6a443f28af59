package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.POST("/quote", h.Quote)

		// Dashboard queries
		group.GET("/after-date", h.CreatedAfter)
		group.GET("/stays-after-date", h.StaysAfter)
		group.GET("/stays-today-activity", h.TodayActivity)
		group.GET("/guest/:id/reservations", h.GuestReservations)

		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
		group.PATCH("/:id/status", h.UpdateStatus)
		group.PATCH("/:id/payment-status", h.UpdatePaymentStatus)
		group.GET("/:id/dates", h.CabinDates)
	}

	g.GET("/guests/:id/bookings", authMiddleware, h.GuestBookings)
}
