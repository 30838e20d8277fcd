package main

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"meetingroom/internal/middleware"
	"meetingroom/internal/modules/booking"
	"meetingroom/internal/modules/participant"
	"meetingroom/internal/modules/room"
	"meetingroom/internal/notify"
)

type routerDeps struct {
	log          *slog.Logger
	corsOrigins  []string
	participants *participant.Service
	rooms        *room.Service
	bookings     *booking.Service
	hub          *notify.Hub
}

func newRouter(d routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.log),
		middleware.ErrorLogger(d.log),
		middleware.CORS(d.corsOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ws/bookings", d.hub.HandleWebSocket)

	v1 := r.Group("/api/v1")
	{
		participant.NewHandler(d.participants).RegisterRoutes(v1)
		room.NewHandler(d.rooms).RegisterRoutes(v1)
		booking.NewHandler(d.bookings).RegisterRoutes(v1)
	}
	return r
}
