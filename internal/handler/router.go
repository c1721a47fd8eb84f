package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campusflow/catalogue-api/internal/middleware"
	"github.com/campusflow/catalogue-api/internal/service"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Catalogue *CatalogueHandler
	Schedule  *ScheduleHandler
	Room      *RoomHandler
	Health    *HealthHandler
	Metrics   *service.MetricsService
}

// RegisterRoutes mounts all endpoints under the API prefix.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers) {
	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)
	r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))

	api := r.Group(prefix)
	api.Use(middleware.Metrics(h.Metrics))

	api.GET("/terms", h.Catalogue.Terms)
	api.GET("/courses", h.Catalogue.Courses)
	api.GET("/classes", h.Catalogue.Classes)
	api.GET("/unique-schedule", h.Catalogue.UniqueSchedule)

	api.GET("/gen-schedules", h.Schedule.Generate)
	api.POST("/gen-schedules", h.Schedule.Generate)
	api.GET("/gen-schedules/export", h.Schedule.Export)

	api.GET("/rooms", h.Room.Rooms)
	api.POST("/rooms", h.Room.Rooms)
	api.GET("/room-sched", h.Room.RoomSchedule)
	api.POST("/room-sched", h.Room.RoomSchedule)
	api.GET("/all-rooms-open", h.Room.OpenRooms)
	api.POST("/all-rooms-open", h.Room.OpenRooms)

	api.GET("/stats", h.Health.Stats)
}
