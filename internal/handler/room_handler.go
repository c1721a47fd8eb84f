package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusflow/catalogue-api/internal/service"
	appErrors "github.com/campusflow/catalogue-api/pkg/errors"
	"github.com/campusflow/catalogue-api/pkg/response"
)

// RoomHandler exposes room listing and availability endpoints.
type RoomHandler struct {
	service *service.RoomService
}

// NewRoomHandler constructs a room handler.
func NewRoomHandler(svc *service.RoomService) *RoomHandler {
	return &RoomHandler{service: svc}
}

// Rooms godoc
// @Summary List rooms for a term
// @Tags Rooms
// @Produce json
// @Param term query string true "Term identifier"
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *RoomHandler) Rooms(c *gin.Context) {
	termID := c.Query("term")
	if termID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "term is required"))
		return
	}
	rooms, err := h.service.Rooms(c.Request.Context(), termID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rooms)
}

// RoomSchedule godoc
// @Summary List every class meeting at a room
// @Tags Rooms
// @Produce json
// @Param term query string true "Term identifier"
// @Param room query string true "Room name"
// @Success 200 {object} response.Envelope
// @Router /room-sched [get]
func (h *RoomHandler) RoomSchedule(c *gin.Context) {
	termID, room := c.Query("term"), c.Query("room")
	if termID == "" || room == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "term and room are required"))
		return
	}
	set, err := h.service.RoomSchedule(c.Request.Context(), termID, room)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, set)
}

// OpenRooms godoc
// @Summary Find rooms free for a time window on a weekday
// @Tags Rooms
// @Produce json
// @Param term query string true "Term identifier"
// @Param weekday query string true "Single-letter weekday code"
// @Param starttime query string true "Window start, e.g. 09:00 AM"
// @Param endtime query string true "Window end, e.g. 10:00 AM"
// @Success 200 {object} map[string]interface{}
// @Router /all-rooms-open [get]
func (h *RoomHandler) OpenRooms(c *gin.Context) {
	termID := c.Query("term")
	weekday := c.Query("weekday")
	start := c.Query("starttime")
	end := c.Query("endtime")
	if termID == "" || weekday == "" || start == "" || end == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "term, weekday, starttime and endtime are required"))
		return
	}
	rooms, err := h.service.AvailableRooms(c.Request.Context(), termID, weekday, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, gin.H{"available_rooms": rooms})
}
