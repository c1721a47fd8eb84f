package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusflow/catalogue-api/internal/dto"
	"github.com/campusflow/catalogue-api/internal/service"
	appErrors "github.com/campusflow/catalogue-api/pkg/errors"
	"github.com/campusflow/catalogue-api/pkg/response"
)

// ScheduleHandler exposes schedule generation and export endpoints.
type ScheduleHandler struct {
	service *service.ScheduleService
}

// NewScheduleHandler constructs a schedule handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// Generate godoc
// @Summary Generate ranked conflict-free schedules
// @Tags Schedules
// @Accept json
// @Produce json
// @Param term query string true "Term identifier"
// @Param courses query string true "Comma-separated course identifiers"
// @Param evening query bool false "Allow evening lectures"
// @Param online query bool false "Allow remote delivery"
// @Param start query number false "Ideal start time as fractional hour"
// @Param consec query int false "Ideal consecutive block length in hours"
// @Param limit query int false "Maximum schedules returned"
// @Param blacklist query string false "Comma-separated class identifiers to exclude"
// @Success 200 {object} response.Envelope
// @Router /gen-schedules [get]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	req, err := h.bindRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	set, err := h.service.Generate(c.Request.Context(), *req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, set)
}

// Export godoc
// @Summary Export generated schedules as CSV or PDF
// @Tags Schedules
// @Produce text/csv
// @Produce application/pdf
// @Param term query string true "Term identifier"
// @Param courses query string true "Comma-separated course identifiers"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /gen-schedules/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	generate, err := h.bindRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	req := dto.ExportSchedulesRequest{
		GenerateSchedulesRequest: *generate,
		Format:                   c.DefaultQuery("format", "csv"),
	}
	payload, contentType, filename, err := h.service.Export(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}

// bindRequest accepts either a JSON body (POST) or query parameters (GET).
func (h *ScheduleHandler) bindRequest(c *gin.Context) (*dto.GenerateSchedulesRequest, error) {
	if c.Request.Method == http.MethodPost {
		var req dto.GenerateSchedulesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body")
		}
		return &req, nil
	}

	req := dto.GenerateSchedulesRequest{
		TermID:    c.Query("term"),
		CourseIDs: splitList(c.Query("courses")),
	}
	if raw := c.Query("evening"); raw != "" {
		val, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "evening must be a boolean")
		}
		req.Preferences.EveningClasses = &val
	}
	if raw := c.Query("online"); raw != "" {
		val, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "online must be a boolean")
		}
		req.Preferences.OnlineClasses = &val
	}
	if raw := c.Query("start"); raw != "" {
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "start must be a number of hours")
		}
		req.Preferences.IdealStartTime = &val
	}
	if raw := c.Query("consec"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "consec must be an integer")
		}
		req.Preferences.IdealConsecutiveLength = &val
	}
	if raw := c.Query("limit"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "limit must be an integer")
		}
		req.Preferences.Limit = &val
	}
	req.Preferences.Blacklist = splitList(c.Query("blacklist"))
	return &req, nil
}
