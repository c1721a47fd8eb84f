package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusflow/catalogue-api/internal/models"
	"github.com/campusflow/catalogue-api/internal/service"
	appErrors "github.com/campusflow/catalogue-api/pkg/errors"
	"github.com/campusflow/catalogue-api/pkg/response"
)

// CatalogueHandler exposes term, course, and class endpoints.
type CatalogueHandler struct {
	service *service.CatalogueService
}

// NewCatalogueHandler constructs a catalogue handler.
func NewCatalogueHandler(svc *service.CatalogueService) *CatalogueHandler {
	return &CatalogueHandler{service: svc}
}

// Terms godoc
// @Summary List terms
// @Tags Catalogue
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /terms [get]
func (h *CatalogueHandler) Terms(c *gin.Context) {
	terms, err := h.service.Terms(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, terms)
}

// Courses godoc
// @Summary List courses for a term
// @Tags Catalogue
// @Produce json
// @Param term query string true "Term identifier"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CatalogueHandler) Courses(c *gin.Context) {
	termID := c.Query("term")
	if termID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "term is required"))
		return
	}
	courses, err := h.service.Courses(c.Request.Context(), termID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courses)
}

// Classes godoc
// @Summary List a course's classes with coalesced meeting times
// @Description Returns null objects when preferences filter out the course entirely.
// @Tags Catalogue
// @Produce json
// @Param term query string true "Term identifier"
// @Param course query string true "Course identifier"
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *CatalogueHandler) Classes(c *gin.Context) {
	termID, courseID := c.Query("term"), c.Query("course")
	if termID == "" || courseID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "term and course are required"))
		return
	}
	classes, err := h.service.CourseClasses(c.Request.Context(), termID, courseID, models.DefaultPreferences())
	if err != nil {
		response.Error(c, err)
		return
	}
	if classes == nil {
		response.OK(c, nil)
		return
	}
	response.OK(c, classes.Classes)
}

// UniqueSchedule godoc
// @Summary Rehydrate a shared schedule link
// @Tags Catalogue
// @Produce json
// @Param term query string true "Term identifier"
// @Param courses query string true "Comma-separated course identifiers"
// @Param blacklist query string false "Comma-separated class identifiers to exclude"
// @Success 200 {object} response.Envelope
// @Router /unique-schedule [get]
func (h *CatalogueHandler) UniqueSchedule(c *gin.Context) {
	termID := c.Query("term")
	courses := splitList(c.Query("courses"))
	if termID == "" || len(courses) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "term and courses are required"))
		return
	}
	blacklist := splitList(c.Query("blacklist"))

	schedule, err := h.service.UniqueSchedule(c.Request.Context(), termID, courses, blacklist)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, schedule)
}

// splitList parses a comma-separated query value, dropping empty entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	// Tolerate the bracketed form "[a,b]" older clients send.
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
