package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusflow/catalogue-api/internal/models"
	"github.com/campusflow/catalogue-api/internal/repository"
	"github.com/campusflow/catalogue-api/internal/scheduler"
	"github.com/campusflow/catalogue-api/internal/service"
)

func strptr(s string) *string { return &s }

// stubRepo serves a two-course fixture catalogue from memory.
type stubRepo struct{}

func (stubRepo) ListTerms(ctx context.Context) ([]models.Term, error) {
	return []models.Term{{ID: "1850", Title: "Fall Term 2025"}}, nil
}

func (stubRepo) ListCourses(ctx context.Context, termID string) ([]models.CourseRef, error) {
	return []models.CourseRef{
		{ID: "004571", AsString: "CMPUT 174"},
		{ID: "004572", AsString: "CMPUT 175"},
	}, nil
}

func (stubRepo) CourseName(ctx context.Context, termID, courseID string) (string, error) {
	switch courseID {
	case "004571":
		return "CMPUT 174", nil
	case "004572":
		return "CMPUT 175", nil
	}
	return "", sql.ErrNoRows
}

func fixtureClasses(courseID string) []models.Class {
	switch courseID {
	case "004571":
		return []models.Class{
			{TermID: "1850", CourseID: "004571", ID: "10001", Component: "LEC", Section: "A1", AsString: "CMPUT 174"},
		}
	case "004572":
		return []models.Class{
			{TermID: "1850", CourseID: "004572", ID: "20001", Component: "LEC", Section: "B1", AsString: "CMPUT 175"},
		}
	}
	return nil
}

func (stubRepo) ListClasses(ctx context.Context, termID, courseID string, filter repository.ClassFilter) ([]models.Class, error) {
	excluded := make(map[string]struct{})
	for _, id := range filter.ExcludeClassIDs {
		excluded[id] = struct{}{}
	}
	var out []models.Class
	for _, class := range fixtureClasses(courseID) {
		if _, skip := excluded[class.ID]; skip {
			continue
		}
		out = append(out, class)
	}
	return out, nil
}

func (stubRepo) DistinctComponents(ctx context.Context, termID, courseID string) ([]string, error) {
	if len(fixtureClasses(courseID)) == 0 {
		return nil, nil
	}
	return []string{"LEC"}, nil
}

func (stubRepo) GetClass(ctx context.Context, termID, classID string) (*models.Class, error) {
	for _, courseID := range []string{"004571", "004572"} {
		for _, class := range fixtureClasses(courseID) {
			if class.ID == classID {
				c := class
				return &c, nil
			}
		}
	}
	return nil, sql.ErrNoRows
}

func (stubRepo) ClassIDsForCourse(ctx context.Context, termID, courseID string) ([]string, error) {
	var ids []string
	for _, class := range fixtureClasses(courseID) {
		ids = append(ids, class.ID)
	}
	return ids, nil
}

func (stubRepo) ListClassTimes(ctx context.Context, termID, classID string) ([]models.ClassTime, error) {
	switch classID {
	case "10001":
		return []models.ClassTime{{ClassID: classID, Day: "MWF", StartTime: "09:00 AM", EndTime: "09:50 AM", Location: strptr("CCIS 1-140")}}, nil
	case "20001":
		return []models.ClassTime{{ClassID: classID, Day: "MWF", StartTime: "10:00 AM", EndTime: "10:50 AM", Location: strptr("CAB 265")}}, nil
	}
	return nil, nil
}

func (stubRepo) ListTermClassTimes(ctx context.Context, termID string) ([]models.ClassTime, error) {
	return []models.ClassTime{
		{ClassID: "10001", Day: "M", StartTime: "09:00 AM", EndTime: "09:50 AM", Location: strptr("CCIS 1-140")},
		{ClassID: "20001", Day: "T", StartTime: "10:00 AM", EndTime: "10:50 AM", Location: strptr("CAB 265")},
	}, nil
}

func (stubRepo) DistinctLocations(ctx context.Context, termID string) ([]models.Room, error) {
	return []models.Room{{Location: "CAB 265"}, {Location: "CCIS 1-140"}}, nil
}

func (stubRepo) ClassIDsForLocation(ctx context.Context, termID, location string) ([]string, error) {
	if location == "CCIS 1-140" {
		return []string{"10001"}, nil
	}
	return nil, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	metrics := service.NewMetricsService()
	catalogue := service.NewCatalogueService(stubRepo{}, nil, nil, logger)
	engine := scheduler.NewEngine(scheduler.Config{Seed: 1}, logger)
	schedules := service.NewScheduleService(catalogue, engine, nil, metrics, nil, 0, logger)
	rooms := service.NewRoomService(stubRepo{}, catalogue, nil, nil, metrics, logger)

	r := gin.New()
	RegisterRoutes(r, "/api/v1", Handlers{
		Catalogue: NewCatalogueHandler(catalogue),
		Schedule:  NewScheduleHandler(schedules),
		Room:      NewRoomHandler(rooms),
		Health:    NewHealthHandler(nil, metrics),
		Metrics:   metrics,
	})
	return r
}

func performRequest(r *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestTermsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := performRequest(r, http.MethodGet, "/api/v1/terms", "")

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	objects, ok := envelope["objects"].([]interface{})
	require.True(t, ok)
	require.Len(t, objects, 1)
}

func TestCoursesRequiresTerm(t *testing.T) {
	r := newTestRouter(t)
	w := performRequest(r, http.MethodGet, "/api/v1/courses", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.NotNil(t, envelope["error"])
}

func TestClassesEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := performRequest(r, http.MethodGet, "/api/v1/classes?term=1850&course=004571", "")

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	objects, ok := envelope["objects"].([]interface{})
	require.True(t, ok)
	require.Len(t, objects, 1)

	class := objects[0].(map[string]interface{})
	assert.Equal(t, "10001", class["class"])
	times := class["classtimes"].([]interface{})
	require.Len(t, times, 1)
}

func TestGenerateSchedulesGET(t *testing.T) {
	r := newTestRouter(t)
	w := performRequest(r, http.MethodGet, "/api/v1/gen-schedules?term=1850&courses=004571,004572", "")

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	objects := envelope["objects"].(map[string]interface{})
	schedules := objects["schedules"].([]interface{})
	require.Len(t, schedules, 1)
	first := schedules[0].([]interface{})
	assert.Len(t, first, 2)
}

func TestGenerateSchedulesPOST(t *testing.T) {
	r := newTestRouter(t)
	body := `{"term":"1850","courses":["004571"],"prefs":{"limit":5}}`
	w := performRequest(r, http.MethodPost, "/api/v1/gen-schedules", body)

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	objects := envelope["objects"].(map[string]interface{})
	assert.NotNil(t, objects["schedules"])
}

func TestGenerateSchedulesMissingCourses(t *testing.T) {
	r := newTestRouter(t)
	w := performRequest(r, http.MethodGet, "/api/v1/gen-schedules?term=1850", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportSchedulesCSV(t *testing.T) {
	r := newTestRouter(t)
	w := performRequest(r, http.MethodGet, "/api/v1/gen-schedules/export?term=1850&courses=004571&format=csv", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "schedules.csv")
	assert.Contains(t, w.Body.String(), "CMPUT 174")
}

func TestOpenRoomsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := performRequest(r, http.MethodGet, "/api/v1/all-rooms-open?term=1850&weekday=W&starttime=09:00+AM&endtime=10:00+AM", "")

	require.Equal(t, http.StatusOK, w.Code)
	var payload map[string]map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	rooms := payload["available_rooms"]
	// No Wednesday bookings: both rooms are free.
	require.Len(t, rooms, 2)
	assert.Equal(t, "CAB 265", rooms["CAB"][0]["name"])
}

func TestOpenRoomsMissingParams(t *testing.T) {
	r := newTestRouter(t)
	w := performRequest(r, http.MethodGet, "/api/v1/all-rooms-open?term=1850", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoomScheduleEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := performRequest(r, http.MethodGet, "/api/v1/room-sched?term=1850&room=CCIS+1-140", "")

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	objects := envelope["objects"].(map[string]interface{})
	schedules := objects["schedules"].([]interface{})
	require.Len(t, schedules, 1)
}

func TestUniqueScheduleEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := performRequest(r, http.MethodGet, "/api/v1/unique-schedule?term=1850&courses=004571,004572&blacklist=20001", "")

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	objects := envelope["objects"].([]interface{})
	require.Len(t, objects, 1)
	class := objects[0].(map[string]interface{})
	assert.Equal(t, "10001", class["class"])
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := performRequest(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, http.MethodGet, "/api/v1/stats", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
