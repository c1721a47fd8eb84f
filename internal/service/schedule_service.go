package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusflow/catalogue-api/internal/dto"
	"github.com/campusflow/catalogue-api/internal/models"
	appErrors "github.com/campusflow/catalogue-api/pkg/errors"
	"github.com/campusflow/catalogue-api/pkg/export"
)

// Assembler builds ranked conflict-free schedules from filtered course
// class sets.
type Assembler interface {
	Generate(ctx context.Context, courses []models.CourseClasses, prefs models.Preferences) (*models.AssemblyResult, error)
}

// ErrAssemblyTimeout is returned when combinatorial search exceeds the
// configured deadline.
var ErrAssemblyTimeout = appErrors.New("ASSEMBLY_TIMEOUT", http.StatusServiceUnavailable, "schedule assembly timed out")

// ScheduleService orchestrates preference filtering, schedule assembly,
// and hydration of the results.
type ScheduleService struct {
	catalogue *CatalogueService
	assembler Assembler
	notifier  Notifier
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	timeout   time.Duration

	csv *export.CSVExporter
	pdf *export.PDFExporter
}

// NewScheduleService creates a schedule service instance.
func NewScheduleService(catalogue *CatalogueService, assembler Assembler, notifier Notifier, metrics *MetricsService, validate *validator.Validate, timeout time.Duration, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &ScheduleService{
		catalogue: catalogue,
		assembler: assembler,
		notifier:  notifier,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		timeout:   timeout,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
	}
}

// resolvePreferences overlays the request's named preferences onto the
// permissive defaults.
func resolvePreferences(req dto.PreferencesRequest) models.Preferences {
	prefs := models.DefaultPreferences()
	if req.EveningClasses != nil {
		prefs.EveningClasses = *req.EveningClasses
	}
	if req.OnlineClasses != nil {
		prefs.OnlineClasses = *req.OnlineClasses
	}
	if req.IdealStartTime != nil {
		prefs.IdealStartTime = *req.IdealStartTime
	}
	if req.IdealConsecutiveLength != nil {
		prefs.IdealConsecutiveLength = *req.IdealConsecutiveLength
	}
	if req.Limit != nil {
		prefs.Limit = *req.Limit
	}
	prefs.Blacklist = req.Blacklist
	return prefs
}

// Generate produces ranked conflict-free schedules for the request. An
// unsatisfiable request (preferences filtered out a course, or every
// combination conflicts) comes back with empty schedules and an ErrMsg;
// only infrastructure failures return an error.
func (s *ScheduleService) Generate(ctx context.Context, req dto.GenerateSchedulesRequest) (*models.ScheduleSet, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule request")
	}
	prefs := resolvePreferences(req.Preferences)
	if err := s.validator.Struct(prefs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preferences")
	}

	courses := make([]models.CourseClasses, 0, len(req.CourseIDs))
	names := make([]string, 0, len(req.CourseIDs))
	for _, courseID := range req.CourseIDs {
		name, err := s.catalogue.CourseName(ctx, req.TermID, courseID)
		if err != nil {
			return nil, err
		}
		filtered, err := s.catalogue.CourseClasses(ctx, req.TermID, courseID, prefs)
		if err != nil {
			return nil, err
		}
		if filtered == nil {
			return &models.ScheduleSet{
				Schedules: [][]*models.ClassDetail{},
				Aliases:   models.AliasMap{},
				ErrMsg:    "No schedules to display: the provided settings filtered out all classes for " + name,
			}, nil
		}
		filtered.Name = name
		courses = append(courses, *filtered)
		names = append(names, name)
	}

	s.notifyLookup(names, req.TermID, prefs.Blacklist)

	assembleCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	started := time.Now()
	result, err := s.assembler.Generate(assembleCtx, courses, prefs)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrAssemblyTimeout
		}
		return nil, appErrors.FromError(err)
	}
	if s.metrics != nil {
		s.metrics.ObserveAssembly(time.Since(started), len(result.Schedules))
	}
	if result.ErrMsg != "" {
		return &models.ScheduleSet{
			Schedules: [][]*models.ClassDetail{},
			Aliases:   models.AliasMap{},
			ErrMsg:    result.ErrMsg,
		}, nil
	}

	hydrated := make([][]*models.ClassDetail, 0, len(result.Schedules))
	for _, schedule := range result.Schedules {
		classes := make([]*models.ClassDetail, 0, len(schedule))
		for _, classID := range schedule {
			detail, err := s.catalogue.HydrateClass(ctx, req.TermID, classID)
			if err != nil {
				return nil, err
			}
			classes = append(classes, detail)
		}
		hydrated = append(hydrated, classes)
	}
	return &models.ScheduleSet{Schedules: hydrated, Aliases: result.Aliases}, nil
}

// Export renders generated schedules as a CSV or PDF document and returns
// the bytes together with content type and a suggested file name.
func (s *ScheduleService) Export(ctx context.Context, req dto.ExportSchedulesRequest) ([]byte, string, string, error) {
	set, err := s.Generate(ctx, req.GenerateSchedulesRequest)
	if err != nil {
		return nil, "", "", err
	}
	if set.ErrMsg != "" {
		return nil, "", "", appErrors.New(appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, set.ErrMsg)
	}

	sections := make([]export.Section, 0, len(set.Schedules))
	for i, schedule := range set.Schedules {
		data := export.Dataset{
			Headers: []string{"Class", "Component", "Section", "Day", "Start", "End", "Location"},
		}
		for _, class := range schedule {
			for _, ct := range class.ClassTimes {
				location := ""
				if ct.Location != nil {
					location = *ct.Location
				}
				data.Rows = append(data.Rows, map[string]string{
					"Class":     class.AsString,
					"Component": class.Component,
					"Section":   class.Section,
					"Day":       ct.Day,
					"Start":     ct.StartTime,
					"End":       ct.EndTime,
					"Location":  location,
				})
			}
		}
		sections = append(sections, export.Section{
			Title: fmt.Sprintf("Schedule %d", i+1),
			Data:  data,
		})
	}

	switch req.Format {
	case "pdf":
		payload, err := s.pdf.RenderSections(sections, "Generated Schedules - Term "+req.TermID)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", "schedules.pdf", nil
	default:
		payload, err := s.csv.RenderSections(sections)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", "schedules.csv", nil
	}
}

func (s *ScheduleService) notifyLookup(names []string, termID string, blacklist []string) {
	if s.notifier == nil {
		return
	}
	msg := strings.Join(names, ", ") + " lookup in term " + termID
	if len(blacklist) > 0 {
		msg += " with blacklist [" + strings.Join(blacklist, ", ") + "]"
	}
	s.notifier.Notify(msg)
}
