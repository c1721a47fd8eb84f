package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusflow/catalogue-api/internal/models"
	"github.com/campusflow/catalogue-api/internal/repository"
	appErrors "github.com/campusflow/catalogue-api/pkg/errors"
)

// catalogueRepository is the read surface the catalogue services consume.
type catalogueRepository interface {
	ListTerms(ctx context.Context) ([]models.Term, error)
	ListCourses(ctx context.Context, termID string) ([]models.CourseRef, error)
	CourseName(ctx context.Context, termID, courseID string) (string, error)
	ListClasses(ctx context.Context, termID, courseID string, filter repository.ClassFilter) ([]models.Class, error)
	DistinctComponents(ctx context.Context, termID, courseID string) ([]string, error)
	GetClass(ctx context.Context, termID, classID string) (*models.Class, error)
	ClassIDsForCourse(ctx context.Context, termID, courseID string) ([]string, error)
	ListClassTimes(ctx context.Context, termID, classID string) ([]models.ClassTime, error)
	ListTermClassTimes(ctx context.Context, termID string) ([]models.ClassTime, error)
	DistinctLocations(ctx context.Context, termID string) ([]models.Room, error)
	ClassIDsForLocation(ctx context.Context, termID, location string) ([]string, error)
}

// hydrationCache holds fully hydrated classes for the life of the process.
// Term data is immutable once loaded, so entries are never invalidated.
// Races to populate the same entry are benign: both writers produce the
// same value.
type hydrationCache struct {
	mu      sync.RWMutex
	classes map[string]map[string]*models.ClassDetail
}

func newHydrationCache() *hydrationCache {
	return &hydrationCache{classes: make(map[string]map[string]*models.ClassDetail)}
}

func (c *hydrationCache) get(termID, classID string) (*models.ClassDetail, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	term, ok := c.classes[termID]
	if !ok {
		return nil, false
	}
	detail, ok := term[classID]
	return detail, ok
}

func (c *hydrationCache) put(termID, classID string, detail *models.ClassDetail) {
	c.mu.Lock()
	defer c.mu.Unlock()
	term, ok := c.classes[termID]
	if !ok {
		term = make(map[string]*models.ClassDetail)
		c.classes[termID] = term
	}
	term[classID] = detail
}

// CatalogueService serves term, course, and class queries, owning both the
// Redis listing cache and the in-process class hydration cache.
type CatalogueService struct {
	repo      catalogueRepository
	cache     *CacheService
	hydrated  *hydrationCache
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogueService creates a catalogue service instance.
func NewCatalogueService(repo catalogueRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CatalogueService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogueService{
		repo:      repo,
		cache:     cache,
		hydrated:  newHydrationCache(),
		validator: validate,
		logger:    logger,
	}
}

// Terms lists every known term.
func (s *CatalogueService) Terms(ctx context.Context) ([]models.Term, error) {
	const key = "catalogue:terms"
	var cached []models.Term
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}
	terms, err := s.repo.ListTerms(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list terms")
	}
	s.cache.Set(ctx, key, terms)
	return terms, nil
}

// Courses lists the course index of a term.
func (s *CatalogueService) Courses(ctx context.Context, termID string) ([]models.CourseRef, error) {
	key := "catalogue:" + termID + ":courses"
	var cached []models.CourseRef
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}
	courses, err := s.repo.ListCourses(ctx, termID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	s.cache.Set(ctx, key, courses)
	return courses, nil
}

// CourseName resolves a course's display string.
func (s *CatalogueService) CourseName(ctx context.Context, termID, courseID string) (string, error) {
	name, err := s.repo.CourseName(ctx, termID, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve course")
	}
	return name, nil
}

// CourseClasses returns the course's classes surviving the preference
// filter, hydrated with coalesced class times. A nil result with a nil
// error means the preferences filtered out a mandatory component or every
// lecture option: the course cannot satisfy the preferences. That signal
// is distinct from an empty class list, which means the course simply has
// no classes.
func (s *CatalogueService) CourseClasses(ctx context.Context, termID, courseID string, prefs models.Preferences) (*models.CourseClasses, error) {
	filter := repository.ClassFilter{ExcludeClassIDs: prefs.Blacklist}
	if !prefs.OnlineClasses {
		filter.ExcludeModes = []string{"Remote Delivery", "Internet"}
	}

	classes, err := s.repo.ListClasses(ctx, termID, courseID, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}

	// Component completeness: if the exclusions removed an entire
	// component category (every LAB, say), no valid schedule can include
	// this course.
	allComponents, err := s.repo.DistinctComponents(ctx, termID, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list components")
	}
	remaining := make(map[string]struct{})
	for _, class := range classes {
		remaining[class.Component] = struct{}{}
	}
	if len(remaining) != len(allComponents) {
		return nil, nil
	}

	details := make([]models.ClassDetail, 0, len(classes))
	allLectureEvening := true
	sawLecture := false
	for _, class := range classes {
		detail, err := s.hydrateRow(ctx, class)
		if err != nil {
			return nil, err
		}
		if !prefs.EveningClasses && class.Component == "LEC" {
			sawLecture = true
			hasEvening := false
			for _, ct := range detail.ClassTimes {
				evening, err := isEveningLength(ct)
				if err != nil {
					return nil, err
				}
				if evening {
					hasEvening = true
				} else {
					allLectureEvening = false
				}
			}
			if hasEvening {
				continue
			}
		}
		details = append(details, *detail)
	}
	if !prefs.EveningClasses && sawLecture && allLectureEvening {
		return nil, nil
	}

	return &models.CourseClasses{CourseID: courseID, Classes: details}, nil
}

// HydrateClass returns the cached hydrated class, loading and coalescing
// it on first access.
func (s *CatalogueService) HydrateClass(ctx context.Context, termID, classID string) (*models.ClassDetail, error) {
	if detail, ok := s.hydrated.get(termID, classID); ok {
		return detail, nil
	}
	class, err := s.repo.GetClass(ctx, termID, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	return s.hydrateRow(ctx, *class)
}

// UniqueSchedule rehydrates a shared schedule: every class of the named
// courses except the blacklisted ones.
func (s *CatalogueService) UniqueSchedule(ctx context.Context, termID string, courseIDs, blacklist []string) ([]models.ClassDetail, error) {
	excluded := make(map[string]struct{}, len(blacklist))
	for _, id := range blacklist {
		excluded[id] = struct{}{}
	}
	var schedule []models.ClassDetail
	for _, courseID := range courseIDs {
		ids, err := s.repo.ClassIDsForCourse(ctx, termID, courseID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course classes")
		}
		for _, id := range ids {
			if _, skip := excluded[id]; skip {
				continue
			}
			detail, err := s.HydrateClass(ctx, termID, id)
			if err != nil {
				return nil, err
			}
			schedule = append(schedule, *detail)
		}
	}
	return schedule, nil
}

// hydrateRow attaches coalesced class times to an already loaded class row
// and caches the result.
func (s *CatalogueService) hydrateRow(ctx context.Context, class models.Class) (*models.ClassDetail, error) {
	if detail, ok := s.hydrated.get(class.TermID, class.ID); ok {
		return detail, nil
	}
	times, err := s.repo.ListClassTimes(ctx, class.TermID, class.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class times")
	}
	detail := &models.ClassDetail{
		Class: class,
		// Catalogue rows carry no resolved instructor name; the UID is the
		// best display value available.
		InstructorName: class.InstructorUID,
		ClassTimes:     coalesceClassTimes(times),
	}
	s.hydrated.put(class.TermID, class.ID, detail)
	return detail, nil
}
