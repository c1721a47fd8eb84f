package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campusflow/catalogue-api/internal/models"
)

// ClassFilter narrows class listings. All exclusions are bound as query
// parameters; identifiers from callers are never concatenated into SQL.
type ClassFilter struct {
	ExcludeClassIDs []string
	ExcludeModes    []string
}

// CatalogueRepository serves read-only catalogue queries. Catalogue data
// is immutable per term, so every query here is a plain select.
type CatalogueRepository struct {
	db *sqlx.DB
}

// NewCatalogueRepository instantiates a catalogue repository.
func NewCatalogueRepository(db *sqlx.DB) *CatalogueRepository {
	return &CatalogueRepository{db: db}
}

// ListTerms returns all known terms.
func (r *CatalogueRepository) ListTerms(ctx context.Context) ([]models.Term, error) {
	const query = `SELECT term, term_title, start_date, end_date FROM terms ORDER BY term`
	var terms []models.Term
	if err := r.db.SelectContext(ctx, &terms, query); err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	return terms, nil
}

// ListCourses returns the course index for a term.
func (r *CatalogueRepository) ListCourses(ctx context.Context, termID string) ([]models.CourseRef, error) {
	const query = `SELECT course, as_string FROM courses WHERE term = $1 ORDER BY as_string`
	var courses []models.CourseRef
	if err := r.db.SelectContext(ctx, &courses, query, termID); err != nil {
		return nil, fmt.Errorf("list courses for term %s: %w", termID, err)
	}
	return courses, nil
}

// CourseName resolves the display string of a course.
func (r *CatalogueRepository) CourseName(ctx context.Context, termID, courseID string) (string, error) {
	const query = `SELECT as_string FROM courses WHERE term = $1 AND course = $2`
	var name string
	if err := r.db.GetContext(ctx, &name, query, termID, courseID); err != nil {
		return "", err
	}
	return name, nil
}

// ListClasses returns a course's classes with the filter's exclusions
// applied in the query.
func (r *CatalogueRepository) ListClasses(ctx context.Context, termID, courseID string, filter ClassFilter) ([]models.Class, error) {
	query := `SELECT term, course, class, component, section, as_string, campus, instructor_uid, instruction_mode FROM classes WHERE term = ? AND course = ?`
	args := []interface{}{termID, courseID}

	if len(filter.ExcludeClassIDs) > 0 {
		query += ` AND class NOT IN (?)`
		args = append(args, filter.ExcludeClassIDs)
	}
	if len(filter.ExcludeModes) > 0 {
		query += ` AND instruction_mode NOT IN (?)`
		args = append(args, filter.ExcludeModes)
	}

	query, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("expand class filter: %w", err)
	}
	query = r.db.Rebind(query)

	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, expanded...); err != nil {
		return nil, fmt.Errorf("list classes for %s/%s: %w", termID, courseID, err)
	}
	return classes, nil
}

// DistinctComponents returns the component categories present in the
// unfiltered class set of a course.
func (r *CatalogueRepository) DistinctComponents(ctx context.Context, termID, courseID string) ([]string, error) {
	const query = `SELECT DISTINCT component FROM classes WHERE term = $1 AND course = $2`
	var components []string
	if err := r.db.SelectContext(ctx, &components, query, termID, courseID); err != nil {
		return nil, fmt.Errorf("distinct components for %s/%s: %w", termID, courseID, err)
	}
	return components, nil
}

// GetClass loads a single class row. Callers translate sql.ErrNoRows.
func (r *CatalogueRepository) GetClass(ctx context.Context, termID, classID string) (*models.Class, error) {
	const query = `SELECT term, course, class, component, section, as_string, campus, instructor_uid, instruction_mode FROM classes WHERE term = $1 AND class = $2`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, termID, classID); err != nil {
		return nil, err
	}
	return &class, nil
}

// ClassIDsForCourse lists the class identifiers of a course.
func (r *CatalogueRepository) ClassIDsForCourse(ctx context.Context, termID, courseID string) ([]string, error) {
	const query = `SELECT class FROM classes WHERE term = $1 AND course = $2`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, termID, courseID); err != nil {
		return nil, fmt.Errorf("class ids for %s/%s: %w", termID, courseID, err)
	}
	return ids, nil
}

// ListClassTimes returns the raw (uncoalesced) meeting rows of a class.
func (r *CatalogueRepository) ListClassTimes(ctx context.Context, termID, classID string) ([]models.ClassTime, error) {
	const query = `SELECT class, location, day, start_time, end_time, COALESCE(biweekly, 0) AS biweekly FROM class_times WHERE term = $1 AND class = $2`
	var times []models.ClassTime
	if err := r.db.SelectContext(ctx, &times, query, termID, classID); err != nil {
		return nil, fmt.Errorf("class times for %s/%s: %w", termID, classID, err)
	}
	return times, nil
}

// ListTermClassTimes returns every located meeting row of a term, the
// input to room-availability analysis. Rows with the unresolved-location
// sentinel are excluded at the source.
func (r *CatalogueRepository) ListTermClassTimes(ctx context.Context, termID string) ([]models.ClassTime, error) {
	const query = `SELECT class, location, day, start_time, end_time, COALESCE(biweekly, 0) AS biweekly FROM class_times WHERE term = $1 AND location IS NOT NULL AND location <> $2`
	var times []models.ClassTime
	if err := r.db.SelectContext(ctx, &times, query, termID, models.LocationTBD); err != nil {
		return nil, fmt.Errorf("term class times for %s: %w", termID, err)
	}
	return times, nil
}

// DistinctLocations lists every known room of a term.
func (r *CatalogueRepository) DistinctLocations(ctx context.Context, termID string) ([]models.Room, error) {
	const query = `SELECT DISTINCT location FROM class_times WHERE term = $1 AND location IS NOT NULL ORDER BY location`
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query, termID); err != nil {
		return nil, fmt.Errorf("distinct locations for %s: %w", termID, err)
	}
	return rooms, nil
}

// ClassIDsForLocation lists classes meeting at a specific room.
func (r *CatalogueRepository) ClassIDsForLocation(ctx context.Context, termID, location string) ([]string, error) {
	const query = `SELECT class FROM class_times WHERE term = $1 AND location = $2`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, termID, location); err != nil {
		return nil, fmt.Errorf("classes at %s/%s: %w", termID, location, err)
	}
	return ids, nil
}
