// Package scheduler assembles conflict-free timetables from filtered
// course classes. The solver is a minimum-remaining-values backtracking
// search over course components, followed by heuristic ranking of the
// surviving schedules against the caller's preferences.
package scheduler

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/campusflow/catalogue-api/internal/models"
	"github.com/campusflow/catalogue-api/pkg/clock"
)

// Biweekly overlap policies. Parity reproduces the catalogue's historical
// behaviour: alternating-week meetings conflict unless both alternate on
// different weeks.
const (
	BiweeklyParity = "parity"
	BiweeklyAlways = "always"
	BiweeklyNever  = "never"
)

// Config bounds the search and selects the biweekly overlap policy.
type Config struct {
	// MaxSchedules caps how many valid schedules the backtracking search
	// may accumulate before it stops descending.
	MaxSchedules int
	// ExhaustThreshold is the cross-product cardinality above which the
	// search is logged as non-exhaustive.
	ExhaustThreshold int
	// BiweeklyPolicy is one of the Biweekly* constants.
	BiweeklyPolicy string
	// Seed fixes the shuffle order when non-zero. Zero seeds from the
	// wall clock.
	Seed int64
}

// Engine generates ranked schedules. Safe for concurrent use; all search
// state lives in the per-call run.
type Engine struct {
	cfg    Config
	logger *zap.Logger
}

// NewEngine constructs a schedule engine.
func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxSchedules <= 0 {
		cfg.MaxSchedules = 125000
	}
	if cfg.ExhaustThreshold <= 0 {
		cfg.ExhaustThreshold = 500000
	}
	if cfg.BiweeklyPolicy == "" {
		cfg.BiweeklyPolicy = BiweeklyParity
	}
	return &Engine{cfg: cfg, logger: logger}
}

// classUnit is one selectable class within a component.
type classUnit struct {
	id        string
	component string
	section   string
	times     []meeting
}

// meeting is one parsed weekly meeting. Days is the raw multi-day string
// ("MWF"); start and end are minutes since midnight.
type meeting struct {
	days     string
	start    clock.Minutes
	end      clock.Minutes
	biweekly int
}

// courseGroup keeps a course's classes bucketed by component in first-seen
// order.
type courseGroup struct {
	name       string
	order      []string
	components map[string][]classUnit
}

// run holds the state of a single Generate call.
type run struct {
	eng       *Engine
	conflicts map[[2]string]struct{}
	rng       *rand.Rand
}

// Generate assembles ranked conflict-free schedules for the given courses.
// The result is never nil on a nil error: an unsatisfiable request comes
// back with empty schedules and a human-readable ErrMsg.
func (e *Engine) Generate(ctx context.Context, courses []models.CourseClasses, prefs models.Preferences) (*models.AssemblyResult, error) {
	groups, err := buildCourseGroups(courses)
	if err != nil {
		return nil, err
	}

	seed := e.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := &run{
		eng:       e,
		conflicts: make(map[[2]string]struct{}),
		rng:       rand.New(rand.NewSource(seed)),
	}

	// Pairwise satisfiability check first, so an impossible request names
	// the offending course pair instead of failing opaquely.
	var pairConflicts []string
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			pair := []courseGroup{groups[i], groups[j]}
			components, _ := buildComponents(pair)
			r.buildConflicts(components)
			if len(r.solve(ctx, components)) == 0 {
				pairConflicts = append(pairConflicts,
					fmt.Sprintf("%s conflicts with %s", groups[i].name, groups[j].name))
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
	if len(pairConflicts) > 0 {
		return &models.AssemblyResult{
			Schedules: [][]string{},
			Aliases:   models.AliasMap{},
			ErrMsg:    "No valid schedules found. " + strings.Join(pairConflicts, ", and ") + ".",
		}, nil
	}

	components, aliases := buildComponents(groups)
	cardinality := crossProductCardinality(components)
	e.logger.Debug("assembling schedules",
		zap.Int("courses", len(groups)),
		zap.Int("components", len(components)),
		zap.Int("cardinality", cardinality))
	if cardinality > e.cfg.ExhaustThreshold {
		e.logger.Warn("search space exceeds exhaustive threshold, results may be sampled",
			zap.Int("cardinality", cardinality),
			zap.Int("threshold", e.cfg.ExhaustThreshold))
	}

	r.buildConflicts(components)
	valid := r.solve(ctx, components)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(valid) == 0 {
		return &models.AssemblyResult{
			Schedules: [][]string{},
			Aliases:   models.AliasMap{},
			ErrMsg:    "No schedules to display: all schedules have time conflicts.",
		}, nil
	}

	r.rng.Shuffle(len(valid), func(i, j int) {
		valid[i], valid[j] = valid[j], valid[i]
	})

	ranked := rankSchedules(valid, prefs)
	schedules := make([][]string, 0, len(ranked))
	for _, s := range ranked {
		ids := make([]string, 0, len(s.classes))
		for _, c := range s.classes {
			ids = append(ids, c.id)
		}
		schedules = append(schedules, ids)
	}
	return &models.AssemblyResult{Schedules: schedules, Aliases: aliases}, nil
}

// buildCourseGroups converts hydrated course classes into parsed component
// buckets, preserving catalogue order.
func buildCourseGroups(courses []models.CourseClasses) ([]courseGroup, error) {
	groups := make([]courseGroup, 0, len(courses))
	for _, course := range courses {
		group := courseGroup{
			name:       course.Name,
			components: make(map[string][]classUnit),
		}
		if group.name == "" {
			group.name = course.CourseID
		}
		for _, class := range course.Classes {
			unit := classUnit{
				id:        class.ID,
				component: class.Component,
				section:   class.Section,
			}
			for _, ct := range class.ClassTimes {
				start, err := clock.Parse(ct.StartTime)
				if err != nil {
					return nil, fmt.Errorf("class %s start time: %w", class.ID, err)
				}
				end, err := clock.Parse(ct.EndTime)
				if err != nil {
					return nil, fmt.Errorf("class %s end time: %w", class.ID, err)
				}
				unit.times = append(unit.times, meeting{
					days:     ct.Day,
					start:    start,
					end:      end,
					biweekly: ct.Biweekly,
				})
			}
			if _, seen := group.components[class.Component]; !seen {
				group.order = append(group.order, class.Component)
			}
			group.components[class.Component] = append(group.components[class.Component], unit)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// buildComponents flattens course groups into solver components and folds
// classes with identical meeting tuples into alias groups, shrinking the
// search space to schedules that look distinct.
func buildComponents(groups []courseGroup) ([][]classUnit, models.AliasMap) {
	var components [][]classUnit
	aliases := models.AliasMap{}
	for _, group := range groups {
		for _, componentName := range group.order {
			var component []classUnit
			timesToFirst := make(map[string]string)
			for _, unit := range group.components[componentName] {
				key := meetingKey(unit.times)
				if first, ok := timesToFirst[key]; ok {
					aliases[first] = append(aliases[first], models.AliasRef{
						ClassID: unit.id,
						Section: unit.component + " " + unit.section,
					})
					continue
				}
				timesToFirst[key] = unit.id
				component = append(component, unit)
			}
			components = append(components, component)
		}
	}
	return components, aliases
}

// meetingKey encodes a class's meeting tuples for alias comparison.
// Location is deliberately excluded: sections meeting at the same times in
// different rooms still read as the same schedule.
func meetingKey(times []meeting) string {
	var b strings.Builder
	for _, t := range times {
		fmt.Fprintf(&b, "%s|%d|%d|%d;", t.days, t.start, t.end, t.biweekly)
	}
	return b.String()
}

// crossProductCardinality sizes the raw search space before solving. The
// product grows faster than exponentially in the number of courses, which
// is why it is measured up front.
func crossProductCardinality(components [][]classUnit) int {
	cardinality := 1
	for _, component := range components {
		cardinality *= len(component)
	}
	return cardinality
}
