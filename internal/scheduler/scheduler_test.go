package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusflow/catalogue-api/internal/models"
)

func testEngine(policy string) *Engine {
	return NewEngine(Config{BiweeklyPolicy: policy, Seed: 1}, zap.NewNop())
}

func makeClass(id, component, section string, times ...models.ClassTime) models.ClassDetail {
	return models.ClassDetail{
		Class: models.Class{
			ID:        id,
			Component: component,
			Section:   section,
		},
		ClassTimes: times,
	}
}

func meetingAt(day, start, end string, biweekly int) models.ClassTime {
	return models.ClassTime{Day: day, StartTime: start, EndTime: end, Biweekly: biweekly}
}

func TestGenerateSingleCourse(t *testing.T) {
	eng := testEngine(BiweeklyParity)
	courses := []models.CourseClasses{
		{
			CourseID: "004571",
			Name:     "CMPUT 174",
			Classes: []models.ClassDetail{
				makeClass("10001", "LEC", "A1", meetingAt("MWF", "09:00 AM", "09:50 AM", 0)),
				makeClass("10002", "LAB", "D1", meetingAt("T", "02:00 PM", "04:50 PM", 0)),
			},
		},
	}

	result, err := eng.Generate(context.Background(), courses, models.DefaultPreferences())
	require.NoError(t, err)
	require.Empty(t, result.ErrMsg)
	require.Len(t, result.Schedules, 1)
	assert.ElementsMatch(t, []string{"10001", "10002"}, result.Schedules[0])
}

func TestGenerateReportsCoursePairConflict(t *testing.T) {
	eng := testEngine(BiweeklyParity)
	courses := []models.CourseClasses{
		{
			CourseID: "004571",
			Name:     "CMPUT 174",
			Classes: []models.ClassDetail{
				makeClass("10001", "LEC", "A1", meetingAt("MWF", "09:00 AM", "09:50 AM", 0)),
			},
		},
		{
			CourseID: "004572",
			Name:     "CMPUT 175",
			Classes: []models.ClassDetail{
				makeClass("20001", "LEC", "A1", meetingAt("MWF", "09:00 AM", "09:50 AM", 0)),
			},
		},
	}

	result, err := eng.Generate(context.Background(), courses, models.DefaultPreferences())
	require.NoError(t, err)
	assert.Empty(t, result.Schedules)
	assert.Equal(t, "No valid schedules found. CMPUT 174 conflicts with CMPUT 175.", result.ErrMsg)
}

func TestGenerateAvoidsConflictingSections(t *testing.T) {
	eng := testEngine(BiweeklyParity)
	courses := []models.CourseClasses{
		{
			CourseID: "004571",
			Name:     "CMPUT 174",
			Classes: []models.ClassDetail{
				makeClass("10001", "LEC", "A1", meetingAt("MWF", "09:00 AM", "09:50 AM", 0)),
				makeClass("10002", "LEC", "A2", meetingAt("MWF", "10:00 AM", "10:50 AM", 0)),
			},
		},
		{
			CourseID: "004572",
			Name:     "CMPUT 175",
			Classes: []models.ClassDetail{
				makeClass("20001", "LEC", "B1", meetingAt("MWF", "09:00 AM", "09:50 AM", 0)),
			},
		},
	}

	result, err := eng.Generate(context.Background(), courses, models.DefaultPreferences())
	require.NoError(t, err)
	require.Empty(t, result.ErrMsg)
	require.Len(t, result.Schedules, 1)
	assert.ElementsMatch(t, []string{"10002", "20001"}, result.Schedules[0])
}

func TestGenerateGroupsAliases(t *testing.T) {
	eng := testEngine(BiweeklyParity)
	courses := []models.CourseClasses{
		{
			CourseID: "004571",
			Name:     "CMPUT 174",
			Classes: []models.ClassDetail{
				makeClass("10001", "LEC", "A1", meetingAt("MWF", "09:00 AM", "09:50 AM", 0)),
				makeClass("10002", "LEC", "A2", meetingAt("MWF", "09:00 AM", "09:50 AM", 0)),
			},
		},
	}

	result, err := eng.Generate(context.Background(), courses, models.DefaultPreferences())
	require.NoError(t, err)
	require.Len(t, result.Schedules, 1)

	// The two sections share identical meetings, so exactly one appears in
	// the schedule and the other is listed as its alias.
	representative := result.Schedules[0][0]
	group, ok := result.Aliases[representative]
	require.True(t, ok)
	require.Len(t, group, 1)
	assert.NotEqual(t, representative, group[0].ClassID)
	assert.Contains(t, []string{"LEC A1", "LEC A2"}, group[0].Section)
}

func TestGenerateRejectsMalformedTime(t *testing.T) {
	eng := testEngine(BiweeklyParity)
	courses := []models.CourseClasses{
		{
			CourseID: "004571",
			Name:     "CMPUT 174",
			Classes: []models.ClassDetail{
				makeClass("10001", "LEC", "A1", meetingAt("MWF", "9 o'clock", "09:50 AM", 0)),
			},
		},
	}

	_, err := eng.Generate(context.Background(), courses, models.DefaultPreferences())
	assert.Error(t, err)
}

func TestGenerateRespectsLimit(t *testing.T) {
	eng := testEngine(BiweeklyParity)
	lectures := []models.ClassDetail{
		makeClass("10001", "LEC", "A1", meetingAt("M", "09:00 AM", "09:50 AM", 0)),
		makeClass("10002", "LEC", "A2", meetingAt("M", "10:00 AM", "10:50 AM", 0)),
		makeClass("10003", "LEC", "A3", meetingAt("M", "11:00 AM", "11:50 AM", 0)),
	}
	courses := []models.CourseClasses{{CourseID: "004571", Name: "CMPUT 174", Classes: lectures}}

	prefs := models.DefaultPreferences()
	prefs.Limit = 2
	result, err := eng.Generate(context.Background(), courses, prefs)
	require.NoError(t, err)
	assert.Len(t, result.Schedules, 2)
}

func TestConflictCheck(t *testing.T) {
	tests := []struct {
		name     string
		policy   string
		a, b     models.ClassTime
		conflict bool
	}{
		{
			name:     "same day overlap",
			policy:   BiweeklyParity,
			a:        meetingAt("M", "09:00 AM", "10:00 AM", 0),
			b:        meetingAt("M", "09:30 AM", "10:30 AM", 0),
			conflict: true,
		},
		{
			name:     "same times different days",
			policy:   BiweeklyParity,
			a:        meetingAt("M", "09:00 AM", "10:00 AM", 0),
			b:        meetingAt("W", "09:00 AM", "10:00 AM", 0),
			conflict: false,
		},
		{
			name:     "back to back is not overlap",
			policy:   BiweeklyParity,
			a:        meetingAt("M", "09:00 AM", "10:00 AM", 0),
			b:        meetingAt("M", "10:00 AM", "11:00 AM", 0),
			conflict: false,
		},
		{
			name:     "thursday letters H and R collide",
			policy:   BiweeklyParity,
			a:        meetingAt("H", "09:00 AM", "10:00 AM", 0),
			b:        meetingAt("R", "09:30 AM", "10:30 AM", 0),
			conflict: true,
		},
		{
			name:     "opposite biweekly weeks share a slot",
			policy:   BiweeklyParity,
			a:        meetingAt("M", "09:00 AM", "10:00 AM", 1),
			b:        meetingAt("M", "09:00 AM", "10:00 AM", 2),
			conflict: false,
		},
		{
			name:     "same biweekly week conflicts",
			policy:   BiweeklyParity,
			a:        meetingAt("M", "09:00 AM", "10:00 AM", 1),
			b:        meetingAt("M", "09:00 AM", "10:00 AM", 1),
			conflict: true,
		},
		{
			name:     "weekly against biweekly conflicts",
			policy:   BiweeklyParity,
			a:        meetingAt("M", "09:00 AM", "10:00 AM", 0),
			b:        meetingAt("M", "09:00 AM", "10:00 AM", 2),
			conflict: true,
		},
		{
			name:     "always policy ignores parity",
			policy:   BiweeklyAlways,
			a:        meetingAt("M", "09:00 AM", "10:00 AM", 1),
			b:        meetingAt("M", "09:00 AM", "10:00 AM", 2),
			conflict: true,
		},
		{
			name:     "never policy lets biweekly share",
			policy:   BiweeklyNever,
			a:        meetingAt("M", "09:00 AM", "10:00 AM", 1),
			b:        meetingAt("M", "09:00 AM", "10:00 AM", 1),
			conflict: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eng := testEngine(tc.policy)
			courses := []models.CourseClasses{
				{CourseID: "c1", Name: "A 100", Classes: []models.ClassDetail{makeClass("1", "LEC", "A1", tc.a)}},
				{CourseID: "c2", Name: "B 100", Classes: []models.ClassDetail{makeClass("2", "LEC", "B1", tc.b)}},
			}
			result, err := eng.Generate(context.Background(), courses, models.DefaultPreferences())
			require.NoError(t, err)
			if tc.conflict {
				assert.NotEmpty(t, result.ErrMsg)
			} else {
				assert.Empty(t, result.ErrMsg)
				assert.Len(t, result.Schedules, 1)
			}
		})
	}
}

func TestSupersetClasstimeIsNotSelfConflict(t *testing.T) {
	// One meeting fully contains the other on the same day. This happens
	// when a single session is split across two rooms; the class must not
	// conflict with itself.
	unit := classUnit{
		id: "1",
		times: []meeting{
			{days: "M", start: 540, end: 1020},
			{days: "M", start: 720, end: 1020},
		},
	}
	ranges := classRanges(unit)
	assert.Len(t, ranges, 1)
}

func TestGenerateCancelledContext(t *testing.T) {
	eng := testEngine(BiweeklyParity)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	courses := []models.CourseClasses{
		{
			CourseID: "c1",
			Name:     "A 100",
			Classes: []models.ClassDetail{
				makeClass("1", "LEC", "A1", meetingAt("M", "09:00 AM", "10:00 AM", 0)),
			},
		},
		{
			CourseID: "c2",
			Name:     "B 100",
			Classes: []models.ClassDetail{
				makeClass("2", "LEC", "B1", meetingAt("W", "09:00 AM", "10:00 AM", 0)),
			},
		},
	}

	_, err := eng.Generate(ctx, courses, models.DefaultPreferences())
	assert.ErrorIs(t, err, context.Canceled)
}
