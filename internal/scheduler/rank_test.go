package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusflow/catalogue-api/internal/models"
)

func unitWith(id string, times ...meeting) classUnit {
	return classUnit{id: id, component: "LEC", section: "A1", times: times}
}

func TestScheduleBlocksMergesShortGaps(t *testing.T) {
	classes := []classUnit{
		unitWith("1", meeting{days: "M", start: 540, end: 590}),  // 09:00-09:50
		unitWith("2", meeting{days: "M", start: 600, end: 650}),  // 10:00-10:50, 10 min gap
		unitWith("3", meeting{days: "M", start: 780, end: 830}),  // 13:00-13:50, long gap
		unitWith("4", meeting{days: "W", start: 540, end: 590}),
	}

	blocks := scheduleBlocks(classes)
	require.Len(t, blocks, 2)

	monday := blocks['M']
	require.Len(t, monday, 2)
	assert.Equal(t, span{start: 540, end: 650}, monday[0])
	assert.Equal(t, span{start: 780, end: 830}, monday[1])

	wednesday := blocks['W']
	require.Len(t, wednesday, 1)
	assert.Equal(t, span{start: 540, end: 590}, wednesday[0])
}

func TestScheduleBlocksExpandsMultiDayMeetings(t *testing.T) {
	classes := []classUnit{
		unitWith("1", meeting{days: "MWF", start: 540, end: 590}),
	}

	blocks := scheduleBlocks(classes)
	assert.Len(t, blocks, 3)
	for _, day := range []byte{'M', 'W', 'F'} {
		require.Len(t, blocks[day], 1)
	}
}

func TestEvaluateChargesCommutePerDay(t *testing.T) {
	prefs := models.DefaultPreferences()

	// Single 50-minute block: the only waste is the doubled commute.
	oneDay := &scoredSchedule{}
	oneDay.evaluate(map[byte][]span{'M': {{start: 600, end: 650}}}, prefs)
	assert.InDelta(t, 60, oneDay.timeWasted, 1e-9)

	twoDays := &scoredSchedule{}
	twoDays.evaluate(map[byte][]span{
		'M': {{start: 600, end: 650}},
		'W': {{start: 600, end: 650}},
	}, prefs)
	assert.InDelta(t, 120, twoDays.timeWasted, 1e-9)
}

func TestEvaluateCountsGapsAsWaste(t *testing.T) {
	prefs := models.DefaultPreferences()

	s := &scoredSchedule{}
	s.evaluate(map[byte][]span{
		'M': {{start: 540, end: 590}, {start: 720, end: 770}},
	}, prefs)
	// 60 commute + 130-minute gap between the two blocks.
	assert.InDelta(t, 190, s.timeWasted, 1e-9)
}

func TestEvaluatePenalisesEarlyStartsHarder(t *testing.T) {
	prefs := models.DefaultPreferences() // ideal start 10:00

	early := &scoredSchedule{}
	early.evaluate(map[byte][]span{'M': {{start: 540, end: 590}}}, prefs) // 09:00

	late := &scoredSchedule{}
	late.evaluate(map[byte][]span{'M': {{start: 660, end: 710}}}, prefs) // 11:00

	// Both are 60 minutes from the ideal, but the early start is cubed
	// while the late start is squared.
	assert.Greater(t, early.startErr, late.startErr)
}

func TestEvaluateVarianceWeighsStartsOverEnds(t *testing.T) {
	prefs := models.DefaultPreferences()

	varyingStarts := &scoredSchedule{}
	varyingStarts.evaluate(map[byte][]span{
		'M': {{start: 540, end: 650}},
		'W': {{start: 660, end: 650 + 120}},
	}, prefs)

	varyingEnds := &scoredSchedule{}
	varyingEnds.evaluate(map[byte][]span{
		'M': {{start: 540, end: 650}},
		'W': {{start: 540, end: 770}},
	}, prefs)

	assert.Greater(t, varyingStarts.timeVariance, varyingEnds.timeVariance)
}

func TestRankSchedulesPrefersCompactDays(t *testing.T) {
	prefs := models.DefaultPreferences()
	prefs.Limit = 10

	compact := candidate{classes: []classUnit{
		unitWith("compact-a", meeting{days: "M", start: 600, end: 650}),
		unitWith("compact-b", meeting{days: "M", start: 660, end: 710}),
	}}
	scattered := candidate{classes: []classUnit{
		unitWith("scattered-a", meeting{days: "M", start: 600, end: 650}),
		unitWith("scattered-b", meeting{days: "M", start: 900, end: 950}),
	}}

	ranked := rankSchedules([]candidate{scattered, compact}, prefs)
	require.Len(t, ranked, 2)
	assert.Equal(t, "compact-a", ranked[0].classes[0].id)
}

func TestRankSchedulesAppliesLimit(t *testing.T) {
	prefs := models.DefaultPreferences()
	prefs.Limit = 1

	candidates := []candidate{
		{classes: []classUnit{unitWith("a", meeting{days: "M", start: 600, end: 650})}},
		{classes: []classUnit{unitWith("b", meeting{days: "M", start: 660, end: 710})}},
		{classes: []classUnit{unitWith("c", meeting{days: "M", start: 720, end: 770})}},
	}

	ranked := rankSchedules(candidates, prefs)
	assert.Len(t, ranked, 1)
}
