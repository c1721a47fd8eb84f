package scheduler

import (
	"math"
	"sort"

	"github.com/campusflow/catalogue-api/internal/models"
)

// assumedCommuteMinutes is charged twice per on-campus day: getting there
// and back counts against the schedule.
const assumedCommuteMinutes = 30

// scoredSchedule carries a candidate with its heuristic metrics and ranks.
type scoredSchedule struct {
	classes []classUnit

	timeWasted   float64
	timeVariance float64
	gapErr       float64
	startErr     float64

	timeWastedRank int
	timeVarRank    int
	gapErrRank     int
	startErrRank   int
	adjustedScore  float64
}

// evaluate computes the four heuristic metrics from the schedule's merged
// day blocks.
func (s *scoredSchedule) evaluate(blocks map[byte][]span, prefs models.Preferences) {
	idealConsec := float64(prefs.IdealConsecutiveLength) * 60
	idealStart := prefs.IdealStartTime * 60

	var startTimes, endTimes []float64
	for _, daySpans := range blocks {
		s.timeWasted += assumedCommuteMinutes * 2
		dayStart := float64(daySpans[0].start)
		dayEnd := float64(daySpans[len(daySpans)-1].end)
		startTimes = append(startTimes, dayStart)
		endTimes = append(endTimes, dayEnd)

		// Early starts are punished harder than late ones: the cube keeps
		// its sign advantage over the square only below the ideal.
		exp := 2.0
		if dayStart < idealStart {
			exp = 3.0
		}
		s.startErr += math.Pow(idealStart-dayStart, exp)

		s.timeWasted += dayEnd - dayStart
		for _, block := range daySpans {
			blockLen := float64(block.end - block.start)
			s.timeWasted -= blockLen
			gapExp := 3.0
			if blockLen <= idealConsec {
				gapExp = 2.0
			}
			s.gapErr += math.Pow(blockLen-idealConsec, gapExp)
		}
	}
	if len(blocks) == 0 {
		return
	}
	s.startErr /= float64(len(blocks))

	avgStart := mean(startTimes)
	avgEnd := mean(endTimes)
	s.timeVariance = variance(startTimes, avgStart)*1.5 + variance(endTimes, avgEnd)
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func variance(values []float64, avg float64) float64 {
	var sum float64
	for _, v := range values {
		sum += (v - avg) * (v - avg)
	}
	return sum / float64(len(values))
}

// rankSchedules scores every candidate, ranks each metric independently
// (worst first, so a higher rank number is better), combines the ranks
// with gap error weighted 1.5, and returns the top schedules by combined
// rank up to the preference limit.
func rankSchedules(valid []candidate, prefs models.Preferences) []*scoredSchedule {
	scored := make([]*scoredSchedule, 0, len(valid))
	for _, v := range valid {
		s := &scoredSchedule{classes: v.classes}
		s.evaluate(scheduleBlocks(v.classes), prefs)
		scored = append(scored, s)
	}

	rankBy(scored, func(s *scoredSchedule) float64 { return s.gapErr },
		func(s *scoredSchedule, r int) { s.gapErrRank = r })
	rankBy(scored, func(s *scoredSchedule) float64 { return s.timeVariance },
		func(s *scoredSchedule, r int) { s.timeVarRank = r })
	rankBy(scored, func(s *scoredSchedule) float64 { return s.timeWasted },
		func(s *scoredSchedule, r int) { s.timeWastedRank = r })
	rankBy(scored, func(s *scoredSchedule) float64 { return s.startErr },
		func(s *scoredSchedule, r int) { s.startErrRank = r })

	for _, s := range scored {
		s.adjustedScore = float64(s.timeWastedRank) +
			float64(s.timeVarRank) +
			float64(s.gapErrRank)*1.5 +
			float64(s.startErrRank)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].adjustedScore > scored[j].adjustedScore
	})

	limit := prefs.Limit
	if limit <= 0 || limit > len(scored) {
		limit = len(scored)
	}
	return scored[:limit]
}

// rankBy sorts descending by the metric and assigns 1-based positions, so
// the schedule with the lowest metric value receives the highest rank.
func rankBy(scored []*scoredSchedule, metric func(*scoredSchedule) float64, assign func(*scoredSchedule, int)) {
	ordered := make([]*scoredSchedule, len(scored))
	copy(ordered, scored)
	sort.SliceStable(ordered, func(i, j int) bool {
		return metric(ordered[i]) > metric(ordered[j])
	})
	for i, s := range ordered {
		assign(s, i+1)
	}
}
