package scheduler

import "sort"

// dayIndex spreads weekdays onto disjoint minute offsets so that meetings
// on different days can never overlap numerically. 'H' and 'R' are both
// Thursday; both appear in catalogue data.
var dayIndex = map[byte]int{
	'M': 0, 'T': 1, 'W': 2, 'H': 3, 'R': 3, 'F': 4, 'S': 5, 'U': 6,
}

const dayStride = 2400

// timeRange is a day-offset meeting interval carrying its biweekly flag.
type timeRange struct {
	start, end int
	biweekly   int
	day        byte
}

// buildConflicts fills the pairwise conflict table for every class across
// the given components. Results are memoised in the run so the pairwise
// pre-checks and the full solve share one table.
func (r *run) buildConflicts(components [][]classUnit) {
	var flat []classUnit
	for _, component := range components {
		flat = append(flat, component...)
	}
	for i := range flat {
		for j := range flat {
			r.conflictCheck(flat[i], flat[j])
		}
	}
}

// conflictCheck records and reports whether two classes overlap in time.
func (r *run) conflictCheck(a, b classUnit) bool {
	if _, ok := r.conflicts[[2]string{a.id, b.id}]; ok {
		return true
	}
	var ranges []timeRange
	for _, unit := range []classUnit{a, b} {
		ranges = append(ranges, classRanges(unit)...)
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].start < ranges[j].start })
	for i := 0; i+1 < len(ranges); i++ {
		if ranges[i].end <= ranges[i+1].start {
			continue
		}
		if r.eng.biweeklyConflict(ranges[i].biweekly, ranges[i+1].biweekly) {
			r.conflicts[[2]string{a.id, b.id}] = struct{}{}
			r.conflicts[[2]string{b.id, a.id}] = struct{}{}
			return true
		}
	}
	return false
}

// classRanges expands a class's meetings into day-offset ranges. A range
// wholly contained by an existing same-day range is dropped: a classtime
// that is a superset of another (same meeting split across locations) is
// not a self-conflict.
func classRanges(unit classUnit) []timeRange {
	var ranges []timeRange
	for _, t := range unit.times {
		for k := 0; k < len(t.days); k++ {
			day := t.days[k]
			mult, ok := dayIndex[day]
			if !ok {
				continue
			}
			candidate := timeRange{
				start:    t.start + dayStride*mult,
				end:      t.end + dayStride*mult,
				biweekly: t.biweekly,
				day:      day,
			}
			subset := false
			for _, existing := range ranges {
				if existing.day == day && candidate.start >= existing.start && candidate.end <= existing.end {
					subset = true
					break
				}
			}
			if !subset {
				ranges = append(ranges, candidate)
			}
		}
	}
	return ranges
}

// biweeklyConflict decides whether two overlapping ranges truly conflict
// given their biweekly flags and the configured policy.
func (e *Engine) biweeklyConflict(b1, b2 int) bool {
	switch e.cfg.BiweeklyPolicy {
	case BiweeklyAlways:
		return true
	case BiweeklyNever:
		return b1 == 0 && b2 == 0
	default:
		// Parity: weekly meetings conflict with everything; alternating
		// meetings conflict only when they fall on the same week.
		return b1 == 0 || b2 == 0 || b1 == b2
	}
}
