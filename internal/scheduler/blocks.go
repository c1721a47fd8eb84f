package scheduler

import "sort"

// span is a contiguous on-campus interval within one day.
type span struct {
	start, end int
}

// scheduleBlocks maps each weekday letter to the schedule's merged campus
// blocks. Meetings separated by fifteen minutes or less fold into one
// block, since a gap that short is not usable time.
func scheduleBlocks(classes []classUnit) map[byte][]span {
	byDay := make(map[byte][]span)
	for _, c := range classes {
		for _, t := range c.times {
			for k := 0; k < len(t.days); k++ {
				day := t.days[k]
				byDay[day] = append(byDay[day], span{start: t.start, end: t.end})
			}
		}
	}
	for day, spans := range byDay {
		if len(spans) == 1 {
			continue
		}
		sort.Slice(spans, func(i, j int) bool {
			if spans[i].start != spans[j].start {
				return spans[i].start < spans[j].start
			}
			return spans[i].end < spans[j].end
		})
		merged := spans[:1]
		for _, s := range spans[1:] {
			last := &merged[len(merged)-1]
			if s.start-last.end <= 15 {
				if s.end > last.end {
					last.end = s.end
				}
				continue
			}
			merged = append(merged, s)
		}
		byDay[day] = merged
	}
	return byDay
}
