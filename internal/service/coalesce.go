package service

import (
	"github.com/campusflow/catalogue-api/internal/models"
	"github.com/campusflow/catalogue-api/pkg/clock"
	appErrors "github.com/campusflow/catalogue-api/pkg/errors"
)

// coalesceClassTimes folds class-time rows that share (day, startTime)
// into a single record, concatenating distinct locations as "A, B". The
// catalogue emits one row per room when a single session is split across
// rooms; after coalescing no two records share a (day, startTime) pair,
// so re-running the fold is a no-op.
func coalesceClassTimes(times []models.ClassTime) []models.ClassTime {
	res := make([]models.ClassTime, 0, len(times))
	for _, ct := range times {
		merged := false
		for i := range res {
			if res[i].Day != ct.Day || res[i].StartTime != ct.StartTime {
				continue
			}
			mergeLocation(&res[i], ct)
			merged = true
			break
		}
		if !merged {
			res = append(res, ct)
		}
	}
	return res
}

// mergeLocation applies the location merge rule: both present and distinct
// concatenates, otherwise whichever side has one wins. Every other field
// keeps the first record's value.
func mergeLocation(dst *models.ClassTime, src models.ClassTime) {
	switch {
	case dst.Location != nil && src.Location != nil:
		if *dst.Location != *src.Location {
			combined := *dst.Location + ", " + *src.Location
			dst.Location = &combined
		}
	case dst.Location == nil:
		dst.Location = src.Location
	}
}

// isEveningLength reports whether a class time's duration lands in the
// closed range [170, 180] minutes, the catalogue's once-a-week evening
// lecture format.
func isEveningLength(ct models.ClassTime) (bool, error) {
	start, err := clock.Parse(ct.StartTime)
	if err != nil {
		return false, appErrors.Clone(appErrors.ErrMalformedTime, "class has a malformed start time")
	}
	end, err := clock.Parse(ct.EndTime)
	if err != nil {
		return false, appErrors.Clone(appErrors.ErrMalformedTime, "class has a malformed end time")
	}
	duration := end - start
	return duration >= 170 && duration <= 180, nil
}
