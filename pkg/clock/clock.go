package clock

import (
	"fmt"
	"strconv"

	appErrors "github.com/campusflow/catalogue-api/pkg/errors"
)

// Minutes is an offset from midnight. It is the only time representation
// used for interval comparisons; calendar and timezone semantics never apply.
type Minutes = int

// Parse converts a catalogue clock string of the form "hh:mm AM" or
// "hh:mm PM" (two-digit hour and minute) into minutes since midnight.
func Parse(raw string) (Minutes, error) {
	if len(raw) < 8 {
		return 0, malformed(raw, nil)
	}

	h, err := strconv.Atoi(raw[0:2])
	if err != nil {
		return 0, malformed(raw, err)
	}
	if raw[2] != ':' {
		return 0, malformed(raw, nil)
	}
	m, err := strconv.Atoi(raw[3:5])
	if err != nil {
		return 0, malformed(raw, err)
	}
	if m < 0 || m > 59 || h < 1 || h > 12 {
		return 0, malformed(raw, nil)
	}

	switch raw[6:8] {
	case "PM":
		if h == 12 {
			return h*60 + m, nil
		}
		return (h+12)*60 + m, nil
	case "AM":
		if h == 12 {
			// Midnight.
			return m, nil
		}
		return h*60 + m, nil
	}
	return 0, malformed(raw, nil)
}

// MustParse is a test and fixture helper; it panics on malformed input.
func MustParse(raw string) Minutes {
	v, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return v
}

func malformed(raw string, err error) error {
	return appErrors.Wrap(err, appErrors.ErrMalformedTime.Code, appErrors.ErrMalformedTime.Status,
		fmt.Sprintf("malformed clock time %q", raw))
}
