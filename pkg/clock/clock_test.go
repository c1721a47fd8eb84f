package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"12:00 AM", 0},
		{"12:30 AM", 30},
		{"01:00 AM", 60},
		{"08:00 AM", 480},
		{"11:59 AM", 719},
		{"12:00 PM", 720},
		{"12:30 PM", 750},
		{"01:15 PM", 795},
		{"05:20 PM", 1040},
		{"11:59 PM", 1439},
	}
	for _, tc := range cases {
		got, err := Parse(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestParseMonotonic(t *testing.T) {
	ordered := []string{"12:00 AM", "06:45 AM", "11:59 AM", "12:00 PM", "03:30 PM", "11:59 PM"}
	prev := -1
	for _, raw := range ordered {
		v, err := Parse(raw)
		require.NoError(t, err)
		assert.Greater(t, v, prev, raw)
		prev = v
	}
}

func TestParseMalformed(t *testing.T) {
	for _, raw := range []string{"", "9:00 AM", "12:00", "25:00 AM", "12:61 PM", "12-00 PM", "12:00 XM"} {
		_, err := Parse(raw)
		assert.Error(t, err, raw)
	}
}
