package models

// Preferences is the typed, validated preference set applied to class
// filtering and schedule assembly.
type Preferences struct {
	// EveningClasses allows evening-length lecture sessions (duration in
	// the closed range [170, 180] minutes).
	EveningClasses bool `json:"evening"`
	// OnlineClasses allows remote/internet delivery sections.
	OnlineClasses bool `json:"online"`
	// IdealStartTime is the preferred first-class time as a fractional
	// hour since midnight; used only for ranking.
	IdealStartTime float64 `json:"start" validate:"gte=0,lte=24"`
	// IdealConsecutiveLength is the preferred block length in hours;
	// used only for ranking.
	IdealConsecutiveLength int `json:"consec" validate:"gte=0"`
	// Limit caps the number of schedules returned.
	Limit int `json:"limit" validate:"gte=1"`
	// Blacklist holds class identifiers to exclude outright.
	Blacklist []string `json:"blacklist"`
}

// DefaultPreferences mirrors the permissive defaults applied when a
// caller states no preferences.
func DefaultPreferences() Preferences {
	return Preferences{
		EveningClasses:         true,
		OnlineClasses:          true,
		IdealStartTime:         10,
		IdealConsecutiveLength: 3,
		Limit:                  30,
	}
}
