package dto

// PreferencesRequest carries the named scheduling preferences. Every field
// is optional; absent fields fall back to the permissive defaults.
type PreferencesRequest struct {
	EveningClasses         *bool    `json:"evening" form:"evening"`
	OnlineClasses          *bool    `json:"online" form:"online"`
	IdealStartTime         *float64 `json:"start" form:"start" validate:"omitempty,gte=0,lte=24"`
	IdealConsecutiveLength *int     `json:"consec" form:"consec" validate:"omitempty,gte=0"`
	Limit                  *int     `json:"limit" form:"limit" validate:"omitempty,gte=1,lte=300"`
	Blacklist              []string `json:"blacklist" form:"blacklist"`
}

// GenerateSchedulesRequest asks for ranked conflict-free schedules across
// the requested courses of one term.
type GenerateSchedulesRequest struct {
	TermID      string             `json:"term" form:"term" validate:"required"`
	CourseIDs   []string           `json:"courses" form:"courses" validate:"required,min=1,max=12"`
	Preferences PreferencesRequest `json:"prefs"`
}

// ExportSchedulesRequest renders generated schedules into a downloadable
// document.
type ExportSchedulesRequest struct {
	GenerateSchedulesRequest
	Format string `json:"format" form:"format" validate:"omitempty,oneof=csv pdf"`
}
