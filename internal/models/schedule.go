package models

// AliasRef identifies one interchangeable section of an alias group.
type AliasRef struct {
	ClassID string `json:"class"`
	Section string `json:"section"`
}

// AliasMap maps a representative class identifier to the sections that
// share its exact meeting times and are therefore presented as one.
type AliasMap map[string][]AliasRef

// AssemblyResult is the Schedule Assembler output contract: either ranked
// schedules (ordered class-identifier lists, one class per required
// component per course) with alias groups, or a human-readable ErrMsg
// explaining why no schedule exists. ErrMsg is surfaced verbatim.
type AssemblyResult struct {
	Schedules [][]string `json:"schedules"`
	Aliases   AliasMap   `json:"aliases"`
	ErrMsg    string     `json:"errmsg,omitempty"`
}

// ScheduleSet is the hydrated response payload for schedule generation.
type ScheduleSet struct {
	Schedules [][]*ClassDetail `json:"schedules"`
	Aliases   AliasMap         `json:"aliases"`
	ErrMsg    string           `json:"errmsg,omitempty"`
}
