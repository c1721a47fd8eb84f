package models

// Class is one offering of a course component (a section). The component
// category is catalogue-defined and treated as an opaque string; "LEC" is
// the only value the preference filter gives special meaning to.
type Class struct {
	TermID          string  `db:"term" json:"term"`
	CourseID        string  `db:"course" json:"course"`
	ID              string  `db:"class" json:"class"`
	Component       string  `db:"component" json:"component"`
	Section         string  `db:"section" json:"section"`
	AsString        string  `db:"as_string" json:"asString"`
	Campus          *string `db:"campus" json:"campus"`
	InstructorUID   *string `db:"instructor_uid" json:"instructorUid"`
	InstructionMode *string `db:"instruction_mode" json:"instructionMode"`
}

// ClassDetail is a fully hydrated class: the catalogue row plus its
// coalesced meeting times. This is the unit held by the hydration cache.
type ClassDetail struct {
	Class
	InstructorName *string     `json:"instructorName"`
	ClassTimes     []ClassTime `json:"classtimes"`
}

// ClassTime is one weekly meeting of a class. Biweekly is 0 for weekly
// meetings, 1 or 2 for alternating weeks depending on which week of the
// term the meeting starts.
type ClassTime struct {
	ClassID   string  `db:"class" json:"-"`
	Location  *string `db:"location" json:"location"`
	Day       string  `db:"day" json:"day"`
	StartTime string  `db:"start_time" json:"startTime"`
	EndTime   string  `db:"end_time" json:"endTime"`
	Biweekly  int     `db:"biweekly" json:"biweekly"`
}

// CourseClasses groups the surviving classes of one course, the unit the
// schedule assembler consumes. Name is the display string ("CMPUT 174")
// used in assembler diagnostics.
type CourseClasses struct {
	CourseID string        `json:"course"`
	Name     string        `json:"courseName"`
	Classes  []ClassDetail `json:"objects"`
}
