package models

// CourseRef is the compact listing shape for course indexes, e.g.
// "CHEM 101" keyed by its catalogue identifier.
type CourseRef struct {
	ID       string `db:"course" json:"course"`
	AsString string `db:"as_string" json:"asString"`
}
