package models

// Term models one academic term of the catalogue. Term rows are immutable
// reference data; a term's catalogue never changes once loaded.
type Term struct {
	ID        string  `db:"term" json:"term"`
	Title     string  `db:"term_title" json:"termTitle"`
	StartDate *string `db:"start_date" json:"startDate"`
	EndDate   *string `db:"end_date" json:"endDate"`
}
