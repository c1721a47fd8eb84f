package models

// LocationTBD is the sentinel for meetings whose room is unresolved.
// Such rows are excluded from availability analysis entirely.
const LocationTBD = "Location TBD"

// Room is a distinct free-text location within a term.
type Room struct {
	Location string `db:"location" json:"location"`
}

// RoomInfo describes one available room in an availability result.
type RoomInfo struct {
	Name string `json:"name"`
	// ClassesToday counts the room's non-conflicting bookings on the
	// queried weekday.
	ClassesToday int `json:"classes_today"`
	// ClassAfter is set when the room hosts a class starting at or after
	// the end of the queried window.
	ClassAfter bool `json:"class_after"`
}

// AvailableRooms maps a building (first whitespace token of the location)
// to its free rooms, sorted by room name.
type AvailableRooms map[string][]RoomInfo
