package models

// Room represents a teaching room available for scheduling.
type Room struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Capacity int    `json:"capacity,omitempty" db:"capacity"`
}
