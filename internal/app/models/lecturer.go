package models

// Lecturer represents an instructor who can be assigned to entries.
type Lecturer struct {
	ID   string `json:"id" db:"id"`
	NIDN string `json:"nidn,omitempty" db:"nidn"`
	Name string `json:"name" db:"name"`
}
