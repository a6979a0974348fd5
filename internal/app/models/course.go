package models

// Course represents a course in the department catalogue.
type Course struct {
	ID       string `json:"id" db:"id"`
	Code     string `json:"code" db:"code"`
	Name     string `json:"name" db:"name"`
	Credits  int    `json:"sks" db:"sks"`
	Semester int    `json:"semester,omitempty" db:"semester"`
}
