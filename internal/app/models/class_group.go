package models

// ClassGroup represents a student cohort ("kelas"). Schedule entries refer
// to cohorts by name, not by id; the group list exists so imports can
// check that a referenced cohort is actually known.
type ClassGroup struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
