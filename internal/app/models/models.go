package models

// Dataset is the full snapshot the system of record serves: the schedule
// plus the reference tables needed to resolve names during import and to
// render conflict descriptions.
type Dataset struct {
	Schedule  []ScheduleEntry `json:"schedule"`
	Courses   []Course        `json:"courses"`
	Rooms     []Room          `json:"rooms"`
	Lecturers []Lecturer      `json:"lecturers"`
	Classes   []ClassGroup    `json:"classes"`
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing internal slices to mutation.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Schedule:  make([]ScheduleEntry, len(d.Schedule)),
		Courses:   append([]Course(nil), d.Courses...),
		Rooms:     append([]Room(nil), d.Rooms...),
		Lecturers: append([]Lecturer(nil), d.Lecturers...),
		Classes:   append([]ClassGroup(nil), d.Classes...),
	}
	for i, entry := range d.Schedule {
		entry.LecturerIDs = append([]string(nil), entry.LecturerIDs...)
		out.Schedule[i] = entry
	}
	return out
}
