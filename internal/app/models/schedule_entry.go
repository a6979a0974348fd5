package models

// Weekday labels as stored by the system of record. The schedule only
// covers the Monday-Friday teaching week.
const (
	DaySenin  = "SENIN"
	DaySelasa = "SELASA"
	DayRabu   = "RABU"
	DayKamis  = "KAMIS"
	DayJumat  = "JUMAT"
)

// MaxLecturersPerEntry is the cap on instructors assigned to one entry:
// the coordinator (PJMK) plus at most one team-teaching partner.
const MaxLecturersPerEntry = 2

// ScheduleEntry represents one scheduled class session: a course taught to
// a class cohort in a room at a fixed day/timeslot.
//
// TimeSlot is an opaque label such as "07:00 - 08:40". Slots are compared
// by exact string equality, never by parsed interval overlap; the slot
// grid is fixed and two sessions either share a slot or they do not.
type ScheduleEntry struct {
	ID             string   `json:"id" db:"id"`
	CourseID       string   `json:"courseId" db:"course_id"`
	RoomID         string   `json:"roomId" db:"room_id"`
	ClassName      string   `json:"className" db:"class_name"`
	Day            string   `json:"day" db:"day"`
	TimeSlot       string   `json:"timeSlot" db:"time_slot"`
	LecturerIDs    []string `json:"lecturerIds" db:"lecturer_ids"`
	PJMKLecturerID string   `json:"pjmkLecturerId,omitempty" db:"pjmk_lecturer_id"`
	IsLocked       bool     `json:"isLocked" db:"is_locked"`
}

// HasTimeCoordinate reports whether the entry carries a complete
// day/timeslot pair. Conflict evaluation is only meaningful when it does.
func (e ScheduleEntry) HasTimeCoordinate() bool {
	return e.Day != "" && e.TimeSlot != ""
}

// ScheduleEntryPatch is a partial update for an existing entry. Nil fields
// are left untouched by the merge.
type ScheduleEntryPatch struct {
	ID             string    `json:"id"`
	CourseID       *string   `json:"courseId,omitempty"`
	RoomID         *string   `json:"roomId,omitempty"`
	ClassName      *string   `json:"className,omitempty"`
	Day            *string   `json:"day,omitempty"`
	TimeSlot       *string   `json:"timeSlot,omitempty"`
	LecturerIDs    *[]string `json:"lecturerIds,omitempty"`
	PJMKLecturerID *string   `json:"pjmkLecturerId,omitempty"`
	IsLocked       *bool     `json:"isLocked,omitempty"`
}

// Apply merges the patch into a copy of the given entry and returns it.
func (p ScheduleEntryPatch) Apply(entry ScheduleEntry) ScheduleEntry {
	merged := entry
	if p.CourseID != nil {
		merged.CourseID = *p.CourseID
	}
	if p.RoomID != nil {
		merged.RoomID = *p.RoomID
	}
	if p.ClassName != nil {
		merged.ClassName = *p.ClassName
	}
	if p.Day != nil {
		merged.Day = *p.Day
	}
	if p.TimeSlot != nil {
		merged.TimeSlot = *p.TimeSlot
	}
	if p.LecturerIDs != nil {
		merged.LecturerIDs = append([]string(nil), (*p.LecturerIDs)...)
	}
	if p.PJMKLecturerID != nil {
		merged.PJMKLecturerID = *p.PJMKLecturerID
	}
	if p.IsLocked != nil {
		merged.IsLocked = *p.IsLocked
	}
	return merged
}
