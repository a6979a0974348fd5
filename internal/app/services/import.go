package services

import (
	"strings"

	"github.com/pradipta/sijadwal/internal/app/models"
	"github.com/pradipta/sijadwal/internal/pkg/idgen"
)

// ImportRow is one row of an external tabular import (spreadsheet export
// or similar). References are by name, not id; resolution against the
// known reference data decides whether the row survives.
type ImportRow struct {
	CourseCode    string   `json:"courseCode"`
	CourseName    string   `json:"courseName"`
	ClassName     string   `json:"className"`
	Day           string   `json:"day"`
	TimeSlot      string   `json:"timeSlot"`
	RoomName      string   `json:"roomName"`
	LecturerNames []string `json:"lecturerNames,omitempty"`
}

// importResolver maps names from import rows onto reference ids. Lookups
// are trimmed and case-folded the same way the duplicate key is.
type importResolver struct {
	coursesByCode   map[string]string
	coursesByName   map[string]string
	roomsByName     map[string]string
	classesByName   map[string]bool
	lecturersByName map[string]string
}

func newImportResolver(data models.Dataset) *importResolver {
	r := &importResolver{
		coursesByCode:   make(map[string]string, len(data.Courses)),
		coursesByName:   make(map[string]string, len(data.Courses)),
		roomsByName:     make(map[string]string, len(data.Rooms)),
		classesByName:   make(map[string]bool, len(data.Classes)),
		lecturersByName: make(map[string]string, len(data.Lecturers)),
	}
	for _, course := range data.Courses {
		r.coursesByCode[normalizeName(course.Code)] = course.ID
		r.coursesByName[normalizeName(course.Name)] = course.ID
	}
	for _, room := range data.Rooms {
		r.roomsByName[normalizeName(room.Name)] = room.ID
	}
	for _, class := range data.Classes {
		r.classesByName[normalizeName(class.Name)] = true
	}
	for _, lecturer := range data.Lecturers {
		r.lecturersByName[normalizeName(lecturer.Name)] = lecturer.ID
	}
	return r
}

// Resolve turns rows into schedule entries. A row is dropped when its
// course, room, or class cannot be resolved by name; lecturers resolve
// best-effort and an unknown lecturer name simply stays unassigned. Only
// the aggregate dropped count is reported.
func (r *importResolver) Resolve(rows []ImportRow, ids *idgen.Generator) ([]models.ScheduleEntry, int) {
	entries := make([]models.ScheduleEntry, 0, len(rows))
	dropped := 0

	for _, row := range rows {
		courseID := r.resolveCourse(row)
		roomID := r.roomsByName[normalizeName(row.RoomName)]
		className := strings.TrimSpace(row.ClassName)
		day := strings.ToUpper(strings.TrimSpace(row.Day))
		timeSlot := strings.TrimSpace(row.TimeSlot)

		if courseID == "" || roomID == "" || className == "" || !r.classesByName[normalizeName(className)] || day == "" || timeSlot == "" {
			dropped++
			continue
		}

		entry := models.ScheduleEntry{
			ID:        ids.Next(),
			CourseID:  courseID,
			RoomID:    roomID,
			ClassName: className,
			Day:       day,
			TimeSlot:  timeSlot,
		}
		for _, name := range row.LecturerNames {
			if len(entry.LecturerIDs) == models.MaxLecturersPerEntry {
				break
			}
			if id := r.lecturersByName[normalizeName(name)]; id != "" && !containsID(entry.LecturerIDs, id) {
				entry.LecturerIDs = append(entry.LecturerIDs, id)
			}
		}
		if len(entry.LecturerIDs) > 0 {
			entry.PJMKLecturerID = entry.LecturerIDs[0]
		}
		entries = append(entries, entry)
	}

	return entries, dropped
}

func (r *importResolver) resolveCourse(row ImportRow) string {
	if id := r.coursesByCode[normalizeName(row.CourseCode)]; id != "" {
		return id
	}
	return r.coursesByName[normalizeName(row.CourseName)]
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
