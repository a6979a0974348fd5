package services

import (
	"github.com/pradipta/sijadwal/internal/app/models"
	"github.com/pradipta/sijadwal/internal/pkg/apperrors"
)

// ConflictKind identifies which resource a candidate entry collides on.
type ConflictKind string

const (
	ConflictRoom     ConflictKind = "RUANGAN"
	ConflictClass    ConflictKind = "KELAS"
	ConflictLecturer ConflictKind = "DOSEN"
)

// Conflict describes one collision between a candidate entry and an
// existing entry at the same day/timeslot.
type Conflict struct {
	Kind    ConflictKind `json:"kind"`
	Message string       `json:"message"`
	// EntryID is the id of the existing entry the candidate collides with.
	EntryID string `json:"entryId"`
}

// NameIndex resolves reference ids to display names for conflict
// descriptions. Unknown ids fall back to the raw id so a stale reference
// still produces a usable message.
type NameIndex struct {
	rooms     map[string]string
	lecturers map[string]string
}

// NewNameIndex builds a NameIndex from the dataset reference tables.
func NewNameIndex(data models.Dataset) NameIndex {
	idx := NameIndex{
		rooms:     make(map[string]string, len(data.Rooms)),
		lecturers: make(map[string]string, len(data.Lecturers)),
	}
	for _, room := range data.Rooms {
		idx.rooms[room.ID] = room.Name
	}
	for _, lecturer := range data.Lecturers {
		idx.lecturers[lecturer.ID] = lecturer.Name
	}
	return idx
}

// RoomName returns the display name for a room id.
func (idx NameIndex) RoomName(id string) string {
	if name, ok := idx.rooms[id]; ok {
		return name
	}
	return id
}

// LecturerName returns the display name for a lecturer id.
func (idx NameIndex) LecturerName(id string) string {
	if name, ok := idx.lecturers[id]; ok {
		return name
	}
	return id
}

// EvaluateConflicts checks a candidate entry against the existing set and
// returns every collision found, in fixed order: room first, then class,
// then one conflict per colliding instructor in scan order. The checks are
// independent and never short-circuit, so a caller can show all problems
// at once.
//
// An entry in the existing set sharing the candidate's id is skipped; that
// is how edits avoid conflicting with their own pre-edit record. A
// candidate without a complete day/timeslot produces no conflicts; the
// save paths require the coordinate before calling in here.
//
// TimeSlot comparison is exact string equality on the slot label. The slot
// grid is fixed, so interval-overlap math is deliberately not performed.
func EvaluateConflicts(candidate models.ScheduleEntry, existing []models.ScheduleEntry, names NameIndex) []Conflict {
	if !candidate.HasTimeCoordinate() {
		return nil
	}

	var conflicts []Conflict

	sameSlot := make([]models.ScheduleEntry, 0, len(existing))
	for _, entry := range existing {
		if candidate.ID != "" && entry.ID == candidate.ID {
			continue
		}
		if entry.Day == candidate.Day && entry.TimeSlot == candidate.TimeSlot {
			sameSlot = append(sameSlot, entry)
		}
	}

	if candidate.RoomID != "" {
		for _, entry := range sameSlot {
			if entry.RoomID == candidate.RoomID {
				conflicts = append(conflicts, Conflict{
					Kind:    ConflictRoom,
					Message: "RUANGAN: " + names.RoomName(candidate.RoomID) + " terisi " + entry.ClassName,
					EntryID: entry.ID,
				})
				break
			}
		}
	}

	if candidate.ClassName != "" {
		for _, entry := range sameSlot {
			if entry.ClassName == candidate.ClassName {
				conflicts = append(conflicts, Conflict{
					Kind:    ConflictClass,
					Message: "KELAS: " + candidate.ClassName + " ada jadwal lain",
					EntryID: entry.ID,
				})
				break
			}
		}
	}

	for _, lecturerID := range uniqueNonEmpty(candidate.LecturerIDs) {
		for _, entry := range sameSlot {
			if containsID(entry.LecturerIDs, lecturerID) {
				conflicts = append(conflicts, Conflict{
					Kind:    ConflictLecturer,
					Message: "DOSEN: " + names.LecturerName(lecturerID) + " sedang mengajar di kelas " + entry.ClassName,
					EntryID: entry.ID,
				})
				break
			}
		}
	}

	return conflicts
}

// ConflictError is returned by save paths when the evaluator found
// collisions. Conflicts are hard stops, never warnings.
type ConflictError struct {
	Conflicts []Conflict
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 0 {
		return "schedule conflict"
	}
	msg := e.Conflicts[0].Message
	for _, c := range e.Conflicts[1:] {
		msg += "; " + c.Message
	}
	return msg
}

// Unwrap lets errors.Is match the conflict sentinel.
func (e *ConflictError) Unwrap() error {
	return apperrors.ErrScheduleConflict
}

// Messages returns just the human-readable descriptions.
func (e *ConflictError) Messages() []string {
	out := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		out[i] = c.Message
	}
	return out
}

func uniqueNonEmpty(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
