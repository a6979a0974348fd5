package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pradipta/sijadwal/internal/app/models"
)

func testNameIndex() NameIndex {
	return NewNameIndex(models.Dataset{
		Rooms: []models.Room{
			{ID: "r1", Name: "Lab Komputer 1"},
			{ID: "r2", Name: "Ruang 301"},
		},
		Lecturers: []models.Lecturer{
			{ID: "l1", Name: "Dr. Budi Santoso"},
			{ID: "l2", Name: "Siti Rahayu, M.Kom"},
		},
	})
}

func slotEntry(id, room, class string, lecturers ...string) models.ScheduleEntry {
	return models.ScheduleEntry{
		ID:          id,
		CourseID:    "c-" + id,
		RoomID:      room,
		ClassName:   class,
		Day:         models.DaySenin,
		TimeSlot:    "07:00-08:40",
		LecturerIDs: lecturers,
	}
}

func TestEvaluateConflictsEmptyExistingSet(t *testing.T) {
	candidate := slotEntry("", "r1", "TI-2A", "l1")
	assert.Empty(t, EvaluateConflicts(candidate, nil, testNameIndex()))
}

func TestEvaluateConflictsRoomCollision(t *testing.T) {
	existing := []models.ScheduleEntry{slotEntry("e1", "r1", "TI-2A")}
	candidate := slotEntry("", "r1", "TI-2B")

	conflicts := EvaluateConflicts(candidate, existing, testNameIndex())
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictRoom, conflicts[0].Kind)
	assert.Equal(t, "RUANGAN: Lab Komputer 1 terisi TI-2A", conflicts[0].Message)
	assert.Equal(t, "e1", conflicts[0].EntryID)
}

func TestEvaluateConflictsClassCollision(t *testing.T) {
	existing := []models.ScheduleEntry{slotEntry("e1", "r1", "TI-2A")}
	candidate := slotEntry("", "r2", "TI-2A")

	conflicts := EvaluateConflicts(candidate, existing, testNameIndex())
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictClass, conflicts[0].Kind)
	assert.Equal(t, "KELAS: TI-2A ada jadwal lain", conflicts[0].Message)
}

func TestEvaluateConflictsLecturerCollision(t *testing.T) {
	existing := []models.ScheduleEntry{slotEntry("e1", "r1", "TI-2A", "l1")}
	candidate := slotEntry("", "r2", "TI-2B", "l1")

	conflicts := EvaluateConflicts(candidate, existing, testNameIndex())
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictLecturer, conflicts[0].Kind)
	assert.Equal(t, "DOSEN: Dr. Budi Santoso sedang mengajar di kelas TI-2A", conflicts[0].Message)
}

func TestEvaluateConflictsReportsAllKindsAtOnce(t *testing.T) {
	existing := []models.ScheduleEntry{slotEntry("e1", "r1", "TI-2A", "l1", "l2")}
	candidate := slotEntry("", "r1", "TI-2A", "l1", "l2")

	conflicts := EvaluateConflicts(candidate, existing, testNameIndex())
	require.Len(t, conflicts, 4)
	assert.Equal(t, ConflictRoom, conflicts[0].Kind)
	assert.Equal(t, ConflictClass, conflicts[1].Kind)
	assert.Equal(t, ConflictLecturer, conflicts[2].Kind)
	assert.Equal(t, ConflictLecturer, conflicts[3].Kind)
}

func TestEvaluateConflictsIgnoresOtherSlots(t *testing.T) {
	existing := []models.ScheduleEntry{slotEntry("e1", "r1", "TI-2A", "l1")}

	sameRoomOtherDay := slotEntry("", "r1", "TI-2B", "l1")
	sameRoomOtherDay.Day = models.DaySelasa
	assert.Empty(t, EvaluateConflicts(sameRoomOtherDay, existing, testNameIndex()))

	sameRoomOtherSlot := slotEntry("", "r1", "TI-2B", "l1")
	sameRoomOtherSlot.TimeSlot = "09:00-10:40"
	assert.Empty(t, EvaluateConflicts(sameRoomOtherSlot, existing, testNameIndex()))
}

func TestEvaluateConflictsTimeSlotIsExactStringMatch(t *testing.T) {
	// Overlapping but differently labeled slots do not collide; the slot
	// grid is fixed labels, not intervals.
	existing := []models.ScheduleEntry{slotEntry("e1", "r1", "TI-2A")}
	candidate := slotEntry("", "r1", "TI-2B")
	candidate.TimeSlot = "07:00-09:40"

	assert.Empty(t, EvaluateConflicts(candidate, existing, testNameIndex()))
}

func TestEvaluateConflictsSkipsOwnID(t *testing.T) {
	existing := []models.ScheduleEntry{slotEntry("e1", "r1", "TI-2A", "l1")}
	candidate := slotEntry("e1", "r1", "TI-2A", "l1")

	assert.Empty(t, EvaluateConflicts(candidate, existing, testNameIndex()))
}

func TestEvaluateConflictsNoTimeCoordinate(t *testing.T) {
	existing := []models.ScheduleEntry{slotEntry("e1", "r1", "TI-2A")}
	candidate := slotEntry("", "r1", "TI-2A")
	candidate.TimeSlot = ""

	assert.Empty(t, EvaluateConflicts(candidate, existing, testNameIndex()))
}

func TestEvaluateConflictsUnknownIDsFallBackToRawID(t *testing.T) {
	existing := []models.ScheduleEntry{slotEntry("e1", "r9", "TI-2A", "l9")}
	candidate := slotEntry("", "r9", "TI-2B", "l9")

	conflicts := EvaluateConflicts(candidate, existing, testNameIndex())
	require.Len(t, conflicts, 2)
	assert.Equal(t, "RUANGAN: r9 terisi TI-2A", conflicts[0].Message)
	assert.Equal(t, "DOSEN: l9 sedang mengajar di kelas TI-2A", conflicts[1].Message)
}

func TestEvaluateConflictsDuplicateLecturerCheckedOnce(t *testing.T) {
	existing := []models.ScheduleEntry{slotEntry("e1", "r1", "TI-2A", "l1")}
	candidate := slotEntry("", "r2", "TI-2B", "l1", "l1")

	conflicts := EvaluateConflicts(candidate, existing, testNameIndex())
	assert.Len(t, conflicts, 1)
}

func TestConflictErrorMessages(t *testing.T) {
	err := &ConflictError{Conflicts: []Conflict{
		{Kind: ConflictRoom, Message: "RUANGAN: Lab Komputer 1 terisi TI-2A"},
		{Kind: ConflictClass, Message: "KELAS: TI-2A ada jadwal lain"},
	}}

	assert.Equal(t, "RUANGAN: Lab Komputer 1 terisi TI-2A; KELAS: TI-2A ada jadwal lain", err.Error())
	assert.Equal(t, []string{
		"RUANGAN: Lab Komputer 1 terisi TI-2A",
		"KELAS: TI-2A ada jadwal lain",
	}, err.Messages())
}
