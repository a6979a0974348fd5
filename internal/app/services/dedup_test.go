package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pradipta/sijadwal/internal/app/models"
)

func dupEntry(id string, lecturers ...string) models.ScheduleEntry {
	return models.ScheduleEntry{
		ID:          id,
		CourseID:    "c1",
		RoomID:      "r1",
		ClassName:   "TI-2A",
		Day:         models.DaySenin,
		TimeSlot:    "07:00-08:40",
		LecturerIDs: lecturers,
	}
}

func TestNewDuplicateKeyNormalization(t *testing.T) {
	a := NewDuplicateKey(models.ScheduleEntry{
		CourseID: " c1 ", ClassName: "ti-2a", Day: "senin", TimeSlot: " 07:00-08:40 ", RoomID: "r1",
	})
	b := NewDuplicateKey(models.ScheduleEntry{
		CourseID: "c1", ClassName: "TI-2A ", Day: "SENIN", TimeSlot: "07:00-08:40", RoomID: " r1",
	})
	assert.Equal(t, a, b)
}

func TestNewDuplicateKeyExcludesLecturers(t *testing.T) {
	assert.Equal(t,
		NewDuplicateKey(dupEntry("e1")),
		NewDuplicateKey(dupEntry("e2", "l1", "l2")),
	)
}

func TestGroupDuplicatesCollapsesAndPreservesOrder(t *testing.T) {
	other := dupEntry("e3")
	other.ClassName = "TI-2B"

	groups := GroupDuplicates([]models.ScheduleEntry{
		dupEntry("e1"),
		other,
		dupEntry("e2"),
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "e1", groups[0].Representative.ID)
	assert.Equal(t, []string{"e1", "e2"}, groups[0].MemberIDs)
	assert.Equal(t, "e3", groups[1].Representative.ID)
	assert.Equal(t, []string{"e3"}, groups[1].MemberIDs)
}

func TestGroupDuplicatesPromotesEntryWithLecturers(t *testing.T) {
	groups := GroupDuplicates([]models.ScheduleEntry{
		dupEntry("e1"),
		dupEntry("e2", "l1"),
	})

	require.Len(t, groups, 1)
	assert.Equal(t, "e2", groups[0].Representative.ID)
	assert.Equal(t, []string{"e1", "e2"}, groups[0].MemberIDs)
}

func TestGroupDuplicatesKeepsFirstLecturedRepresentative(t *testing.T) {
	groups := GroupDuplicates([]models.ScheduleEntry{
		dupEntry("e1", "l1"),
		dupEntry("e2", "l2"),
	})

	require.Len(t, groups, 1)
	assert.Equal(t, "e1", groups[0].Representative.ID)
}

func TestGroupDuplicatesIdempotent(t *testing.T) {
	entries := []models.ScheduleEntry{
		dupEntry("e1"),
		dupEntry("e2", "l1"),
	}

	once := GroupDuplicates(entries)
	twice := GroupDuplicates(CanonicalEntries(once))

	require.Len(t, twice, len(once))
	for i := range once {
		assert.Equal(t, once[i].Representative, twice[i].Representative)
	}
}

func TestGroupContaining(t *testing.T) {
	groups := GroupDuplicates([]models.ScheduleEntry{
		dupEntry("e1"),
		dupEntry("e2"),
	})

	group, ok := GroupContaining(groups, "e2")
	require.True(t, ok)
	assert.Equal(t, []string{"e1", "e2"}, group.MemberIDs)

	_, ok = GroupContaining(groups, "nope")
	assert.False(t, ok)
}
