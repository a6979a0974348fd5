package services

import (
	"strings"

	"github.com/pradipta/sijadwal/internal/app/models"
)

// DuplicateKey is the composite identity used to collapse structurally
// identical entries that arose from duplicate or bad imports. Instructor
// assignment is deliberately not part of the key: two rows for the same
// session with and without lecturers are still the same session.
type DuplicateKey struct {
	CourseID  string
	ClassName string
	Day       string
	TimeSlot  string
	RoomID    string
}

// NewDuplicateKey normalizes the identifying fields of an entry into a
// key. Everything is trimmed; day is upper-cased and class name is
// case-folded to tolerate inconsistent manual entry and spreadsheet
// imports.
func NewDuplicateKey(entry models.ScheduleEntry) DuplicateKey {
	return DuplicateKey{
		CourseID:  strings.TrimSpace(entry.CourseID),
		ClassName: strings.ToLower(strings.TrimSpace(entry.ClassName)),
		Day:       strings.ToUpper(strings.TrimSpace(entry.Day)),
		TimeSlot:  strings.TrimSpace(entry.TimeSlot),
		RoomID:    strings.TrimSpace(entry.RoomID),
	}
}

// DuplicateGroup is one canonical schedule entry plus the ids of every raw
// entry that collapsed into it. MemberIDs always includes the
// representative's own id; delete cascades act on the whole list.
type DuplicateGroup struct {
	Representative models.ScheduleEntry `json:"entry"`
	MemberIDs      []string             `json:"memberIds"`
}

// GroupDuplicates collapses raw entries into canonical groups, preserving
// first-seen order. The representative of a group is its first member,
// unless a later member carries a non-empty instructor assignment while
// the current representative does not; real instructor data wins over a
// bare duplicate.
//
// Grouping is idempotent: regrouping the canonical output yields the same
// groups.
func GroupDuplicates(entries []models.ScheduleEntry) []DuplicateGroup {
	byKey := make(map[DuplicateKey]int, len(entries))
	groups := make([]DuplicateGroup, 0, len(entries))

	for _, entry := range entries {
		key := NewDuplicateKey(entry)
		idx, ok := byKey[key]
		if !ok {
			byKey[key] = len(groups)
			groups = append(groups, DuplicateGroup{
				Representative: entry,
				MemberIDs:      []string{entry.ID},
			})
			continue
		}

		group := &groups[idx]
		group.MemberIDs = append(group.MemberIDs, entry.ID)
		if len(group.Representative.LecturerIDs) == 0 && len(entry.LecturerIDs) > 0 {
			group.Representative = entry
		}
	}

	return groups
}

// GroupContaining returns the duplicate group whose member list includes
// the given id, or false when the id is unknown.
func GroupContaining(groups []DuplicateGroup, id string) (DuplicateGroup, bool) {
	for _, group := range groups {
		for _, memberID := range group.MemberIDs {
			if memberID == id {
				return group, true
			}
		}
	}
	return DuplicateGroup{}, false
}

// CanonicalEntries returns just the representatives, the set the conflict
// evaluator runs against.
func CanonicalEntries(groups []DuplicateGroup) []models.ScheduleEntry {
	out := make([]models.ScheduleEntry, len(groups))
	for i, group := range groups {
		out[i] = group.Representative
	}
	return out
}
