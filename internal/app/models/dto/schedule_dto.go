package dto

import (
	"github.com/pradipta/sijadwal/internal/app/models"
	"github.com/pradipta/sijadwal/internal/app/services"
)

// CreateScheduleEntryRequest carries a new entry. The id is assigned
// server-side.
type CreateScheduleEntryRequest struct {
	CourseID       string   `json:"courseId" binding:"required"`
	RoomID         string   `json:"roomId" binding:"required"`
	ClassName      string   `json:"className" binding:"required"`
	Day            string   `json:"day" binding:"required"`
	TimeSlot       string   `json:"timeSlot" binding:"required"`
	LecturerIDs    []string `json:"lecturerIds" binding:"max=2"`
	PJMKLecturerID string   `json:"pjmkLecturerId"`
}

// ToModel converts the request to a model entry.
func (r CreateScheduleEntryRequest) ToModel() models.ScheduleEntry {
	return models.ScheduleEntry{
		CourseID:       r.CourseID,
		RoomID:         r.RoomID,
		ClassName:      r.ClassName,
		Day:            r.Day,
		TimeSlot:       r.TimeSlot,
		LecturerIDs:    r.LecturerIDs,
		PJMKLecturerID: r.PJMKLecturerID,
	}
}

// UpdateScheduleEntryRequest is a partial edit; absent fields are left
// unchanged.
type UpdateScheduleEntryRequest struct {
	CourseID       *string   `json:"courseId,omitempty"`
	RoomID         *string   `json:"roomId,omitempty"`
	ClassName      *string   `json:"className,omitempty"`
	Day            *string   `json:"day,omitempty"`
	TimeSlot       *string   `json:"timeSlot,omitempty"`
	LecturerIDs    *[]string `json:"lecturerIds,omitempty"`
	PJMKLecturerID *string   `json:"pjmkLecturerId,omitempty"`
	IsLocked       *bool     `json:"isLocked,omitempty"`
}

// ToPatch converts the request to a model patch for the given id.
func (r UpdateScheduleEntryRequest) ToPatch(id string) models.ScheduleEntryPatch {
	return models.ScheduleEntryPatch{
		ID:             id,
		CourseID:       r.CourseID,
		RoomID:         r.RoomID,
		ClassName:      r.ClassName,
		Day:            r.Day,
		TimeSlot:       r.TimeSlot,
		LecturerIDs:    r.LecturerIDs,
		PJMKLecturerID: r.PJMKLecturerID,
		IsLocked:       r.IsLocked,
	}
}

// DeleteGroupRequest names the duplicate-group member ids to delete
// together.
type DeleteGroupRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// ImportScheduleRequest carries raw tabular rows for bulk import.
type ImportScheduleRequest struct {
	Rows []services.ImportRow `json:"rows" binding:"required,min=1"`
}

// SetLockedRequest flips the lock flag for the whole schedule.
type SetLockedRequest struct {
	IsLocked *bool `json:"isLocked" binding:"required"`
}

// GroupedScheduleResponse is the canonical deduplicated schedule view.
type GroupedScheduleResponse struct {
	Groups []services.DuplicateGroup `json:"groups"`
	Total  int                       `json:"total"`
}

// ImportResponse reports the aggregate import outcome.
type ImportResponse struct {
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}
