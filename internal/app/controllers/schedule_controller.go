package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pradipta/sijadwal/internal/app/models/dto"
	"github.com/pradipta/sijadwal/internal/app/services"
	"github.com/pradipta/sijadwal/internal/middleware"
)

// ScheduleController exposes the schedule dataset and its mutations.
type ScheduleController struct {
	scheduleService *services.ScheduleService
	logger          zerolog.Logger
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService *services.ScheduleService, logger zerolog.Logger) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// GetSchedule returns the deduplicated schedule
// @Summary Get the schedule
// @Description Returns the canonical schedule grouped by duplicate key. Each group carries a representative entry and its member ids.
// @Tags schedule
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.GroupedScheduleResponse} "Current schedule"
// @Router /schedule [get]
func (c *ScheduleController) GetSchedule(ctx *gin.Context) {
	groups := c.scheduleService.GroupedSchedule()
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.GroupedScheduleResponse{
		Groups: groups,
		Total:  len(groups),
	}))
}

// CreateEntry adds a schedule entry
// @Summary Create a schedule entry
// @Description Validates the entry, checks room, class and lecturer collisions, applies it locally and saves it to the remote store.
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body dto.CreateScheduleEntryRequest true "New entry"
// @Success 201 {object} dto.APIResponse{data=services.ReconciliationResult} "Entry created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Schedule conflict"
// @Security BearerAuth
// @Router /schedule [post]
func (c *ScheduleController) CreateEntry(ctx *gin.Context) {
	var req dto.CreateScheduleEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err, "Invalid schedule entry")
		return
	}

	result, err := c.scheduleService.Add(ctx.Request.Context(), req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(result))
}

// UpdateEntry edits a schedule entry
// @Summary Update a schedule entry
// @Description Merges the given fields into the entry, re-validates and re-checks conflicts before saving.
// @Tags schedule
// @Accept json
// @Produce json
// @Param id path string true "Entry id"
// @Param request body dto.UpdateScheduleEntryRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=services.ReconciliationResult} "Entry updated"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Schedule conflict"
// @Security BearerAuth
// @Router /schedule/{id} [put]
func (c *ScheduleController) UpdateEntry(ctx *gin.Context) {
	var req dto.UpdateScheduleEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err, "Invalid schedule entry update")
		return
	}

	result, err := c.scheduleService.Edit(ctx.Request.Context(), req.ToPatch(ctx.Param("id")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// DeleteEntry deletes an entry and its duplicates
// @Summary Delete a schedule entry
// @Description Deletes the entry with the given id together with every other member of its duplicate group.
// @Tags schedule
// @Produce json
// @Param id path string true "Entry id"
// @Success 200 {object} dto.APIResponse{data=services.ReconciliationResult} "Entries deleted"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /schedule/{id} [delete]
func (c *ScheduleController) DeleteEntry(ctx *gin.Context) {
	result, err := c.scheduleService.Delete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// DeleteGroup deletes an explicit id list
// @Summary Delete a group of entries
// @Description Deletes every listed entry id, throttling the remote delete calls.
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body dto.DeleteGroupRequest true "Entry ids"
// @Success 200 {object} dto.APIResponse{data=services.ReconciliationResult} "Entries deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "No listed entry exists"
// @Security BearerAuth
// @Router /schedule/group [delete]
func (c *ScheduleController) DeleteGroup(ctx *gin.Context) {
	var req dto.DeleteGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err, "Invalid delete request")
		return
	}

	result, err := c.scheduleService.DeleteGroup(ctx.Request.Context(), req.IDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// Import bulk-imports tabular rows
// @Summary Import schedule rows
// @Description Resolves course, room, class and lecturer names against the reference data and appends the resolved entries. Unresolvable rows are dropped silently; only the aggregate count is returned.
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body dto.ImportScheduleRequest true "Rows to import"
// @Success 200 {object} dto.APIResponse{data=services.ReconciliationResult} "Import outcome"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Security BearerAuth
// @Router /schedule/import [post]
func (c *ScheduleController) Import(ctx *gin.Context) {
	var req dto.ImportScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err, "Invalid import request")
		return
	}

	result, err := c.scheduleService.BulkImport(ctx.Request.Context(), req.Rows)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// ClearAll empties the schedule
// @Summary Clear the schedule
// @Description Removes every schedule entry locally and on the remote store.
// @Tags schedule
// @Produce json
// @Success 200 {object} dto.APIResponse{data=services.ReconciliationResult} "Schedule cleared"
// @Security BearerAuth
// @Router /schedule [delete]
func (c *ScheduleController) ClearAll(ctx *gin.Context) {
	result, err := c.scheduleService.ClearAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// SetLocked flips the lock flag on every entry
// @Summary Lock or unlock the whole schedule
// @Description Sets the administrative lock flag on every schedule entry.
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body dto.SetLockedRequest true "Lock flag"
// @Success 200 {object} dto.APIResponse{data=services.ReconciliationResult} "Lock flags updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Security BearerAuth
// @Router /schedule/lock [put]
func (c *ScheduleController) SetLocked(ctx *gin.Context) {
	var req dto.SetLockedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err, "Invalid lock request")
		return
	}

	result, err := c.scheduleService.SetLockedForAll(ctx.Request.Context(), *req.IsLocked)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// Resync forces a full refetch
// @Summary Resync from the remote store
// @Description Refetches the authoritative dataset and replaces the local copy.
// @Tags schedule
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Dataset refreshed"
// @Failure 502 {object} dto.ErrorResponse "Remote fetch failed"
// @Security BearerAuth
// @Router /schedule/resync [post]
func (c *ScheduleController) Resync(ctx *gin.Context) {
	if err := c.scheduleService.Refresh(ctx.Request.Context()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{
		Message: "dataset refreshed",
	}))
}
