package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pradipta/sijadwal/internal/app/models/dto"
	"github.com/pradipta/sijadwal/internal/app/services"
)

// DatasetController serves the reference data the schedule entries point
// into.
type DatasetController struct {
	scheduleService *services.ScheduleService
	logger          zerolog.Logger
}

// NewDatasetController creates a new DatasetController
func NewDatasetController(scheduleService *services.ScheduleService, logger zerolog.Logger) *DatasetController {
	return &DatasetController{
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// GetCourses lists the known courses
// @Summary List courses
// @Tags reference
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses"
// @Router /courses [get]
func (c *DatasetController) GetCourses(ctx *gin.Context) {
	data := c.scheduleService.Snapshot()
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(data.Courses))
}

// GetRooms lists the known rooms
// @Summary List rooms
// @Tags reference
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Room} "Rooms"
// @Router /rooms [get]
func (c *DatasetController) GetRooms(ctx *gin.Context) {
	data := c.scheduleService.Snapshot()
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(data.Rooms))
}

// GetLecturers lists the known lecturers
// @Summary List lecturers
// @Tags reference
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Lecturer} "Lecturers"
// @Router /lecturers [get]
func (c *DatasetController) GetLecturers(ctx *gin.Context) {
	data := c.scheduleService.Snapshot()
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(data.Lecturers))
}

// GetClasses lists the known class groups
// @Summary List class groups
// @Tags reference
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.ClassGroup} "Class groups"
// @Router /classes [get]
func (c *DatasetController) GetClasses(ctx *gin.Context) {
	data := c.scheduleService.Snapshot()
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(data.Classes))
}
