package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pradipta/sijadwal/internal/app/controllers"
	"github.com/pradipta/sijadwal/internal/app/models/dto"
	"github.com/pradipta/sijadwal/internal/app/services"
	"github.com/pradipta/sijadwal/internal/middleware"
	"github.com/pradipta/sijadwal/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	scheduleController *controllers.ScheduleController,
	datasetController *controllers.DatasetController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Public read routes ---
	v1.GET("/schedule", scheduleController.GetSchedule)
	v1.GET("/courses", datasetController.GetCourses)
	v1.GET("/rooms", datasetController.GetRooms)
	v1.GET("/lecturers", datasetController.GetLecturers)
	v1.GET("/classes", datasetController.GetClasses)

	// Live update feed (public, read-only)
	v1.GET("/live", wsHandler.HandleConnection)

	// --- Admin-only mutation routes ---
	adminProtected := v1.Group("/schedule")
	adminProtected.Use(authMiddleware.JWTAuth())
	adminProtected.Use(authMiddleware.RoleRequired(services.AdminRole))
	{
		adminProtected.POST("", scheduleController.CreateEntry)
		adminProtected.PUT("/:id", scheduleController.UpdateEntry)
		adminProtected.DELETE("/:id", scheduleController.DeleteEntry)
		adminProtected.DELETE("", scheduleController.ClearAll)
		adminProtected.DELETE("/group", scheduleController.DeleteGroup)
		adminProtected.POST("/import", scheduleController.Import)
		adminProtected.PUT("/lock", scheduleController.SetLocked)
		adminProtected.POST("/resync", scheduleController.Resync)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})

	// Swagger routes are set up in bootstrap.go already
}
