package routes

import (
	"github.com/labstack/echo/v4"

	"supplies-backoffice/internal/controllers"
)

func runArchiveRouter(secureGroup *echo.Group, ctrl *controllers.ArchiveController) {
	secureGroup.GET("/archive", ctrl.GetArchiveEntries)
	secureGroup.GET("/archive/export", ctrl.ExportArchiveEntries)
	secureGroup.DELETE("/archive", ctrl.PermanentlyDeleteArchiveEntries)
	secureGroup.PATCH("/archive", ctrl.RestoreArchiveEntries)
}

// Очистку дергает планировщик, у него нет токена админки, только общий секрет.
func runArchiveCleanupRouter(api *echo.Group, ctrl *controllers.ArchiveController, cronMW echo.MiddlewareFunc) {
	api.POST("/archive/cleanup", ctrl.CleanupExpired, cronMW)
}
