package routes

import (
	"elkarec/internal/controllers"
	"elkarec/pkg/constants"
	"elkarec/pkg/middleware"

	"github.com/labstack/echo/v4"
)

// Смена статуса доступна любому пользователю, остальные изменения только ADMIN.
func runEquipmentRouter(api *echo.Group, equipmentCtrl *controllers.EquipmentController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRole(constants.RoleAdmin)

	group := api.Group("/equipments", authMW.Auth)
	{
		group.GET("", equipmentCtrl.GetEquipments)
		group.GET("/export", equipmentCtrl.ExportEquipments)
		group.GET("/:id", equipmentCtrl.FindEquipment)
		group.PATCH("/:id/status", equipmentCtrl.UpdateEquipmentStatus)

		group.POST("", equipmentCtrl.CreateEquipment, adminOnly)
		group.PUT("/:id", equipmentCtrl.UpdateEquipment, adminOnly)
		group.DELETE("/:id", equipmentCtrl.DeleteEquipment, adminOnly)
	}
}
