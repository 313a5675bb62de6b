package routes

import (
	"github.com/labstack/echo/v4"

	"supplies-backoffice/internal/controllers"
)

func runOrderRouter(secureGroup *echo.Group, orderCtrl *controllers.OrderController) {
	secureGroup.GET("/orders", orderCtrl.GetOrders)
	secureGroup.GET("/orders/:orderId", orderCtrl.FindOrder)
	secureGroup.DELETE("/orders/:orderId", orderCtrl.DeleteOrder)
	secureGroup.POST("/orders/:orderId/status", orderCtrl.UpdateOrderStatus)
	secureGroup.POST("/orders/:orderId/payment-status", orderCtrl.UpdateOrderPaymentStatus)
	secureGroup.GET("/orders/:orderId/payment-logs", orderCtrl.GetPaymentLogs)
}
