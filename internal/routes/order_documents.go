package routes

import (
	"github.com/labstack/echo/v4"

	"supplies-backoffice/internal/controllers"
)

func runOrderDocumentRouter(secureGroup *echo.Group, ctrl *controllers.OrderDocumentController) {
	secureGroup.GET("/orders/:orderId/documents", ctrl.GetOrderDocuments)
	secureGroup.DELETE("/orders/:orderId/documents/:documentId", ctrl.DeleteOrderDocument)
}
