package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supplies-backoffice/internal/dto"
	"supplies-backoffice/internal/services"
	"supplies-backoffice/pkg/utils"
)

type OrderDocumentController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderDocumentController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderDocumentController {
	return &OrderDocumentController{
		orderService: orderService,
		logger:       logger,
	}
}

func (c *OrderDocumentController) GetOrderDocuments(ctx echo.Context) error {
	orderID, err := utils.ParseIDParam(ctx, "orderId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.GetOrderDocuments(ctx.Request().Context(), orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Dokumenti uspešno učitani", http.StatusOK)
}

func (c *OrderDocumentController) DeleteOrderDocument(ctx echo.Context) error {
	orderID, err := utils.ParseIDParam(ctx, "orderId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	documentID, err := utils.ParseIDParam(ctx, "documentId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.orderService.SoftDeleteOrderDocument(ctx.Request().Context(), orderID, documentID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, dto.SuccessDTO{Success: true}, "Dokument premešten u arhivu", http.StatusOK)
}
