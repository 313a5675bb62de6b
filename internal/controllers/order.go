package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supplies-backoffice/internal/dto"
	"supplies-backoffice/internal/services"
	apperrors "supplies-backoffice/pkg/errors"
	"supplies-backoffice/pkg/utils"
)

type OrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderController {
	return &OrderController{
		orderService: orderService,
		logger:       logger,
	}
}

func (c *OrderController) GetOrders(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, err := c.orderService.GetOrders(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Porudžbine uspešno učitane", http.StatusOK)
}

func (c *OrderController) FindOrder(ctx echo.Context) error {
	orderID, err := utils.ParseIDParam(ctx, "orderId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.FindOrder(ctx.Request().Context(), orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Porudžbina pronađena", http.StatusOK)
}

// DeleteOrder - мягкое удаление, заказ уходит в архив на 60 дней.
func (c *OrderController) DeleteOrder(ctx echo.Context) error {
	orderID, err := utils.ParseIDParam(ctx, "orderId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.orderService.SoftDeleteOrder(ctx.Request().Context(), orderID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, dto.SuccessDTO{Success: true}, "Porudžbina premeštena u arhivu", http.StatusOK)
}

func (c *OrderController) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := utils.ParseIDParam(ctx, "orderId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateOrderStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Neispravno telo zahteva", err, nil), c.logger)
	}
	payload.Normalize()
	if payload.Status == "" {
		return utils.ErrorResponse(ctx, apperrors.ErrEmptyStatus, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrInvalidStatus, c.logger)
	}

	status, err := c.orderService.UpdateOrderStatus(ctx.Request().Context(), orderID, payload.Status)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, dto.OrderStatusResultDTO{Status: status.String()}, "Status porudžbine ažuriran", http.StatusOK)
}

func (c *OrderController) UpdateOrderPaymentStatus(ctx echo.Context) error {
	orderID, err := utils.ParseIDParam(ctx, "orderId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdatePaymentStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Neispravno telo zahteva", err, nil), c.logger)
	}
	payload.Normalize()
	if err := ctx.Validate(&payload); err != nil {
		if fieldFailed(err, "Status") {
			return utils.ErrorResponse(ctx, apperrors.ErrInvalidPaymentStatus, c.logger)
		}
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.orderService.UpdateOrderPaymentStatus(ctx.Request().Context(), orderID, payload.Status, payload.Note); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, dto.SuccessDTO{Success: true}, "Status plaćanja ažuriran", http.StatusOK)
}

func (c *OrderController) GetPaymentLogs(ctx echo.Context) error {
	orderID, err := utils.ParseIDParam(ctx, "orderId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	logs, err := c.orderService.GetPaymentLogs(ctx.Request().Context(), orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, logs, "Istorija plaćanja učitana", http.StatusOK)
}
