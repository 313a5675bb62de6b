package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "supplies-backoffice/pkg/errors"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

// ErrorList - статусы для sentinel-ошибок, которые сервисы возвращают без обертки в HttpError.
var ErrorList = map[error]int{
	apperrors.ErrNotFound:             http.StatusNotFound,
	apperrors.ErrBadRequest:           http.StatusBadRequest,
	apperrors.ErrInvalidStatus:        http.StatusBadRequest,
	apperrors.ErrEmptyStatus:          http.StatusBadRequest,
	apperrors.ErrInvalidPaymentStatus: http.StatusBadRequest,
	apperrors.ErrInvalidArchiveType:   http.StatusBadRequest,
	apperrors.ErrEmptyIDs:             http.StatusBadRequest,
	apperrors.ErrEmptyAuthHeader:      http.StatusUnauthorized,
	apperrors.ErrInvalidAuthHeader:    http.StatusUnauthorized,
	apperrors.ErrInvalidSigningMethod: http.StatusUnauthorized,
	apperrors.ErrInvalidToken:         http.StatusUnauthorized,
	apperrors.ErrUnauthorized:         http.StatusUnauthorized,
	apperrors.ErrForbidden:            http.StatusForbidden,
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Body: body, Message: message})
}

// ErrorResponse превращает ошибку любого слоя в ответ с конвертом {status, message, body}.
// Непредвиденные ошибки отдаются с исходным текстом: это внутренний инструмент админки.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		fields := []zap.Field{
			zap.Int("code", httpErr.Code),
			zap.String("message", httpErr.Message),
			zap.Any("context", httpErr.Context),
		}
		if httpErr.Err != nil {
			fields = append(fields, zap.Error(httpErr.Err))
		}
		if httpErr.Code >= http.StatusInternalServerError {
			logger.Error("HTTP Error", fields...)
		} else {
			logger.Warn("HTTP Error", fields...)
		}

		return c.JSON(httpErr.Code, &HTTPResponse{Status: false, Message: httpErr.Message, Body: httpErr.Details})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("polje '%s' nije prošlo proveru '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, &HTTPResponse{Status: false, Message: "Greška validacije: " + strings.Join(msgs, "; ")})
	}

	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		return c.JSON(http.StatusBadRequest, &HTTPResponse{Status: false, Message: inputErr.Message})
	}

	for sentinel, statusCode := range ErrorList {
		if errors.Is(err, sentinel) {
			if statusCode >= http.StatusInternalServerError {
				logger.Error("HTTP Error", zap.Error(err))
			}
			return c.JSON(statusCode, &HTTPResponse{Status: false, Message: sentinel.Error()})
		}
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, &HTTPResponse{Status: false, Message: err.Error()})
}
