package middleware

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supplies-backoffice/pkg/contextkeys"
	apperrors "supplies-backoffice/pkg/errors"
	"supplies-backoffice/pkg/service"
	"supplies-backoffice/pkg/utils"
)

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", apperrors.ErrEmptyAuthHeader
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.ErrInvalidAuthHeader
	}
	return parts[1], nil
}

// CronSecret пропускает запрос только с "Bearer <CRON_SECRET>".
// Пустой секрет означает, что эндпоинт открыт.
func CronSecret(secret string, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return next(c)
			}

			token, err := bearerToken(c)
			if err != nil {
				logger.Warn("CronSecret: нет или неверный заголовок Authorization", zap.Error(err))
				return utils.ErrorResponse(c, apperrors.ErrUnauthorized, logger)
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				logger.Warn("CronSecret: секрет не совпал", zap.String("ip", c.RealIP()))
				return utils.ErrorResponse(c, apperrors.ErrUnauthorized, logger)
			}

			return next(c)
		}
	}
}

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// AdminAuth проверяет токен админки. Без jwtService (ADMIN_JWT_SECRET не задан) ничего не проверяет.
func (m *AuthMiddleware) AdminAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.jwtService == nil {
			return next(c)
		}

		tokenString, err := bearerToken(c)
		if err != nil {
			m.logger.Warn("AdminAuth: неверный заголовок Authorization", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			m.logger.Warn("AdminAuth: ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		if claims.Role != service.AdminRole {
			m.logger.Warn("AdminAuth: нет роли admin", zap.String("subject", claims.Subject), zap.String("role", claims.Role))
			return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}

		ctx := context.WithValue(c.Request().Context(), contextkeys.AdminSubjectKey, claims.Subject)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
