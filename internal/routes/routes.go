package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supplies-backoffice/internal/controllers"
	"supplies-backoffice/internal/repositories"
	"supplies-backoffice/internal/services"
	"supplies-backoffice/pkg/config"
	"supplies-backoffice/pkg/filestorage"
	"supplies-backoffice/pkg/middleware"
	"supplies-backoffice/pkg/service"
)

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	fileStorage filestorage.DocumentStorageInterface,
	logger *zap.Logger,
	cfg *config.Config,
) {
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")

	var jwtSvc service.JWTService
	if cfg.Admin.JWTSecret != "" {
		jwtSvc = service.NewJWTService(cfg.Admin.JWTSecret)
	} else {
		logger.Warn("ADMIN_JWT_SECRET не задан: маршруты админки доступны без токена")
	}
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	cronMW := middleware.CronSecret(cfg.Archive.CronSecret, logger)

	txManager := repositories.NewTxManager(dbConn)
	viewCache := services.NewAdminViewCache(repositories.NewRedisCacheRepository(redisClient), cfg.Redis.CacheTTL, logger)

	// --- 1. РЕПОЗИТОРИИ ---
	orderRepo := repositories.NewOrderRepository(dbConn)
	documentRepo := repositories.NewOrderDocumentRepository(dbConn)
	archiveRepo := repositories.NewArchiveRepository(dbConn)
	paymentLogRepo := repositories.NewPaymentLogRepository(dbConn)

	// --- 2. СЕРВИСЫ ---
	archiveService := services.NewArchiveService(txManager, archiveRepo, orderRepo, documentRepo, fileStorage, viewCache, logger)
	orderService := services.NewOrderService(txManager, orderRepo, documentRepo, paymentLogRepo, archiveService, viewCache, logger)

	// --- 3. КОНТРОЛЛЕРЫ ---
	archiveController := controllers.NewArchiveController(archiveService, logger)
	orderController := controllers.NewOrderController(orderService, logger)
	documentController := controllers.NewOrderDocumentController(orderService, logger)
	healthController := controllers.NewHealthController(dbConn, logger)

	// --- 4. РОУТЕРЫ ---
	runHealthRouter(api, healthController)
	runArchiveCleanupRouter(api, archiveController, cronMW)

	secureGroup := api.Group("", authMW.AdminAuth)
	runArchiveRouter(secureGroup, archiveController)
	runOrderRouter(secureGroup, orderController)
	runOrderDocumentRouter(secureGroup, documentController)

	logger.Info("INIT_ROUTER: Создание маршрутов завершено")
}

func runHealthRouter(api *echo.Group, ctrl *controllers.HealthController) {
	api.GET("/health", ctrl.Health)
}
