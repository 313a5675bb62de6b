package seeders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"supplies-backoffice/internal/repositories"
	"supplies-backoffice/internal/services"
)

// SeedDemoOrders наполняет БД демо-заказами для локальной разработки админки.
// Заказы с пометкой Archived удаляются через OrderService, поэтому в архиве
// появляются такие же записи, как после удаления из интерфейса.
func SeedDemoOrders(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("▶️  Запуск наполнения демо-заказов...")

	toArchive, err := seedOrders(ctx, db, logger)
	if err != nil {
		return err
	}

	if len(toArchive) > 0 {
		txManager := repositories.NewTxManager(db)
		orderRepo := repositories.NewOrderRepository(db)
		documentRepo := repositories.NewOrderDocumentRepository(db)
		archiveService := services.NewArchiveService(txManager, repositories.NewArchiveRepository(db), orderRepo, documentRepo, nil, nil, logger)
		orderService := services.NewOrderService(txManager, orderRepo, documentRepo, repositories.NewPaymentLogRepository(db), archiveService, nil, logger)

		for _, id := range toArchive {
			if err := orderService.SoftDeleteOrder(ctx, id); err != nil {
				return err
			}
		}
	}

	logger.Info("✅ Демо-заказы готовы", zap.Int("archived", len(toArchive)))
	return nil
}
