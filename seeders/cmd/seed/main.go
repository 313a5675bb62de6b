package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"supplies-backoffice/pkg/config"
	"supplies-backoffice/pkg/database/postgresql"
	applogger "supplies-backoffice/pkg/logger"
	"supplies-backoffice/seeders"
)

func main() {
	runOrders := flag.Bool("orders", false, "Наполнить БД демо-заказами, документами и записями архива")
	flag.Parse()

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	if !*runOrders {
		logger.Info("Не выбран ни один сидер. Пример: go run ./seeders/cmd/seed -orders")
		flag.PrintDefaults()
		return
	}

	ctx := context.Background()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()

	if err := postgresql.Migrate(ctx, dbPool, logger); err != nil {
		logger.Fatal("схема БД не готова", zap.Error(err))
	}

	if err := seeders.SeedDemoOrders(ctx, dbPool, logger); err != nil {
		logger.Fatal("❌ Ошибка наполнения демо-заказов", zap.Error(err))
	}
}
