package postgresql

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SchemaVersion - последняя миграция, без которой сервис не стартует.
const SchemaVersion int64 = 3

// Migrate накатывает встроенные миграции и проверяет версию схемы.
// Проверка делается один раз при старте, а не на каждый запрос.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("не удалось получить версию схемы: %w", err)
	}
	if err := RequireSchemaVersion(version); err != nil {
		return err
	}

	logger.Info("Схема БД актуальна", zap.Int64("version", version))
	return nil
}

func RequireSchemaVersion(current int64) error {
	if current < SchemaVersion {
		return fmt.Errorf("схема БД устарела: версия %d, требуется %d", current, SchemaVersion)
	}
	return nil
}
