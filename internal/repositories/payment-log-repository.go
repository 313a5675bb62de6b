package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"supplies-backoffice/internal/entities"
)

type PaymentLogRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, log *entities.PaymentLog) (uint64, error)
	FindByOrderID(ctx context.Context, orderID uint64) ([]entities.PaymentLog, error)
}

type PaymentLogRepository struct {
	storage *pgxpool.Pool
}

func NewPaymentLogRepository(storage *pgxpool.Pool) PaymentLogRepositoryInterface {
	return &PaymentLogRepository{storage: storage}
}

func (r *PaymentLogRepository) CreateInTx(ctx context.Context, tx pgx.Tx, log *entities.PaymentLog) (uint64, error) {
	query := `
		INSERT INTO order_payment_logs (order_id, previous_status, new_status, note, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id`

	var id uint64
	err := querierOf(r.storage, tx).QueryRow(ctx, query,
		log.OrderID, string(log.PreviousStatus), string(log.NewStatus), log.Note,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка записи журнала оплаты заказа %d: %w", log.OrderID, err)
	}
	return id, nil
}

// FindByOrderID - журнал в порядке записи. Журнал переживает удаление заказа.
func (r *PaymentLogRepository) FindByOrderID(ctx context.Context, orderID uint64) ([]entities.PaymentLog, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, order_id, previous_status, new_status, note, created_at
		FROM order_payment_logs
		WHERE order_id = $1
		ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала оплаты заказа %d: %w", orderID, err)
	}
	defer rows.Close()

	logs := make([]entities.PaymentLog, 0)
	for rows.Next() {
		var l entities.PaymentLog
		if err := rows.Scan(&l.ID, &l.OrderID, &l.PreviousStatus, &l.NewStatus, &l.Note, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
