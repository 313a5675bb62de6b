package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"supplies-backoffice/internal/entities"
	bd "supplies-backoffice/internal/infrastructure/bd"
	"supplies-backoffice/pkg/constants"
	apperrors "supplies-backoffice/pkg/errors"
	"supplies-backoffice/pkg/types"
)

const orderTable = "orders"

var orderColumns = []string{
	"o.id", "o.order_number", "o.customer_type",
	"o.contact_name", "o.contact_email", "o.contact_phone", "o.company_name", "o.school_name", "o.address",
	"o.status", "o.payment_status", "o.payment_notes",
	"o.subtotal", "o.tax", "o.total",
	"o.deleted_at", "o.created_at", "o.updated_at",
}

const orderReturning = `id, order_number, customer_type,
	contact_name, contact_email, contact_phone, company_name, school_name, address,
	status, payment_status, payment_notes,
	subtotal, tax, total,
	deleted_at, created_at, updated_at`

var orderMap = map[string]string{
	"status":         "o.status",
	"payment_status": "o.payment_status",
	"customer_type":  "o.customer_type",
	"order_number":   "o.order_number",
	"total":          "o.total",
	"created_at":     "o.created_at",
	"updated_at":     "o.updated_at",
}

type OrderRepositoryInterface interface {
	GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error)
	FindOrder(ctx context.Context, id uint64) (*entities.Order, error)
	SoftDeleteOrderInTx(ctx context.Context, tx pgx.Tx, id uint64, deletedAt time.Time) (*entities.Order, error)
	RestoreOrderInTx(ctx context.Context, tx pgx.Tx, id uint64) (bool, error)
	HardDeleteOrderInTx(ctx context.Context, tx pgx.Tx, id uint64) (bool, error)
	UpdateStatus(ctx context.Context, id uint64, status constants.OrderStatus) error
	LockPaymentStatusInTx(ctx context.Context, tx pgx.Tx, id uint64) (constants.PaymentStatus, error)
	UpdatePaymentStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status constants.PaymentStatus, note null.String) error
}

type OrderRepository struct {
	storage *pgxpool.Pool
}

func NewOrderRepository(storage *pgxpool.Pool) OrderRepositoryInterface {
	return &OrderRepository{
		storage: storage,
	}
}

func scanOrder(row pgx.Row) (*entities.Order, error) {
	var o entities.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerType,
		&o.ContactName, &o.ContactEmail, &o.ContactPhone, &o.CompanyName, &o.SchoolName, &o.Address,
		&o.Status, &o.PaymentStatus, &o.PaymentNotes,
		&o.Subtotal, &o.Tax, &o.Total,
		&o.DeletedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// GetOrders - только активные (не удаленные) заказы.
func (r *OrderRepository) GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		return bd.ApplySearch(b, filter.Search, "o.order_number", "o.contact_name", "o.contact_email", "o.company_name", "o.school_name")
	}

	countBuilder := psql.Select("COUNT(o.id)").From(orderTable + " AS o").Where(sq.Eq{"o.deleted_at": nil})
	countBuilder = applySearch(countBuilder)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, orderMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета заказов: %w", err)
	}
	if total == 0 {
		return []entities.Order{}, 0, nil
	}

	baseBuilder := psql.Select(orderColumns...).From(orderTable + " AS o").Where(sq.Eq{"o.deleted_at": nil})
	baseBuilder = applySearch(baseBuilder)
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("o.created_at DESC", "o.id DESC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, orderMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка заказов: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0, filter.Limit)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *order)
	}

	return orders, total, rows.Err()
}

// FindOrder возвращает активный заказ вместе с позициями.
func (r *OrderRepository) FindOrder(ctx context.Context, id uint64) (*entities.Order, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(orderColumns...).
		From(orderTable + " AS o").
		Where(sq.Eq{"o.id": id, "o.deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, `
		SELECT id, order_id, product_name, quantity, unit_price, line_total
		FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения позиций заказа: %w", err)
	}
	defer rows.Close()

	order.Items = make([]entities.OrderItem, 0)
	for rows.Next() {
		var item entities.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductName, &item.Quantity, &item.UnitPrice, &item.LineTotal); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	return order, rows.Err()
}

// SoftDeleteOrderInTx ставит deleted_at и возвращает снимок заказа для архива.
// Уже удаленный или несуществующий заказ -> ErrNotFound.
func (r *OrderRepository) SoftDeleteOrderInTx(ctx context.Context, tx pgx.Tx, id uint64, deletedAt time.Time) (*entities.Order, error) {
	query := `
		UPDATE orders SET deleted_at = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + orderReturning

	return scanOrder(querierOf(r.storage, tx).QueryRow(ctx, query, id, deletedAt))
}

// RestoreOrderInTx снимает метку удаления. false - строки нет или она не была удалена.
func (r *OrderRepository) RestoreOrderInTx(ctx context.Context, tx pgx.Tx, id uint64) (bool, error) {
	tag, err := querierOf(r.storage, tx).Exec(ctx,
		`UPDATE orders SET deleted_at = NULL, updated_at = NOW() WHERE id = $1 AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return false, fmt.Errorf("ошибка восстановления заказа %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// HardDeleteOrderInTx удаляет только мягко удаленный заказ. Позиции и документы уходят каскадом.
func (r *OrderRepository) HardDeleteOrderInTx(ctx context.Context, tx pgx.Tx, id uint64) (bool, error) {
	tag, err := querierOf(r.storage, tx).Exec(ctx,
		`DELETE FROM orders WHERE id = $1 AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return false, fmt.Errorf("ошибка удаления заказа %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint64, status constants.OrderStatus) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id, string(status))
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса заказа %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// LockPaymentStatusInTx читает текущий статус оплаты и блокирует строку до конца транзакции.
func (r *OrderRepository) LockPaymentStatusInTx(ctx context.Context, tx pgx.Tx, id uint64) (constants.PaymentStatus, error) {
	var status string
	err := querierOf(r.storage, tx).QueryRow(ctx,
		`SELECT payment_status FROM orders WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("ошибка чтения статуса оплаты заказа %d: %w", id, err)
	}
	return constants.PaymentStatus(status), nil
}

// UpdatePaymentStatusInTx - пустая заметка не затирает сохраненную.
func (r *OrderRepository) UpdatePaymentStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status constants.PaymentStatus, note null.String) error {
	tag, err := querierOf(r.storage, tx).Exec(ctx, `
		UPDATE orders
		SET payment_status = $2, payment_notes = COALESCE($3::text, payment_notes), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id, string(status), note)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса оплаты заказа %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
