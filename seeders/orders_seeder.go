package seeders

import (
	"context"
	"errors"
	"fmt"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func optional(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

// seedOrders вставляет демо-заказы. Уже существующий номер заказа пропускается.
// Возвращает id только что созданных заказов, которые нужно отправить в архив.
func seedOrders(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) ([]uint64, error) {
	logger.Info("  - Наполнение таблиц 'orders', 'order_items', 'order_documents'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	toArchive := make([]uint64, 0)
	for _, o := range ordersData {
		orderID, created, err := insertOrder(ctx, tx, o)
		if err != nil {
			return nil, fmt.Errorf("заказ %s: %w", o.OrderNumber, err)
		}
		if !created {
			logger.Info("    - Заказ уже есть, пропускаем", zap.String("order_number", o.OrderNumber))
			continue
		}
		if o.Archived {
			toArchive = append(toArchive, orderID)
		}
	}

	return toArchive, tx.Commit(ctx)
}

func insertOrder(ctx context.Context, tx pgx.Tx, o demoOrder) (uint64, bool, error) {
	subtotal, tax, total := o.totals()

	var orderID uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO orders (order_number, customer_type, contact_name, contact_email, contact_phone,
			company_name, school_name, address, status, payment_status, subtotal, tax, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (order_number) DO NOTHING
		RETURNING id`,
		o.OrderNumber, string(o.CustomerType), o.ContactName, o.ContactEmail, optional(o.ContactPhone),
		optional(o.CompanyName), optional(o.SchoolName), optional(o.Address),
		string(o.Status), string(o.PaymentStatus), subtotal, tax, total,
	).Scan(&orderID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	for _, item := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_name, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5)`,
			orderID, item.ProductName, item.Quantity, item.unitPrice(), item.lineTotal(),
		); err != nil {
			return 0, false, err
		}
	}

	for _, doc := range o.Documents {
		storagePath := fmt.Sprintf("orders/%d/%s", orderID, doc.Filename)
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_documents (order_id, document_type, filename, storage_path)
			VALUES ($1, $2, $3, $4)`,
			orderID, string(doc.DocumentType), doc.Filename, storagePath,
		); err != nil {
			return 0, false, err
		}
	}

	return orderID, true, nil
}
