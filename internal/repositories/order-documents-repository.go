package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"supplies-backoffice/internal/entities"
	apperrors "supplies-backoffice/pkg/errors"
)

type OrderDocumentRepositoryInterface interface {
	GetByOrderID(ctx context.Context, orderID uint64) ([]entities.OrderDocument, error)
	SoftDeleteInTx(ctx context.Context, tx pgx.Tx, orderID, documentID uint64, deletedAt time.Time) (*entities.OrderDocument, error)
	RestoreInTx(ctx context.Context, tx pgx.Tx, documentID uint64) (bool, error)
	HardDeleteInTx(ctx context.Context, tx pgx.Tx, documentID uint64) (*entities.OrderDocument, error)
	StoragePathsByOrderInTx(ctx context.Context, tx pgx.Tx, orderID uint64) ([]string, error)
}

type OrderDocumentRepository struct {
	storage *pgxpool.Pool
}

func NewOrderDocumentRepository(storage *pgxpool.Pool) OrderDocumentRepositoryInterface {
	return &OrderDocumentRepository{storage: storage}
}

func scanOrderDocument(row pgx.Row, withOrderNumber bool) (*entities.OrderDocument, error) {
	var d entities.OrderDocument
	dest := []any{
		&d.ID, &d.OrderID, &d.DocumentType, &d.Filename, &d.StorageURL, &d.StoragePath,
		&d.DeletedAt, &d.CreatedAt,
	}
	if withOrderNumber {
		dest = append(dest, &d.OrderNumber)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// GetByOrderID - активные документы активного заказа. Нет заказа -> ErrNotFound.
func (r *OrderDocumentRepository) GetByOrderID(ctx context.Context, orderID uint64) ([]entities.OrderDocument, error) {
	var exists bool
	if err := r.storage.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1 AND deleted_at IS NULL)`, orderID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("ошибка проверки заказа %d: %w", orderID, err)
	}
	if !exists {
		return nil, apperrors.ErrNotFound
	}

	rows, err := r.storage.Query(ctx, `
		SELECT id, order_id, document_type, filename, storage_url, storage_path, deleted_at, created_at
		FROM order_documents
		WHERE order_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC, id DESC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения документов заказа %d: %w", orderID, err)
	}
	defer rows.Close()

	docs := make([]entities.OrderDocument, 0)
	for rows.Next() {
		doc, err := scanOrderDocument(rows, false)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// SoftDeleteInTx помечает документ удаленным. Документ должен принадлежать заказу и быть активным.
func (r *OrderDocumentRepository) SoftDeleteInTx(ctx context.Context, tx pgx.Tx, orderID, documentID uint64, deletedAt time.Time) (*entities.OrderDocument, error) {
	query := `
		UPDATE order_documents d SET deleted_at = $3
		FROM orders o
		WHERE d.id = $2 AND d.order_id = $1 AND d.deleted_at IS NULL AND o.id = d.order_id AND o.deleted_at IS NULL
		RETURNING d.id, d.order_id, d.document_type, d.filename, d.storage_url, d.storage_path,
			d.deleted_at, d.created_at, o.order_number`

	return scanOrderDocument(querierOf(r.storage, tx).QueryRow(ctx, query, orderID, documentID, deletedAt), true)
}

func (r *OrderDocumentRepository) RestoreInTx(ctx context.Context, tx pgx.Tx, documentID uint64) (bool, error) {
	tag, err := querierOf(r.storage, tx).Exec(ctx,
		`UPDATE order_documents SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, documentID)
	if err != nil {
		return false, fmt.Errorf("ошибка восстановления документа %d: %w", documentID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// HardDeleteInTx удаляет мягко удаленный документ. nil, nil - строки уже нет.
func (r *OrderDocumentRepository) HardDeleteInTx(ctx context.Context, tx pgx.Tx, documentID uint64) (*entities.OrderDocument, error) {
	query := `
		DELETE FROM order_documents WHERE id = $1 AND deleted_at IS NOT NULL
		RETURNING id, order_id, document_type, filename, storage_url, storage_path, deleted_at, created_at`

	doc, err := scanOrderDocument(querierOf(r.storage, tx).QueryRow(ctx, query, documentID), false)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка удаления документа %d: %w", documentID, err)
	}
	return doc, nil
}

// StoragePathsByOrderInTx - пути всех файлов заказа, включая удаленные документы.
// Читается до каскадного удаления заказа.
func (r *OrderDocumentRepository) StoragePathsByOrderInTx(ctx context.Context, tx pgx.Tx, orderID uint64) ([]string, error) {
	rows, err := querierOf(r.storage, tx).Query(ctx,
		`SELECT storage_path FROM order_documents WHERE order_id = $1 AND storage_path <> ''`, orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения файлов заказа %d: %w", orderID, err)
	}
	defer rows.Close()

	paths := make([]string, 0)
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}
