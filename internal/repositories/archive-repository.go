package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"supplies-backoffice/internal/entities"
	"supplies-backoffice/pkg/constants"
	apperrors "supplies-backoffice/pkg/errors"
)

const archiveTable = "archive_entries"

var archiveColumns = []string{
	"id", "item_type", "order_id", "document_id", "label", "payload", "deleted_at", "expires_at",
}

type ArchiveRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, entry *entities.ArchiveEntry) (uint64, error)
	List(ctx context.Context, filter constants.ArchiveFilter) ([]entities.ArchiveEntry, error)
	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.ArchiveEntry, error)
	DeleteInTx(ctx context.Context, tx pgx.Tx, id uint64) (bool, error)
	DeletePDFEntriesByOrderInTx(ctx context.Context, tx pgx.Tx, orderID uint64) (int64, error)
	ExpiredIDs(ctx context.Context, now time.Time) ([]uint64, error)
}

type ArchiveRepository struct {
	storage *pgxpool.Pool
}

func NewArchiveRepository(storage *pgxpool.Pool) ArchiveRepositoryInterface {
	return &ArchiveRepository{storage: storage}
}

func scanArchiveEntry(row pgx.Row) (*entities.ArchiveEntry, error) {
	var e entities.ArchiveEntry
	err := row.Scan(&e.ID, &e.ItemType, &e.OrderID, &e.DocumentID, &e.Label, &e.Payload, &e.DeletedAt, &e.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *ArchiveRepository) CreateInTx(ctx context.Context, tx pgx.Tx, entry *entities.ArchiveEntry) (uint64, error) {
	payload := entry.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Insert(archiveTable).
		Columns("item_type", "order_id", "document_id", "label", "payload", "deleted_at", "expires_at").
		Values(string(entry.ItemType), entry.OrderID, entry.DocumentID, entry.Label, payload, entry.DeletedAt, entry.ExpiresAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id uint64
	if err := querierOf(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("ошибка записи в архив: %w", err)
	}
	return id, nil
}

// List - сначала недавно удаленные.
func (r *ArchiveRepository) List(ctx context.Context, filter constants.ArchiveFilter) ([]entities.ArchiveEntry, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(archiveColumns...).
		From(archiveTable).
		OrderBy("deleted_at DESC", "id DESC")

	if filter != constants.ArchiveFilterAll {
		builder = builder.Where(sq.Eq{"item_type": string(filter)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения архива: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.ArchiveEntry, 0)
	for rows.Next() {
		entry, err := scanArchiveEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// FindForUpdateInTx блокирует запись, чтобы параллельные restore/purge одного id не пересекались.
func (r *ArchiveRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.ArchiveEntry, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(archiveColumns...).
		From(archiveTable).
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanArchiveEntry(querierOf(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *ArchiveRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, id uint64) (bool, error) {
	tag, err := querierOf(r.storage, tx).Exec(ctx, `DELETE FROM archive_entries WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("ошибка удаления записи архива %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeletePDFEntriesByOrderInTx убирает записи о документах заказа, который удаляется насовсем.
func (r *ArchiveRepository) DeletePDFEntriesByOrderInTx(ctx context.Context, tx pgx.Tx, orderID uint64) (int64, error) {
	tag, err := querierOf(r.storage, tx).Exec(ctx,
		`DELETE FROM archive_entries WHERE item_type = $1 AND order_id = $2`, string(constants.ArchiveItemPDF), orderID)
	if err != nil {
		return 0, fmt.Errorf("ошибка удаления записей архива документов заказа %d: %w", orderID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *ArchiveRepository) ExpiredIDs(ctx context.Context, now time.Time) ([]uint64, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id").
		From(archiveTable).
		Where(sq.LtOrEq{"expires_at": now}).
		OrderBy("expires_at", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска просроченных записей архива: %w", err)
	}
	defer rows.Close()

	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
