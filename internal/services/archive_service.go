package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"supplies-backoffice/internal/dto"
	"supplies-backoffice/internal/entities"
	"supplies-backoffice/internal/repositories"
	"supplies-backoffice/pkg/constants"
	apperrors "supplies-backoffice/pkg/errors"
	"supplies-backoffice/pkg/filestorage"
	"supplies-backoffice/pkg/utils"
)

type ArchiveServiceInterface interface {
	RecordDeletedArchiveEntry(ctx context.Context, tx pgx.Tx, in dto.RecordArchiveEntryDTO) (*entities.ArchiveEntry, error)
	FetchArchiveEntries(ctx context.Context, filter constants.ArchiveFilter) ([]dto.ArchiveEntryDTO, error)
	RestoreArchiveEntries(ctx context.Context, ids []uint64) (int, error)
	PermanentlyDeleteArchiveEntries(ctx context.Context, ids []uint64) (int, error)
	CleanupExpiredArchiveEntries(ctx context.Context) (int, error)
}

type ArchiveService struct {
	txManager    repositories.TxManagerInterface
	archiveRepo  repositories.ArchiveRepositoryInterface
	orderRepo    repositories.OrderRepositoryInterface
	documentRepo repositories.OrderDocumentRepositoryInterface
	storage      filestorage.DocumentStorageInterface
	viewCache    *AdminViewCache
	logger       *zap.Logger
	now          func() time.Time
}

func NewArchiveService(
	txManager repositories.TxManagerInterface,
	archiveRepo repositories.ArchiveRepositoryInterface,
	orderRepo repositories.OrderRepositoryInterface,
	documentRepo repositories.OrderDocumentRepositoryInterface,
	storage filestorage.DocumentStorageInterface,
	viewCache *AdminViewCache,
	logger *zap.Logger,
) *ArchiveService {
	return &ArchiveService{
		txManager:    txManager,
		archiveRepo:  archiveRepo,
		orderRepo:    orderRepo,
		documentRepo: documentRepo,
		storage:      storage,
		viewCache:    viewCache,
		logger:       logger,
		now:          time.Now,
	}
}

// archiveNow - Postgres хранит микросекунды, поэтому время режется до них,
// иначе deleted_at и expires_at после чтения из БД разошлись бы с посчитанными в Go.
func archiveNow(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// RecordDeletedArchiveEntry вызывается в той же транзакции, что и мягкое удаление строки.
func (s *ArchiveService) RecordDeletedArchiveEntry(ctx context.Context, tx pgx.Tx, in dto.RecordArchiveEntryDTO) (*entities.ArchiveEntry, error) {
	switch in.ItemType {
	case constants.ArchiveItemOrder:
		if in.DocumentID != nil {
			return nil, fmt.Errorf("%w: у записи заказа не может быть документа", apperrors.ErrInvalidArchiveEntry)
		}
	case constants.ArchiveItemPDF:
		if in.DocumentID == nil {
			return nil, fmt.Errorf("%w: у записи PDF должен быть документ", apperrors.ErrInvalidArchiveEntry)
		}
	default:
		return nil, fmt.Errorf("%w: неизвестный тип '%s'", apperrors.ErrInvalidArchiveEntry, in.ItemType)
	}
	if in.OrderID == 0 {
		return nil, fmt.Errorf("%w: не указан заказ", apperrors.ErrInvalidArchiveEntry)
	}

	deletedAt := in.DeletedAt
	if deletedAt.IsZero() {
		deletedAt = s.now()
	}
	deletedAt = archiveNow(deletedAt)

	payload, err := json.Marshal(in.Payload)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации снимка для архива: %w", err)
	}

	entry := &entities.ArchiveEntry{
		ItemType:  in.ItemType,
		OrderID:   in.OrderID,
		Label:     in.Label,
		Payload:   payload,
		DeletedAt: deletedAt,
		ExpiresAt: constants.ArchiveExpiresAt(deletedAt),
	}
	if in.DocumentID != nil {
		entry.DocumentID = null.Int64From(int64(*in.DocumentID))
	}

	id, err := s.archiveRepo.CreateInTx(ctx, tx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return entry, nil
}

func (s *ArchiveService) FetchArchiveEntries(ctx context.Context, filter constants.ArchiveFilter) ([]dto.ArchiveEntryDTO, error) {
	var cached []dto.ArchiveEntryDTO
	if s.viewCache.GetArchive(ctx, filter, &cached) {
		return cached, nil
	}

	entries, err := s.archiveRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ArchiveEntryDTO, 0, len(entries))
	for i := range entries {
		result = append(result, archiveEntryToDTO(&entries[i]))
	}

	s.viewCache.SetArchive(ctx, filter, result)
	return result, nil
}

func archiveEntryToDTO(e *entities.ArchiveEntry) dto.ArchiveEntryDTO {
	out := dto.ArchiveEntryDTO{
		ID:        e.ID,
		ItemType:  e.ItemType,
		OrderID:   e.OrderID,
		Label:     e.Label,
		Payload:   e.Payload,
		DeletedAt: e.DeletedAt,
		ExpiresAt: e.ExpiresAt,
	}
	if e.DocumentID.Valid {
		docID := uint64(e.DocumentID.Int64)
		out.DocumentID = &docID
	}
	if len(out.Payload) == 0 {
		out.Payload = json.RawMessage("{}")
	}
	return out
}

// archiveOutcome - что случилось с одной записью пакета.
type archiveOutcome struct {
	found    bool // запись архива существовала и удалена
	affected bool // исходная строка действительно изменилась
	orderID  uint64
	blobs    []string
}

// RestoreArchiveEntries обрабатывает каждый id в своей транзакции.
// Возвращает число реально восстановленных строк и объединенную ошибку по упавшим id.
func (s *ArchiveService) RestoreArchiveEntries(ctx context.Context, ids []uint64) (int, error) {
	if len(ids) == 0 {
		return 0, apperrors.ErrEmptyIDs
	}
	return s.runBatch(ctx, ids, "restore", s.restoreOne)
}

// PermanentlyDeleteArchiveEntries необратимо удаляет строки и их записи архива.
func (s *ArchiveService) PermanentlyDeleteArchiveEntries(ctx context.Context, ids []uint64) (int, error) {
	if len(ids) == 0 {
		return 0, apperrors.ErrEmptyIDs
	}
	return s.runBatch(ctx, ids, "purge", s.purgeOne)
}

func (s *ArchiveService) CleanupExpiredArchiveEntries(ctx context.Context) (int, error) {
	logger := utils.LoggerWithRequest(ctx, s.logger)

	ids, err := s.archiveRepo.ExpiredIDs(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		logger.Info("Очистка архива: просроченных записей нет")
		return 0, nil
	}

	deleted, err := s.runBatch(ctx, ids, "cleanup", s.purgeOne)
	logger.Info("Очистка архива завершена", zap.Int("expired", len(ids)), zap.Int("deleted", deleted), zap.Error(err))
	return deleted, err
}

func (s *ArchiveService) runBatch(
	ctx context.Context,
	ids []uint64,
	op string,
	one func(ctx context.Context, tx pgx.Tx, id uint64) (archiveOutcome, error),
) (int, error) {
	logger := utils.LoggerWithRequest(ctx, s.logger).With(zap.String("op", op))

	var (
		count    int
		errs     []error
		orderIDs []uint64
		blobs    []string
	)

	for _, id := range ids {
		var outcome archiveOutcome
		err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
			var err error
			outcome, err = one(ctx, tx, id)
			return err
		})
		if err != nil {
			logger.Error("Ошибка обработки записи архива", zap.Uint64("archive_id", id), zap.Error(err))
			errs = append(errs, fmt.Errorf("запись архива %d: %w", id, err))
			continue
		}

		if !outcome.found {
			logger.Info("Запись архива не найдена, пропускаем", zap.Uint64("archive_id", id))
			continue
		}
		orderIDs = append(orderIDs, outcome.orderID)
		blobs = append(blobs, outcome.blobs...)

		if !outcome.affected {
			logger.Warn("Исходная строка уже отсутствует, запись архива удалена без изменения данных",
				zap.Uint64("archive_id", id), zap.Uint64("order_id", outcome.orderID))
			continue
		}
		count++
	}

	if len(orderIDs) > 0 {
		s.viewCache.InvalidateArchive(ctx)
		s.viewCache.InvalidateOrderList(ctx)
		s.viewCache.InvalidateOrder(ctx, orderIDs...)
	}

	if len(blobs) > 0 && s.storage != nil {
		if err := s.storage.Remove(ctx, blobs...); err != nil {
			logger.Warn("Не удалось удалить файлы документов из хранилища",
				zap.String("storage", s.storage.Name()), zap.Strings("paths", blobs), zap.Error(err))
		}
	}

	return count, errors.Join(errs...)
}

func (s *ArchiveService) restoreOne(ctx context.Context, tx pgx.Tx, id uint64) (archiveOutcome, error) {
	entry, err := s.archiveRepo.FindForUpdateInTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return archiveOutcome{}, nil
		}
		return archiveOutcome{}, err
	}

	outcome := archiveOutcome{found: true, orderID: entry.OrderID}
	switch entry.ItemType {
	case constants.ArchiveItemOrder:
		outcome.affected, err = s.orderRepo.RestoreOrderInTx(ctx, tx, entry.OrderID)
	case constants.ArchiveItemPDF:
		outcome.affected, err = s.documentRepo.RestoreInTx(ctx, tx, uint64(entry.DocumentID.Int64))
	default:
		err = fmt.Errorf("%w: неизвестный тип '%s'", apperrors.ErrInvalidArchiveEntry, entry.ItemType)
	}
	if err != nil {
		return archiveOutcome{}, err
	}

	if _, err := s.archiveRepo.DeleteInTx(ctx, tx, id); err != nil {
		return archiveOutcome{}, err
	}
	return outcome, nil
}

func (s *ArchiveService) purgeOne(ctx context.Context, tx pgx.Tx, id uint64) (archiveOutcome, error) {
	entry, err := s.archiveRepo.FindForUpdateInTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return archiveOutcome{}, nil
		}
		return archiveOutcome{}, err
	}

	outcome := archiveOutcome{found: true, orderID: entry.OrderID}
	switch entry.ItemType {
	case constants.ArchiveItemOrder:
		// Пути читаются до удаления: документы уходят вместе с заказом каскадом.
		paths, err := s.documentRepo.StoragePathsByOrderInTx(ctx, tx, entry.OrderID)
		if err != nil {
			return archiveOutcome{}, err
		}
		outcome.affected, err = s.orderRepo.HardDeleteOrderInTx(ctx, tx, entry.OrderID)
		if err != nil {
			return archiveOutcome{}, err
		}
		if outcome.affected {
			outcome.blobs = paths
			if _, err := s.archiveRepo.DeletePDFEntriesByOrderInTx(ctx, tx, entry.OrderID); err != nil {
				return archiveOutcome{}, err
			}
		}
	case constants.ArchiveItemPDF:
		doc, err := s.documentRepo.HardDeleteInTx(ctx, tx, uint64(entry.DocumentID.Int64))
		if err != nil {
			return archiveOutcome{}, err
		}
		if doc != nil {
			outcome.affected = true
			if doc.StoragePath != "" {
				outcome.blobs = []string{doc.StoragePath}
			}
		}
	default:
		return archiveOutcome{}, fmt.Errorf("%w: неизвестный тип '%s'", apperrors.ErrInvalidArchiveEntry, entry.ItemType)
	}

	if _, err := s.archiveRepo.DeleteInTx(ctx, tx, id); err != nil {
		return archiveOutcome{}, err
	}
	return outcome, nil
}
