package services

import (
	"context"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"supplies-backoffice/internal/dto"
	"supplies-backoffice/internal/entities"
	"supplies-backoffice/internal/repositories"
	"supplies-backoffice/pkg/constants"
	apperrors "supplies-backoffice/pkg/errors"
	"supplies-backoffice/pkg/types"
	"supplies-backoffice/pkg/utils"
)

type OrderServiceInterface interface {
	GetOrders(ctx context.Context, filter types.Filter) (*dto.PaginatedListDTO[dto.OrderListItemDTO], error)
	FindOrder(ctx context.Context, orderID uint64) (*dto.OrderDetailDTO, error)
	GetOrderDocuments(ctx context.Context, orderID uint64) ([]dto.OrderDocumentDTO, error)
	SoftDeleteOrder(ctx context.Context, orderID uint64) error
	SoftDeleteOrderDocument(ctx context.Context, orderID, documentID uint64) error
	UpdateOrderStatus(ctx context.Context, orderID uint64, status string) (constants.OrderStatus, error)
	UpdateOrderPaymentStatus(ctx context.Context, orderID uint64, status string, note null.String) error
	GetPaymentLogs(ctx context.Context, orderID uint64) ([]dto.PaymentLogDTO, error)
}

type OrderService struct {
	txManager      repositories.TxManagerInterface
	orderRepo      repositories.OrderRepositoryInterface
	documentRepo   repositories.OrderDocumentRepositoryInterface
	paymentLogRepo repositories.PaymentLogRepositoryInterface
	archiveService ArchiveServiceInterface
	viewCache      *AdminViewCache
	logger         *zap.Logger
	now            func() time.Time
}

func NewOrderService(
	txManager repositories.TxManagerInterface,
	orderRepo repositories.OrderRepositoryInterface,
	documentRepo repositories.OrderDocumentRepositoryInterface,
	paymentLogRepo repositories.PaymentLogRepositoryInterface,
	archiveService ArchiveServiceInterface,
	viewCache *AdminViewCache,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		txManager:      txManager,
		orderRepo:      orderRepo,
		documentRepo:   documentRepo,
		paymentLogRepo: paymentLogRepo,
		archiveService: archiveService,
		viewCache:      viewCache,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *OrderService) GetOrders(ctx context.Context, filter types.Filter) (*dto.PaginatedListDTO[dto.OrderListItemDTO], error) {
	var cached dto.PaginatedListDTO[dto.OrderListItemDTO]
	cacheKey, hit := s.viewCache.GetOrderList(ctx, filter, &cached)
	if hit {
		return &cached, nil
	}

	orders, total, err := s.orderRepo.GetOrders(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := &dto.PaginatedListDTO[dto.OrderListItemDTO]{
		List: make([]dto.OrderListItemDTO, 0, len(orders)),
	}
	for i := range orders {
		o := &orders[i]
		result.List = append(result.List, dto.OrderListItemDTO{
			ID:            o.ID,
			OrderNumber:   o.OrderNumber,
			CustomerType:  string(o.CustomerType),
			Customer:      o.CustomerLabel(),
			ContactEmail:  o.ContactEmail,
			Status:        o.Status.String(),
			PaymentStatus: o.PaymentStatus.String(),
			Total:         o.Total.StringFixed(2),
			CreatedAt:     o.CreatedAt,
		})
	}
	if filter.WithPagination {
		pagination := utils.BuildPagination(total, filter)
		result.Pagination = &pagination
	}

	s.viewCache.SetOrderList(ctx, cacheKey, result)
	return result, nil
}

func (s *OrderService) FindOrder(ctx context.Context, orderID uint64) (*dto.OrderDetailDTO, error) {
	var cached dto.OrderDetailDTO
	if s.viewCache.GetOrder(ctx, orderID, &cached) {
		return &cached, nil
	}

	order, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	docs, err := s.documentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := orderToDetailDTO(order, docs)
	s.viewCache.SetOrder(ctx, orderID, result)
	return result, nil
}

func orderToDetailDTO(o *entities.Order, docs []entities.OrderDocument) *dto.OrderDetailDTO {
	out := &dto.OrderDetailDTO{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerType:  string(o.CustomerType),
		ContactName:   o.ContactName,
		ContactEmail:  o.ContactEmail,
		ContactPhone:  o.ContactPhone,
		CompanyName:   o.CompanyName,
		SchoolName:    o.SchoolName,
		Address:       o.Address,
		Status:        o.Status.String(),
		NextStatuses:  make([]string, 0),
		PaymentStatus: o.PaymentStatus.String(),
		PaymentNotes:  o.PaymentNotes,
		Subtotal:      o.Subtotal.StringFixed(2),
		Tax:           o.Tax.StringFixed(2),
		Total:         o.Total.StringFixed(2),
		Items:         make([]dto.OrderItemDTO, 0, len(o.Items)),
		Documents:     documentsToDTO(docs),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	for _, next := range constants.NominalNextStatuses[o.Status] {
		out.NextStatuses = append(out.NextStatuses, next.String())
	}
	for _, item := range o.Items {
		out.Items = append(out.Items, dto.OrderItemDTO{
			ID:          item.ID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			LineTotal:   item.LineTotal.StringFixed(2),
		})
	}
	return out
}

func documentsToDTO(docs []entities.OrderDocument) []dto.OrderDocumentDTO {
	out := make([]dto.OrderDocumentDTO, 0, len(docs))
	for _, d := range docs {
		out = append(out, dto.OrderDocumentDTO{
			ID:           d.ID,
			OrderID:      d.OrderID,
			DocumentType: string(d.DocumentType),
			Filename:     d.Filename,
			StorageURL:   d.StorageURL,
			CreatedAt:    d.CreatedAt,
		})
	}
	return out
}

func (s *OrderService) GetOrderDocuments(ctx context.Context, orderID uint64) ([]dto.OrderDocumentDTO, error) {
	docs, err := s.documentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return documentsToDTO(docs), nil
}

// SoftDeleteOrder помечает заказ удаленным и кладет его в архив одной транзакцией.
func (s *OrderService) SoftDeleteOrder(ctx context.Context, orderID uint64) error {
	logger := utils.LoggerWithRequest(ctx, s.logger)
	deletedAt := archiveNow(s.now())

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.SoftDeleteOrderInTx(ctx, tx, orderID, deletedAt)
		if err != nil {
			return err
		}

		_, err = s.archiveService.RecordDeletedArchiveEntry(ctx, tx, dto.RecordArchiveEntryDTO{
			ItemType:  constants.ArchiveItemOrder,
			OrderID:   order.ID,
			Label:     order.OrderNumber + " - " + order.CustomerLabel(),
			DeletedAt: deletedAt,
			Payload: dto.OrderArchivePayload{
				OrderNumber:   order.OrderNumber,
				CustomerType:  string(order.CustomerType),
				Customer:      order.CustomerLabel(),
				ContactEmail:  order.ContactEmail,
				Status:        order.Status.String(),
				PaymentStatus: order.PaymentStatus.String(),
				Total:         order.Total.StringFixed(2),
			},
		})
		return err
	})
	if err != nil {
		return err
	}

	logger.Info("Заказ перемещен в архив", zap.Uint64("order_id", orderID))
	s.viewCache.InvalidateOrderList(ctx)
	s.viewCache.InvalidateArchive(ctx)
	s.viewCache.InvalidateOrder(ctx, orderID)
	return nil
}

func (s *OrderService) SoftDeleteOrderDocument(ctx context.Context, orderID, documentID uint64) error {
	logger := utils.LoggerWithRequest(ctx, s.logger)
	deletedAt := archiveNow(s.now())

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		doc, err := s.documentRepo.SoftDeleteInTx(ctx, tx, orderID, documentID, deletedAt)
		if err != nil {
			return err
		}

		label := doc.Filename
		if doc.OrderNumber != "" {
			label = doc.OrderNumber + " - " + doc.Filename
		}
		_, err = s.archiveService.RecordDeletedArchiveEntry(ctx, tx, dto.RecordArchiveEntryDTO{
			ItemType:   constants.ArchiveItemPDF,
			OrderID:    doc.OrderID,
			DocumentID: &doc.ID,
			Label:      label,
			DeletedAt:  deletedAt,
			Payload: dto.DocumentArchivePayload{
				OrderNumber:  doc.OrderNumber,
				DocumentType: string(doc.DocumentType),
				Filename:     doc.Filename,
				StorageURL:   doc.StorageURL,
				StoragePath:  doc.StoragePath,
			},
		})
		return err
	})
	if err != nil {
		return err
	}

	logger.Info("Документ перемещен в архив", zap.Uint64("order_id", orderID), zap.Uint64("document_id", documentID))
	s.viewCache.InvalidateArchive(ctx)
	s.viewCache.InvalidateOrder(ctx, orderID)
	return nil
}

// UpdateOrderStatus пишет любой статус из перечня: порядок переходов задает админка, не бэкенд.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uint64, status string) (constants.OrderStatus, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return "", apperrors.ErrEmptyStatus
	}
	newStatus := constants.OrderStatus(status)
	if !newStatus.IsValid() {
		return "", apperrors.ErrInvalidStatus
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return "", err
	}

	utils.LoggerWithRequest(ctx, s.logger).Info("Статус заказа изменен",
		zap.Uint64("order_id", orderID), zap.String("status", newStatus.String()))

	s.viewCache.InvalidateOrderList(ctx)
	s.viewCache.InvalidateArchive(ctx)
	s.viewCache.InvalidateOrder(ctx, orderID)
	return newStatus, nil
}

// UpdateOrderPaymentStatus: чтение с блокировкой, запись и строка журнала в одной транзакции,
// поэтому previous_status в журнале всегда тот, что реально был перед записью.
func (s *OrderService) UpdateOrderPaymentStatus(ctx context.Context, orderID uint64, status string, note null.String) error {
	newStatus := constants.PaymentStatus(strings.TrimSpace(status))
	if !newStatus.IsValid() {
		return apperrors.ErrInvalidPaymentStatus
	}
	if note.Valid {
		note.String = strings.TrimSpace(note.String)
		if note.String == "" {
			note = null.String{}
		}
	}

	var previous constants.PaymentStatus
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		previous, err = s.orderRepo.LockPaymentStatusInTx(ctx, tx, orderID)
		if err != nil {
			return err
		}

		if err := s.orderRepo.UpdatePaymentStatusInTx(ctx, tx, orderID, newStatus, note); err != nil {
			return err
		}

		_, err = s.paymentLogRepo.CreateInTx(ctx, tx, &entities.PaymentLog{
			OrderID:        orderID,
			PreviousStatus: previous,
			NewStatus:      newStatus,
			Note:           note,
		})
		return err
	})
	if err != nil {
		return err
	}

	utils.LoggerWithRequest(ctx, s.logger).Info("Статус оплаты изменен",
		zap.Uint64("order_id", orderID),
		zap.String("previous", previous.String()),
		zap.String("new", newStatus.String()))

	s.viewCache.InvalidateOrderList(ctx)
	s.viewCache.InvalidateOrder(ctx, orderID)
	return nil
}

// GetPaymentLogs - журнал читается и для удаленных заказов; 404 только если нет ни журнала, ни заказа.
func (s *OrderService) GetPaymentLogs(ctx context.Context, orderID uint64) ([]dto.PaymentLogDTO, error) {
	logs, err := s.paymentLogRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		if _, err := s.orderRepo.FindOrder(ctx, orderID); err != nil {
			return nil, err
		}
	}

	out := make([]dto.PaymentLogDTO, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.PaymentLogDTO{
			ID:             l.ID,
			OrderID:        l.OrderID,
			PreviousStatus: l.PreviousStatus.String(),
			NewStatus:      l.NewStatus.String(),
			Note:           l.Note,
			CreatedAt:      l.CreatedAt,
		})
	}
	return out, nil
}
