package controllers

import (
	"context"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"supplies-backoffice/internal/dto"
	"supplies-backoffice/internal/entities"
	"supplies-backoffice/pkg/constants"
	"supplies-backoffice/pkg/types"
)

type MockArchiveService struct {
	mock.Mock
}

func (m *MockArchiveService) RecordDeletedArchiveEntry(ctx context.Context, tx pgx.Tx, in dto.RecordArchiveEntryDTO) (*entities.ArchiveEntry, error) {
	args := m.Called(ctx, tx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ArchiveEntry), args.Error(1)
}

func (m *MockArchiveService) FetchArchiveEntries(ctx context.Context, filter constants.ArchiveFilter) ([]dto.ArchiveEntryDTO, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ArchiveEntryDTO), args.Error(1)
}

func (m *MockArchiveService) RestoreArchiveEntries(ctx context.Context, ids []uint64) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockArchiveService) PermanentlyDeleteArchiveEntries(ctx context.Context, ids []uint64) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockArchiveService) CleanupExpiredArchiveEntries(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) GetOrders(ctx context.Context, filter types.Filter) (*dto.PaginatedListDTO[dto.OrderListItemDTO], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedListDTO[dto.OrderListItemDTO]), args.Error(1)
}

func (m *MockOrderService) FindOrder(ctx context.Context, orderID uint64) (*dto.OrderDetailDTO, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.OrderDetailDTO), args.Error(1)
}

func (m *MockOrderService) GetOrderDocuments(ctx context.Context, orderID uint64) ([]dto.OrderDocumentDTO, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.OrderDocumentDTO), args.Error(1)
}

func (m *MockOrderService) SoftDeleteOrder(ctx context.Context, orderID uint64) error {
	return m.Called(ctx, orderID).Error(0)
}

func (m *MockOrderService) SoftDeleteOrderDocument(ctx context.Context, orderID, documentID uint64) error {
	return m.Called(ctx, orderID, documentID).Error(0)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, orderID uint64, status string) (constants.OrderStatus, error) {
	args := m.Called(ctx, orderID, status)
	return args.Get(0).(constants.OrderStatus), args.Error(1)
}

func (m *MockOrderService) UpdateOrderPaymentStatus(ctx context.Context, orderID uint64, status string, note null.String) error {
	return m.Called(ctx, orderID, status, note).Error(0)
}

func (m *MockOrderService) GetPaymentLogs(ctx context.Context, orderID uint64) ([]dto.PaymentLogDTO, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.PaymentLogDTO), args.Error(1)
}
