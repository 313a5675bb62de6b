package services

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"supplies-backoffice/internal/entities"
	"supplies-backoffice/pkg/constants"
	"supplies-backoffice/pkg/types"
)

// MockTxManager выполняет fn сразу, без настоящей транзакции.
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	m.Called(ctx)
	return fn(nil)
}

type MockArchiveRepository struct {
	mock.Mock
}

func (m *MockArchiveRepository) CreateInTx(ctx context.Context, tx pgx.Tx, entry *entities.ArchiveEntry) (uint64, error) {
	args := m.Called(ctx, tx, entry)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockArchiveRepository) List(ctx context.Context, filter constants.ArchiveFilter) ([]entities.ArchiveEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ArchiveEntry), args.Error(1)
}

func (m *MockArchiveRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.ArchiveEntry, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ArchiveEntry), args.Error(1)
}

func (m *MockArchiveRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, id uint64) (bool, error) {
	args := m.Called(ctx, tx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockArchiveRepository) DeletePDFEntriesByOrderInTx(ctx context.Context, tx pgx.Tx, orderID uint64) (int64, error) {
	args := m.Called(ctx, tx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArchiveRepository) ExpiredIDs(ctx context.Context, now time.Time) ([]uint64, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entities.Order), args.Get(1).(uint64), args.Error(2)
}

func (m *MockOrderRepository) FindOrder(ctx context.Context, id uint64) (*entities.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Order), args.Error(1)
}

func (m *MockOrderRepository) SoftDeleteOrderInTx(ctx context.Context, tx pgx.Tx, id uint64, deletedAt time.Time) (*entities.Order, error) {
	args := m.Called(ctx, tx, id, deletedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Order), args.Error(1)
}

func (m *MockOrderRepository) RestoreOrderInTx(ctx context.Context, tx pgx.Tx, id uint64) (bool, error) {
	args := m.Called(ctx, tx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) HardDeleteOrderInTx(ctx context.Context, tx pgx.Tx, id uint64) (bool, error) {
	args := m.Called(ctx, tx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uint64, status constants.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) LockPaymentStatusInTx(ctx context.Context, tx pgx.Tx, id uint64) (constants.PaymentStatus, error) {
	args := m.Called(ctx, tx, id)
	return args.Get(0).(constants.PaymentStatus), args.Error(1)
}

func (m *MockOrderRepository) UpdatePaymentStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status constants.PaymentStatus, note null.String) error {
	args := m.Called(ctx, tx, id, status, note)
	return args.Error(0)
}

type MockOrderDocumentRepository struct {
	mock.Mock
}

func (m *MockOrderDocumentRepository) GetByOrderID(ctx context.Context, orderID uint64) ([]entities.OrderDocument, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.OrderDocument), args.Error(1)
}

func (m *MockOrderDocumentRepository) SoftDeleteInTx(ctx context.Context, tx pgx.Tx, orderID, documentID uint64, deletedAt time.Time) (*entities.OrderDocument, error) {
	args := m.Called(ctx, tx, orderID, documentID, deletedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.OrderDocument), args.Error(1)
}

func (m *MockOrderDocumentRepository) RestoreInTx(ctx context.Context, tx pgx.Tx, documentID uint64) (bool, error) {
	args := m.Called(ctx, tx, documentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderDocumentRepository) HardDeleteInTx(ctx context.Context, tx pgx.Tx, documentID uint64) (*entities.OrderDocument, error) {
	args := m.Called(ctx, tx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.OrderDocument), args.Error(1)
}

func (m *MockOrderDocumentRepository) StoragePathsByOrderInTx(ctx context.Context, tx pgx.Tx, orderID uint64) ([]string, error) {
	args := m.Called(ctx, tx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockPaymentLogRepository struct {
	mock.Mock
}

func (m *MockPaymentLogRepository) CreateInTx(ctx context.Context, tx pgx.Tx, log *entities.PaymentLog) (uint64, error) {
	args := m.Called(ctx, tx, log)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockPaymentLogRepository) FindByOrderID(ctx context.Context, orderID uint64) ([]entities.PaymentLog, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.PaymentLog), args.Error(1)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Del(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCacheRepository) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

type MockDocumentStorage struct {
	mock.Mock
}

func (m *MockDocumentStorage) Remove(ctx context.Context, storagePaths ...string) error {
	args := m.Called(ctx, storagePaths)
	return args.Error(0)
}

func (m *MockDocumentStorage) Name() string { return "mock" }
