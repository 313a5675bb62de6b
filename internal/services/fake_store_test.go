package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"supplies-backoffice/internal/entities"
	"supplies-backoffice/internal/repositories"
	"supplies-backoffice/pkg/constants"
	apperrors "supplies-backoffice/pkg/errors"
	"supplies-backoffice/pkg/types"
)

// memStore - хранилище в памяти с теми же правилами, что и SQL в репозиториях.
type memStore struct {
	mu            sync.Mutex
	orders        map[uint64]*entities.Order
	docs          map[uint64]*entities.OrderDocument
	archive       map[uint64]*entities.ArchiveEntry
	nextArchiveID uint64
	paymentLogs   []entities.PaymentLog
}

func newMemStore() *memStore {
	return &memStore{
		orders:  make(map[uint64]*entities.Order),
		docs:    make(map[uint64]*entities.OrderDocument),
		archive: make(map[uint64]*entities.ArchiveEntry),
	}
}

func (s *memStore) addOrder(id uint64, number string) {
	s.orders[id] = &entities.Order{
		ID:            id,
		OrderNumber:   number,
		CustomerType:  constants.CustomerTypeSchool,
		ContactName:   "Marija Petrović",
		ContactEmail:  "skola@example.rs",
		SchoolName:    null.StringFrom("OŠ Vuk Karadžić"),
		Status:        constants.OrderStatusReceived,
		PaymentStatus: constants.PaymentStatusUnpaid,
	}
}

func (s *memStore) addDocument(id, orderID uint64, path string) {
	s.docs[id] = &entities.OrderDocument{
		ID:           id,
		OrderID:      orderID,
		DocumentType: constants.DocumentTypeInvoice,
		Filename:     "faktura.pdf",
		StoragePath:  path,
	}
}

type memTx struct{}

func (memTx) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error { return fn(nil) }

type memOrders struct{ *memStore }

func (r memOrders) GetOrders(_ context.Context, _ types.Filter) ([]entities.Order, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Order, 0)
	for _, o := range r.orders {
		if o.DeletedAt == nil {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, uint64(len(out)), nil
}

func (r memOrders) FindOrder(_ context.Context, id uint64) (*entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.DeletedAt != nil {
		return nil, apperrors.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r memOrders) SoftDeleteOrderInTx(_ context.Context, _ pgx.Tx, id uint64, deletedAt time.Time) (*entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.DeletedAt != nil {
		return nil, apperrors.ErrNotFound
	}
	t := deletedAt
	o.DeletedAt = &t
	cp := *o
	return &cp, nil
}

func (r memOrders) RestoreOrderInTx(_ context.Context, _ pgx.Tx, id uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.DeletedAt == nil {
		return false, nil
	}
	o.DeletedAt = nil
	return true, nil
}

func (r memOrders) HardDeleteOrderInTx(_ context.Context, _ pgx.Tx, id uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.DeletedAt == nil {
		return false, nil
	}
	delete(r.orders, id)
	for docID, d := range r.docs {
		if d.OrderID == id {
			delete(r.docs, docID)
		}
	}
	return true, nil
}

func (r memOrders) UpdateStatus(_ context.Context, id uint64, status constants.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.DeletedAt != nil {
		return apperrors.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r memOrders) LockPaymentStatusInTx(_ context.Context, _ pgx.Tx, id uint64) (constants.PaymentStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.DeletedAt != nil {
		return "", apperrors.ErrNotFound
	}
	return o.PaymentStatus, nil
}

func (r memOrders) UpdatePaymentStatusInTx(_ context.Context, _ pgx.Tx, id uint64, status constants.PaymentStatus, note null.String) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.DeletedAt != nil {
		return apperrors.ErrNotFound
	}
	o.PaymentStatus = status
	if note.Valid {
		o.PaymentNotes = note
	}
	return nil
}

type memDocs struct{ *memStore }

func (r memDocs) GetByOrderID(_ context.Context, orderID uint64) ([]entities.OrderDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[orderID]; !ok || o.DeletedAt != nil {
		return nil, apperrors.ErrNotFound
	}
	out := make([]entities.OrderDocument, 0)
	for _, d := range r.docs {
		if d.OrderID == orderID && d.DeletedAt == nil {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r memDocs) SoftDeleteInTx(_ context.Context, _ pgx.Tx, orderID, documentID uint64, deletedAt time.Time) (*entities.OrderDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[documentID]
	if !ok || d.OrderID != orderID || d.DeletedAt != nil {
		return nil, apperrors.ErrNotFound
	}
	if o, ok := r.orders[orderID]; !ok || o.DeletedAt != nil {
		return nil, apperrors.ErrNotFound
	}
	t := deletedAt
	d.DeletedAt = &t
	cp := *d
	cp.OrderNumber = r.orders[orderID].OrderNumber
	return &cp, nil
}

func (r memDocs) RestoreInTx(_ context.Context, _ pgx.Tx, documentID uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[documentID]
	if !ok || d.DeletedAt == nil {
		return false, nil
	}
	d.DeletedAt = nil
	return true, nil
}

func (r memDocs) HardDeleteInTx(_ context.Context, _ pgx.Tx, documentID uint64) (*entities.OrderDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[documentID]
	if !ok || d.DeletedAt == nil {
		return nil, nil
	}
	delete(r.docs, documentID)
	return d, nil
}

func (r memDocs) StoragePathsByOrderInTx(_ context.Context, _ pgx.Tx, orderID uint64) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	paths := make([]string, 0)
	for _, d := range r.docs {
		if d.OrderID == orderID && d.StoragePath != "" {
			paths = append(paths, d.StoragePath)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

type memArchive struct{ *memStore }

func (r memArchive) CreateInTx(_ context.Context, _ pgx.Tx, entry *entities.ArchiveEntry) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextArchiveID++
	cp := *entry
	cp.ID = r.nextArchiveID
	r.archive[cp.ID] = &cp
	return cp.ID, nil
}

func (r memArchive) List(_ context.Context, filter constants.ArchiveFilter) ([]entities.ArchiveEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.ArchiveEntry, 0)
	for _, e := range r.archive {
		if filter == constants.ArchiveFilterAll || string(e.ItemType) == string(filter) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DeletedAt.Equal(out[j].DeletedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].DeletedAt.After(out[j].DeletedAt)
	})
	return out, nil
}

func (r memArchive) FindForUpdateInTx(_ context.Context, _ pgx.Tx, id uint64) (*entities.ArchiveEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.archive[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r memArchive) DeleteInTx(_ context.Context, _ pgx.Tx, id uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.archive[id]
	delete(r.archive, id)
	return ok, nil
}

func (r memArchive) DeletePDFEntriesByOrderInTx(_ context.Context, _ pgx.Tx, orderID uint64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, e := range r.archive {
		if e.ItemType == constants.ArchiveItemPDF && e.OrderID == orderID {
			delete(r.archive, id)
			n++
		}
	}
	return n, nil
}

func (r memArchive) ExpiredIDs(_ context.Context, now time.Time) ([]uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uint64, 0)
	for id, e := range r.archive {
		if e.IsExpired(now) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type memPayments struct{ *memStore }

func (r memPayments) CreateInTx(_ context.Context, _ pgx.Tx, log *entities.PaymentLog) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *log
	cp.ID = uint64(len(r.paymentLogs) + 1)
	r.paymentLogs = append(r.paymentLogs, cp)
	return cp.ID, nil
}

func (r memPayments) FindByOrderID(_ context.Context, orderID uint64) ([]entities.PaymentLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.PaymentLog, 0)
	for _, l := range r.paymentLogs {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	return out, nil
}

// newMemServices собирает оба сервиса поверх memStore с замороженными часами.
func newMemServices(store *memStore, now time.Time) (*ArchiveService, *OrderService) {
	clock := func() time.Time { return now }
	logger := zap.NewNop()

	archiveSvc := NewArchiveService(memTx{}, memArchive{store}, memOrders{store}, memDocs{store}, nil, nil, logger)
	archiveSvc.now = clock

	orderSvc := NewOrderService(memTx{}, memOrders{store}, memDocs{store}, memPayments{store}, archiveSvc, nil, logger)
	orderSvc.now = clock

	return archiveSvc, orderSvc
}

// memCache - Redis в памяти для CacheRepositoryInterface.
type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]string)}
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	default:
		c.data[key] = fmt.Sprint(v)
	}
	return nil
}

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.data[key], 10, 64)
	n++
	c.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

// countingOrders считает чтения списка и вызывает afterRead сразу после чтения.
type countingOrders struct {
	memOrders
	reads     *int
	afterRead func()
}

func (r countingOrders) GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error) {
	orders, total, err := r.memOrders.GetOrders(ctx, filter)
	*r.reads++
	if r.afterRead != nil {
		r.afterRead()
	}
	return orders, total, err
}
