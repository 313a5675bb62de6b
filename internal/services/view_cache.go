package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"supplies-backoffice/internal/repositories"
	"supplies-backoffice/pkg/constants"
	"supplies-backoffice/pkg/types"
)

// AdminViewCache - кеш представлений админки в Redis. Ошибки кеша только логируются:
// запрос обслуживается из БД, а сбой инвалидации не откатывает уже сделанную запись.
// nil *AdminViewCache - кеш выключен.
type AdminViewCache struct {
	cache  repositories.CacheRepositoryInterface
	ttl    time.Duration
	logger *zap.Logger
}

func NewAdminViewCache(cache repositories.CacheRepositoryInterface, ttl time.Duration, logger *zap.Logger) *AdminViewCache {
	return &AdminViewCache{cache: cache, ttl: ttl, logger: logger}
}

func (c *AdminViewCache) get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			c.logger.Warn("Кеш недоступен при чтении", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		c.logger.Warn("Битое значение в кеше", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *AdminViewCache) set(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Не удалось сериализовать значение для кеша", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
		c.logger.Warn("Кеш недоступен при записи", zap.String("key", key), zap.Error(err))
	}
}

func (c *AdminViewCache) del(ctx context.Context, keys ...string) {
	if c == nil {
		return
	}
	if err := c.cache.Del(ctx, keys...); err != nil {
		c.logger.Warn("Не удалось сбросить кеш", zap.Strings("keys", keys), zap.Error(err))
	}
}

// orderListKey строит ключ страницы списка заказов с текущей версией списка.
func (c *AdminViewCache) orderListKey(ctx context.Context, filter types.Filter) string {
	var version int64
	if raw, err := c.cache.Get(ctx, constants.CacheKeyOrderListVersion); err == nil {
		version, _ = strconv.ParseInt(raw, 10, 64)
	}

	rawFilter, _ := json.Marshal(struct {
		Search string
		Sort   map[string]string
		Filter map[string]interface{}
		Paged  bool
	}{filter.Search, filter.Sort, filter.Filter, filter.WithPagination})
	filterHash := uuid.NewSHA1(uuid.NameSpaceURL, rawFilter).String()

	return fmt.Sprintf(constants.CacheKeyOrderListPage, version, filter.Limit, filter.Offset, filterHash)
}

// GetOrderList возвращает и ключ страницы: его же нужно передать в SetOrderList.
// Ключ берется до чтения из БД, поэтому снимок, прочитанный во время инвалидации,
// ляжет под старую версию и больше не будет прочитан.
func (c *AdminViewCache) GetOrderList(ctx context.Context, filter types.Filter, dest interface{}) (string, bool) {
	if c == nil {
		return "", false
	}
	key := c.orderListKey(ctx, filter)
	return key, c.get(ctx, key, dest)
}

func (c *AdminViewCache) SetOrderList(ctx context.Context, key string, value interface{}) {
	if c == nil || key == "" {
		return
	}
	c.set(ctx, key, value)
}

func (c *AdminViewCache) GetOrder(ctx context.Context, orderID uint64, dest interface{}) bool {
	return c.get(ctx, fmt.Sprintf(constants.CacheKeyOrderDetail, orderID), dest)
}

func (c *AdminViewCache) SetOrder(ctx context.Context, orderID uint64, value interface{}) {
	c.set(ctx, fmt.Sprintf(constants.CacheKeyOrderDetail, orderID), value)
}

func (c *AdminViewCache) GetArchive(ctx context.Context, filter constants.ArchiveFilter, dest interface{}) bool {
	return c.get(ctx, fmt.Sprintf(constants.CacheKeyArchiveList, filter), dest)
}

func (c *AdminViewCache) SetArchive(ctx context.Context, filter constants.ArchiveFilter, value interface{}) {
	c.set(ctx, fmt.Sprintf(constants.CacheKeyArchiveList, filter), value)
}

// InvalidateOrderList делает устаревшими все страницы списка сразу: новая версия - новые ключи.
func (c *AdminViewCache) InvalidateOrderList(ctx context.Context) {
	if c == nil {
		return
	}
	if _, err := c.cache.Incr(ctx, constants.CacheKeyOrderListVersion); err != nil {
		c.logger.Warn("Не удалось сбросить кеш списка заказов", zap.Error(err))
	}
}

func (c *AdminViewCache) InvalidateArchive(ctx context.Context) {
	keys := make([]string, 0, len(constants.ArchiveFilters))
	for _, f := range constants.ArchiveFilters {
		keys = append(keys, fmt.Sprintf(constants.CacheKeyArchiveList, f))
	}
	c.del(ctx, keys...)
}

func (c *AdminViewCache) InvalidateOrder(ctx context.Context, orderIDs ...uint64) {
	if len(orderIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(orderIDs))
	for _, id := range orderIDs {
		keys = append(keys, fmt.Sprintf(constants.CacheKeyOrderDetail, id))
	}
	c.del(ctx, keys...)
}
