package filestorage

import (
	"context"
	"errors"
)

// ErrInvalidPath - путь выходит за пределы хранилища или пустой.
var ErrInvalidPath = errors.New("filestorage: недопустимый путь к файлу")

// DocumentStorageInterface - хранилище PDF-документов заказов.
// Загрузка живёт во внешнем сервисе генерации документов; здесь только удаление при окончательной очистке.
type DocumentStorageInterface interface {
	Remove(ctx context.Context, storagePaths ...string) error
	Name() string
}
