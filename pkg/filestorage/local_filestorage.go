package filestorage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type LocalFileStorage struct {
	basePath string
}

func NewLocalFileStorage(basePath string) (DocumentStorageInterface, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию для хранения файлов: %w", err)
		}
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить абсолютный путь к %s: %w", basePath, err)
	}
	return &LocalFileStorage{basePath: abs}, nil
}

func (s *LocalFileStorage) Name() string { return "local" }

// Remove удаляет файлы; отсутствующий файл ошибкой не считается.
func (s *LocalFileStorage) Remove(_ context.Context, storagePaths ...string) error {
	var errs []error
	for _, p := range storagePaths {
		full, err := s.resolve(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}
		if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *LocalFileStorage) resolve(storagePath string) (string, error) {
	if strings.TrimSpace(storagePath) == "" {
		return "", ErrInvalidPath
	}
	full := filepath.Join(s.basePath, filepath.FromSlash(storagePath))
	// путь должен указывать на файл внутри basePath, сам корень не удаляется
	if !strings.HasPrefix(full, s.basePath+string(os.PathSeparator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}
