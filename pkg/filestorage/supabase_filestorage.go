package filestorage

import (
	"context"
	"fmt"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

type SupabaseFileStorage struct {
	client *storage.Client
	bucket string
}

func NewSupabaseFileStorage(supabaseURL, serviceKey, bucket string) DocumentStorageInterface {
	baseURL := strings.TrimRight(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceKey, nil)
	return &SupabaseFileStorage{client: client, bucket: bucket}
}

func (s *SupabaseFileStorage) Name() string { return "supabase" }

func (s *SupabaseFileStorage) Remove(_ context.Context, storagePaths ...string) error {
	paths := make([]string, 0, len(storagePaths))
	for _, p := range storagePaths {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return nil
	}
	if _, err := s.client.RemoveFile(s.bucket, paths); err != nil {
		return fmt.Errorf("не удалось удалить файлы из bucket %s: %w", s.bucket, err)
	}
	return nil
}
